package dbmodels

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/sajib4386/Asset-verse-Server/models"
)

type SubscriptionPlan struct {
	BaseModel
	Name        string `gorm:"type:varchar(50);uniqueIndex"`
	MemberLimit int
	Price       decimal.Decimal `gorm:"type:decimal(10,2)"`
	Currency    string          `gorm:"type:varchar(3)"`
}

func (p SubscriptionPlan) Validate() error {
	if p.Name == "" {
		return errors.New("plan name is required")
	}
	if p.MemberLimit <= 0 {
		return errors.New("member limit is required")
	}
	if p.Price.LessThanOrEqual(decimal.Zero) {
		return errors.New("plan price is required")
	}
	return nil
}

// SubscriptionPayment is one checkout attempt. ProviderTxID is the webhook
// dedupe key: a completion callback carrying an already-recorded transaction
// id is acknowledged without applying the limit increase again.
type SubscriptionPayment struct {
	BaseModel
	HrEmail      string               `gorm:"type:varchar(255);index"`
	PlanName     string               `gorm:"type:varchar(50)"`
	Amount       decimal.Decimal      `gorm:"type:decimal(10,2)"`
	Currency     string               `gorm:"type:varchar(3)"`
	Status       models.PaymentStatus `gorm:"type:varchar(50);index"`
	Provider     string               `gorm:"type:varchar(100)"`
	ProviderTxID *string              `gorm:"type:varchar(255);uniqueIndex"`
	PaidAt       *time.Time
	Meta         string `gorm:"type:varchar(1000)"`
}

func (p SubscriptionPayment) Validate() error {
	if p.HrEmail == "" {
		return errors.New("HR is required")
	}
	if p.Status == "" {
		return errors.New("status is required")
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount is required")
	}
	return nil
}
