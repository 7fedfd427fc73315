package billingapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type PlanView struct {
	Name        string          `json:"name"`
	MemberLimit int             `json:"member_limit"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
}

func PlanConvert(rec dbmodels.SubscriptionPlan) PlanView {
	return PlanView{
		Name:        rec.Name,
		MemberLimit: rec.MemberLimit,
		Price:       rec.Price,
		Currency:    rec.Currency,
	}
}

type SubscriptionView struct {
	Plan             string `json:"plan"`
	PackageLimit     int    `json:"package_limit"`
	CurrentEmployees int    `json:"current_employees"`
}

type CheckoutRequest struct {
	Plan string `json:"plan"`
}

func (r CheckoutRequest) Validate() error {
	if strings.TrimSpace(r.Plan) == "" {
		return errors.New("plan is required")
	}
	return nil
}

// CheckoutResponse is the hosted-checkout session handle the client pays
// against; the provider later reports completion through the webhook.
type CheckoutResponse struct {
	PaymentID string          `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

type PaymentWebhook struct {
	PaymentID    string     `json:"payment_id"`
	ProviderTxID string     `json:"transaction_id"`
	Provider     string     `json:"provider"`
	PaidAt       *time.Time `json:"paid_at"`
	Meta         string     `json:"meta"`
}

func (r PaymentWebhook) Validate() error {
	if r.PaymentID == "" {
		return errors.New("payment id is required")
	}
	if r.ProviderTxID == "" {
		return errors.New("transaction id is required")
	}
	return nil
}

type PaymentView struct {
	ID        string          `json:"id"`
	PlanName  string          `json:"plan"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func PaymentConvert(rec dbmodels.SubscriptionPayment) PaymentView {
	return PaymentView{
		ID:        rec.ID,
		PlanName:  rec.PlanName,
		Amount:    rec.Amount,
		Currency:  rec.Currency,
		Status:    string(rec.Status),
		PaidAt:    rec.PaidAt,
		CreatedAt: rec.CreatedAt,
	}
}

type PaymentFilter struct {
	Status string `json:"status"`
}
