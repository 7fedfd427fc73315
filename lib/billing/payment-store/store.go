package paymentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/sajib4386/Asset-verse-Server/models"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(rec dbmodels.SubscriptionPayment) (id string, err error)
	GetByID(id string) (*dbmodels.SubscriptionPayment, error)
	GetByProviderTxID(txID string) (*dbmodels.SubscriptionPayment, error)
	// Update applies updMap only when the record still has the given
	// status; zero affected rows means the payment moved on already.
	Update(id string, status models.PaymentStatus, updMap map[string]interface{}) (bool, error)
	ListPending(hrEmail string) ([]dbmodels.SubscriptionPayment, error)
	ListForHr(hrEmail string) ([]dbmodels.SubscriptionPayment, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SubscriptionPayment) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.SubscriptionPayment, error) {
	rec := dbmodels.SubscriptionPayment{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByProviderTxID(txID string) (*dbmodels.SubscriptionPayment, error) {
	rec := dbmodels.SubscriptionPayment{}
	err := i.db.
		Where("provider_tx_id = ?", txID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, status models.PaymentStatus, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return false, nil
	}
	tx := i.db.
		Model(&dbmodels.SubscriptionPayment{}).
		Where("id = ?", id).
		Where("status = ?", status).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) ListPending(hrEmail string) ([]dbmodels.SubscriptionPayment, error) {
	list := []dbmodels.SubscriptionPayment{}
	err := i.db.
		Where("hr_email = ?", hrEmail).
		Where("status = ?", models.PaymentStatusPending).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForHr(hrEmail string) ([]dbmodels.SubscriptionPayment, error) {
	list := []dbmodels.SubscriptionPayment{}
	err := i.db.
		Where("hr_email = ?", hrEmail).
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
