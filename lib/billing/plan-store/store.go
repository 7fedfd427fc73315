package planstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	GetByName(name string) (*dbmodels.SubscriptionPlan, error)
	List() ([]dbmodels.SubscriptionPlan, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByName(name string) (*dbmodels.SubscriptionPlan, error) {
	rec := dbmodels.SubscriptionPlan{}
	err := i.db.
		Where("name = ?", name).
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

func (i impl) List() ([]dbmodels.SubscriptionPlan, error) {
	list := []dbmodels.SubscriptionPlan{}
	err := i.db.
		Order("member_limit").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
