package accountstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/sajib4386/Asset-verse-Server/models"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(rec dbmodels.User) (id string, err error)
	GetByID(id string) (*dbmodels.User, error)
	GetByEmail(email string) (*dbmodels.User, error)
	ExistByEmail(email string) (bool, error)
	Update(id string, updMap map[string]interface{}) error
	AddHeadcount(hrEmail string, delta int) error
	SetHeadcount(hrEmail string, count int) error
	AddPackageLimit(hrEmail string, delta int) error
	ListHRs() ([]dbmodels.User, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.User) (id string, err error) {
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

func (i impl) GetByID(id string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
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

func (i impl) GetByEmail(email string) (*dbmodels.User, error) {
	rec := dbmodels.User{}
	err := i.db.
		Where("email = ?", email).
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

func (i impl) ExistByEmail(email string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", email).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.User{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) AddHeadcount(hrEmail string, delta int) error {
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", hrEmail).
		Where("role = ?", models.HRRole).
		Update("current_employees", gorm.Expr("current_employees + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.Errorf("HR account not found: %v", hrEmail)
	}
	return nil
}

func (i impl) SetHeadcount(hrEmail string, count int) error {
	return i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", hrEmail).
		Where("role = ?", models.HRRole).
		Update("current_employees", count).
		Error
}

func (i impl) AddPackageLimit(hrEmail string, delta int) error {
	tx := i.db.
		Model(&dbmodels.User{}).
		Where("email = ?", hrEmail).
		Where("role = ?", models.HRRole).
		Update("package_limit", gorm.Expr("package_limit + ?", delta))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.Errorf("HR account not found: %v", hrEmail)
	}
	return nil
}

func (i impl) ListHRs() ([]dbmodels.User, error) {
	list := []dbmodels.User{}
	err := i.db.
		Where("role = ?", models.HRRole).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
