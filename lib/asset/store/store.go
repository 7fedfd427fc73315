package assetstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	assetapimodels "github.com/sajib4386/Asset-verse-Server/models/api/asset"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(rec dbmodels.Asset) (id string, err error)
	GetByID(id string) (*dbmodels.Asset, error)
	Update(hrEmail, id string, updMap map[string]interface{}) error
	Delete(hrEmail, id string) error
	List(hrEmail string, filter assetapimodels.AssetFilter) ([]dbmodels.Asset, error)
	ListCount(hrEmail string, filter assetapimodels.AssetFilter) (int64, error)
	Browse(filter assetapimodels.AssetFilter) ([]dbmodels.Asset, error)
	BrowseCount(filter assetapimodels.AssetFilter) (int64, error)
	TryDecrement(id string) (bool, error)
	Increment(id string, count int) error
	SetAvailable(id string, value int) error
	ListAll() ([]dbmodels.Asset, error)
	ListAllForHr(hrEmail string) ([]dbmodels.Asset, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Asset) (id string, err error) {
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

func (i impl) GetByID(id string) (*dbmodels.Asset, error) {
	rec := dbmodels.Asset{}
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

func (i impl) Update(hrEmail, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Asset{}).
		Where("id = ?", id).
		Where("hr_email = ?", hrEmail).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(hrEmail, id string) error {
	err := i.db.
		Where("id = ?", id).
		Where("hr_email = ?", hrEmail).
		Delete(&dbmodels.Asset{}).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) applyFilter(tx *gorm.DB, hrEmail string, filter assetapimodels.AssetFilter) *gorm.DB {
	tx = tx.Where("hr_email = ?", hrEmail)
	if filter.Search != "" {
		tx = tx.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.Available != nil {
		if *filter.Available {
			tx = tx.Where("available_quantity > 0")
		} else {
			tx = tx.Where("available_quantity = 0")
		}
	}
	return tx
}

func (i impl) List(hrEmail string, filter assetapimodels.AssetFilter) ([]dbmodels.Asset, error) {
	list := []dbmodels.Asset{}
	tx := i.applyFilter(i.db.Model(&dbmodels.Asset{}), hrEmail, filter)
	sortBy := "created_at"
	switch filter.SortBy {
	case "quantity":
		sortBy = "total_quantity"
	case "name":
		sortBy = "name"
	}
	if filter.SortDesc {
		sortBy += " DESC"
	}
	page, limit := filter.GetPage()
	err := tx.
		Order(sortBy).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(hrEmail string, filter assetapimodels.AssetFilter) (int64, error) {
	var rowCount int64
	err := i.applyFilter(i.db.Model(&dbmodels.Asset{}), hrEmail, filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) applyBrowseFilter(tx *gorm.DB, filter assetapimodels.AssetFilter) *gorm.DB {
	if filter.Search != "" {
		tx = tx.Where("(LOWER(name) LIKE LOWER(?) OR LOWER(company_name) LIKE LOWER(?))",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.Available != nil {
		if *filter.Available {
			tx = tx.Where("available_quantity > 0")
		} else {
			tx = tx.Where("available_quantity = 0")
		}
	}
	return tx
}

// Browse is the cross-company listing employees pick assets from.
func (i impl) Browse(filter assetapimodels.AssetFilter) ([]dbmodels.Asset, error) {
	list := []dbmodels.Asset{}
	page, limit := filter.GetPage()
	err := i.applyBrowseFilter(i.db.Model(&dbmodels.Asset{}), filter).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) BrowseCount(filter assetapimodels.AssetFilter) (int64, error) {
	var rowCount int64
	err := i.applyBrowseFilter(i.db.Model(&dbmodels.Asset{}), filter).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

// TryDecrement is the single atomic quantity reservation: the decrement and
// the availability check run in one conditional update, so two concurrent
// approvals can never both take the last unit.
func (i impl) TryDecrement(id string) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Asset{}).
		Where("id = ?", id).
		Where("available_quantity > 0").
		Update("available_quantity", gorm.Expr("available_quantity - 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Increment(id string, count int) error {
	if count <= 0 {
		return errors.New("increment count must be positive")
	}
	tx := i.db.
		Model(&dbmodels.Asset{}).
		Where("id = ?", id).
		Update("available_quantity", gorm.Expr("available_quantity + ?", count))
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.Errorf("asset not found: %v", id)
	}
	return nil
}

func (i impl) SetAvailable(id string, value int) error {
	return i.db.
		Model(&dbmodels.Asset{}).
		Where("id = ?", id).
		Update("available_quantity", value).
		Error
}

func (i impl) ListAll() ([]dbmodels.Asset, error) {
	list := []dbmodels.Asset{}
	err := i.db.
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListAllForHr(hrEmail string) ([]dbmodels.Asset, error) {
	list := []dbmodels.Asset{}
	err := i.db.
		Where("hr_email = ?", hrEmail).
		Order("name").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
