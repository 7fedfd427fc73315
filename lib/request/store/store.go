package requeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	requestapimodels "github.com/sajib4386/Asset-verse-Server/models/api/request"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(rec dbmodels.AssetRequest) (id string, err error)
	GetByID(id string) (*dbmodels.AssetRequest, error)
	ExistPending(assetID, requesterEmail string) (bool, error)
	// MarkProcessed flips a pending request to a terminal status. The
	// status guard runs inside the update, so a request that lost the race
	// reports zero affected rows instead of overwriting the earlier verdict.
	MarkProcessed(id string, updMap map[string]interface{}) (bool, error)
	ListForHr(hrEmail string, filter requestapimodels.RequestFilter) ([]dbmodels.AssetRequest, error)
	ListForHrCount(hrEmail string, filter requestapimodels.RequestFilter) (int64, error)
	ListForEmployee(email string, filter requestapimodels.RequestFilter) ([]dbmodels.AssetRequest, error)
	ListForEmployeeCount(email string, filter requestapimodels.RequestFilter) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssetRequest) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		// the partial unique index on pending (asset, requester) pairs
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperrors.New(apperrors.KindDuplicateRequest, "a pending request for this asset already exists")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AssetRequest, error) {
	rec := dbmodels.AssetRequest{}
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

func (i impl) ExistPending(assetID, requesterEmail string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.AssetRequest{}).
		Where("asset_id = ?", assetID).
		Where("requester_email = ?", requesterEmail).
		Where("status = ?", models.RequestStatusPending).
		Count(&rowCount).
		Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}

func (i impl) MarkProcessed(id string, updMap map[string]interface{}) (bool, error) {
	tx := i.db.
		Model(&dbmodels.AssetRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.RequestStatusPending).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) applyFilter(tx *gorm.DB, filter requestapimodels.RequestFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("LOWER(asset_name) LIKE LOWER(?) OR LOWER(requester_email) LIKE LOWER(?) OR LOWER(requester_name) LIKE LOWER(?)",
			pattern, pattern, pattern)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		tx = tx.Where("asset_type = ?", filter.Type)
	}
	return tx
}

func (i impl) ListForHr(hrEmail string, filter requestapimodels.RequestFilter) ([]dbmodels.AssetRequest, error) {
	list := []dbmodels.AssetRequest{}
	page, limit := filter.GetPage()
	err := i.applyFilter(i.db.Model(&dbmodels.AssetRequest{}).Where("hr_email = ?", hrEmail), filter).
		Order("request_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForHrCount(hrEmail string, filter requestapimodels.RequestFilter) (int64, error) {
	var rowCount int64
	err := i.applyFilter(i.db.Model(&dbmodels.AssetRequest{}).Where("hr_email = ?", hrEmail), filter).
		Count(&rowCount).
		Error
	return rowCount, err
}

func (i impl) ListForEmployee(email string, filter requestapimodels.RequestFilter) ([]dbmodels.AssetRequest, error) {
	list := []dbmodels.AssetRequest{}
	page, limit := filter.GetPage()
	err := i.applyFilter(i.db.Model(&dbmodels.AssetRequest{}).Where("requester_email = ?", email), filter).
		Order("request_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForEmployeeCount(email string, filter requestapimodels.RequestFilter) (int64, error) {
	var rowCount int64
	err := i.applyFilter(i.db.Model(&dbmodels.AssetRequest{}).Where("requester_email = ?", email), filter).
		Count(&rowCount).
		Error
	return rowCount, err
}
