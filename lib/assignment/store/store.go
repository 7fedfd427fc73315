package assignmentstore

import (
	"time"

	"gorm.io/gorm"

	"github.com/sajib4386/Asset-verse-Server/models"
	assignmentapimodels "github.com/sajib4386/Asset-verse-Server/models/api/assignment"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(rec dbmodels.Assignment) (id string, err error)
	ListActive(employeeEmail, hrEmail string) ([]dbmodels.Assignment, error)
	// ReturnAllActive closes every approved assignment of the pair in one
	// multi-record update and reports how many rows it touched.
	ReturnAllActive(employeeEmail, hrEmail string, returnDate time.Time) (int64, error)
	CountApprovedByAsset(assetID string) (int64, error)
	ExistActiveByAsset(assetID string) (bool, error)
	ListForHr(hrEmail string, filter assignmentapimodels.AssignmentFilter) ([]dbmodels.Assignment, error)
	ListForHrCount(hrEmail string, filter assignmentapimodels.AssignmentFilter) (int64, error)
	ListForEmployee(email string, filter assignmentapimodels.AssignmentFilter) ([]dbmodels.Assignment, error)
	ListForEmployeeCount(email string, filter assignmentapimodels.AssignmentFilter) (int64, error)
	ListAllForHr(hrEmail string) ([]dbmodels.Assignment, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Assignment) (id string, err error) {
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

func (i impl) ListActive(employeeEmail, hrEmail string) ([]dbmodels.Assignment, error) {
	list := []dbmodels.Assignment{}
	err := i.db.
		Where("employee_email = ?", employeeEmail).
		Where("hr_email = ?", hrEmail).
		Where("status = ?", models.AssignmentStatusApproved).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ReturnAllActive(employeeEmail, hrEmail string, returnDate time.Time) (int64, error) {
	tx := i.db.
		Model(&dbmodels.Assignment{}).
		Where("employee_email = ?", employeeEmail).
		Where("hr_email = ?", hrEmail).
		Where("status = ?", models.AssignmentStatusApproved).
		Updates(map[string]interface{}{
			"status":      models.AssignmentStatusReturned,
			"return_date": returnDate,
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) CountApprovedByAsset(assetID string) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.Assignment{}).
		Where("asset_id = ?", assetID).
		Where("status = ?", models.AssignmentStatusApproved).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) ExistActiveByAsset(assetID string) (bool, error) {
	rowCount, err := i.CountApprovedByAsset(assetID)
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}

func (i impl) applyFilter(tx *gorm.DB, filter assignmentapimodels.AssignmentFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		tx = tx.Where("LOWER(asset_name) LIKE LOWER(?) OR LOWER(employee_email) LIKE LOWER(?)", pattern, pattern)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		tx = tx.Where("asset_type = ?", filter.Type)
	}
	return tx
}

func (i impl) ListForHr(hrEmail string, filter assignmentapimodels.AssignmentFilter) ([]dbmodels.Assignment, error) {
	list := []dbmodels.Assignment{}
	page, limit := filter.GetPage()
	err := i.applyFilter(i.db.Model(&dbmodels.Assignment{}).Where("hr_email = ?", hrEmail), filter).
		Order("assignment_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForHrCount(hrEmail string, filter assignmentapimodels.AssignmentFilter) (int64, error) {
	var rowCount int64
	err := i.applyFilter(i.db.Model(&dbmodels.Assignment{}).Where("hr_email = ?", hrEmail), filter).
		Count(&rowCount).
		Error
	return rowCount, err
}

func (i impl) ListForEmployee(email string, filter assignmentapimodels.AssignmentFilter) ([]dbmodels.Assignment, error) {
	list := []dbmodels.Assignment{}
	page, limit := filter.GetPage()
	err := i.applyFilter(i.db.Model(&dbmodels.Assignment{}).Where("employee_email = ?", email), filter).
		Order("assignment_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListForEmployeeCount(email string, filter assignmentapimodels.AssignmentFilter) (int64, error) {
	var rowCount int64
	err := i.applyFilter(i.db.Model(&dbmodels.Assignment{}).Where("employee_email = ?", email), filter).
		Count(&rowCount).
		Error
	return rowCount, err
}

func (i impl) ListAllForHr(hrEmail string) ([]dbmodels.Assignment, error) {
	list := []dbmodels.Assignment{}
	err := i.db.
		Where("hr_email = ?", hrEmail).
		Order("assignment_date DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
