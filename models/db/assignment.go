package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
)

// Assignment is one asset unit held by an employee. A new row is created on
// every approval and closed on return; rows are never reused. Asset fields
// are display snapshots frozen at approval time.
type Assignment struct {
	BaseModel
	AssetID    string           `gorm:"type:varchar(36);index"`
	AssetName  string           `gorm:"type:varchar(255)"`
	AssetType  models.AssetType `gorm:"type:varchar(50)"`
	AssetImage string           `gorm:"type:varchar(500)"`

	EmployeeEmail string `gorm:"type:varchar(255);index"`
	EmployeeName  string `gorm:"type:varchar(150)"`
	HrEmail       string `gorm:"type:varchar(255);index"`

	Status         models.AssignmentStatus `gorm:"type:varchar(50);index"`
	RequestID      string                  `gorm:"type:varchar(36);index"`
	AssignmentDate time.Time
	ReturnDate     *time.Time
}

func (a Assignment) Validate() error {
	if a.AssetID == "" {
		return errors.New("asset is required")
	}
	if a.EmployeeEmail == "" {
		return errors.New("employee is required")
	}
	if a.HrEmail == "" {
		return errors.New("HR is required")
	}
	if a.Status == "" {
		return errors.New("status is required")
	}
	return nil
}
