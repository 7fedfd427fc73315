package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
)

// Affiliation is the employment relation between an employee and an HR
// account. At most one row exists per (employee, hr) pair over the record's
// whole history: removal flips the status to inactive, a later approval
// flips it back and stamps RejoinedAt. The unique index is the guard.
type Affiliation struct {
	BaseModel
	EmployeeEmail string `gorm:"type:varchar(255);uniqueIndex:idx_employee_hr"`
	EmployeeName  string `gorm:"type:varchar(150)"`
	HrEmail       string `gorm:"type:varchar(255);uniqueIndex:idx_employee_hr"`
	CompanyName   string `gorm:"type:varchar(255)"`

	Status          models.AffiliationStatus `gorm:"type:varchar(50);index"`
	AffiliationDate time.Time
	RejoinedAt      *time.Time
	RemovedAt       *time.Time
}

func (a Affiliation) Validate() error {
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
