package dbmodels

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
)

type User struct {
	BaseModel
	Password     string          `gorm:"type:varchar(128)"`
	FullName     string          `gorm:"type:varchar(150)"`
	Email        string          `gorm:"type:varchar(255);uniqueIndex"`
	Role         models.UserRole `gorm:"type:varchar(50)"`
	DateOfBirth  *time.Time
	ProfileImage string `gorm:"type:varchar(500)"`
	IsActive     bool
	LastLogin    time.Time

	// HR-only columns. CurrentEmployees duplicates the count of active
	// affiliations; the affiliation ledger is authoritative and the
	// reconcile worker resyncs this cache.
	CompanyName      string `gorm:"type:varchar(255)"`
	CompanyLogo      string `gorm:"type:varchar(500)"`
	PackageLimit     int
	CurrentEmployees int
	Subscription     string `gorm:"type:varchar(50)"`
}

func (u User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.FullName == "" {
		return errors.New("name is required")
	}
	if u.Role != models.EmployeeRole && u.Role != models.HRRole {
		return errors.Errorf("unknown role: %v", u.Role)
	}
	if u.Role == models.HRRole && u.CompanyName == "" {
		return errors.New("company name is required")
	}
	return nil
}

func (u User) GetDisplayName() string {
	if u.Role == models.HRRole && u.CompanyName != "" {
		return fmt.Sprintf("%s (%s)", u.FullName, u.CompanyName)
	}
	return u.FullName
}
