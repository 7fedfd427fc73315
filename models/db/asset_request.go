package dbmodels

import (
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
)

// AssetRequest records an employee's ask for one unit of an asset.
// Asset and company fields are frozen at creation time; they are display
// snapshots and are never refreshed from the asset afterwards.
type AssetRequest struct {
	BaseModel
	AssetID   string           `gorm:"type:varchar(36);index:idx_asset_requester"`
	AssetName string           `gorm:"type:varchar(255)"`
	AssetType models.AssetType `gorm:"type:varchar(50)"`

	RequesterEmail string `gorm:"type:varchar(255);index:idx_asset_requester"`
	RequesterName  string `gorm:"type:varchar(150)"`
	HrEmail        string `gorm:"type:varchar(255);index"`
	CompanyName    string `gorm:"type:varchar(255)"`
	CompanyLogo    string `gorm:"type:varchar(500)"`

	Status        models.RequestStatus `gorm:"type:varchar(50);index"`
	Note          string               `gorm:"type:varchar(1000)"`
	RequestDate   time.Time
	ApprovalDate  *time.Time
	RejectionDate *time.Time
	ProcessedBy   *string `gorm:"type:varchar(255)"`
}

func (r AssetRequest) Validate() error {
	if r.AssetID == "" {
		return errors.New("asset is required")
	}
	if r.RequesterEmail == "" {
		return errors.New("requester is required")
	}
	if r.HrEmail == "" {
		return errors.New("target HR is required")
	}
	if r.Status == "" {
		return errors.New("status is required")
	}
	return nil
}
