package dbmodels

import (
	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
)

// Asset is an inventory position owned by one HR account.
// Invariant: 0 <= AvailableQuantity <= TotalQuantity.
type Asset struct {
	BaseModel
	Name              string           `gorm:"type:varchar(255);index"`
	Type              models.AssetType `gorm:"type:varchar(50)"`
	Image             string           `gorm:"type:varchar(500)"`
	TotalQuantity     int
	AvailableQuantity int
	HrEmail           string `gorm:"type:varchar(255);index"`
	CompanyName       string `gorm:"type:varchar(255)"`
	CompanyLogo       string `gorm:"type:varchar(500)"`
}

func (a Asset) Validate() error {
	if a.Name == "" {
		return errors.New("asset name is required")
	}
	if !a.Type.IsValid() {
		return errors.Errorf("unknown asset type: %v", a.Type)
	}
	if a.HrEmail == "" {
		return errors.New("owning HR is required")
	}
	if a.TotalQuantity < 0 {
		return errors.New("total quantity must not be negative")
	}
	if a.AvailableQuantity < 0 || a.AvailableQuantity > a.TotalQuantity {
		return errors.New("available quantity out of bounds")
	}
	return nil
}
