package assetapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type AssetData struct {
	Name     string           `json:"name"`
	Type     models.AssetType `json:"type"`
	Image    string           `json:"image"`
	Quantity int              `json:"quantity"`
}

func (r AssetData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("asset name is required")
	}
	if !r.Type.IsValid() {
		return errors.Errorf("unknown asset type: %v", r.Type)
	}
	if r.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return nil
}

type AssetFilter struct {
	apimodels.Pagination
	Search    string           `json:"search"`
	Type      models.AssetType `json:"type"`
	Available *bool            `json:"available"`
	SortBy    string           `json:"sort_by"`   // quantity|name|created_at
	SortDesc  bool             `json:"sort_desc"`
}

func (r AssetFilter) Validate() error {
	switch r.SortBy {
	case "", "quantity", "name", "created_at":
	default:
		return errors.Errorf("unsupported sort field: %v", r.SortBy)
	}
	return nil
}

type AssetView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	Image             string    `json:"image,omitempty"`
	TotalQuantity     int       `json:"total_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	HrEmail           string    `json:"hr_email"`
	CompanyName       string    `json:"company_name"`
	CompanyLogo       string    `json:"company_logo,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func AssetConvert(rec dbmodels.Asset) AssetView {
	return AssetView{
		ID:                rec.ID,
		Name:              rec.Name,
		Type:              rec.Type.ToHuman(),
		Image:             rec.Image,
		TotalQuantity:     rec.TotalQuantity,
		AvailableQuantity: rec.AvailableQuantity,
		HrEmail:           rec.HrEmail,
		CompanyName:       rec.CompanyName,
		CompanyLogo:       rec.CompanyLogo,
		CreatedAt:         rec.CreatedAt,
	}
}
