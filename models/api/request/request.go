package requestapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type RequestCreateData struct {
	AssetID string `json:"asset_id"`
	Note    string `json:"note"`
}

func (r RequestCreateData) Validate() error {
	if strings.TrimSpace(r.AssetID) == "" {
		return errors.New("asset is required")
	}
	if len(r.Note) > 1000 {
		return errors.New("note is too long")
	}
	return nil
}

type RequestFilter struct {
	apimodels.Pagination
	Search string               `json:"search"` // matches requester or asset name
	Status models.RequestStatus `json:"status"`
	Type   models.AssetType     `json:"type"`
}

func (r RequestFilter) Validate() error {
	return nil
}

type RequestView struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"asset_id"`
	AssetName      string     `json:"asset_name"`
	AssetType      string     `json:"asset_type"`
	RequesterEmail string     `json:"requester_email"`
	RequesterName  string     `json:"requester_name"`
	HrEmail        string     `json:"hr_email"`
	CompanyName    string     `json:"company_name"`
	CompanyLogo    string     `json:"company_logo,omitempty"`
	Status         string     `json:"status"`
	Note           string     `json:"note,omitempty"`
	RequestDate    time.Time  `json:"request_date"`
	ApprovalDate   *time.Time `json:"approval_date,omitempty"`
	RejectionDate  *time.Time `json:"rejection_date,omitempty"`
	ProcessedBy    *string    `json:"processed_by,omitempty"`
}

func RequestConvert(rec dbmodels.AssetRequest) RequestView {
	return RequestView{
		ID:             rec.ID,
		AssetID:        rec.AssetID,
		AssetName:      rec.AssetName,
		AssetType:      rec.AssetType.ToHuman(),
		RequesterEmail: rec.RequesterEmail,
		RequesterName:  rec.RequesterName,
		HrEmail:        rec.HrEmail,
		CompanyName:    rec.CompanyName,
		CompanyLogo:    rec.CompanyLogo,
		Status:         string(rec.Status),
		Note:           rec.Note,
		RequestDate:    rec.RequestDate,
		ApprovalDate:   rec.ApprovalDate,
		RejectionDate:  rec.RejectionDate,
		ProcessedBy:    rec.ProcessedBy,
	}
}

// ApprovalResult reports what each approval sub-step did, so a partial
// failure is diagnosable from the response instead of an opaque flag.
type ApprovalResult struct {
	RequestID         string                   `json:"request_id"`
	AssetID           string                   `json:"asset_id"`
	AssetDelta        int                      `json:"asset_delta"`
	AssignmentID      string                   `json:"assignment_id"`
	AffiliationAction models.AffiliationAction `json:"affiliation_action"`
	HeadcountDelta    int                      `json:"headcount_delta"`
	ApprovedAt        time.Time                `json:"approved_at"`
}
