package assignmentapimodels

import (
	"time"

	"github.com/sajib4386/Asset-verse-Server/models"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type AssignmentFilter struct {
	apimodels.Pagination
	Search string                  `json:"search"`
	Status models.AssignmentStatus `json:"status"`
	Type   models.AssetType        `json:"type"`
}

func (r AssignmentFilter) Validate() error {
	return nil
}

type AssignmentView struct {
	ID             string     `json:"id"`
	AssetID        string     `json:"asset_id"`
	AssetName      string     `json:"asset_name"`
	AssetType      string     `json:"asset_type"`
	AssetImage     string     `json:"asset_image,omitempty"`
	EmployeeEmail  string     `json:"employee_email"`
	EmployeeName   string     `json:"employee_name"`
	HrEmail        string     `json:"hr_email"`
	Status         string     `json:"status"`
	AssignmentDate time.Time  `json:"assignment_date"`
	ReturnDate     *time.Time `json:"return_date,omitempty"`
}

func AssignmentConvert(rec dbmodels.Assignment) AssignmentView {
	return AssignmentView{
		ID:             rec.ID,
		AssetID:        rec.AssetID,
		AssetName:      rec.AssetName,
		AssetType:      rec.AssetType.ToHuman(),
		AssetImage:     rec.AssetImage,
		EmployeeEmail:  rec.EmployeeEmail,
		EmployeeName:   rec.EmployeeName,
		HrEmail:        rec.HrEmail,
		Status:         string(rec.Status),
		AssignmentDate: rec.AssignmentDate,
		ReturnDate:     rec.ReturnDate,
	}
}
