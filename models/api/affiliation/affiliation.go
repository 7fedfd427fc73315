package affiliationapimodels

import (
	"time"

	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type AffiliationView struct {
	ID              string     `json:"id"`
	EmployeeEmail   string     `json:"employee_email"`
	EmployeeName    string     `json:"employee_name"`
	HrEmail         string     `json:"hr_email"`
	CompanyName     string     `json:"company_name"`
	Status          string     `json:"status"`
	AffiliationDate time.Time  `json:"affiliation_date"`
	RejoinedAt      *time.Time `json:"rejoined_at,omitempty"`
	RemovedAt       *time.Time `json:"removed_at,omitempty"`
}

func AffiliationConvert(rec dbmodels.Affiliation) AffiliationView {
	return AffiliationView{
		ID:              rec.ID,
		EmployeeEmail:   rec.EmployeeEmail,
		EmployeeName:    rec.EmployeeName,
		HrEmail:         rec.HrEmail,
		CompanyName:     rec.CompanyName,
		Status:          string(rec.Status),
		AffiliationDate: rec.AffiliationDate,
		RejoinedAt:      rec.RejoinedAt,
		RemovedAt:       rec.RemovedAt,
	}
}

// RemovalResult reports every record the employee removal touched.
type RemovalResult struct {
	EmployeeEmail       string         `json:"employee_email"`
	AssignmentsReturned int            `json:"assignments_returned"`
	UnitsRestored       map[string]int `json:"units_restored"` // asset id -> units
	HeadcountDelta      int            `json:"headcount_delta"`
	RemovedAt           time.Time      `json:"removed_at"`
}
