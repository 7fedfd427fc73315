package models

type AffiliationStatus string

const (
	AffiliationStatusActive   AffiliationStatus = "ACTIVE"
	AffiliationStatusInactive AffiliationStatus = "INACTIVE"
)

type AssignmentStatus string

const (
	AssignmentStatusApproved AssignmentStatus = "APPROVED"
	AssignmentStatusReturned AssignmentStatus = "RETURNED"
)

// AffiliationAction describes what the approval did to the affiliation
// ledger, for the composite approval result.
type AffiliationAction string

const (
	AffiliationActionCreated   AffiliationAction = "CREATED"
	AffiliationActionRejoined  AffiliationAction = "REJOINED"
	AffiliationActionUnchanged AffiliationAction = "UNCHANGED"
)
