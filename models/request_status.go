package models

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

var requestStatusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "Pending",
	RequestStatusApproved: "Approved",
	RequestStatusRejected: "Rejected",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := requestStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsTerminal reports whether the request left the pending state.
// Approved and rejected requests never transition again.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

func (s RequestStatus) AllowProcess() bool {
	return s == RequestStatusPending
}
