package models

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

var paymentStatusHumanName = map[PaymentStatus]string{
	PaymentStatusPending: "Pending",
	PaymentStatusPaid:    "Paid",
}

func (s PaymentStatus) ToHuman() string {
	if human, exist := paymentStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

const (
	PlanBasic    = "basic"
	PlanStandard = "standard"
	PlanPremium  = "premium"
)
