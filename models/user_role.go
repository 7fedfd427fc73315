package models

type UserRole string

const (
	EmployeeRole UserRole = "EMPLOYEE"
	HRRole       UserRole = "HR"
)

var roleHumanName = map[UserRole]string{
	EmployeeRole: "Employee",
	HRRole:       "HR manager",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsHR() bool {
	return r == HRRole
}

// CurrentUser is the caller identity resolved from the bearer token.
type CurrentUser struct {
	ID    string
	Email string
	Name  string
	Role  UserRole
}
