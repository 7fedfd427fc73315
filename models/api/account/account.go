package accountapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sajib4386/Asset-verse-Server/models"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type RegisterEmployee struct {
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

func (r RegisterEmployee) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	return nil
}

type RegisterHR struct {
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	CompanyName string     `json:"company_name"`
	CompanyLogo string     `json:"company_logo"`
	Package     string     `json:"package"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

func (r RegisterHR) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if strings.TrimSpace(r.CompanyName) == "" {
		return errors.New("company name is required")
	}
	if r.Package == "" {
		return errors.New("subscription package is required")
	}
	return nil
}

type UpdateProfile struct {
	FullName     string     `json:"full_name"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	ProfileImage string     `json:"profile_image"`
}

func (r UpdateProfile) Validate() error {
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("name is required")
	}
	return nil
}

type UserView struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`

	CompanyName      string `json:"company_name,omitempty"`
	CompanyLogo      string `json:"company_logo,omitempty"`
	PackageLimit     int    `json:"package_limit,omitempty"`
	CurrentEmployees int    `json:"current_employees,omitempty"`
	Subscription     string `json:"subscription,omitempty"`
}

func UserConvert(rec dbmodels.User) UserView {
	view := UserView{
		ID:           rec.ID,
		FullName:     rec.FullName,
		Email:        rec.Email,
		Role:         string(rec.Role),
		DateOfBirth:  rec.DateOfBirth,
		ProfileImage: rec.ProfileImage,
	}
	if rec.Role == models.HRRole {
		view.CompanyName = rec.CompanyName
		view.CompanyLogo = rec.CompanyLogo
		view.PackageLimit = rec.PackageLimit
		view.CurrentEmployees = rec.CurrentEmployees
		view.Subscription = rec.Subscription
	}
	return view
}
