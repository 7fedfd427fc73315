package accounthandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	accountstore "github.com/sajib4386/Asset-verse-Server/lib/account/store"
	affiliationstore "github.com/sajib4386/Asset-verse-Server/lib/affiliation/store"
	planstore "github.com/sajib4386/Asset-verse-Server/lib/billing/plan-store"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	authutils "github.com/sajib4386/Asset-verse-Server/lib/utils/auth-utils"
	"github.com/sajib4386/Asset-verse-Server/lib/utils/helpers"
	"github.com/sajib4386/Asset-verse-Server/models"
	accountapimodels "github.com/sajib4386/Asset-verse-Server/models/api/account"
	authapimodels "github.com/sajib4386/Asset-verse-Server/models/api/auth"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	RegisterEmployee(data accountapimodels.RegisterEmployee) (accountapimodels.UserView, error)
	RegisterHR(data accountapimodels.RegisterHR) (accountapimodels.UserView, error)
	Login(email, password string) (authapimodels.JWTResponse, error)
	RefreshToken(refreshToken string) (authapimodels.JWTResponse, error)
	GetByID(userID string) (accountapimodels.UserView, error)
	UpdateProfile(userID string, data accountapimodels.UpdateProfile) error
	ListEmployees(hrEmail string) ([]accountapimodels.UserView, error)
}

var Instance Provider

func NewHandler(gdb *gorm.DB) {
	Instance = NewHandlerWithDB(gdb)
}

func NewHandlerWithDB(gdb *gorm.DB) Provider {
	return impl{
		store:            accountstore.NewInstance(gdb),
		planStore:        planstore.NewInstance(gdb),
		affiliationStore: affiliationstore.NewInstance(gdb),
	}
}

type impl struct {
	store            accountstore.Provider
	planStore        planstore.Provider
	affiliationStore affiliationstore.Provider
}

func (i impl) RegisterEmployee(data accountapimodels.RegisterEmployee) (accountapimodels.UserView, error) {
	rec := dbmodels.User{
		Password:    authutils.GetMD5Hash(data.Password),
		FullName:    data.FullName,
		Email:       helpers.NormalizeEmail(data.Email),
		Role:        models.EmployeeRole,
		DateOfBirth: data.DateOfBirth,
		IsActive:    true,
	}
	return i.register(rec)
}

func (i impl) RegisterHR(data accountapimodels.RegisterHR) (accountapimodels.UserView, error) {
	plan, err := i.planStore.GetByName(data.Package)
	if err != nil {
		return accountapimodels.UserView{}, err
	}
	if plan == nil {
		return accountapimodels.UserView{}, apperrors.Errorf(apperrors.KindNotFound, "unknown subscription package: %v", data.Package)
	}
	rec := dbmodels.User{
		Password:     authutils.GetMD5Hash(data.Password),
		FullName:     data.FullName,
		Email:        helpers.NormalizeEmail(data.Email),
		Role:         models.HRRole,
		DateOfBirth:  data.DateOfBirth,
		IsActive:     true,
		CompanyName:  data.CompanyName,
		CompanyLogo:  data.CompanyLogo,
		PackageLimit: plan.MemberLimit,
		Subscription: plan.Name,
	}
	return i.register(rec)
}

func (i impl) register(rec dbmodels.User) (accountapimodels.UserView, error) {
	logger := log.WithField("email", rec.Email)
	exist, err := i.store.ExistByEmail(rec.Email)
	if err != nil {
		logger.WithError(err).Error("email uniqueness check failed")
		return accountapimodels.UserView{}, err
	}
	if exist {
		return accountapimodels.UserView{}, apperrors.New(apperrors.KindAlreadyExists, "an account with this email already exists")
	}
	id, err := i.store.Create(rec)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return accountapimodels.UserView{}, apperrors.New(apperrors.KindAlreadyExists, "an account with this email already exists")
		}
		logger.WithError(err).Error("account creation failed")
		return accountapimodels.UserView{}, err
	}
	rec.ID = id
	logger.
		WithField("rec_id", id).
		WithField("role", rec.Role).
		Info("account registered")
	return accountapimodels.UserConvert(rec), nil
}

func (i impl) Login(email, password string) (authapimodels.JWTResponse, error) {
	logger := log.WithField("email", email)
	rec, err := i.store.GetByEmail(helpers.NormalizeEmail(email))
	if err != nil {
		logger.WithError(err).Error("login lookup failed")
		return authapimodels.JWTResponse{}, err
	}
	if rec == nil || !rec.IsActive || rec.Password != authutils.GetMD5Hash(password) {
		return authapimodels.JWTResponse{}, apperrors.New(apperrors.KindUnauthorized, "invalid email or password")
	}
	resp, err := i.issueTokens(*rec)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if err = i.store.Update(rec.ID, map[string]interface{}{"last_login": time.Now()}); err != nil {
		logger.WithError(err).Warn("last login stamp failed")
	}
	return resp, nil
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, apperrors.New(apperrors.KindUnauthorized, "invalid refresh token")
	}
	rec, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if rec == nil || !rec.IsActive {
		return authapimodels.JWTResponse{}, apperrors.New(apperrors.KindUnauthorized, "account is not active")
	}
	return i.issueTokens(*rec)
}

func (i impl) issueTokens(rec dbmodels.User) (authapimodels.JWTResponse, error) {
	accessToken, err := authutils.GetToken(rec.ID, rec.FullName, rec.Email, rec.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "token signing failed")
	}
	refreshToken, err := authutils.GetRefreshToken(rec.ID, rec.FullName)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "refresh token signing failed")
	}
	return authapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         string(rec.Role),
	}, nil
}

func (i impl) GetByID(userID string) (accountapimodels.UserView, error) {
	rec, err := i.store.GetByID(userID)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("account lookup failed")
		return accountapimodels.UserView{}, err
	}
	if rec == nil {
		return accountapimodels.UserView{}, apperrors.New(apperrors.KindNotFound, "account not found")
	}
	return accountapimodels.UserConvert(*rec), nil
}

func (i impl) UpdateProfile(userID string, data accountapimodels.UpdateProfile) error {
	updMap := map[string]interface{}{
		"full_name":     data.FullName,
		"date_of_birth": data.DateOfBirth,
		"profile_image": data.ProfileImage,
	}
	err := i.store.Update(userID, updMap)
	if err != nil {
		log.
			WithField("user_id", userID).
			WithError(err).
			Error("profile update failed")
		return err
	}
	return nil
}

// ListEmployees resolves the HR's active affiliations to their accounts.
func (i impl) ListEmployees(hrEmail string) ([]accountapimodels.UserView, error) {
	affiliations, err := i.affiliationStore.ListActiveForHr(hrEmail)
	if err != nil {
		return nil, err
	}
	result := make([]accountapimodels.UserView, 0, len(affiliations))
	for _, affiliation := range affiliations {
		rec, err := i.store.GetByEmail(affiliation.EmployeeEmail)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue
		}
		result = append(result, accountapimodels.UserConvert(*rec))
	}
	return result, nil
}
