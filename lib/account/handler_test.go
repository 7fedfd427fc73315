package accounthandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sajib4386/Asset-verse-Server/config"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	accountapimodels "github.com/sajib4386/Asset-verse-Server/models/api/account"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if config.Conf == nil {
		conf := new(config.Configuration)
		conf.Auth.JWTSecret = "test-secret"
		conf.Auth.JWTExpireInSec = 3600
		conf.Auth.JWTRefreshExpireInSec = 86400
		config.Conf = conf
	}
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&dbmodels.User{},
		&dbmodels.Affiliation{},
		&dbmodels.SubscriptionPlan{},
	))
	return gdb
}

func seedPlan(t *testing.T, gdb *gorm.DB, name string, memberLimit int) {
	t.Helper()
	require.NoError(t, gdb.Create(&dbmodels.SubscriptionPlan{
		Name:        name,
		MemberLimit: memberLimit,
		Price:       decimal.RequireFromString("19.00"),
		Currency:    "USD",
	}).Error)
}

func TestRegister(t *testing.T) {
	t.Run("HR registration picks the limit from the chosen package", func(t *testing.T) {
		// GIVEN a seeded plan catalog
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		seedPlan(t, gdb, models.PlanBasic, 5)

		// WHEN an HR signs up on the basic package
		view, err := handler.RegisterHR(accountapimodels.RegisterHR{
			FullName:    "Jane Admin",
			Email:       "HR@Acme.io",
			Password:    "secret1",
			CompanyName: "Acme",
			Package:     models.PlanBasic,
		})

		// THEN the account carries the plan's seat limit and a lowercased email
		require.NoError(t, err)
		require.Equal(t, "hr@acme.io", view.Email)
		var rec dbmodels.User
		require.NoError(t, gdb.First(&rec, "email = ?", "hr@acme.io").Error)
		require.Equal(t, 5, rec.PackageLimit)
		require.Equal(t, models.PlanBasic, rec.Subscription)
		require.Equal(t, models.HRRole, rec.Role)
	})

	t.Run("duplicate email is refused", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		_, err := handler.RegisterEmployee(accountapimodels.RegisterEmployee{
			FullName: "Dev One",
			Email:    "dev@mail.io",
			Password: "secret1",
		})
		require.NoError(t, err)

		_, err = handler.RegisterEmployee(accountapimodels.RegisterEmployee{
			FullName: "Dev Two",
			Email:    "Dev@Mail.io",
			Password: "secret2",
		})
		require.True(t, apperrors.IsKind(err, apperrors.KindAlreadyExists))
	})

	t.Run("unknown package is refused", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)

		_, err := handler.RegisterHR(accountapimodels.RegisterHR{
			FullName:    "Jane Admin",
			Email:       "hr@acme.io",
			Password:    "secret1",
			CompanyName: "Acme",
			Package:     "platinum",
		})
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials yield a token pair and stamp the login", func(t *testing.T) {
		// GIVEN a registered employee
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		_, err := handler.RegisterEmployee(accountapimodels.RegisterEmployee{
			FullName: "Dev",
			Email:    "dev@mail.io",
			Password: "secret1",
		})
		require.NoError(t, err)

		// WHEN they log in
		resp, err := handler.Login("dev@mail.io", "secret1")

		// THEN both tokens are present and last_login moved
		require.NoError(t, err)
		require.NotEmpty(t, resp.AccessToken)
		require.NotEmpty(t, resp.RefreshToken)
		require.Equal(t, string(models.EmployeeRole), resp.Role)
		var rec dbmodels.User
		require.NoError(t, gdb.First(&rec, "email = ?", "dev@mail.io").Error)
		require.WithinDuration(t, time.Now(), rec.LastLogin, time.Minute)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		_, err := handler.RegisterEmployee(accountapimodels.RegisterEmployee{
			FullName: "Dev",
			Email:    "dev@mail.io",
			Password: "secret1",
		})
		require.NoError(t, err)

		_, err = handler.Login("dev@mail.io", "wrong")
		require.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		_, err := handler.RegisterEmployee(accountapimodels.RegisterEmployee{
			FullName: "Dev",
			Email:    "dev@mail.io",
			Password: "secret1",
		})
		require.NoError(t, err)
		require.NoError(t, gdb.Model(&dbmodels.User{}).
			Where("email = ?", "dev@mail.io").
			Update("is_active", false).Error)

		_, err = handler.Login("dev@mail.io", "secret1")
		require.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})
}

func TestRefreshToken(t *testing.T) {
	t.Run("a fresh pair comes back for a valid refresh token", func(t *testing.T) {
		// GIVEN a logged-in employee
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		_, err := handler.RegisterEmployee(accountapimodels.RegisterEmployee{
			FullName: "Dev",
			Email:    "dev@mail.io",
			Password: "secret1",
		})
		require.NoError(t, err)
		resp, err := handler.Login("dev@mail.io", "secret1")
		require.NoError(t, err)

		// WHEN the refresh token is exchanged
		renewed, err := handler.RefreshToken(resp.RefreshToken)

		// THEN a new access token is issued
		require.NoError(t, err)
		require.NotEmpty(t, renewed.AccessToken)
	})

	t.Run("garbage refresh token is unauthorized", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)

		_, err := handler.RefreshToken("not-a-token")
		require.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
	})
}

func TestListEmployees(t *testing.T) {
	t.Run("only actively affiliated accounts come back", func(t *testing.T) {
		// GIVEN one active and one removed affiliation
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		for _, email := range []string{"a@mail.io", "b@mail.io"} {
			_, err := handler.RegisterEmployee(accountapimodels.RegisterEmployee{
				FullName: "Dev " + email,
				Email:    email,
				Password: "secret1",
			})
			require.NoError(t, err)
		}
		require.NoError(t, gdb.Create(&dbmodels.Affiliation{
			EmployeeEmail: "a@mail.io", EmployeeName: "Dev a",
			HrEmail: "hr@acme.io", CompanyName: "Acme",
			Status: models.AffiliationStatusActive, AffiliationDate: time.Now(),
		}).Error)
		require.NoError(t, gdb.Create(&dbmodels.Affiliation{
			EmployeeEmail: "b@mail.io", EmployeeName: "Dev b",
			HrEmail: "hr@acme.io", CompanyName: "Acme",
			Status: models.AffiliationStatusInactive, AffiliationDate: time.Now(),
		}).Error)

		// WHEN the staff list is resolved
		list, err := handler.ListEmployees("hr@acme.io")

		// THEN the removed employee is absent
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "a@mail.io", list[0].Email)
	})
}
