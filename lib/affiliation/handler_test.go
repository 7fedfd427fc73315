package affiliationhandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&dbmodels.User{},
		&dbmodels.Asset{},
		&dbmodels.Affiliation{},
		&dbmodels.Assignment{},
	))
	return gdb
}

func seedHR(t *testing.T, gdb *gorm.DB, email string, packageLimit, currentEmployees int) models.CurrentUser {
	t.Helper()
	rec := dbmodels.User{
		FullName:         "HR " + email,
		Email:            email,
		Role:             models.HRRole,
		IsActive:         true,
		CompanyName:      "Acme",
		PackageLimit:     packageLimit,
		CurrentEmployees: currentEmployees,
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return models.CurrentUser{ID: rec.ID, Email: rec.Email, Name: rec.FullName, Role: models.HRRole}
}

func seedAsset(t *testing.T, gdb *gorm.DB, hrEmail string, total, available int) dbmodels.Asset {
	t.Helper()
	rec := dbmodels.Asset{
		Name:              "Asset " + fmt.Sprint(total),
		Type:              models.AssetTypeReturnable,
		TotalQuantity:     total,
		AvailableQuantity: available,
		HrEmail:           hrEmail,
		CompanyName:       "Acme",
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return rec
}

func seedActiveAssignment(t *testing.T, gdb *gorm.DB, assetID, employeeEmail, hrEmail string) {
	t.Helper()
	rec := dbmodels.Assignment{
		AssetID:        assetID,
		AssetName:      "Asset",
		AssetType:      models.AssetTypeReturnable,
		EmployeeEmail:  employeeEmail,
		EmployeeName:   "Employee",
		HrEmail:        hrEmail,
		Status:         models.AssignmentStatusApproved,
		AssignmentDate: time.Now(),
	}
	require.NoError(t, gdb.Create(&rec).Error)
}

func TestRemoveEmployee(t *testing.T) {
	t.Run("restores units per asset, returns assignments and drops headcount", func(t *testing.T) {
		// GIVEN an active employee holding two laptop units and one monitor
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5, 1)
		laptop := seedAsset(t, gdb, hr.Email, 5, 3)
		monitor := seedAsset(t, gdb, hr.Email, 2, 1)
		require.NoError(t, gdb.Create(&dbmodels.Affiliation{
			EmployeeEmail:   "dev@mail.io",
			EmployeeName:    "Dev",
			HrEmail:         hr.Email,
			CompanyName:     "Acme",
			Status:          models.AffiliationStatusActive,
			AffiliationDate: time.Now(),
		}).Error)
		seedActiveAssignment(t, gdb, laptop.ID, "dev@mail.io", hr.Email)
		seedActiveAssignment(t, gdb, laptop.ID, "dev@mail.io", hr.Email)
		seedActiveAssignment(t, gdb, monitor.ID, "dev@mail.io", hr.Email)

		// WHEN the HR removes the employee
		result, err := handler.RemoveEmployee(hr, "dev@mail.io")

		// THEN every held unit goes back to its own asset
		require.NoError(t, err)
		require.Equal(t, 3, result.AssignmentsReturned)
		require.Equal(t, map[string]int{laptop.ID: 2, monitor.ID: 1}, result.UnitsRestored)
		require.Equal(t, -1, result.HeadcountDelta)

		var laptopRec, monitorRec dbmodels.Asset
		require.NoError(t, gdb.First(&laptopRec, "id = ?", laptop.ID).Error)
		require.NoError(t, gdb.First(&monitorRec, "id = ?", monitor.ID).Error)
		require.Equal(t, 5, laptopRec.AvailableQuantity)
		require.Equal(t, 2, monitorRec.AvailableQuantity)

		var hrRec dbmodels.User
		require.NoError(t, gdb.First(&hrRec, "email = ?", hr.Email).Error)
		require.Equal(t, 0, hrRec.CurrentEmployees)

		var affiliation dbmodels.Affiliation
		require.NoError(t, gdb.First(&affiliation, "employee_email = ?", "dev@mail.io").Error)
		require.Equal(t, models.AffiliationStatusInactive, affiliation.Status)
		require.NotNil(t, affiliation.RemovedAt)

		var openAssignments int64
		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).
			Where("employee_email = ? AND status = ?", "dev@mail.io", models.AssignmentStatusApproved).
			Count(&openAssignments).Error)
		require.Zero(t, openAssignments)
	})

	t.Run("unaffiliated employee fails with no mutation", func(t *testing.T) {
		// GIVEN an HR with no relation to the target email
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5, 2)

		// WHEN the removal is attempted
		_, err := handler.RemoveEmployee(hr, "stranger@mail.io")

		// THEN it fails and the headcount cache is untouched
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
		var hrRec dbmodels.User
		require.NoError(t, gdb.First(&hrRec, "email = ?", hr.Email).Error)
		require.Equal(t, 2, hrRec.CurrentEmployees)
	})

	t.Run("removing twice fails the second time", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5, 1)
		require.NoError(t, gdb.Create(&dbmodels.Affiliation{
			EmployeeEmail:   "dev@mail.io",
			EmployeeName:    "Dev",
			HrEmail:         hr.Email,
			CompanyName:     "Acme",
			Status:          models.AffiliationStatusActive,
			AffiliationDate: time.Now(),
		}).Error)

		_, err := handler.RemoveEmployee(hr, "dev@mail.io")
		require.NoError(t, err)

		_, err = handler.RemoveEmployee(hr, "dev@mail.io")
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestUpsertOnApprove(t *testing.T) {
	t.Run("create, remove and rejoin keep a single record per pair", func(t *testing.T) {
		// GIVEN a fresh employee/HR pair
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5, 0)

		// WHEN the pair goes through a full join/remove/rejoin cycle
		action, err := handler.UpsertOnApprove("dev@mail.io", "Dev", hr.Email, "Acme")
		require.NoError(t, err)
		require.Equal(t, models.AffiliationActionCreated, action)

		action, err = handler.UpsertOnApprove("dev@mail.io", "Dev", hr.Email, "Acme")
		require.NoError(t, err)
		require.Equal(t, models.AffiliationActionUnchanged, action)

		_, err = handler.RemoveEmployee(hr, "dev@mail.io")
		require.NoError(t, err)

		action, err = handler.UpsertOnApprove("dev@mail.io", "Dev", hr.Email, "Acme")
		require.NoError(t, err)
		require.Equal(t, models.AffiliationActionRejoined, action)

		// THEN the ledger still holds exactly one record for the pair
		var count int64
		require.NoError(t, gdb.Model(&dbmodels.Affiliation{}).
			Where("employee_email = ? AND hr_email = ?", "dev@mail.io", hr.Email).
			Count(&count).Error)
		require.EqualValues(t, 1, count)

		active, err := handler.IsActive("dev@mail.io", hr.Email)
		require.NoError(t, err)
		require.True(t, active)
	})
}

func TestHasCapacity(t *testing.T) {
	t.Run("capacity counts the ledger, not the cached column", func(t *testing.T) {
		// GIVEN a limit of one with a skewed cache and an empty ledger
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 1, 7)

		// WHEN capacity is checked
		ok, err := handler.HasCapacity(hr.Email)

		// THEN the authoritative count wins
		require.NoError(t, err)
		require.True(t, ok)

		_, err = handler.UpsertOnApprove("dev@mail.io", "Dev", hr.Email, "Acme")
		require.NoError(t, err)
		ok, err = handler.HasCapacity(hr.Email)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown HR yields not found", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)

		_, err := handler.HasCapacity("missing@mail.io")
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}
