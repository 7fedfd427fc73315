package requesthandler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	affiliationhandler "github.com/sajib4386/Asset-verse-Server/lib/affiliation"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	requestapimodels "github.com/sajib4386/Asset-verse-Server/models/api/request"
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
		&dbmodels.AssetRequest{},
		&dbmodels.Affiliation{},
		&dbmodels.Assignment{},
		&dbmodels.SubscriptionPlan{},
		&dbmodels.SubscriptionPayment{},
	))
	require.NoError(t, gdb.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_request
		ON asset_requests (asset_id, requester_email)
		WHERE status = 'PENDING'`).Error)
	return gdb
}

func seedHR(t *testing.T, gdb *gorm.DB, email string, packageLimit int) models.CurrentUser {
	t.Helper()
	rec := dbmodels.User{
		FullName:     "HR " + email,
		Email:        email,
		Role:         models.HRRole,
		IsActive:     true,
		CompanyName:  "Acme",
		PackageLimit: packageLimit,
		Subscription: models.PlanBasic,
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return models.CurrentUser{ID: rec.ID, Email: rec.Email, Name: rec.FullName, Role: models.HRRole}
}

func seedEmployee(t *testing.T, gdb *gorm.DB, email string) models.CurrentUser {
	t.Helper()
	rec := dbmodels.User{
		FullName: "Employee " + email,
		Email:    email,
		Role:     models.EmployeeRole,
		IsActive: true,
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return models.CurrentUser{ID: rec.ID, Email: rec.Email, Name: rec.FullName, Role: models.EmployeeRole}
}

func seedAsset(t *testing.T, gdb *gorm.DB, hrEmail string, quantity int) dbmodels.Asset {
	t.Helper()
	rec := dbmodels.Asset{
		Name:              "Laptop",
		Type:              models.AssetTypeReturnable,
		TotalQuantity:     quantity,
		AvailableQuantity: quantity,
		HrEmail:           hrEmail,
		CompanyName:       "Acme",
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return rec
}

func assetAvailability(t *testing.T, gdb *gorm.DB, assetID string) int {
	t.Helper()
	var rec dbmodels.Asset
	require.NoError(t, gdb.First(&rec, "id = ?", assetID).Error)
	return rec.AvailableQuantity
}

func hrHeadcount(t *testing.T, gdb *gorm.DB, hrEmail string) int {
	t.Helper()
	var rec dbmodels.User
	require.NoError(t, gdb.First(&rec, "email = ?", hrEmail).Error)
	return rec.CurrentEmployees
}

func TestApprove(t *testing.T) {
	t.Run("happy path opens assignment, affiliation and reserves a unit", func(t *testing.T) {
		// GIVEN a pending request for an in-stock asset
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, hr.Email, 3)
		requestID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)

		// WHEN the HR approves it
		result, err := handler.Approve(hr, requestID)

		// THEN every sub-step is reported and applied
		require.NoError(t, err)
		require.Equal(t, requestID, result.RequestID)
		require.Equal(t, -1, result.AssetDelta)
		require.NotEmpty(t, result.AssignmentID)
		require.Equal(t, models.AffiliationActionCreated, result.AffiliationAction)
		require.Equal(t, 1, result.HeadcountDelta)
		require.Equal(t, 2, assetAvailability(t, gdb, asset.ID))
		require.Equal(t, 1, hrHeadcount(t, gdb, hr.Email))

		view, err := handler.GetByID(requestID)
		require.NoError(t, err)
		require.Equal(t, string(models.RequestStatusApproved), view.Status)
		require.NotNil(t, view.ApprovalDate)
	})

	t.Run("approvals drain stock to zero and the next one fails", func(t *testing.T) {
		// GIVEN an asset with two units and three requesters
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 10)
		asset := seedAsset(t, gdb, hr.Email, 2)
		requestIDs := make([]string, 0, 2)
		for n := 0; n < 2; n++ {
			employee := seedEmployee(t, gdb, fmt.Sprintf("dev%d@mail.io", n))
			id, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
			require.NoError(t, err)
			requestIDs = append(requestIDs, id)
		}

		// WHEN both are approved
		for _, id := range requestIDs {
			_, err := handler.Approve(hr, id)
			require.NoError(t, err)
		}

		// THEN the stock is empty and another request can't even be opened
		require.Equal(t, 0, assetAvailability(t, gdb, asset.ID))
		late := seedEmployee(t, gdb, "late@mail.io")
		_, err := handler.Create(late, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.True(t, apperrors.IsKind(err, apperrors.KindAssetUnavailable))
	})

	t.Run("capacity exceeded mutates nothing", func(t *testing.T) {
		// GIVEN an HR at their seat limit and a pending request from an outsider
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 1)
		asset := seedAsset(t, gdb, hr.Email, 5)
		first := seedEmployee(t, gdb, "first@mail.io")
		firstID, err := handler.Create(first, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)
		_, err = handler.Approve(hr, firstID)
		require.NoError(t, err)

		second := seedEmployee(t, gdb, "second@mail.io")
		secondID, err := handler.Create(second, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)

		// WHEN the approval would add headcount past the limit
		_, err = handler.Approve(hr, secondID)

		// THEN the gate fires before any write
		require.True(t, apperrors.IsKind(err, apperrors.KindCapacityExceeded))
		require.Equal(t, 4, assetAvailability(t, gdb, asset.ID))
		require.Equal(t, 1, hrHeadcount(t, gdb, hr.Email))
		view, err := handler.GetByID(secondID)
		require.NoError(t, err)
		require.Equal(t, string(models.RequestStatusPending), view.Status)
		var assignmentCount int64
		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).
			Where("employee_email = ?", second.Email).
			Count(&assignmentCount).Error)
		require.Zero(t, assignmentCount)
	})

	t.Run("second asset for an active employee skips capacity and headcount", func(t *testing.T) {
		// GIVEN an employee already holding one asset with the HR at the limit
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 1)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		laptop := seedAsset(t, gdb, hr.Email, 2)
		firstID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: laptop.ID})
		require.NoError(t, err)
		_, err = handler.Approve(hr, firstID)
		require.NoError(t, err)

		// WHEN the same employee gets a second unit approved
		secondID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: laptop.ID})
		require.NoError(t, err)
		result, err := handler.Approve(hr, secondID)

		// THEN the affiliation is untouched and the headcount stays at one
		require.NoError(t, err)
		require.Equal(t, models.AffiliationActionUnchanged, result.AffiliationAction)
		require.Zero(t, result.HeadcountDelta)
		require.Equal(t, 1, hrHeadcount(t, gdb, hr.Email))
		var affiliationCount int64
		require.NoError(t, gdb.Model(&dbmodels.Affiliation{}).
			Where("employee_email = ?", employee.Email).
			Count(&affiliationCount).Error)
		require.EqualValues(t, 1, affiliationCount)
	})

	t.Run("rejoin after removal reactivates the same affiliation record", func(t *testing.T) {
		// GIVEN an employee who was approved and then removed
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		affiliations := affiliationhandler.NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, hr.Email, 3)
		firstID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)
		_, err = handler.Approve(hr, firstID)
		require.NoError(t, err)
		_, err = affiliations.RemoveEmployee(hr, employee.Email)
		require.NoError(t, err)
		require.Equal(t, 0, hrHeadcount(t, gdb, hr.Email))

		// WHEN a new request is approved
		secondID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)
		result, err := handler.Approve(hr, secondID)

		// THEN the pair's single record flips back to active
		require.NoError(t, err)
		require.Equal(t, models.AffiliationActionRejoined, result.AffiliationAction)
		require.Equal(t, 1, hrHeadcount(t, gdb, hr.Email))
		var recs []dbmodels.Affiliation
		require.NoError(t, gdb.Where("employee_email = ?", employee.Email).Find(&recs).Error)
		require.Len(t, recs, 1)
		require.Equal(t, models.AffiliationStatusActive, recs[0].Status)
		require.NotNil(t, recs[0].RejoinedAt)
	})

	t.Run("terminal requests cannot be processed again", func(t *testing.T) {
		// GIVEN an approved request
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, hr.Email, 3)
		requestID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)
		_, err = handler.Approve(hr, requestID)
		require.NoError(t, err)

		// WHEN it is approved or rejected a second time
		_, approveErr := handler.Approve(hr, requestID)
		_, rejectErr := handler.Reject(hr, requestID)

		// THEN both attempts fail and the stock is not touched again
		require.True(t, apperrors.IsKind(approveErr, apperrors.KindInvalidState))
		require.True(t, apperrors.IsKind(rejectErr, apperrors.KindInvalidState))
		require.Equal(t, 2, assetAvailability(t, gdb, asset.ID))
	})

	t.Run("request of another HR is rejected with no mutation", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		owner := seedHR(t, gdb, "owner@acme.io", 5)
		intruder := seedHR(t, gdb, "other@corp.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, owner.Email, 3)
		requestID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)

		_, err = handler.Approve(intruder, requestID)

		require.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
		require.Equal(t, 3, assetAvailability(t, gdb, asset.ID))
	})
}

func TestCreate(t *testing.T) {
	t.Run("duplicate pending request is refused, a new one after approval is fine", func(t *testing.T) {
		// GIVEN an employee with a pending request
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, hr.Email, 3)
		firstID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)

		// WHEN the same employee asks for the same asset again
		_, err = handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.True(t, apperrors.IsKind(err, apperrors.KindDuplicateRequest))

		// THEN once the first one is settled a new request opens normally
		_, err = handler.Approve(hr, firstID)
		require.NoError(t, err)
		_, err = handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)
	})

	t.Run("out of stock asset cannot be requested", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, hr.Email, 1)
		require.NoError(t, gdb.Model(&dbmodels.Asset{}).
			Where("id = ?", asset.ID).
			Update("available_quantity", 0).Error)

		_, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.True(t, apperrors.IsKind(err, apperrors.KindAssetUnavailable))
	})

	t.Run("unknown asset yields not found", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		employee := seedEmployee(t, gdb, "dev@mail.io")

		_, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: "missing"})
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestReject(t *testing.T) {
	t.Run("rejection settles the request with no inventory side effects", func(t *testing.T) {
		// GIVEN a pending request
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io", 5)
		employee := seedEmployee(t, gdb, "dev@mail.io")
		asset := seedAsset(t, gdb, hr.Email, 3)
		requestID, err := handler.Create(employee, requestapimodels.RequestCreateData{AssetID: asset.ID})
		require.NoError(t, err)

		// WHEN the HR rejects it
		view, err := handler.Reject(hr, requestID)

		// THEN only the request record changes
		require.NoError(t, err)
		require.Equal(t, string(models.RequestStatusRejected), view.Status)
		require.NotNil(t, view.RejectionDate)
		require.Equal(t, 3, assetAvailability(t, gdb, asset.ID))
		require.Equal(t, 0, hrHeadcount(t, gdb, hr.Email))
		var assignmentCount int64
		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).Count(&assignmentCount).Error)
		require.Zero(t, assignmentCount)
	})
}
