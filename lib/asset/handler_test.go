package assethandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	assetstore "github.com/sajib4386/Asset-verse-Server/lib/asset/store"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	assetapimodels "github.com/sajib4386/Asset-verse-Server/models/api/asset"
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
		&dbmodels.Assignment{},
	))
	return gdb
}

func seedHR(t *testing.T, gdb *gorm.DB, email string) models.CurrentUser {
	t.Helper()
	rec := dbmodels.User{
		FullName:    "HR " + email,
		Email:       email,
		Role:        models.HRRole,
		IsActive:    true,
		CompanyName: "Acme",
	}
	require.NoError(t, gdb.Create(&rec).Error)
	return models.CurrentUser{ID: rec.ID, Email: rec.Email, Name: rec.FullName, Role: models.HRRole}
}

func TestCreate(t *testing.T) {
	t.Run("snapshots the company onto the asset", func(t *testing.T) {
		// GIVEN an HR account with a company profile
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io")

		// WHEN an asset is created
		id, err := handler.Create(hr, assetapimodels.AssetData{
			Name:     "Laptop",
			Type:     models.AssetTypeReturnable,
			Quantity: 4,
		})

		// THEN both quantities start equal and the company is denormalized
		require.NoError(t, err)
		view, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, 4, view.TotalQuantity)
		require.Equal(t, 4, view.AvailableQuantity)
		require.Equal(t, "Acme", view.CompanyName)
		require.Equal(t, hr.Email, view.HrEmail)
	})

	t.Run("unknown HR account is refused", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)

		_, err := handler.Create(models.CurrentUser{Email: "ghost@mail.io"}, assetapimodels.AssetData{
			Name:     "Laptop",
			Type:     models.AssetTypeReturnable,
			Quantity: 1,
		})
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("total change preserves the units currently out", func(t *testing.T) {
		// GIVEN an asset with 5 total and 2 units assigned out
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io")
		id, err := handler.Create(hr, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 5})
		require.NoError(t, err)
		require.NoError(t, gdb.Model(&dbmodels.Asset{}).
			Where("id = ?", id).
			Update("available_quantity", 3).Error)

		// WHEN the total is raised to 8
		err = handler.Update(hr, id, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 8})

		// THEN availability follows: 8 total minus the 2 out
		require.NoError(t, err)
		view, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, 8, view.TotalQuantity)
		require.Equal(t, 6, view.AvailableQuantity)
	})

	t.Run("total cannot drop below the units out", func(t *testing.T) {
		// GIVEN 5 total with 3 units out
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io")
		id, err := handler.Create(hr, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 5})
		require.NoError(t, err)
		require.NoError(t, gdb.Model(&dbmodels.Asset{}).
			Where("id = ?", id).
			Update("available_quantity", 2).Error)

		// WHEN the total is lowered past the outstanding units
		err = handler.Update(hr, id, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 2})

		// THEN the edit is refused and nothing changes
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
		view, err := handler.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, 5, view.TotalQuantity)
		require.Equal(t, 2, view.AvailableQuantity)
	})

	t.Run("asset of another HR reads as not found", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		owner := seedHR(t, gdb, "owner@acme.io")
		other := seedHR(t, gdb, "other@corp.io")
		id, err := handler.Create(owner, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 1})
		require.NoError(t, err)

		err = handler.Update(other, id, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 2})
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestDelete(t *testing.T) {
	t.Run("active assignment blocks deletion", func(t *testing.T) {
		// GIVEN an asset with an open assignment
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		hr := seedHR(t, gdb, "hr@acme.io")
		id, err := handler.Create(hr, assetapimodels.AssetData{Name: "Laptop", Type: models.AssetTypeReturnable, Quantity: 2})
		require.NoError(t, err)
		require.NoError(t, gdb.Create(&dbmodels.Assignment{
			AssetID:        id,
			AssetName:      "Laptop",
			AssetType:      models.AssetTypeReturnable,
			EmployeeEmail:  "dev@mail.io",
			EmployeeName:   "Dev",
			HrEmail:        hr.Email,
			Status:         models.AssignmentStatusApproved,
			AssignmentDate: time.Now(),
		}).Error)

		// WHEN deletion is attempted
		err = handler.Delete(hr, id)

		// THEN the asset survives until the assignment is returned
		require.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
		_, err = handler.GetByID(id)
		require.NoError(t, err)

		require.NoError(t, gdb.Model(&dbmodels.Assignment{}).
			Where("asset_id = ?", id).
			Update("status", models.AssignmentStatusReturned).Error)
		require.NoError(t, handler.Delete(hr, id))
		_, err = handler.GetByID(id)
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestStoreTryDecrement(t *testing.T) {
	t.Run("conditional decrement drains to zero and then refuses", func(t *testing.T) {
		// GIVEN two available units
		gdb := newTestDB(t)
		store := assetstore.NewInstance(gdb)
		rec := dbmodels.Asset{
			Name:              "Laptop",
			Type:              models.AssetTypeReturnable,
			TotalQuantity:     2,
			AvailableQuantity: 2,
			HrEmail:           "hr@acme.io",
			CompanyName:       "Acme",
		}
		require.NoError(t, gdb.Create(&rec).Error)

		// WHEN decrementing three times
		for n := 0; n < 2; n++ {
			ok, err := store.TryDecrement(rec.ID)
			require.NoError(t, err)
			require.True(t, ok)
		}
		ok, err := store.TryDecrement(rec.ID)

		// THEN the third attempt reports no row matched
		require.NoError(t, err)
		require.False(t, ok)
		refetched, err := store.GetByID(rec.ID)
		require.NoError(t, err)
		require.Equal(t, 0, refetched.AvailableQuantity)
	})
}

func TestBrowse(t *testing.T) {
	t.Run("browse spans companies and search matches name or company", func(t *testing.T) {
		// GIVEN assets of two different companies
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		require.NoError(t, gdb.Create(&dbmodels.Asset{
			Name: "Laptop", Type: models.AssetTypeReturnable,
			TotalQuantity: 2, AvailableQuantity: 2,
			HrEmail: "hr@acme.io", CompanyName: "Acme",
		}).Error)
		require.NoError(t, gdb.Create(&dbmodels.Asset{
			Name: "Chair", Type: models.AssetTypeReturnable,
			TotalQuantity: 1, AvailableQuantity: 0,
			HrEmail: "hr@globex.io", CompanyName: "Globex",
		}).Error)

		// WHEN browsing without a filter
		list, rowCount, err := handler.Browse(assetapimodels.AssetFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 2, rowCount)
		require.Len(t, list, 2)

		// THEN company search narrows it down
		list, rowCount, err = handler.Browse(assetapimodels.AssetFilter{Search: "globex"})
		require.NoError(t, err)
		require.EqualValues(t, 1, rowCount)
		require.Equal(t, "Chair", list[0].Name)

		// AND the in-stock filter hides the drained chair
		available := true
		list, _, err = handler.Browse(assetapimodels.AssetFilter{Available: &available})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Laptop", list[0].Name)
	})
}
