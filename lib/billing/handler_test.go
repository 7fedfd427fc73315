package billinghandler

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	billingapimodels "github.com/sajib4386/Asset-verse-Server/models/api/billing"
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
		&dbmodels.SubscriptionPlan{},
		&dbmodels.SubscriptionPayment{},
	))
	return gdb
}

func seedPlan(t *testing.T, gdb *gorm.DB, name string, memberLimit int, price string) {
	t.Helper()
	require.NoError(t, gdb.Create(&dbmodels.SubscriptionPlan{
		Name:        name,
		MemberLimit: memberLimit,
		Price:       decimal.RequireFromString(price),
		Currency:    "USD",
	}).Error)
}

func seedHR(t *testing.T, gdb *gorm.DB, email string, packageLimit int) {
	t.Helper()
	require.NoError(t, gdb.Create(&dbmodels.User{
		FullName:     "HR " + email,
		Email:        email,
		Role:         models.HRRole,
		IsActive:     true,
		CompanyName:  "Acme",
		PackageLimit: packageLimit,
		Subscription: models.PlanBasic,
	}).Error)
}

func packageLimitOf(t *testing.T, gdb *gorm.DB, email string) int {
	t.Helper()
	var rec dbmodels.User
	require.NoError(t, gdb.First(&rec, "email = ?", email).Error)
	return rec.PackageLimit
}

func TestCreateCheckout(t *testing.T) {
	t.Run("reuses a pending payment for the same plan", func(t *testing.T) {
		// GIVEN an HR who already opened a checkout for the standard plan
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		seedPlan(t, gdb, models.PlanStandard, 10, "49.00")
		seedHR(t, gdb, "hr@acme.io", 5)
		first, err := handler.CreateCheckout("hr@acme.io", billingapimodels.CheckoutRequest{Plan: models.PlanStandard})
		require.NoError(t, err)

		// WHEN the checkout is opened again before paying
		second, err := handler.CreateCheckout("hr@acme.io", billingapimodels.CheckoutRequest{Plan: models.PlanStandard})

		// THEN the same pending payment comes back instead of a new row
		require.NoError(t, err)
		require.Equal(t, first.PaymentID, second.PaymentID)
		var count int64
		require.NoError(t, gdb.Model(&dbmodels.SubscriptionPayment{}).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})

	t.Run("unknown plan yields not found", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		seedHR(t, gdb, "hr@acme.io", 5)

		_, err := handler.CreateCheckout("hr@acme.io", billingapimodels.CheckoutRequest{Plan: "platinum"})
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Run("settlement raises the package limit once", func(t *testing.T) {
		// GIVEN a pending checkout for a 10-seat plan
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		seedPlan(t, gdb, models.PlanStandard, 10, "49.00")
		seedHR(t, gdb, "hr@acme.io", 5)
		checkout, err := handler.CreateCheckout("hr@acme.io", billingapimodels.CheckoutRequest{Plan: models.PlanStandard})
		require.NoError(t, err)

		// WHEN the provider reports completion
		view, err := handler.ConfirmPayment(billingapimodels.PaymentWebhook{
			PaymentID:    checkout.PaymentID,
			ProviderTxID: "tx-001",
			Provider:     "stripe",
		})

		// THEN the payment is paid and the seat limit grew by the plan size
		require.NoError(t, err)
		require.Equal(t, string(models.PaymentStatusPaid), view.Status)
		require.NotNil(t, view.PaidAt)
		require.Equal(t, 15, packageLimitOf(t, gdb, "hr@acme.io"))

		subscription, err := handler.GetSubscription("hr@acme.io")
		require.NoError(t, err)
		require.Equal(t, models.PlanStandard, subscription.Plan)
	})

	t.Run("replayed transaction id is acknowledged without a second raise", func(t *testing.T) {
		// GIVEN a settled payment
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)
		seedPlan(t, gdb, models.PlanPremium, 25, "99.00")
		seedHR(t, gdb, "hr@acme.io", 5)
		checkout, err := handler.CreateCheckout("hr@acme.io", billingapimodels.CheckoutRequest{Plan: models.PlanPremium})
		require.NoError(t, err)
		webhook := billingapimodels.PaymentWebhook{
			PaymentID:    checkout.PaymentID,
			ProviderTxID: "tx-replay",
			Provider:     "stripe",
		}
		_, err = handler.ConfirmPayment(webhook)
		require.NoError(t, err)

		// WHEN the provider delivers the same webhook again
		view, err := handler.ConfirmPayment(webhook)

		// THEN it is acknowledged and the limit did not move twice
		require.NoError(t, err)
		require.Equal(t, string(models.PaymentStatusPaid), view.Status)
		require.Equal(t, 30, packageLimitOf(t, gdb, "hr@acme.io"))
	})

	t.Run("unknown payment id yields not found", func(t *testing.T) {
		gdb := newTestDB(t)
		handler := NewHandlerWithDB(gdb)

		_, err := handler.ConfirmPayment(billingapimodels.PaymentWebhook{
			PaymentID:    "missing",
			ProviderTxID: "tx-404",
		})
		require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
	})
}
