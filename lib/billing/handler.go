package billinghandler

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	accountstore "github.com/sajib4386/Asset-verse-Server/lib/account/store"
	paymentstore "github.com/sajib4386/Asset-verse-Server/lib/billing/payment-store"
	planstore "github.com/sajib4386/Asset-verse-Server/lib/billing/plan-store"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	billingapimodels "github.com/sajib4386/Asset-verse-Server/models/api/billing"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	GetPlans() ([]billingapimodels.PlanView, error)
	GetSubscription(hrEmail string) (billingapimodels.SubscriptionView, error)
	CreateCheckout(hrEmail string, data billingapimodels.CheckoutRequest) (billingapimodels.CheckoutResponse, error)
	ConfirmPayment(data billingapimodels.PaymentWebhook) (billingapimodels.PaymentView, error)
	ListPayments(hrEmail string) ([]billingapimodels.PaymentView, error)
}

var Instance Provider

func NewHandler(gdb *gorm.DB) {
	Instance = NewHandlerWithDB(gdb)
}

func NewHandlerWithDB(gdb *gorm.DB) Provider {
	return impl{
		db:           gdb,
		planStore:    planstore.NewInstance(gdb),
		paymentStore: paymentstore.NewInstance(gdb),
		accountStore: accountstore.NewInstance(gdb),
	}
}

type impl struct {
	db           *gorm.DB
	planStore    planstore.Provider
	paymentStore paymentstore.Provider
	accountStore accountstore.Provider
}

func (i impl) GetPlans() ([]billingapimodels.PlanView, error) {
	plans, err := i.planStore.List()
	if err != nil {
		return nil, err
	}
	result := make([]billingapimodels.PlanView, 0, len(plans))
	for _, plan := range plans {
		result = append(result, billingapimodels.PlanConvert(plan))
	}
	return result, nil
}

func (i impl) GetSubscription(hrEmail string) (billingapimodels.SubscriptionView, error) {
	rec, err := i.accountStore.GetByEmail(hrEmail)
	if err != nil {
		return billingapimodels.SubscriptionView{}, err
	}
	if rec == nil || rec.Role != models.HRRole {
		return billingapimodels.SubscriptionView{}, apperrors.New(apperrors.KindNotFound, "HR account not found")
	}
	return billingapimodels.SubscriptionView{
		Plan:             rec.Subscription,
		PackageLimit:     rec.PackageLimit,
		CurrentEmployees: rec.CurrentEmployees,
	}, nil
}

// CreateCheckout opens a pending payment for the plan. An existing pending
// payment for the same plan is reused so abandoned checkouts do not pile up.
func (i impl) CreateCheckout(hrEmail string, data billingapimodels.CheckoutRequest) (billingapimodels.CheckoutResponse, error) {
	logger := log.
		WithField("hr_email", hrEmail).
		WithField("plan", data.Plan)

	plan, err := i.planStore.GetByName(data.Plan)
	if err != nil {
		return billingapimodels.CheckoutResponse{}, err
	}
	if plan == nil {
		return billingapimodels.CheckoutResponse{}, apperrors.Errorf(apperrors.KindNotFound, "unknown subscription plan: %v", data.Plan)
	}

	pending, err := i.paymentStore.ListPending(hrEmail)
	if err != nil {
		return billingapimodels.CheckoutResponse{}, err
	}
	for _, rec := range pending {
		if rec.PlanName == plan.Name {
			logger.
				WithField("payment_id", rec.ID).
				Info("reusing pending checkout")
			return billingapimodels.CheckoutResponse{
				PaymentID: rec.ID,
				Amount:    rec.Amount,
				Currency:  rec.Currency,
			}, nil
		}
	}

	id, err := i.paymentStore.Create(dbmodels.SubscriptionPayment{
		HrEmail:  hrEmail,
		PlanName: plan.Name,
		Amount:   plan.Price,
		Currency: plan.Currency,
		Status:   models.PaymentStatusPending,
	})
	if err != nil {
		logger.WithError(err).Error("checkout creation failed")
		return billingapimodels.CheckoutResponse{}, err
	}
	logger.
		WithField("payment_id", id).
		Info("checkout created")
	return billingapimodels.CheckoutResponse{
		PaymentID: id,
		Amount:    plan.Price,
		Currency:  plan.Currency,
	}, nil
}

// ConfirmPayment is the provider completion callback. A transaction id seen
// before is acknowledged with the recorded payment and applies nothing.
func (i impl) ConfirmPayment(data billingapimodels.PaymentWebhook) (billingapimodels.PaymentView, error) {
	logger := log.
		WithField("payment_id", data.PaymentID).
		WithField("provider_tx_id", data.ProviderTxID)

	dup, err := i.paymentStore.GetByProviderTxID(data.ProviderTxID)
	if err != nil {
		return billingapimodels.PaymentView{}, err
	}
	if dup != nil {
		logger.Info("duplicate payment webhook acknowledged")
		return billingapimodels.PaymentConvert(*dup), nil
	}

	rec, err := i.paymentStore.GetByID(data.PaymentID)
	if err != nil {
		return billingapimodels.PaymentView{}, err
	}
	if rec == nil {
		return billingapimodels.PaymentView{}, apperrors.New(apperrors.KindNotFound, "payment not found")
	}
	if rec.Status == models.PaymentStatusPaid {
		logger.Info("payment already settled")
		return billingapimodels.PaymentConvert(*rec), nil
	}
	if rec.Status != models.PaymentStatusPending {
		return billingapimodels.PaymentView{}, apperrors.Errorf(apperrors.KindInvalidState, "payment is %v and cannot be settled", rec.Status)
	}

	plan, err := i.planStore.GetByName(rec.PlanName)
	if err != nil {
		return billingapimodels.PaymentView{}, err
	}
	if plan == nil {
		return billingapimodels.PaymentView{}, apperrors.Errorf(apperrors.KindNotFound, "unknown subscription plan: %v", rec.PlanName)
	}

	hr, err := i.accountStore.GetByEmail(rec.HrEmail)
	if err != nil {
		return billingapimodels.PaymentView{}, err
	}
	if hr == nil {
		return billingapimodels.PaymentView{}, apperrors.Errorf(apperrors.KindNotFound, "HR account not found: %v", rec.HrEmail)
	}

	paidAt := time.Now()
	if data.PaidAt != nil {
		paidAt = *data.PaidAt
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		txPaymentStore := paymentstore.NewInstance(tx)
		txAccountStore := accountstore.NewInstance(tx)

		updMap := map[string]interface{}{
			"status":         models.PaymentStatusPaid,
			"provider":       data.Provider,
			"provider_tx_id": data.ProviderTxID,
			"paid_at":        paidAt,
			"meta":           data.Meta,
		}
		updated, err := txPaymentStore.Update(rec.ID, models.PaymentStatusPending, updMap)
		if err != nil {
			return err
		}
		if !updated {
			// lost the race to a concurrent webhook delivery
			return apperrors.New(apperrors.KindInvalidState, "payment already settled")
		}
		err = txAccountStore.AddPackageLimit(rec.HrEmail, plan.MemberLimit)
		if err != nil {
			return err
		}
		return txAccountStore.Update(hr.ID, map[string]interface{}{"subscription": plan.Name})
	})
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindInvalidState) {
			settled, getErr := i.paymentStore.GetByID(rec.ID)
			if getErr == nil && settled != nil {
				logger.Info("concurrent payment webhook acknowledged")
				return billingapimodels.PaymentConvert(*settled), nil
			}
		}
		logger.WithError(err).Error("payment settlement failed")
		return billingapimodels.PaymentView{}, err
	}

	settled, err := i.paymentStore.GetByID(rec.ID)
	if err != nil {
		return billingapimodels.PaymentView{}, err
	}
	logger.
		WithField("hr_email", rec.HrEmail).
		WithField("limit_delta", plan.MemberLimit).
		Info("payment settled")
	return billingapimodels.PaymentConvert(*settled), nil
}

func (i impl) ListPayments(hrEmail string) ([]billingapimodels.PaymentView, error) {
	list, err := i.paymentStore.ListForHr(hrEmail)
	if err != nil {
		return nil, err
	}
	result := make([]billingapimodels.PaymentView, 0, len(list))
	for _, rec := range list {
		result = append(result, billingapimodels.PaymentConvert(rec))
	}
	return result, nil
}
