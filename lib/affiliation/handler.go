package affiliationhandler

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	accountstore "github.com/sajib4386/Asset-verse-Server/lib/account/store"
	affiliationstore "github.com/sajib4386/Asset-verse-Server/lib/affiliation/store"
	assetstore "github.com/sajib4386/Asset-verse-Server/lib/asset/store"
	assignmentstore "github.com/sajib4386/Asset-verse-Server/lib/assignment/store"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	affiliationapimodels "github.com/sajib4386/Asset-verse-Server/models/api/affiliation"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

// Provider is the affiliation ledger: the single source of truth for
// "is this employee currently part of this company". Capacity decisions
// count rows here; the account's CurrentEmployees column is only a cache.
type Provider interface {
	UpsertOnApprove(employeeEmail, employeeName, hrEmail, companyName string) (models.AffiliationAction, error)
	IsActive(employeeEmail, hrEmail string) (bool, error)
	HasCapacity(hrEmail string) (bool, error)
	ListActiveForHr(hrEmail string) ([]affiliationapimodels.AffiliationView, error)
	ListActiveForEmployee(employeeEmail string) ([]affiliationapimodels.AffiliationView, error)
	RemoveEmployee(hr models.CurrentUser, employeeEmail string) (affiliationapimodels.RemovalResult, error)
}

var Instance Provider

func NewHandler(gdb *gorm.DB) {
	Instance = NewHandlerWithDB(gdb)
}

func NewHandlerWithDB(gdb *gorm.DB) Provider {
	return impl{
		db:              gdb,
		store:           affiliationstore.NewInstance(gdb),
		accountStore:    accountstore.NewInstance(gdb),
		assetStore:      assetstore.NewInstance(gdb),
		assignmentStore: assignmentstore.NewInstance(gdb),
	}
}

type impl struct {
	db              *gorm.DB
	store           affiliationstore.Provider
	accountStore    accountstore.Provider
	assetStore      assetstore.Provider
	assignmentStore assignmentstore.Provider
}

// UpsertOnApprove keeps the one-record-per-pair invariant: the first
// approval inserts, a post-removal approval reactivates the same record,
// and an approval for an already-active employee touches nothing.
func (i impl) UpsertOnApprove(employeeEmail, employeeName, hrEmail, companyName string) (models.AffiliationAction, error) {
	rec, err := i.store.GetByPair(employeeEmail, hrEmail)
	if err != nil {
		return "", err
	}
	now := time.Now()
	switch {
	case rec == nil:
		_, err = i.store.Create(dbmodels.Affiliation{
			EmployeeEmail:   employeeEmail,
			EmployeeName:    employeeName,
			HrEmail:         hrEmail,
			CompanyName:     companyName,
			Status:          models.AffiliationStatusActive,
			AffiliationDate: now,
		})
		if err != nil {
			return "", err
		}
		if err = i.accountStore.AddHeadcount(hrEmail, 1); err != nil {
			return "", err
		}
		return models.AffiliationActionCreated, nil
	case rec.Status == models.AffiliationStatusInactive:
		err = i.store.Update(rec.ID, map[string]interface{}{
			"status":      models.AffiliationStatusActive,
			"rejoined_at": now,
		})
		if err != nil {
			return "", err
		}
		if err = i.accountStore.AddHeadcount(hrEmail, 1); err != nil {
			return "", err
		}
		return models.AffiliationActionRejoined, nil
	default:
		return models.AffiliationActionUnchanged, nil
	}
}

func (i impl) IsActive(employeeEmail, hrEmail string) (bool, error) {
	rec, err := i.store.GetByPair(employeeEmail, hrEmail)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.Status == models.AffiliationStatusActive, nil
}

func (i impl) HasCapacity(hrEmail string) (bool, error) {
	hr, err := i.accountStore.GetByEmail(hrEmail)
	if err != nil {
		return false, err
	}
	if hr == nil {
		return false, apperrors.New(apperrors.KindNotFound, "HR account not found")
	}
	activeCount, err := i.store.CountActive(hrEmail)
	if err != nil {
		return false, err
	}
	return activeCount < int64(hr.PackageLimit), nil
}

func (i impl) ListActiveForHr(hrEmail string) ([]affiliationapimodels.AffiliationView, error) {
	recList, err := i.store.ListActiveForHr(hrEmail)
	if err != nil {
		return nil, err
	}
	result := make([]affiliationapimodels.AffiliationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, affiliationapimodels.AffiliationConvert(rec))
	}
	return result, nil
}

func (i impl) ListActiveForEmployee(employeeEmail string) ([]affiliationapimodels.AffiliationView, error) {
	recList, err := i.store.ListActiveForEmployee(employeeEmail)
	if err != nil {
		return nil, err
	}
	result := make([]affiliationapimodels.AffiliationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, affiliationapimodels.AffiliationConvert(rec))
	}
	return result, nil
}

// RemoveEmployee reverses every live record of the employment in one
// transaction: assignments flip to returned, each distinct asset gets its
// units back, the affiliation goes inactive and the headcount cache drops
// by one. Guard failures mutate nothing.
func (i impl) RemoveEmployee(hr models.CurrentUser, employeeEmail string) (affiliationapimodels.RemovalResult, error) {
	logger := log.
		WithField("hr_email", hr.Email).
		WithField("employee", employeeEmail)

	result := affiliationapimodels.RemovalResult{
		EmployeeEmail: employeeEmail,
		UnitsRestored: map[string]int{},
	}
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := affiliationstore.NewInstance(tx)
		accountStore := accountstore.NewInstance(tx)
		assetStore := assetstore.NewInstance(tx)
		assignmentStore := assignmentstore.NewInstance(tx)

		rec, err := store.GetByPair(employeeEmail, hr.Email)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperrors.New(apperrors.KindNotFound, "employee is not affiliated with this company")
		}
		if rec.Status != models.AffiliationStatusActive {
			return apperrors.New(apperrors.KindNotFound, "employee is already removed")
		}

		assignments, err := assignmentStore.ListActive(employeeEmail, hr.Email)
		if err != nil {
			return err
		}
		now := time.Now()
		returned, err := assignmentStore.ReturnAllActive(employeeEmail, hr.Email, now)
		if err != nil {
			return errors.Wrap(err, "assignment return failed")
		}
		result.AssignmentsReturned = int(returned)

		// an employee may hold several units of the same asset; restore
		// per distinct asset with the unit count
		unitsByAsset := map[string]int{}
		for _, assignment := range assignments {
			unitsByAsset[assignment.AssetID]++
		}
		for assetID, units := range unitsByAsset {
			if err = assetStore.Increment(assetID, units); err != nil {
				return errors.Wrap(err, "inventory restore failed")
			}
			result.UnitsRestored[assetID] = units
		}

		err = store.Update(rec.ID, map[string]interface{}{
			"status":     models.AffiliationStatusInactive,
			"removed_at": now,
		})
		if err != nil {
			return err
		}
		if err = accountStore.AddHeadcount(hr.Email, -1); err != nil {
			return err
		}
		result.HeadcountDelta = -1
		result.RemovedAt = now
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == "" {
			logger.WithError(err).Error("employee removal failed")
		}
		return affiliationapimodels.RemovalResult{}, err
	}
	logger.
		WithField("assignments_returned", result.AssignmentsReturned).
		Info("employee removed")
	return result, nil
}
