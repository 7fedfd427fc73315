package reconcileworker

import (
	"context"
	"time"

	accountstore "github.com/sajib4386/Asset-verse-Server/lib/account/store"
	affiliationstore "github.com/sajib4386/Asset-verse-Server/lib/affiliation/store"
	assetstore "github.com/sajib4386/Asset-verse-Server/lib/asset/store"
	assignmentstore "github.com/sajib4386/Asset-verse-Server/lib/assignment/store"
	baseworker "github.com/sajib4386/Asset-verse-Server/lib/utils/base-worker"
	"github.com/sajib4386/Asset-verse-Server/lib/utils/helpers"

	"gorm.io/gorm"
)

// StartWorker runs the periodic drift repair: the affiliation and assignment
// ledgers are authoritative, the per-HR headcount and per-asset availability
// columns are caches that this worker resyncs.
func StartWorker(ctx context.Context, gdb *gorm.DB, firstRunDelay, runInterval time.Duration) {
	i := &impl{
		BaseImpl:         *baseworker.NewInstance("ReconcileWorker", firstRunDelay, runInterval),
		accountStore:     accountstore.NewInstance(gdb),
		affiliationStore: affiliationstore.NewInstance(gdb),
		assetStore:       assetstore.NewInstance(gdb),
		assignmentStore:  assignmentstore.NewInstance(gdb),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	accountStore     accountstore.Provider
	affiliationStore affiliationstore.Provider
	assetStore       assetstore.Provider
	assignmentStore  assignmentstore.Provider
}

func (i impl) handle(ctx context.Context) {
	i.reconcileHeadcounts(ctx)
	i.reconcileAvailability(ctx)
}

func (i impl) reconcileHeadcounts(ctx context.Context) {
	logger := i.GetLogger()
	activeByHr, err := i.affiliationStore.ListByHrGrouped()
	if err != nil {
		logger.WithError(err).Error("active affiliation counts unavailable")
		return
	}
	hrs, err := i.accountStore.ListHRs()
	if err != nil {
		logger.WithError(err).Error("HR account list unavailable")
		return
	}
	for _, hr := range hrs {
		if helpers.IsContextDone(ctx) {
			break
		}
		want := int(activeByHr[hr.Email])
		if hr.CurrentEmployees == want {
			continue
		}
		logger.
			WithField("hr_email", hr.Email).
			WithField("stored", hr.CurrentEmployees).
			WithField("actual", want).
			Warn("headcount drift repaired")
		err = i.accountStore.SetHeadcount(hr.Email, want)
		if err != nil {
			logger.
				WithError(err).
				WithField("hr_email", hr.Email).
				Error("headcount repair failed")
			continue
		}
	}
}

func (i impl) reconcileAvailability(ctx context.Context) {
	logger := i.GetLogger()
	assets, err := i.assetStore.ListAll()
	if err != nil {
		logger.WithError(err).Error("asset list unavailable")
		return
	}
	for _, asset := range assets {
		if helpers.IsContextDone(ctx) {
			break
		}
		unitsOut, err := i.assignmentStore.CountApprovedByAsset(asset.ID)
		if err != nil {
			logger.
				WithError(err).
				WithField("asset_id", asset.ID).
				Error("approved assignment count unavailable")
			continue
		}
		want := asset.TotalQuantity - int(unitsOut)
		if want < 0 {
			logger.
				WithField("asset_id", asset.ID).
				WithField("quantity", asset.TotalQuantity).
				WithField("units_out", unitsOut).
				Error("more units assigned than exist, clamping availability to zero")
			want = 0
		}
		if asset.AvailableQuantity == want {
			continue
		}
		logger.
			WithField("asset_id", asset.ID).
			WithField("stored", asset.AvailableQuantity).
			WithField("actual", want).
			Warn("availability drift repaired")
		err = i.assetStore.SetAvailable(asset.ID, want)
		if err != nil {
			logger.
				WithError(err).
				WithField("asset_id", asset.ID).
				Error("availability repair failed")
			continue
		}
	}
}
