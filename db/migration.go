package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

func AutoMigrateDB() error {
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "migration failed for User")
	}
	if err := DB.AutoMigrate(&dbmodels.Asset{}); err != nil {
		return errors.Wrap(err, "migration failed for Asset")
	}
	if err := DB.AutoMigrate(&dbmodels.AssetRequest{}); err != nil {
		return errors.Wrap(err, "migration failed for AssetRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.Affiliation{}); err != nil {
		return errors.Wrap(err, "migration failed for Affiliation")
	}
	if err := DB.AutoMigrate(&dbmodels.Assignment{}); err != nil {
		return errors.Wrap(err, "migration failed for Assignment")
	}
	if err := DB.AutoMigrate(&dbmodels.SubscriptionPlan{}); err != nil {
		return errors.Wrap(err, "migration failed for SubscriptionPlan")
	}
	if err := DB.AutoMigrate(&dbmodels.SubscriptionPayment{}); err != nil {
		return errors.Wrap(err, "migration failed for SubscriptionPayment")
	}

	// One pending request per (asset, requester). The in-handler duplicate
	// check is only a fast path; this index is the guard that holds under
	// concurrent inserts.
	err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_pending_request
		ON asset_requests (asset_id, requester_email)
		WHERE status = 'PENDING'`).Error
	if err != nil {
		return errors.Wrap(err, "migration failed for pending request index")
	}
	log.Info("migrations finished")
	return nil
}
