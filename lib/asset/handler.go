package assethandler

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	accountstore "github.com/sajib4386/Asset-verse-Server/lib/account/store"
	assetstore "github.com/sajib4386/Asset-verse-Server/lib/asset/store"
	assignmentstore "github.com/sajib4386/Asset-verse-Server/lib/assignment/store"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	assetapimodels "github.com/sajib4386/Asset-verse-Server/models/api/asset"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(hr models.CurrentUser, data assetapimodels.AssetData) (id string, err error)
	GetByID(id string) (assetapimodels.AssetView, error)
	Update(hr models.CurrentUser, id string, data assetapimodels.AssetData) error
	Delete(hr models.CurrentUser, id string) error
	List(hrEmail string, filter assetapimodels.AssetFilter) ([]assetapimodels.AssetView, int64, error)
	Browse(filter assetapimodels.AssetFilter) ([]assetapimodels.AssetView, int64, error)
	ListForExport(hrEmail string) ([]dbmodels.Asset, error)
}

var Instance Provider

func NewHandler(gdb *gorm.DB) {
	Instance = NewHandlerWithDB(gdb)
}

func NewHandlerWithDB(gdb *gorm.DB) Provider {
	return impl{
		db:              gdb,
		store:           assetstore.NewInstance(gdb),
		assignmentStore: assignmentstore.NewInstance(gdb),
		accountStore:    accountstore.NewInstance(gdb),
	}
}

type impl struct {
	db              *gorm.DB
	store           assetstore.Provider
	assignmentStore assignmentstore.Provider
	accountStore    accountstore.Provider
}

func (i impl) Create(hr models.CurrentUser, data assetapimodels.AssetData) (id string, err error) {
	logger := log.WithField("hr_email", hr.Email)
	owner, err := i.accountStore.GetByEmail(hr.Email)
	if err != nil {
		return "", err
	}
	if owner == nil {
		return "", apperrors.New(apperrors.KindNotFound, "HR account not found")
	}
	rec := dbmodels.Asset{
		Name:              data.Name,
		Type:              data.Type,
		Image:             data.Image,
		TotalQuantity:     data.Quantity,
		AvailableQuantity: data.Quantity,
		HrEmail:           hr.Email,
		CompanyName:       owner.CompanyName,
		CompanyLogo:       owner.CompanyLogo,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.
			WithField("request", fmt.Sprintf("%+v", data)).
			WithError(err).
			Error("asset creation failed")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("asset created")
	return id, nil
}

func (i impl) GetByID(id string) (assetapimodels.AssetView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return assetapimodels.AssetView{}, err
	}
	return assetapimodels.AssetConvert(*rec), nil
}

// Update recomputes availability from the new total while preserving the
// number of units currently out: newAvailable = newTotal - unitsOut.
// An edit that would drive availability negative is refused.
func (i impl) Update(hr models.CurrentUser, id string, data assetapimodels.AssetData) error {
	logger := log.
		WithField("hr_email", hr.Email).
		WithField("rec_id", id)

	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := assetstore.NewInstance(tx)
		rec, err := store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil || rec.HrEmail != hr.Email {
			return apperrors.New(apperrors.KindNotFound, "asset not found")
		}

		unitsOut := rec.TotalQuantity - rec.AvailableQuantity
		newAvailable := data.Quantity - unitsOut
		if newAvailable < 0 {
			return apperrors.Errorf(apperrors.KindInvalidState,
				"%d units are assigned, total cannot drop below that", unitsOut)
		}
		return store.Update(hr.Email, id, map[string]interface{}{
			"name":               data.Name,
			"type":               data.Type,
			"image":              data.Image,
			"total_quantity":     data.Quantity,
			"available_quantity": newAvailable,
		})
	})
	if err != nil {
		if apperrors.KindOf(err) == "" {
			logger.WithError(err).Error("asset update failed")
		}
		return err
	}
	logger.Info("asset updated")
	return nil
}

func (i impl) Delete(hr models.CurrentUser, id string) error {
	logger := log.
		WithField("hr_email", hr.Email).
		WithField("rec_id", id)

	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	if rec.HrEmail != hr.Email {
		return apperrors.New(apperrors.KindNotFound, "asset not found")
	}
	// never orphan live assignments
	exist, err := i.assignmentStore.ExistActiveByAsset(id)
	if err != nil {
		return err
	}
	if exist {
		return apperrors.New(apperrors.KindInvalidState, "asset has active assignments and cannot be deleted")
	}
	if err = i.store.Delete(hr.Email, id); err != nil {
		logger.WithError(err).Error("asset deletion failed")
		return err
	}
	logger.Info("asset deleted")
	return nil
}

func (i impl) List(hrEmail string, filter assetapimodels.AssetFilter) ([]assetapimodels.AssetView, int64, error) {
	rowCount, err := i.store.ListCount(hrEmail, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.List(hrEmail, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]assetapimodels.AssetView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, assetapimodels.AssetConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Browse(filter assetapimodels.AssetFilter) ([]assetapimodels.AssetView, int64, error) {
	rowCount, err := i.store.BrowseCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.Browse(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]assetapimodels.AssetView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, assetapimodels.AssetConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListForExport(hrEmail string) ([]dbmodels.Asset, error) {
	return i.store.ListAllForHr(hrEmail)
}

func (i impl) getRec(id string) (*dbmodels.Asset, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.
			WithField("rec_id", id).
			WithError(err).
			Error("asset lookup failed")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "asset not found")
	}
	return rec, nil
}
