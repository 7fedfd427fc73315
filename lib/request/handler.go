package requesthandler

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	affiliationhandler "github.com/sajib4386/Asset-verse-Server/lib/affiliation"
	assetstore "github.com/sajib4386/Asset-verse-Server/lib/asset/store"
	assignmentstore "github.com/sajib4386/Asset-verse-Server/lib/assignment/store"
	requeststore "github.com/sajib4386/Asset-verse-Server/lib/request/store"
	"github.com/sajib4386/Asset-verse-Server/lib/smtp"
	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/models"
	requestapimodels "github.com/sajib4386/Asset-verse-Server/models/api/request"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(employee models.CurrentUser, data requestapimodels.RequestCreateData) (id string, err error)
	GetByID(id string) (requestapimodels.RequestView, error)
	Approve(hr models.CurrentUser, requestID string) (requestapimodels.ApprovalResult, error)
	Reject(hr models.CurrentUser, requestID string) (requestapimodels.RequestView, error)
	ListForHr(hrEmail string, filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error)
	ListForEmployee(email string, filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error)
}

var Instance Provider

func NewHandler(gdb *gorm.DB) {
	Instance = NewHandlerWithDB(gdb)
}

func NewHandlerWithDB(gdb *gorm.DB) Provider {
	return impl{
		db:              gdb,
		store:           requeststore.NewInstance(gdb),
		assetStore:      assetstore.NewInstance(gdb),
		assignmentStore: assignmentstore.NewInstance(gdb),
	}
}

type impl struct {
	db              *gorm.DB
	store           requeststore.Provider
	assetStore      assetstore.Provider
	assignmentStore assignmentstore.Provider
}

func (i impl) Create(employee models.CurrentUser, data requestapimodels.RequestCreateData) (id string, err error) {
	logger := log.
		WithField("requester", employee.Email).
		WithField("asset_id", data.AssetID)

	asset, err := i.assetStore.GetByID(data.AssetID)
	if err != nil {
		logger.WithError(err).Error("asset lookup failed")
		return "", err
	}
	if asset == nil {
		return "", apperrors.New(apperrors.KindNotFound, "asset not found")
	}
	if asset.AvailableQuantity <= 0 {
		return "", apperrors.New(apperrors.KindAssetUnavailable, "asset is out of stock")
	}

	// fast path only; the partial unique index in the store is the real
	// guard against the read-then-insert race
	exist, err := i.store.ExistPending(data.AssetID, employee.Email)
	if err != nil {
		logger.WithError(err).Error("pending request check failed")
		return "", err
	}
	if exist {
		return "", apperrors.New(apperrors.KindDuplicateRequest, "a pending request for this asset already exists")
	}

	// asset and company fields are frozen here; later edits to the asset
	// do not rewrite history
	rec := dbmodels.AssetRequest{
		AssetID:        asset.ID,
		AssetName:      asset.Name,
		AssetType:      asset.Type,
		RequesterEmail: employee.Email,
		RequesterName:  employee.Name,
		HrEmail:        asset.HrEmail,
		CompanyName:    asset.CompanyName,
		CompanyLogo:    asset.CompanyLogo,
		Status:         models.RequestStatusPending,
		Note:           data.Note,
		RequestDate:    time.Now(),
	}
	id, err = i.store.Create(rec)
	if err != nil {
		if apperrors.KindOf(err) == "" {
			logger.
				WithField("request", fmt.Sprintf("%+v", data)).
				WithError(err).
				Error("request creation failed")
		}
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("asset request created")
	return id, nil
}

func (i impl) GetByID(id string) (requestapimodels.RequestView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	return requestapimodels.RequestConvert(*rec), nil
}

// Approve runs the five-record state transition as one transaction:
// capacity and availability guards first (no mutation on failure), then
// the conditional decrement, the assignment insert, the affiliation
// upsert and the terminal status flip.
func (i impl) Approve(hr models.CurrentUser, requestID string) (requestapimodels.ApprovalResult, error) {
	logger := log.
		WithField("hr_email", hr.Email).
		WithField("rec_id", requestID)

	result := requestapimodels.ApprovalResult{
		RequestID: requestID,
	}
	var notifyTo string
	err := i.db.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		assetStore := assetstore.NewInstance(tx)
		assignmentStore := assignmentstore.NewInstance(tx)
		affiliations := affiliationhandler.NewHandlerWithDB(tx)

		rec, err := store.GetByID(requestID)
		if err != nil {
			return err
		}
		if rec == nil {
			return apperrors.New(apperrors.KindNotFound, "request not found")
		}
		if rec.HrEmail != hr.Email {
			return apperrors.New(apperrors.KindUnauthorized, "request belongs to another HR account")
		}
		if !rec.Status.AllowProcess() {
			return apperrors.Errorf(apperrors.KindInvalidState, "request is already %v", rec.Status.ToHuman())
		}

		// the capacity gate only applies when approval would add headcount;
		// an extra asset for an already-active employee changes nothing
		active, err := affiliations.IsActive(rec.RequesterEmail, hr.Email)
		if err != nil {
			return err
		}
		if !active {
			ok, err := affiliations.HasCapacity(hr.Email)
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.New(apperrors.KindCapacityExceeded, "employee limit reached, upgrade the subscription package")
			}
		}

		asset, err := assetStore.GetByID(rec.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return apperrors.New(apperrors.KindNotFound, "asset not found")
		}
		if asset.AvailableQuantity < 1 {
			return apperrors.New(apperrors.KindAssetUnavailable, "asset is out of stock")
		}

		ok, err := assetStore.TryDecrement(rec.AssetID)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.New(apperrors.KindAssetUnavailable, "asset is out of stock")
		}
		result.AssetID = rec.AssetID
		result.AssetDelta = -1

		now := time.Now()
		assignmentID, err := assignmentStore.Create(dbmodels.Assignment{
			AssetID:        asset.ID,
			AssetName:      asset.Name,
			AssetType:      asset.Type,
			AssetImage:     asset.Image,
			EmployeeEmail:  rec.RequesterEmail,
			EmployeeName:   rec.RequesterName,
			HrEmail:        hr.Email,
			Status:         models.AssignmentStatusApproved,
			RequestID:      rec.ID,
			AssignmentDate: now,
		})
		if err != nil {
			return errors.Wrap(err, "assignment creation failed")
		}
		result.AssignmentID = assignmentID

		action, err := affiliations.UpsertOnApprove(rec.RequesterEmail, rec.RequesterName, hr.Email, rec.CompanyName)
		if err != nil {
			return errors.Wrap(err, "affiliation upsert failed")
		}
		result.AffiliationAction = action
		if action != models.AffiliationActionUnchanged {
			result.HeadcountDelta = 1
		}

		processed, err := store.MarkProcessed(rec.ID, map[string]interface{}{
			"status":        models.RequestStatusApproved,
			"approval_date": now,
			"processed_by":  hr.Email,
		})
		if err != nil {
			return err
		}
		if !processed {
			return apperrors.New(apperrors.KindInvalidState, "request was processed concurrently")
		}
		result.ApprovedAt = now
		notifyTo = rec.RequesterEmail
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == "" {
			logger.WithError(err).Error("request approval failed")
		}
		return requestapimodels.ApprovalResult{}, err
	}

	logger.
		WithField("assignment_id", result.AssignmentID).
		WithField("affiliation_action", result.AffiliationAction).
		Info("request approved")
	i.notify(notifyTo, "Request approved",
		fmt.Sprintf("Your asset request %s has been approved.", requestID))
	return result, nil
}

func (i impl) Reject(hr models.CurrentUser, requestID string) (requestapimodels.RequestView, error) {
	logger := log.
		WithField("hr_email", hr.Email).
		WithField("rec_id", requestID)

	rec, err := i.getRec(requestID)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	if rec.HrEmail != hr.Email {
		return requestapimodels.RequestView{}, apperrors.New(apperrors.KindUnauthorized, "request belongs to another HR account")
	}
	if !rec.Status.AllowProcess() {
		return requestapimodels.RequestView{}, apperrors.Errorf(apperrors.KindInvalidState, "request is already %v", rec.Status.ToHuman())
	}

	now := time.Now()
	processed, err := i.store.MarkProcessed(rec.ID, map[string]interface{}{
		"status":         models.RequestStatusRejected,
		"rejection_date": now,
		"processed_by":   hr.Email,
	})
	if err != nil {
		logger.WithError(err).Error("request rejection failed")
		return requestapimodels.RequestView{}, err
	}
	if !processed {
		return requestapimodels.RequestView{}, apperrors.New(apperrors.KindInvalidState, "request was processed concurrently")
	}

	logger.Info("request rejected")
	i.notify(rec.RequesterEmail, "Request rejected",
		fmt.Sprintf("Your request for %s has been rejected.", rec.AssetName))

	rec.Status = models.RequestStatusRejected
	rec.RejectionDate = &now
	rec.ProcessedBy = &hr.Email
	return requestapimodels.RequestConvert(*rec), nil
}

func (i impl) ListForHr(hrEmail string, filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error) {
	rowCount, err := i.store.ListForHrCount(hrEmail, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.ListForHr(hrEmail, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]requestapimodels.RequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListForEmployee(email string, filter requestapimodels.RequestFilter) ([]requestapimodels.RequestView, int64, error) {
	rowCount, err := i.store.ListForEmployeeCount(email, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.ListForEmployee(email, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]requestapimodels.RequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, requestapimodels.RequestConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) getRec(id string) (*dbmodels.AssetRequest, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		log.
			WithField("rec_id", id).
			WithError(err).
			Error("request lookup failed")
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "request not found")
	}
	return rec, nil
}

// notify is best-effort: a mail failure never rolls back an approval.
func (i impl) notify(to, subject, message string) {
	if smtp.Instance == nil || to == "" {
		return
	}
	if err := smtp.Instance.SendEMail(to, subject, message); err != nil {
		log.WithError(err).
			WithField("recipient", to).
			Warn("notification email failed")
	}
}
