package assignmenthandler

import (
	"gorm.io/gorm"

	assignmentstore "github.com/sajib4386/Asset-verse-Server/lib/assignment/store"
	assignmentapimodels "github.com/sajib4386/Asset-verse-Server/models/api/assignment"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	ListForHr(hrEmail string, filter assignmentapimodels.AssignmentFilter) ([]assignmentapimodels.AssignmentView, int64, error)
	ListForEmployee(email string, filter assignmentapimodels.AssignmentFilter) ([]assignmentapimodels.AssignmentView, int64, error)
	ListForExport(hrEmail string) ([]dbmodels.Assignment, error)
}

var Instance Provider

func NewHandler(gdb *gorm.DB) {
	Instance = NewHandlerWithDB(gdb)
}

func NewHandlerWithDB(gdb *gorm.DB) Provider {
	return impl{
		store: assignmentstore.NewInstance(gdb),
	}
}

type impl struct {
	store assignmentstore.Provider
}

func (i impl) ListForHr(hrEmail string, filter assignmentapimodels.AssignmentFilter) ([]assignmentapimodels.AssignmentView, int64, error) {
	rowCount, err := i.store.ListForHrCount(hrEmail, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.ListForHr(hrEmail, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]assignmentapimodels.AssignmentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, assignmentapimodels.AssignmentConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListForEmployee(email string, filter assignmentapimodels.AssignmentFilter) ([]assignmentapimodels.AssignmentView, int64, error) {
	rowCount, err := i.store.ListForEmployeeCount(email, filter)
	if err != nil {
		return nil, 0, err
	}
	recList, err := i.store.ListForEmployee(email, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]assignmentapimodels.AssignmentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, assignmentapimodels.AssignmentConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListForExport(hrEmail string) ([]dbmodels.Assignment, error) {
	return i.store.ListAllForHr(hrEmail)
}
