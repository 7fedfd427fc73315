package affiliationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/sajib4386/Asset-verse-Server/models"
	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	Create(rec dbmodels.Affiliation) (id string, err error)
	GetByPair(employeeEmail, hrEmail string) (*dbmodels.Affiliation, error)
	Update(id string, updMap map[string]interface{}) error
	CountActive(hrEmail string) (int64, error)
	ListActiveForHr(hrEmail string) ([]dbmodels.Affiliation, error)
	ListActiveForEmployee(employeeEmail string) ([]dbmodels.Affiliation, error)
	ListByHrGrouped() (map[string]int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Affiliation) (id string, err error) {
	err = rec.Validate()
	if err != nil {
		return "", err
	}
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		// uniqueness over (employee, hr) holds for the record's whole
		// history; a second insert for the pair is always a defect
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", errors.Errorf("affiliation already exists for %v / %v", rec.EmployeeEmail, rec.HrEmail)
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByPair(employeeEmail, hrEmail string) (*dbmodels.Affiliation, error) {
	rec := dbmodels.Affiliation{}
	err := i.db.
		Where("employee_email = ?", employeeEmail).
		Where("hr_email = ?", hrEmail).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Affiliation{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) CountActive(hrEmail string) (int64, error) {
	var rowCount int64
	err := i.db.
		Model(&dbmodels.Affiliation{}).
		Where("hr_email = ?", hrEmail).
		Where("status = ?", models.AffiliationStatusActive).
		Count(&rowCount).
		Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) ListActiveForHr(hrEmail string) ([]dbmodels.Affiliation, error) {
	list := []dbmodels.Affiliation{}
	err := i.db.
		Where("hr_email = ?", hrEmail).
		Where("status = ?", models.AffiliationStatusActive).
		Order("affiliation_date").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListActiveForEmployee(employeeEmail string) ([]dbmodels.Affiliation, error) {
	list := []dbmodels.Affiliation{}
	err := i.db.
		Where("employee_email = ?", employeeEmail).
		Where("status = ?", models.AffiliationStatusActive).
		Order("affiliation_date").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByHrGrouped returns active-affiliation counts per HR email, for the
// headcount cache reconciliation sweep.
func (i impl) ListByHrGrouped() (map[string]int64, error) {
	rows := []struct {
		HrEmail  string
		RowCount int64
	}{}
	err := i.db.
		Model(&dbmodels.Affiliation{}).
		Select("hr_email, count(*) as row_count").
		Where("status = ?", models.AffiliationStatusActive).
		Group("hr_email").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.HrEmail] = row.RowCount
	}
	return result, nil
}
