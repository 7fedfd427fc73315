package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "github.com/sajib4386/Asset-verse-Server/models/db"
)

type Provider interface {
	ExportAssignmentList(list []dbmodels.Assignment) (*bytes.Buffer, error)
	ExportInventory(list []dbmodels.Asset) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var assignmentHeaders = []string{"Asset", "Type", "Employee", "Employee email", "Status", "Assigned on", "Returned on"}

func (i impl) ExportAssignmentList(list []dbmodels.Assignment) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, assignmentHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		row, err = writeAssignmentData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Assignments")
	return f.WriteToBuffer()
}

func writeAssignmentData(f *excelize.File, sheet string, list []dbmodels.Assignment, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(assignmentHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Asset"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.AssetName); err != nil {
			return row, err
		}

		// "Type"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.AssetType)); err != nil {
			return row, err
		}

		// "Employee"
		col++
		if err := writeColumn(f, sheet, col, row, item.EmployeeName); err != nil {
			return row, err
		}

		// "Employee email"
		col++
		if err := writeColumn(f, sheet, col, row, item.EmployeeEmail); err != nil {
			return row, err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Status)); err != nil {
			return row, err
		}

		// "Assigned on"
		col++
		if !item.AssignmentDate.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.AssignmentDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Returned on"
		col++
		if item.ReturnDate != nil {
			if err := writeColumn(f, sheet, col, row, item.ReturnDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}

var inventoryHeaders = []string{"Asset", "Type", "Total", "Available", "Assigned"}

func (i impl) ExportInventory(list []dbmodels.Asset) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx file close failed")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, inventoryHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header write failed")
	}
	if len(list) != 0 {
		row, err = writeInventoryData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data write failed")
		}
	}
	f.SetSheetName(sheet, "Inventory")
	return f.WriteToBuffer()
}

func writeInventoryData(f *excelize.File, sheet string, list []dbmodels.Asset, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(inventoryHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Asset"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Name); err != nil {
			return row, err
		}

		// "Type"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Type)); err != nil {
			return row, err
		}

		// "Total"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalQuantity); err != nil {
			return row, err
		}

		// "Available"
		col++
		if err := writeColumn(f, sheet, col, row, item.AvailableQuantity); err != nil {
			return row, err
		}

		// "Assigned"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalQuantity-item.AvailableQuantity); err != nil {
			return row, err
		}
	}
	return row, nil
}
