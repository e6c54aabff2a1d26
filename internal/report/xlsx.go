package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"invoicedl/internal/model"
)

const sheetName = "Batch Results"

// WriteXLSX writes the batch's result records to a spreadsheet for back-office
// handover: one row per record plus a header carrying the run metadata.
func WriteXLSX(path, runID, month string, records []model.ResultRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	meta := [][]any{
		{"Run", runID},
		{"Billing month", month},
		{"Generated", time.Now().Format(time.RFC3339)},
		{},
		{"Severity", "Message"},
	}
	for i, row := range meta {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write header row: %w", err)
		}
	}

	for i, rec := range records {
		cell, _ := excelize.CoordinatesToCellName(1, len(meta)+1+i)
		row := []any{string(rec.Severity), rec.Message}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write record row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
