package export

import (
	"fmt"

	"github.com/willfong/hh-vacancies/internal/utils"
	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates in a new workbook
const defaultSheet = "Sheet1"

// WriteWorkbook saves the report as an xlsx file at path, one sheet per
// query. onSheet, if not nil, is called after each sheet is filled.
func WriteWorkbook(path string, r *Report, onSheet func(name string)) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DCE6F1"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, sheet := range r.Sheets() {
		if i == 0 {
			f.SetSheetName(defaultSheet, sheet.Name)
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sheet.Name, err)
		}

		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sheet.Name, err)
		}
		if onSheet != nil {
			onSheet(sheet.Name)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	headers := make([]any, len(sheet.Headers))
	for i, h := range sheet.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return err
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			// Salaries go in as numbers so spreadsheet formulas work on them
			if m, ok := v.(utils.Money); ok {
				values[j] = m.Float()
			} else {
				values[j] = v
			}
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(sheet.Headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet.Name, "A", lastCol, 28)
}
