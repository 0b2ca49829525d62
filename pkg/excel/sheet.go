// Package excel renders tabular reports as xlsx workbooks.
package excel

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of an xlsx workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Row is one line of a report. Values are written in column order.
type Row []any

// Sheet is a single worksheet with a header line
type Sheet struct {
	Name     string
	Headings []string
	Rows     []Row
}

// Write renders the sheets into one workbook and streams it to w.
// The first sheet replaces excelize's default "Sheet1".
func Write(w io.Writer, sheets ...Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}

		for col, heading := range sheet.Headings {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet.Name, cell, heading); err != nil {
				return err
			}
		}
		if len(sheet.Headings) > 0 {
			last, _ := excelize.CoordinatesToCellName(len(sheet.Headings), 1)
			if err := f.SetCellStyle(sheet.Name, "A1", last, bold); err != nil {
				return err
			}
		}

		for r, row := range sheet.Rows {
			for col, value := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, r+2)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet.Name, cell, value); err != nil {
					return err
				}
			}
		}
	}

	return f.Write(w)
}
