// Package source abstracts the report files the extractors read: XLSX
// workbooks become ordered sheets of string rows, and text dumps lifted
// from the PDF reports become one sheet per page, one line per row.
// Opening a source is the only operation here that can fail; everything
// downstream works on plain rows.
package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one page of a report: an ordered sequence of rows, each an
// ordered sequence of cell values.
type Sheet struct {
	Name string
	Rows [][]string
}

// Cell returns the i-th cell of a row, or the empty string when the row
// is shorter than that. Report rows are ragged, so extractors always
// read through this.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// OpenXLSX reads every sheet of a workbook in order.
func OpenXLSX(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s, error %q", path, err)
	}
	defer f.Close()
	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read rows of sheet %s in %s, error %q", name, path, err)
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}
