// backend/src/parsers/etoro/excel.go
package etoro

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// excelWorkbook adapts an excelize file to the Workbook interface. Cells are
// read raw so date columns come through as serial numbers instead of being
// re-rendered in the viewer's locale.
type excelWorkbook struct {
	file *excelize.File
}

// OpenWorkbook decodes an .xls/.xlsx stream into a Workbook. The whole file
// is read into memory; statement exports are capped at 10MB upstream.
func OpenWorkbook(r io.Reader) (Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	return &excelWorkbook{file: f}, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

func (w *excelWorkbook) Rows(sheet string) ([][]string, error) {
	return w.file.GetRows(sheet, excelize.Options{RawCellValue: true})
}
