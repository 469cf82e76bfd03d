// backend/src/parsers/etoro/parser.go
package etoro

import (
	"errors"
	"fmt"
	"strings"
)

// Workbook is the minimal view the extractor needs over a spreadsheet file:
// ordered sheet names plus a rectangular grid of cell values per sheet. The
// binary format is decoded by the implementation, never here.
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// RawRecord is one data row keyed by the header labels found on the sheet.
// Empty cells are omitted, so key presence doubles as a non-null check.
type RawRecord map[string]string

// SheetData is the result of extracting a single sheet.
type SheetData struct {
	SheetName string
	Headers   []string
	Records   []RawRecord
}

// Sentinel errors for the distinct extraction failure modes. Callers wrap
// them with the sheet name so the user-facing message can cite it.
var (
	ErrNoSheets        = errors.New("workbook contains no sheets")
	ErrSheetUnreadable = errors.New("sheet could not be read")
	ErrSheetEmpty      = errors.New("sheet contains no rows")
	ErrHeaderNotFound  = errors.New("no header row found")
)

// headerScanLimit bounds how deep we look for a header row. eToro statements
// put a title block above the table, never more than a few rows of it.
const headerScanLimit = 5

var headerKeywords = []string{"instrumento", "dividend", "fecha", "isin"}

// Parser extracts keyed dividend rows from an eToro account statement
// workbook.
type Parser struct{}

// NewParser creates a new instance of the eToro statement parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseSheet extracts the raw records of the sheet at sheetIndex. Each
// failure mode is a distinct wrapped error; none are retried.
func (p *Parser) ParseSheet(wb Workbook, sheetIndex int) (*SheetData, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, ErrNoSheets
	}
	if sheetIndex < 0 || sheetIndex >= len(names) {
		return nil, fmt.Errorf("%w: sheet index %d out of range (%d sheets)", ErrSheetUnreadable, sheetIndex, len(names))
	}

	sheetName := names[sheetIndex]
	rows, err := wb.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrSheetUnreadable, sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q", ErrSheetEmpty, sheetName)
	}

	headerIdx, ok := LocateHeaderRow(rows)
	if !ok {
		return nil, fmt.Errorf("%w: sheet %q has no recognizable header in the first %d rows", ErrHeaderNotFound, sheetName, headerScanLimit)
	}

	headers := rows[headerIdx]
	return &SheetData{
		SheetName: sheetName,
		Headers:   nonEmpty(headers),
		Records:   ExtractRecords(rows, headerIdx),
	}, nil
}

// LocateHeaderRow scans at most the first five rows for one that looks like
// a table header: more than 3 populated cells and at least one cell carrying
// a known column keyword. First qualifying row wins.
func LocateHeaderRow(rows [][]string) (int, bool) {
	limit := headerScanLimit
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		populated := 0
		keyword := false
		for _, cell := range rows[i] {
			v := strings.ToLower(strings.TrimSpace(cell))
			if v == "" {
				continue
			}
			populated++
			for _, kw := range headerKeywords {
				if strings.Contains(v, kw) {
					keyword = true
					break
				}
			}
		}
		if populated > 3 && keyword {
			return i, true
		}
	}
	return 0, false
}

// ExtractRecords zips every row after the header with the header labels.
// Columns with an empty header label or an empty cell are omitted; rows that
// end up with no populated keys are skipped entirely.
func ExtractRecords(rows [][]string, headerIdx int) []RawRecord {
	headers := rows[headerIdx]

	var records []RawRecord
	for _, row := range rows[headerIdx+1:] {
		rec := make(RawRecord, len(headers))
		for col, label := range headers {
			if strings.TrimSpace(label) == "" || col >= len(row) {
				continue
			}
			if row[col] == "" {
				continue
			}
			rec[label] = row[col]
		}
		if len(rec) > 0 {
			records = append(records, rec)
		}
	}
	return records
}

// SelectDefaultSheet picks the sheet to process when the user has not chosen
// one: the first whose name mentions dividends, else the conventional fourth
// sheet (clamped to the last available).
func SelectDefaultSheet(names []string) int {
	for i, name := range names {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "dividend") || strings.Contains(lower, "dividendo") || strings.Contains(lower, "div") {
			return i
		}
	}
	fallback := len(names) - 1
	if fallback > 3 {
		fallback = 3
	}
	if fallback < 0 {
		fallback = 0
	}
	return fallback
}

func nonEmpty(cells []string) []string {
	var out []string
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
