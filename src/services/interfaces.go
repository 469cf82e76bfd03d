// backend/src/services/interfaces.go
package services

import (
	"errors"
	"io"

	"github.com/username/dividendvisor/backend/src/models"
)

// UploadResult is the full derived view of one processed statement: the
// cleaned records plus every aggregate recomputed from them. Nothing in it
// is stored independently of the records.
type UploadResult struct {
	UploadID      string                       `json:"upload_id"`
	Filename      string                       `json:"filename"`
	SheetNames    []string                     `json:"sheet_names"`
	SelectedSheet int                          `json:"selected_sheet"`
	RecordCount   int                          `json:"record_count"`
	Records       []models.DividendRecord      `json:"records"`
	ByDate        []models.DateAggregate       `json:"by_date"`
	ByInstrument  []models.InstrumentAggregate `json:"by_instrument"`
	Forecast      models.ForecastResult        `json:"forecast"`
	Metrics       models.DashboardMetrics      `json:"metrics"`
}

// Define common service errors
var (
	ErrWorkbookInvalid = errors.New("file could not be opened as a spreadsheet workbook")
	ErrNoValidRecords  = errors.New("no valid dividend records found")
	ErrUploadNotFound  = errors.New("upload not found or expired")
)

// UploadService defines the interface for the core upload processing logic.
type UploadService interface {
	// ProcessUpload decodes the workbook, extracts the default sheet and
	// derives the full result. The workbook stays cached so other sheets
	// can be selected later.
	ProcessUpload(fileReader io.Reader, filename string, filesize int64) (*UploadResult, error)

	// GetUploadResult returns the current result for a cached upload.
	GetUploadResult(uploadID string) (*UploadResult, error)

	// SelectSheet re-runs extraction and cleaning against another sheet of
	// a cached upload. On failure the previously stored result is kept.
	SelectSheet(uploadID string, sheetIndex int) (*UploadResult, error)
}
