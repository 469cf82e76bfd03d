// backend/src/services/upload_service.go
package services

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/dividendvisor/backend/src/logger"
	"github.com/username/dividendvisor/backend/src/parsers/etoro"
	"github.com/username/dividendvisor/backend/src/processors"
)

const (
	ckUpload               = "upload_%s"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

// uploadState is the cached per-upload workbook plus its latest derived
// result. The grids are immutable after decode; result is swapped on sheet
// selection, so every access goes through mu. Handlers for the same upload
// run concurrently.
type uploadState struct {
	filename   string
	sheetNames []string
	grids      map[string][][]string

	mu     sync.RWMutex
	result *UploadResult
}

func (st *uploadState) currentResult() *UploadResult {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.result
}

func (st *uploadState) setResult(result *UploadResult) {
	st.mu.Lock()
	st.result = result
	st.mu.Unlock()
}

// memoryWorkbook replays cached sheet grids through the Workbook interface
// so sheet switches run the exact extraction path the upload ran.
type memoryWorkbook struct {
	names []string
	grids map[string][][]string
}

func (m *memoryWorkbook) SheetNames() []string { return m.names }

func (m *memoryWorkbook) Rows(sheet string) ([][]string, error) {
	grid, ok := m.grids[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q was not readable when the workbook was decoded", sheet)
	}
	return grid, nil
}

type uploadServiceImpl struct {
	parser      *etoro.Parser
	cleaner     *processors.RecordCleaner
	aggregator  *processors.Aggregator
	forecaster  *processors.Forecaster
	metrics     *processors.MetricsCalculator
	reportCache *cache.Cache
	now         func() time.Time
	openFn      func(io.Reader) (etoro.Workbook, error)
}

func NewUploadService(
	parser *etoro.Parser,
	cleaner *processors.RecordCleaner,
	aggregator *processors.Aggregator,
	forecaster *processors.Forecaster,
	metrics *processors.MetricsCalculator,
	reportCache *cache.Cache,
) UploadService {
	return &uploadServiceImpl{
		parser:      parser,
		cleaner:     cleaner,
		aggregator:  aggregator,
		forecaster:  forecaster,
		metrics:     metrics,
		reportCache: reportCache,
		now:         time.Now,
		openFn:      etoro.OpenWorkbook,
	}
}

func (s *uploadServiceImpl) ProcessUpload(fileReader io.Reader, filename string, filesize int64) (*UploadResult, error) {
	wb, err := s.openFn(fileReader)
	if err != nil {
		logger.L.Warn("Workbook decode failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrWorkbookInvalid, err)
	}

	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, etoro.ErrNoSheets
	}

	// Cache every readable sheet up front. Individual unreadable sheets are
	// tolerated; selecting one later reports ErrSheetUnreadable.
	grids := make(map[string][][]string, len(names))
	for _, name := range names {
		rows, rowsErr := wb.Rows(name)
		if rowsErr != nil {
			logger.L.Warn("Sheet could not be read, skipping", "filename", filename, "sheet", name, "error", rowsErr)
			continue
		}
		grids[name] = rows
	}

	state := &uploadState{
		filename:   filename,
		sheetNames: names,
		grids:      grids,
	}

	uploadID := uuid.NewString()
	sheetIndex := etoro.SelectDefaultSheet(names)

	result, err := s.buildResult(state, uploadID, sheetIndex)
	if err != nil {
		return nil, err
	}
	state.setResult(result)
	s.reportCache.Set(fmt.Sprintf(ckUpload, uploadID), state, cache.DefaultExpiration)

	logger.L.Info("Upload processed", "uploadID", uploadID, "filename", filename,
		"filesize", filesize, "sheet", result.SelectedSheet, "records", result.RecordCount)
	return result, nil
}

func (s *uploadServiceImpl) GetUploadResult(uploadID string) (*UploadResult, error) {
	state, err := s.getState(uploadID)
	if err != nil {
		return nil, err
	}
	return state.currentResult(), nil
}

func (s *uploadServiceImpl) SelectSheet(uploadID string, sheetIndex int) (*UploadResult, error) {
	state, err := s.getState(uploadID)
	if err != nil {
		return nil, err
	}

	result, err := s.buildResult(state, uploadID, sheetIndex)
	if err != nil {
		// The stored workbook and previous result stay untouched so the
		// caller can try another sheet.
		return nil, err
	}

	state.setResult(result)
	s.reportCache.Set(fmt.Sprintf(ckUpload, uploadID), state, cache.DefaultExpiration)
	logger.L.Info("Sheet selected", "uploadID", uploadID, "sheet", sheetIndex, "records", result.RecordCount)
	return result, nil
}

func (s *uploadServiceImpl) getState(uploadID string) (*uploadState, error) {
	cached, found := s.reportCache.Get(fmt.Sprintf(ckUpload, uploadID))
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUploadNotFound, uploadID)
	}
	return cached.(*uploadState), nil
}

// buildResult runs extraction, cleaning and every derived computation for
// one sheet of a cached workbook.
func (s *uploadServiceImpl) buildResult(state *uploadState, uploadID string, sheetIndex int) (*UploadResult, error) {
	wb := &memoryWorkbook{names: state.sheetNames, grids: state.grids}

	sheetData, err := s.parser.ParseSheet(wb, sheetIndex)
	if err != nil {
		return nil, err
	}

	records := s.cleaner.Clean(sheetData.Records)
	if len(records) == 0 {
		return nil, fmt.Errorf("%w on sheet %q (headers found: %s)",
			ErrNoValidRecords, sheetData.SheetName, strings.Join(sheetData.Headers, ", "))
	}

	return &UploadResult{
		UploadID:      uploadID,
		Filename:      state.filename,
		SheetNames:    state.sheetNames,
		SelectedSheet: sheetIndex,
		RecordCount:   len(records),
		Records:       records,
		ByDate:        s.aggregator.ByDate(records),
		ByInstrument:  s.aggregator.ByInstrumentAndDate(records),
		Forecast:      s.forecaster.Forecast(records),
		Metrics:       s.metrics.Compute(records, s.now().UTC()),
	}, nil
}
