package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/dividendvisor/backend/src/parsers/etoro"
	"github.com/username/dividendvisor/backend/src/processors"
)

type fakeWorkbook struct {
	names []string
	grids map[string][][]string
}

func (f *fakeWorkbook) SheetNames() []string { return f.names }

func (f *fakeWorkbook) Rows(sheet string) ([][]string, error) {
	grid, ok := f.grids[sheet]
	if !ok {
		return nil, fmt.Errorf("no sheet %q", sheet)
	}
	return grid, nil
}

func statementWorkbook() *fakeWorkbook {
	header := []string{"Fecha de pago", "Nombre del instrumento", "ISIN", "Dividendo neto recibido (USD)", "Dividendo neto recibido (EUR)"}
	return &fakeWorkbook{
		names: []string{"Resumen", "Dividendos"},
		grids: map[string][][]string{
			"Resumen": {
				{"Estado de cuenta"},
				{"Periodo", "2024"},
			},
			"Dividendos": {
				{"Estado de cuenta"},
				header,
				{"15/01/2024", "Chevron", "US1667641005", "10.50", "9.80"},
				{"20/02/2024", "PepsiCo", "US7134481081", "25.00", "22.10"},
				{"10/03/2024", "Verizon", "US92343V1044", "5.25", "4.60"},
			},
		},
	}
}

func newTestService(wb etoro.Workbook, openErr error) *uploadServiceImpl {
	svc := &uploadServiceImpl{
		parser:      etoro.NewParser(),
		cleaner:     processors.NewRecordCleaner(),
		aggregator:  processors.NewAggregator(),
		forecaster:  processors.NewForecaster(),
		metrics:     processors.NewMetricsCalculator(),
		reportCache: cache.New(DefaultCacheExpiration, CacheCleanupInterval),
		now:         func() time.Time { return time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC) },
	}
	svc.openFn = func(io.Reader) (etoro.Workbook, error) {
		if openErr != nil {
			return nil, openErr
		}
		return wb, nil
	}
	return svc
}

func TestProcessUpload(t *testing.T) {
	svc := newTestService(statementWorkbook(), nil)

	result, err := svc.ProcessUpload(strings.NewReader("ignored"), "statement.xlsx", 1024)
	require.NoError(t, err)

	assert.NotEmpty(t, result.UploadID)
	assert.Equal(t, "statement.xlsx", result.Filename)
	assert.Equal(t, []string{"Resumen", "Dividendos"}, result.SheetNames)
	assert.Equal(t, 1, result.SelectedSheet) // "Dividendos" matched by name
	assert.Equal(t, 3, result.RecordCount)
	require.Len(t, result.Records, 3)
	assert.Equal(t, "Chevron", result.Records[0].InstrumentName)
	assert.Len(t, result.ByDate, 3)
	assert.Len(t, result.ByInstrument, 3)
	assert.Equal(t, 40.75, result.Metrics.TotalUSD)
	assert.Len(t, result.Forecast.SeasonalPattern, 12)

	fetched, err := svc.GetUploadResult(result.UploadID)
	require.NoError(t, err)
	assert.Equal(t, result, fetched)
}

func TestProcessUploadDecodeFailure(t *testing.T) {
	svc := newTestService(nil, errors.New("not a zip"))

	_, err := svc.ProcessUpload(strings.NewReader("junk"), "statement.xlsx", 4)
	assert.ErrorIs(t, err, ErrWorkbookInvalid)
}

func TestProcessUploadNoSheets(t *testing.T) {
	svc := newTestService(&fakeWorkbook{}, nil)

	_, err := svc.ProcessUpload(strings.NewReader("ignored"), "statement.xlsx", 4)
	assert.ErrorIs(t, err, etoro.ErrNoSheets)
}

func TestProcessUploadNoValidRecords(t *testing.T) {
	wb := statementWorkbook()
	// Keep the header but strip every data row.
	wb.grids["Dividendos"] = wb.grids["Dividendos"][:2]

	svc := newTestService(wb, nil)
	_, err := svc.ProcessUpload(strings.NewReader("ignored"), "statement.xlsx", 4)
	require.ErrorIs(t, err, ErrNoValidRecords)
	assert.Contains(t, err.Error(), "Nombre del instrumento")
}

func TestSelectSheet(t *testing.T) {
	svc := newTestService(statementWorkbook(), nil)

	result, err := svc.ProcessUpload(strings.NewReader("ignored"), "statement.xlsx", 4)
	require.NoError(t, err)

	t.Run("failure keeps previous result", func(t *testing.T) {
		_, selErr := svc.SelectSheet(result.UploadID, 0) // summary sheet has no header
		require.ErrorIs(t, selErr, etoro.ErrHeaderNotFound)

		kept, getErr := svc.GetUploadResult(result.UploadID)
		require.NoError(t, getErr)
		assert.Equal(t, 1, kept.SelectedSheet)
		assert.Equal(t, 3, kept.RecordCount)
	})

	t.Run("out of range index", func(t *testing.T) {
		_, selErr := svc.SelectSheet(result.UploadID, 9)
		assert.ErrorIs(t, selErr, etoro.ErrSheetUnreadable)
	})

	t.Run("reselecting the data sheet works", func(t *testing.T) {
		again, selErr := svc.SelectSheet(result.UploadID, 1)
		require.NoError(t, selErr)
		assert.Equal(t, 1, again.SelectedSheet)
		assert.Equal(t, 3, again.RecordCount)
	})
}

func TestSelectSheetConcurrentWithReads(t *testing.T) {
	svc := newTestService(statementWorkbook(), nil)

	result, err := svc.ProcessUpload(strings.NewReader("ignored"), "statement.xlsx", 4)
	require.NoError(t, err)
	uploadID := result.UploadID

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if n%2 == 0 {
					_, selErr := svc.SelectSheet(uploadID, 1)
					assert.NoError(t, selErr)
				} else {
					got, getErr := svc.GetUploadResult(uploadID)
					if assert.NoError(t, getErr) {
						assert.Equal(t, 3, got.RecordCount)
					}
				}
			}
		}(i)
	}
	wg.Wait()

	final, err := svc.GetUploadResult(uploadID)
	require.NoError(t, err)
	assert.Equal(t, 1, final.SelectedSheet)
	assert.Equal(t, 3, final.RecordCount)
}

func TestGetUploadResultUnknownID(t *testing.T) {
	svc := newTestService(statementWorkbook(), nil)

	_, err := svc.GetUploadResult("b2f4d7e0-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrUploadNotFound)
}
