// backend/src/handlers/dividend_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/username/dividendvisor/backend/src/logger"
	"github.com/username/dividendvisor/backend/src/processors"
	"github.com/username/dividendvisor/backend/src/security/validation"
	"github.com/username/dividendvisor/backend/src/services"
	"github.com/username/dividendvisor/backend/src/utils"
)

type DividendHandler struct {
	uploadService services.UploadService
}

func NewDividendHandler(service services.UploadService) *DividendHandler {
	return &DividendHandler{uploadService: service}
}

// HandleGetUploadResult returns the full derived result for an upload, with
// ETag / If-None-Match support so pollers skip unchanged payloads.
func (h *DividendHandler) HandleGetUploadResult(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())
	uploadID := chi.URLParam(r, "uploadID")

	result, err := h.uploadService.GetUploadResult(uploadID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	currentETag, etagErr := utils.GenerateETag(result)
	if etagErr != nil {
		ctxLogger.Error("Failed to generate ETag for upload result", "uploadID", uploadID, "error", etagErr)
	}

	w.Header().Set("Cache-Control", "no-cache, private")

	if etagErr == nil && currentETag != "" {
		quotedETag := fmt.Sprintf("%q", currentETag)
		w.Header().Set("ETag", quotedETag)
		clientETag := r.Header.Get("If-None-Match")
		for _, cETag := range strings.Split(clientETag, ",") {
			if strings.TrimSpace(cETag) == quotedETag {
				ctxLogger.Debug("ETag match for upload result", "uploadID", uploadID, "etag", currentETag)
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "uploadID", uploadID, "error", err)
	}
}

type selectSheetRequest struct {
	SheetIndex int `json:"sheetIndex"`
}

// HandleSelectSheet re-runs extraction against another sheet of a cached
// upload. On failure the stored result is left untouched.
func (h *DividendHandler) HandleSelectSheet(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")

	var req selectSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.uploadService.SelectSheet(uploadID, req.SheetIndex)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.ErrorFromContext(r.Context(), "Error encoding JSON response for sheet selection", "uploadID", uploadID, "error", err)
	}
}

// HandleGetRecords returns the cleaned records, narrowed and ordered by the
// filter query parameters.
func (h *DividendHandler) HandleGetRecords(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")

	result, err := h.uploadService.GetUploadResult(uploadID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	opts, err := filterOptionsFromQuery(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	records := processors.FilterRecords(result.Records, opts, time.Now().UTC())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// HandleGetByDate returns the date aggregates with an optional presentation
// sort. Cumulative values are computed chronologically and never re-derived
// for the requested order.
func (h *DividendHandler) HandleGetByDate(w http.ResponseWriter, r *http.Request) {
	result, err := h.uploadService.GetUploadResult(chi.URLParam(r, "uploadID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	aggs := result.ByDate
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		aggs = processors.SortDateAggregates(aggs, sortBy, r.URL.Query().Get("sortOrder"))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aggs)
}

// HandleGetByInstrument returns the per-instrument aggregates with an
// optional presentation sort.
func (h *DividendHandler) HandleGetByInstrument(w http.ResponseWriter, r *http.Request) {
	result, err := h.uploadService.GetUploadResult(chi.URLParam(r, "uploadID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	aggs := result.ByInstrument
	if sortBy := r.URL.Query().Get("sortBy"); sortBy != "" {
		aggs = processors.SortInstrumentAggregates(aggs, sortBy, r.URL.Query().Get("sortOrder"))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(aggs)
}

func (h *DividendHandler) HandleGetForecast(w http.ResponseWriter, r *http.Request) {
	result, err := h.uploadService.GetUploadResult(chi.URLParam(r, "uploadID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result.Forecast)
}

func (h *DividendHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.uploadService.GetUploadResult(chi.URLParam(r, "uploadID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result.Metrics)
}

// filterOptionsFromQuery parses and validates the record filter parameters.
func filterOptionsFromQuery(r *http.Request) (processors.FilterOptions, error) {
	q := r.URL.Query()
	opts := processors.FilterOptions{
		Search:    q.Get("q"),
		Companies: q["company"],
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if err := validation.ValidateStringMaxLength(opts.Search, validation.MaxSearchTermLength, "q"); err != nil {
		return opts, err
	}

	if from := q.Get("from"); from != "" {
		t, err := validation.ValidateDateString(from, "from")
		if err != nil {
			return opts, err
		}
		opts.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := validation.ValidateDateString(to, "to")
		if err != nil {
			return opts, err
		}
		opts.To = &t
	}

	if min := q.Get("min"); min != "" {
		v, err := validation.ValidateFloatString(min, "min", false, 0, 1e12)
		if err != nil {
			return opts, err
		}
		opts.MinUSD = &v
	}
	if max := q.Get("max"); max != "" {
		v, err := validation.ValidateFloatString(max, "max", false, 0, 1e12)
		if err != nil {
			return opts, err
		}
		opts.MaxUSD = &v
	}

	return opts, nil
}
