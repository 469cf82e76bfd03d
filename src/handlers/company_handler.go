// backend/src/handlers/company_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/username/dividendvisor/backend/src/companies"
	"github.com/username/dividendvisor/backend/src/logger"
	"github.com/username/dividendvisor/backend/src/security/validation"
	"github.com/username/dividendvisor/backend/src/utils"
)

// CompanyHandler serves the static ticker/long-name lookup table.
type CompanyHandler struct{}

func NewCompanyHandler() *CompanyHandler {
	return &CompanyHandler{}
}

func (h *CompanyHandler) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(companies.All()); err != nil {
		logger.ErrorFromContext(r.Context(), "Error encoding company list", "error", err)
	}
}

func (h *CompanyHandler) HandleSearchCompanies(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if err := validation.ValidateStringNotEmpty(term, "q"); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateStringMaxLength(term, validation.MaxSearchTermLength, "q"); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(companies.Search(term)); err != nil {
		logger.ErrorFromContext(r.Context(), "Error encoding company search results", "error", err)
	}
}
