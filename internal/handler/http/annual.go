package http

import (
	"encoding/json"
	"net/http"

	"github.com/zenithly-hr/payroll-backend-go/internal/domain/annual"
	"github.com/zenithly-hr/payroll-backend-go/internal/handler/http/response"
)

type AnnualHandler interface {
	GenerateSummaries(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type annualHandlerImpl struct {
	annualService annual.AnnualService
}

func NewAnnualHandler(annualService annual.AnnualService) AnnualHandler {
	return &annualHandlerImpl{annualService: annualService}
}

func (h *annualHandlerImpl) GenerateSummaries(w http.ResponseWriter, r *http.Request) {
	var req annual.GenerateSummariesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.annualService.GenerateSummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Annual tax summaries generated", result)
}

func (h *annualHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	financialYear := r.URL.Query().Get("financial_year")
	if financialYear == "" {
		response.BadRequest(w, "financial_year is required", nil)
		return
	}

	result, err := h.annualService.ListSummaries(r.Context(), financialYear)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
