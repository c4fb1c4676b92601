package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithly-hr/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	ListLockedRuns(w http.ResponseWriter, r *http.Request)
	ListRunEntries(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) ListLockedRuns(w http.ResponseWriter, r *http.Request) {
	req := payroll.ListRunsRequest{
		PeriodStart: r.URL.Query().Get("start"),
		PeriodEnd:   r.URL.Query().Get("end"),
	}

	result, err := h.payrollService.ListLockedRuns(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRunEntries(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "id")
	if runID == "" {
		response.BadRequest(w, "Run ID is required", nil)
		return
	}

	result, err := h.payrollService.ListRunEntries(r.Context(), runID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
