package response

import (
	"errors"
	"net/http"

	"github.com/zenithly-hr/payroll-backend-go/internal/domain/annual"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/export"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrInvalidPeriodRange):
		BadRequest(w, "Invalid pay period range", nil)

	// Export domain errors
	case errors.Is(err, export.ErrUnknownProfile):
		BadRequest(w, "Unknown export profile", nil)
	case errors.Is(err, export.ErrRunNotLocked):
		Conflict(w, "Payroll run is not locked")
	case errors.Is(err, export.ErrExportNotFound):
		NotFound(w, "Stored export file not found")

	// Annual reporting domain errors
	case errors.Is(err, annual.ErrInvalidFinancialYear):
		BadRequest(w, "Invalid financial year label", nil)
	case errors.Is(err, annual.ErrNoLockedRuns):
		NotFound(w, "No locked payroll runs found for the financial year")
	case errors.Is(err, annual.ErrNoEntriesFound):
		NotFound(w, "No payroll entries found in the financial year's runs")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
