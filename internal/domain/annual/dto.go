package annual

import (
	"github.com/shopspring/decimal"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/validator"
)

// ========== GENERATION DTOs ==========

type GenerateSummariesRequest struct {
	FinancialYear string `json:"financial_year"`
}

func (r *GenerateSummariesRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidFinancialYear(r.FinancialYear) {
		errs = append(errs, validator.ValidationError{Field: "financial_year", Message: "must be a YYYY-YYYY label of consecutive years"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpsertResult is one record's outcome within the ordered, non-transactional
// persistence batch. Records before a failed one stay committed.
type UpsertResult struct {
	EmployeeID string `json:"employee_id"`
	Persisted  bool   `json:"persisted"`
	Error      string `json:"error,omitempty"`
}

type GenerateSummariesResponse struct {
	FinancialYear  string          `json:"financial_year"`
	RunsIncluded   int             `json:"runs_included"`
	PersistedCount int             `json:"persisted_count"`
	Results        []UpsertResult  `json:"results"`
	Summaries      []TaxSummaryRow `json:"summaries"`
}

// ========== READ DTOs ==========

type TaxSummaryRow struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	FinancialYear string          `json:"financial_year"`
	TotalSalary   decimal.Decimal `json:"total_salary"`
	TotalTDS      decimal.Decimal `json:"total_tds"`
	GeneratedAt   string          `json:"generated_at"`
}

type ListSummariesResponse struct {
	FinancialYear string          `json:"financial_year"`
	Summaries     []TaxSummaryRow `json:"summaries"`
}
