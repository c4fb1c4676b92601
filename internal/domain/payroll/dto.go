package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/validator"
)

// ========== RUN DTOs ==========

type ListRunsRequest struct {
	PeriodStart string // inclusive lower bound, "YYYY-MM-DD"
	PeriodEnd   string // inclusive upper bound, "YYYY-MM-DD"
}

func (r *ListRunsRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be a date in YYYY-MM-DD format"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be a date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}

	if start.After(end) {
		return ErrInvalidPeriodRange
	}
	return nil
}

type RunResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	PayPeriod      string  `json:"pay_period"`
	Status         string  `json:"status"`
	LockedAt       *string `json:"locked_at,omitempty"`
}

// ========== ENTRY DTOs ==========

type EntryResponse struct {
	ID                string             `json:"id"`
	RunID             string             `json:"run_id"`
	EmployeeID        string             `json:"employee_id"`
	EmployeeName      string             `json:"employee_name"`
	Department        *string            `json:"department,omitempty"`
	JobTitle          *string            `json:"job_title,omitempty"`
	GrossEarnings     decimal.Decimal    `json:"gross_earnings"`
	EarningsBreakdown []EarningComponent `json:"earnings_breakdown"`
	PFEmployee        *decimal.Decimal   `json:"pf_employee,omitempty"`
	PFEmployer        *decimal.Decimal   `json:"pf_employer,omitempty"`
	NetPay            decimal.Decimal    `json:"net_pay"`
	TDSAmount         *decimal.Decimal   `json:"tds_amount,omitempty"`
	ESIEmployee       *decimal.Decimal   `json:"esi_employee,omitempty"`
	TotalDeductions   *decimal.Decimal   `json:"total_deductions,omitempty"`
	LWPDays           decimal.Decimal    `json:"lwp_days"`
	WorkingDays       decimal.Decimal    `json:"working_days"`
	PaidDays          decimal.Decimal    `json:"paid_days"`
	AnnualCTC         *decimal.Decimal   `json:"annual_ctc,omitempty"`
}

type ListEntriesResponse struct {
	RunID   string          `json:"run_id"`
	Entries []EntryResponse `json:"entries"`
}
