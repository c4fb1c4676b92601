package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusDraft  RunStatus = "draft"
	RunStatusLocked RunStatus = "locked"
)

// PayrollRun - One pay-period run for an organization. Entries of a locked
// run are finalized and eligible for statutory export and reporting.
type PayrollRun struct {
	ID             string
	OrganizationID string
	PayPeriod      string // "YYYY-MM-DD", first day of the period
	Status         RunStatus
	LockedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EarningComponent - One named line of an entry's earnings breakdown
type EarningComponent struct {
	Name          string          `json:"name"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
}

// PayrollEntry - One employee's finalized result for one payroll run.
// Entries are read-only inputs to the computation engine; it never mutates them.
type PayrollEntry struct {
	ID                string
	RunID             string
	OrganizationID    string
	EmployeeID        string
	GrossEarnings     decimal.Decimal
	EarningsBreakdown []EarningComponent
	PFEmployee        *decimal.Decimal // precomputed, may be absent
	PFEmployer        *decimal.Decimal
	NetPay            decimal.Decimal
	TDSAmount         *decimal.Decimal
	ESIEmployee       *decimal.Decimal
	TotalDeductions   *decimal.Decimal
	LWPDays           decimal.Decimal
	WorkingDays       decimal.Decimal
	PaidDays          decimal.Decimal
	AnnualCTC         *decimal.Decimal
	CreatedAt         time.Time

	// Joined fields
	EmployeeName *string
	Department   *string
	JobTitle     *string
}
