package annual

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TaxSummary - One employee's year-to-date withholding totals across every
// locked run of a financial year. Keyed by (employee, organization, financial
// year); regenerating a year replaces the prior record instead of duplicating it.
type TaxSummary struct {
	ID             string
	EmployeeID     string
	OrganizationID string
	FinancialYear  string // "YYYY-YYYY" label, April-March window
	TotalSalary    decimal.Decimal
	TotalTDS       decimal.Decimal
	GeneratedAt    time.Time

	// Joined fields
	EmployeeName *string
}

// FinancialYear is an April-March reporting window parsed from a
// "YYYY-YYYY" label.
type FinancialYear struct {
	StartYear int
	Label     string
}

// ParseFinancialYear parses a "YYYY-YYYY" label. The second year must be
// exactly one greater than the first.
func ParseFinancialYear(label string) (FinancialYear, error) {
	if len(label) != 9 || label[4] != '-' {
		return FinancialYear{}, fmt.Errorf("%w: %q", ErrInvalidFinancialYear, label)
	}
	start, err := strconv.Atoi(label[:4])
	if err != nil {
		return FinancialYear{}, fmt.Errorf("%w: %q", ErrInvalidFinancialYear, label)
	}
	end, err := strconv.Atoi(label[5:])
	if err != nil || end != start+1 {
		return FinancialYear{}, fmt.Errorf("%w: %q", ErrInvalidFinancialYear, label)
	}
	return FinancialYear{StartYear: start, Label: label}, nil
}

// Window returns the inclusive pay-period bounds of the year:
// April 1 of the start year through March 31 of the following year.
func (fy FinancialYear) Window() (start, end string) {
	return fmt.Sprintf("%04d-04-01", fy.StartYear), fmt.Sprintf("%04d-03-31", fy.StartYear+1)
}
