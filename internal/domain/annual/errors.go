package annual

import "errors"

var (
	ErrInvalidFinancialYear = errors.New("invalid financial year label")
	ErrNoLockedRuns         = errors.New("no locked payroll runs found for the financial year")
	ErrNoEntriesFound       = errors.New("no payroll entries found in the financial year's runs")
)
