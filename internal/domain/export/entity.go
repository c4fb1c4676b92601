package export

import "github.com/shopspring/decimal"

// StatutoryContribution holds the wage bases and contribution amounts the
// PF deposit (ECR) filing requires for one payroll entry. All amounts are
// whole currency units, rounded half away from zero.
type StatutoryContribution struct {
	GrossWages  decimal.Decimal
	EPFWages    decimal.Decimal // basic pay clamped to the statutory wage ceiling
	EPSWages    decimal.Decimal
	EDLIWages   decimal.Decimal
	PFEmployee  decimal.Decimal // employee provident fund share
	EPSEmployer decimal.Decimal // employer pension scheme share
	PFEmployer  decimal.Decimal // employer provident fund share (residual rate)
	EDLI        decimal.Decimal // deposit-linked insurance
}
