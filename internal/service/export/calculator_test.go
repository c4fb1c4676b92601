package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestCalculate_BasicComponentMatch(t *testing.T) {
	calc := NewContributionCalculator()

	cases := []struct {
		name      string
		breakdown []payroll.EarningComponent
		wantBasic string
	}{
		{
			name: "exact name",
			breakdown: []payroll.EarningComponent{
				{Name: "Basic Pay", MonthlyAmount: dec(20000)},
			},
			wantBasic: "20000",
		},
		{
			name: "lowercase substring",
			breakdown: []payroll.EarningComponent{
				{Name: "monthly basic wages", MonthlyAmount: dec(12000)},
			},
			wantBasic: "12000",
		},
		{
			name: "not in first position",
			breakdown: []payroll.EarningComponent{
				{Name: "HRA", MonthlyAmount: dec(8000)},
				{Name: "BASIC", MonthlyAmount: dec(14000)},
				{Name: "Special Allowance", MonthlyAmount: dec(3000)},
			},
			wantBasic: "14000",
		},
		{
			name: "first matching component wins",
			breakdown: []payroll.EarningComponent{
				{Name: "Basic Pay", MonthlyAmount: dec(10000)},
				{Name: "Basic Arrears", MonthlyAmount: dec(999)},
			},
			wantBasic: "10000",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			entry := payroll.PayrollEntry{
				GrossEarnings:     dec(50000),
				EarningsBreakdown: c.breakdown,
			}
			got := calc.basicMonthly(entry)
			assert.Equal(t, c.wantBasic, got.String())
		})
	}
}

func TestCalculate_BasicFallbackToGrossFraction(t *testing.T) {
	calc := NewContributionCalculator()

	entry := payroll.PayrollEntry{
		GrossEarnings: dec(30000),
		EarningsBreakdown: []payroll.EarningComponent{
			{Name: "HRA", MonthlyAmount: dec(12000)},
		},
	}

	// 40% of gross, rounded
	assert.Equal(t, "12000", calc.basicMonthly(entry).String())

	// Empty breakdown falls back too
	entry.EarningsBreakdown = nil
	assert.Equal(t, "12000", calc.basicMonthly(entry).String())
}

func TestCalculate_WageCeiling(t *testing.T) {
	calc := NewContributionCalculator()

	entry := payroll.PayrollEntry{
		GrossEarnings: dec(100000),
		EarningsBreakdown: []payroll.EarningComponent{
			{Name: "Basic Pay", MonthlyAmount: dec(60000)},
		},
	}

	c := calc.Calculate(entry)
	assert.Equal(t, "15000", c.EPFWages.String())
	assert.Equal(t, "15000", c.EPSWages.String())
	assert.Equal(t, "15000", c.EDLIWages.String())

	// Below the ceiling, wages pass through unclamped
	entry.EarningsBreakdown[0].MonthlyAmount = dec(9000)
	c = calc.Calculate(entry)
	assert.Equal(t, "9000", c.EPFWages.String())
	assert.Equal(t, "9000", c.EPSWages.String())
}

func TestCalculate_PrecomputedPFEmployeePassesThrough(t *testing.T) {
	calc := NewContributionCalculator()

	entry := payroll.PayrollEntry{
		GrossEarnings: dec(50000),
		EarningsBreakdown: []payroll.EarningComponent{
			{Name: "Basic Pay", MonthlyAmount: dec(20000)},
		},
		PFEmployee: decPtr(1750),
	}

	c := calc.Calculate(entry)
	assert.Equal(t, "1750", c.PFEmployee.String())

	// Employer-side figures still derive from the wage bases
	assert.Equal(t, "1250", c.EPSEmployer.String())
	assert.Equal(t, "551", c.PFEmployer.String())
}

func TestCalculate_StatutoryExample(t *testing.T) {
	calc := NewContributionCalculator()

	entry := payroll.PayrollEntry{
		GrossEarnings: dec(50000),
		EarningsBreakdown: []payroll.EarningComponent{
			{Name: "Basic Pay", MonthlyAmount: dec(20000)},
		},
	}

	c := calc.Calculate(entry)
	assert.Equal(t, "50000", c.GrossWages.String())
	assert.Equal(t, "15000", c.EPFWages.String())
	assert.Equal(t, "15000", c.EPSWages.String())
	assert.Equal(t, "15000", c.EDLIWages.String())
	assert.Equal(t, "1800", c.PFEmployee.String())  // 15000 x 0.12
	assert.Equal(t, "1250", c.EPSEmployer.String()) // 15000 x 0.0833 = 1249.5, rounds up
	assert.Equal(t, "551", c.PFEmployer.String())   // 15000 x 0.0367 = 550.5, rounds up
	assert.Equal(t, "75", c.EDLI.String())          // 15000 x 0.005
}

func TestCalculate_RoundingHalfAwayFromZero(t *testing.T) {
	calc := NewContributionCalculator()

	// 9500 x 0.0833 = 791.35 -> 791; 9500 x 0.0367 = 348.65 -> 349
	entry := payroll.PayrollEntry{
		GrossEarnings: dec(25000),
		EarningsBreakdown: []payroll.EarningComponent{
			{Name: "Basic", MonthlyAmount: dec(9500)},
		},
	}

	c := calc.Calculate(entry)
	assert.Equal(t, "1140", c.PFEmployee.String()) // 9500 x 0.12
	assert.Equal(t, "791", c.EPSEmployer.String())
	assert.Equal(t, "349", c.PFEmployer.String())
	assert.Equal(t, "48", c.EDLI.String()) // 47.5 rounds away from zero
}
