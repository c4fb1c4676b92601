package export

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/export"
	"github.com/zenithly-hr/payroll-backend-go/internal/domain/payroll"
)

// EPF scheme wage ceiling and contribution rates
var (
	wageCeiling      = decimal.NewFromInt(15000)
	basicFallbackPct = decimal.NewFromFloat(0.4)
	pfEmployeeRate   = decimal.NewFromFloat(0.12)
	epsEmployerRate  = decimal.NewFromFloat(0.0833)
	pfEmployerRate   = decimal.NewFromFloat(0.0367)
	edliRate         = decimal.NewFromFloat(0.005)
)

type ContributionCalculator struct {
}

func NewContributionCalculator() *ContributionCalculator {
	return &ContributionCalculator{}
}

// Calculate derives the PF deposit figures for one payroll entry. It is total
// over any structurally valid entry: absent inputs resolve to the documented
// fallbacks, never to an error. Every derived amount is rounded half away
// from zero to the nearest whole currency unit.
func (c *ContributionCalculator) Calculate(entry payroll.PayrollEntry) export.StatutoryContribution {
	basicMonthly := c.basicMonthly(entry)

	epfWages := decimal.Min(basicMonthly, wageCeiling)
	epsWages := decimal.Min(epfWages, wageCeiling)
	edliWages := epsWages

	var pfEmployee decimal.Decimal
	if entry.PFEmployee != nil {
		pfEmployee = *entry.PFEmployee
	} else {
		pfEmployee = epfWages.Mul(pfEmployeeRate).Round(0)
	}

	return export.StatutoryContribution{
		GrossWages:  entry.GrossEarnings,
		EPFWages:    epfWages,
		EPSWages:    epsWages,
		EDLIWages:   edliWages,
		PFEmployee:  pfEmployee,
		EPSEmployer: epsWages.Mul(epsEmployerRate).Round(0),
		PFEmployer:  epfWages.Mul(pfEmployerRate).Round(0),
		EDLI:        epsWages.Mul(edliRate).Round(0),
	}
}

// basicMonthly returns the monthly amount of the first breakdown component
// whose name contains "basic" (any case). Entries without such a component
// fall back to 40% of gross earnings, rounded.
// TODO: switch the lookup to a structured component type once the upstream
// processor emits one; the text match lives only here for that reason.
func (c *ContributionCalculator) basicMonthly(entry payroll.PayrollEntry) decimal.Decimal {
	for _, comp := range entry.EarningsBreakdown {
		if strings.Contains(strings.ToLower(comp.Name), "basic") {
			return comp.MonthlyAmount
		}
	}
	return entry.GrossEarnings.Mul(basicFallbackPct).Round(0)
}
