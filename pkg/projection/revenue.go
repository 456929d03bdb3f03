// Package projection implements the deterministic monthly revenue and
// expense projections for an investment project.
//
// Projections are strictly deterministic: a 0% variation rate produces a
// constant series with no injected noise, and a nonzero rate compounds
// month over month. Stochastic scenario generation is deliberately not part
// of this package.
package projection

import (
	"github.com/iwvelando/project-appraisal/pkg/constants"
	"github.com/iwvelando/project-appraisal/pkg/mathutil"
)

// RevenueConfig holds the parameters of the fines-based revenue model.
type RevenueConfig struct {
	DailyFineCount         float64
	DiscountedFineValue    float64
	VoluntaryPaymentPct    float64
	OperatingCollectionPct float64
	// MonthlyVariationPct is the compound month-over-month growth (positive)
	// or decay (negative) rate, in percent. Exactly 0 yields a constant series.
	MonthlyVariationPct float64
}

// RevenueDetail exposes the intermediate values of the base revenue
// calculation for audit and reporting.
type RevenueDetail struct {
	MonthlyFines     float64
	TheoreticalGross float64
	VoluntaryPayment float64
	OperatingBase    float64
}

// ProjectRevenue builds the monthly operating revenue series. It returns the
// series (entries rounded to 2 decimals), the unrounded base monthly revenue,
// and the calculation breakdown.
func ProjectRevenue(cfg RevenueConfig, months int) ([]float64, float64, RevenueDetail) {
	monthlyFines := cfg.DailyFineCount * constants.DaysPerMonth
	theoreticalGross := monthlyFines * cfg.DiscountedFineValue
	voluntaryPayment := theoreticalGross * (cfg.VoluntaryPaymentPct / constants.PercentageMultiplier)
	operatingBase := voluntaryPayment * (cfg.OperatingCollectionPct / constants.PercentageMultiplier)

	detail := RevenueDetail{
		MonthlyFines:     monthlyFines,
		TheoreticalGross: theoreticalGross,
		VoluntaryPayment: voluntaryPayment,
		OperatingBase:    operatingBase,
	}

	if months <= 0 {
		return nil, operatingBase, detail
	}

	series := make([]float64, months)
	for m := 0; m < months; m++ {
		if cfg.MonthlyVariationPct == 0 {
			series[m] = mathutil.Round(operatingBase)
		} else {
			series[m] = mathutil.Round(operatingBase * compoundFactor(cfg.MonthlyVariationPct, m))
		}
	}
	return series, operatingBase, detail
}
