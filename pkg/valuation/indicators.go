// Package valuation implements the standard capital-budgeting indicator
// formulas: net present value, return on investment, and payback period.
package valuation

import (
	"math"

	"github.com/iwvelando/project-appraisal/pkg/constants"
)

// NPV discounts a monthly flow series against an annual discount rate
// (expressed as a decimal) and subtracts the initial investment:
//
//	NPV = -investment + sum(flow_t / (1+monthlyRate)^t) for t=1..n
//
// The annual rate is converted to monthly via (1+annual)^(1/12) - 1. Invalid
// input (empty flows, non-positive investment) returns 0.
func NPV(flows []float64, initialInvestment, annualDiscountRate float64) float64 {
	if len(flows) == 0 || initialInvestment <= 0 {
		return 0
	}

	monthlyRate := math.Pow(1+annualDiscountRate, 1.0/constants.MonthsPerYear) - 1

	npv := -math.Abs(initialInvestment)
	for t, flow := range flows {
		presentValue := flow / math.Pow(1+monthlyRate, float64(t+1))
		if math.IsNaN(presentValue) || math.IsInf(presentValue, 0) {
			break
		}
		npv += presentValue
	}
	return npv
}

// ROI computes the undiscounted percentage return relative to the initial
// investment. Invalid input returns 0.
func ROI(flows []float64, initialInvestment float64) float64 {
	if len(flows) == 0 || initialInvestment <= 0 {
		return 0
	}

	total := 0.0
	for _, flow := range flows {
		total += flow
	}
	return ((total - initialInvestment) / initialInvestment) * constants.PercentageMultiplier
}

// PayoffResult describes when (and whether) cumulative flows recover the
// initial investment.
type PayoffResult struct {
	Recovered           bool
	Months              float64 // fractional, via linear interpolation
	Years               float64
	FinalCumulativeFlow float64
	Shortfall           float64 // only set when not recovered
}

// Payback accumulates flows until the cumulative total reaches the initial
// investment and linearly interpolates the fractional month within the
// recovery period. If the investment is never recovered the result reports
// the total elapsed months and the remaining shortfall.
func Payback(flows []float64, initialInvestment float64) PayoffResult {
	if len(flows) == 0 || initialInvestment <= 0 {
		return PayoffResult{Shortfall: initialInvestment}
	}

	cumulative := 0.0
	for i, flow := range flows {
		cumulative += flow
		if cumulative >= initialInvestment {
			previous := cumulative - flow
			fraction := 0.0
			if flow > 0 {
				fraction = (initialInvestment - previous) / flow
			}
			exact := math.Max(0, float64(i)+fraction)
			return PayoffResult{
				Recovered:           true,
				Months:              exact,
				Years:               exact / constants.MonthsPerYear,
				FinalCumulativeFlow: cumulative,
			}
		}
	}

	return PayoffResult{
		Recovered:           false,
		Months:              float64(len(flows)),
		Years:               float64(len(flows)) / constants.MonthsPerYear,
		FinalCumulativeFlow: cumulative,
		Shortfall:           initialInvestment - cumulative,
	}
}
