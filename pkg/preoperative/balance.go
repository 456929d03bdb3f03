// Package preoperative tracks the month-by-month depletion of the initial
// investment during the pre-operative phase, before operations begin.
package preoperative

import (
	"github.com/iwvelando/project-appraisal/pkg/mathutil"
)

// BalanceRecord is one month of the pre-operative phase. Records are created
// in bulk by Track and are read-only afterward.
type BalanceRecord struct {
	Month               int
	AllocatedInvestment float64
	OperatingCost       float64
	NetAvailable        float64
	CumulativeBalance   float64
	PercentAmortized    float64
}

// Track computes the pre-operative balance records for months 1..months. Each
// month receives its share of the investment from the distribution schedule
// and is charged a uniform share of the pooled monthly costs: costs are not
// staged per concept per month, they are summed and divided evenly across all
// months regardless of individual concept magnitude.
//
// It returns the ordered records and the final cumulative balance rounded to
// two decimals. A positive final balance is a surplus carried into the first
// operating month; negative is a deficit. The distribution is not required to
// sum to the investment; that check is a caller-level advisory warning.
func Track(initialInvestment float64, months int, distribution map[int]float64, costs map[string]float64) ([]BalanceRecord, float64) {
	if initialInvestment <= 0 || months < 1 {
		return nil, 0
	}

	totalCosts := 0.0
	for _, amount := range costs {
		totalCosts += amount
	}
	costPerMonth := totalCosts / float64(months)

	records := make([]BalanceRecord, 0, months)
	cumulative := 0.0
	for month := 1; month <= months; month++ {
		allocated := distribution[month]
		netAvailable := allocated - costPerMonth
		cumulative += netAvailable

		records = append(records, BalanceRecord{
			Month:               month,
			AllocatedInvestment: mathutil.Round(allocated),
			OperatingCost:       mathutil.Round(costPerMonth),
			NetAvailable:        mathutil.Round(netAvailable),
			CumulativeBalance:   mathutil.Round(cumulative),
			PercentAmortized:    mathutil.Round(mathutil.CalculatePercentage(cumulative, initialInvestment)),
		})
	}

	return records, mathutil.Round(cumulative)
}
