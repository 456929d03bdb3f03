package projection

import (
	"math"

	"github.com/iwvelando/project-appraisal/pkg/constants"
	"github.com/iwvelando/project-appraisal/pkg/mathutil"
)

// ConceptAmount is one named expense concept and its monthly base amount.
// Concepts are kept as an ordered list so reporting preserves the order the
// caller supplied them in; ordering carries no computational meaning.
type ConceptAmount struct {
	Concept string
	Amount  float64
}

// ExpenseProjection is the result of ProjectExpenses.
type ExpenseProjection struct {
	// Series is the monthly total series, entries rounded to 2 decimals.
	Series []float64
	// BaseTotal is the unrounded sum of all base concept amounts.
	BaseTotal float64
	// Detail holds, per month, the per-concept amounts for audit/reporting.
	Detail []map[string]float64
}

// ProjectExpenses builds the monthly expense series from per-concept base
// amounts. All concepts scale by the same compound factor, so relative
// weights between concepts never shift. At a variation rate of exactly 0
// every month equals the base total and every concept's detail equals its
// base amount unchanged.
func ProjectExpenses(base []ConceptAmount, months int, variationPct float64) ExpenseProjection {
	baseTotal := 0.0
	for _, item := range base {
		baseTotal += item.Amount
	}

	projection := ExpenseProjection{BaseTotal: baseTotal}
	if months <= 0 {
		return projection
	}

	projection.Series = make([]float64, months)
	projection.Detail = make([]map[string]float64, months)
	for m := 0; m < months; m++ {
		detail := make(map[string]float64, len(base))
		if variationPct == 0 {
			for _, item := range base {
				detail[item.Concept] = item.Amount
			}
			projection.Series[m] = mathutil.Round(baseTotal)
		} else {
			factor := compoundFactor(variationPct, m)
			for _, item := range base {
				detail[item.Concept] = mathutil.Round(item.Amount * factor)
			}
			projection.Series[m] = mathutil.Round(baseTotal * factor)
		}
		projection.Detail[m] = detail
	}
	return projection
}

// compoundFactor is (1 + rate/100)^m for 0-indexed month m.
func compoundFactor(ratePct float64, month int) float64 {
	return math.Pow(1+ratePct/constants.PercentageMultiplier, float64(month))
}
