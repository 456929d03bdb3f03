package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/project-appraisal/pkg/constants"
)

// CheckDistributionSum compares the pre-operative distribution total against
// the initial investment. Deviations beyond the advisory tolerance (1% of the
// investment) produce a warning, never an error: the tracker computes a valid
// running balance either way.
func CheckDistributionSum(initialInvestment float64, distribution map[int]float64) string {
	if initialInvestment <= 0 {
		return ""
	}

	total := 0.0
	for _, amount := range distribution {
		total += amount
	}

	tolerance := initialInvestment * constants.DistributionTolerancePct / constants.PercentageMultiplier
	if math.Abs(total-initialInvestment) > tolerance {
		return fmt.Sprintf("pre-operative distribution sums to %.2f which deviates from the initial investment %.2f by more than %.0f%%",
			total, initialInvestment, constants.DistributionTolerancePct)
	}
	return ""
}

// ExpenseConcept is the minimal view of an expense entry needed for validation.
type ExpenseConcept struct {
	Concept string
	Amount  float64
}

// CheckExpenseConcepts flags entries an upstream ingestion collaborator
// should have filtered out: empty names, non-positive amounts, duplicate
// concepts, and NaN amounts.
func CheckExpenseConcepts(concepts []ExpenseConcept) []string {
	var warnings []string

	seen := make(map[string]struct{}, len(concepts))
	for i, entry := range concepts {
		if entry.Concept == "" {
			warnings = append(warnings, fmt.Sprintf("expense entry %d has an empty concept name", i+1))
		}
		if math.IsNaN(entry.Amount) {
			warnings = append(warnings, fmt.Sprintf("expense concept '%s' has a NaN amount", entry.Concept))
			continue
		}
		if entry.Amount <= 0 {
			warnings = append(warnings, fmt.Sprintf("expense concept '%s' has non-positive amount %.2f", entry.Concept, entry.Amount))
		}
		if _, ok := seen[entry.Concept]; ok {
			warnings = append(warnings, fmt.Sprintf("expense concept '%s' appears more than once; duplicates should be consolidated upstream", entry.Concept))
		}
		seen[entry.Concept] = struct{}{}
	}

	return warnings
}
