package preoperative

import (
	"fmt"
	"math"
)

// Shape selects how GenerateDistribution spreads an amount across months.
type Shape string

const (
	// ShapeUniform splits the amount evenly.
	ShapeUniform Shape = "uniform"

	// ShapeIncreasing weights later months more (arithmetic ramp up).
	ShapeIncreasing Shape = "increasing"

	// ShapeDecreasing weights earlier months more (arithmetic ramp down).
	ShapeDecreasing Shape = "decreasing"

	// ShapeExponential compounds a per-month growth factor on an even split.
	ShapeExponential Shape = "exponential"
)

// GenerateDistribution builds a month-indexed (1-based) disbursement schedule
// for an amount. growthFactor only applies to ShapeExponential and is a
// decimal per-month rate (e.g. 0.02 for 2%).
func GenerateDistribution(amount float64, months int, shape Shape, growthFactor float64) (map[int]float64, error) {
	if months < 1 {
		return nil, fmt.Errorf("distribution requires at least 1 month, got %d", months)
	}

	distribution := make(map[int]float64, months)
	switch shape {
	case ShapeUniform, "":
		monthly := amount / float64(months)
		for month := 1; month <= months; month++ {
			distribution[month] = monthly
		}
	case ShapeIncreasing:
		weightSum := float64(months * (months + 1) / 2)
		for month := 1; month <= months; month++ {
			distribution[month] = amount * float64(month) / weightSum
		}
	case ShapeDecreasing:
		weightSum := float64(months * (months + 1) / 2)
		for month := 1; month <= months; month++ {
			distribution[month] = amount * float64(months-month+1) / weightSum
		}
	case ShapeExponential:
		monthly := amount / float64(months)
		for month := 1; month <= months; month++ {
			distribution[month] = monthly * math.Pow(1+growthFactor, float64(month-1))
		}
	default:
		return nil, fmt.Errorf("unknown distribution shape %q", shape)
	}
	return distribution, nil
}
