// Package cashflow provides cash-flow series assembly and conditioning
// utilities shared by the indicator calculations.
package cashflow

import (
	"fmt"
	"math"

	"github.com/iwvelando/project-appraisal/pkg/constants"
)

// Mode selects how Normalize interprets its input series.
type Mode string

const (
	// ModePeriod treats the series as already being per-period flows.
	ModePeriod Mode = "period"

	// ModeCumulative treats the series as a running balance and converts it
	// to per-period flows by first difference.
	ModeCumulative Mode = "cumulative"

	// ModeAuto guesses between the two. The heuristic is best-effort and may
	// misclassify short or ambiguous series; callers that know their input
	// shape should pass it explicitly.
	ModeAuto Mode = "auto"
)

// Normalize conditions a flow series into per-period flows according to mode.
// The input slice is never modified.
func Normalize(flows []float64, mode Mode) ([]float64, error) {
	switch mode {
	case ModePeriod:
		return append([]float64(nil), flows...), nil
	case ModeCumulative:
		return firstDifference(flows), nil
	case ModeAuto:
		if looksCumulative(flows) {
			return Normalize(flows, ModeCumulative)
		}
		return append([]float64(nil), flows...), nil
	default:
		return nil, fmt.Errorf("expected normalization mode of %s, %s, or %s, got %s",
			ModePeriod, ModeCumulative, ModeAuto, mode)
	}
}

// firstDifference keeps the first entry as-is and replaces every subsequent
// entry with its delta from the previous one.
func firstDifference(flows []float64) []float64 {
	if len(flows) <= 1 {
		return append([]float64(nil), flows...)
	}

	period := make([]float64, len(flows))
	period[0] = flows[0]
	for i := 1; i < len(flows); i++ {
		period[i] = flows[i] - flows[i-1]
	}
	return period
}

// looksCumulative reports whether the series resembles a running balance:
// consecutive entries move by small steps relative to their magnitude.
func looksCumulative(flows []float64) bool {
	if len(flows) <= constants.CumulativeDetectionMinLength {
		return false
	}

	var diffSum, valueSum float64
	for i := 1; i < len(flows); i++ {
		diffSum += math.Abs(flows[i] - flows[i-1])
		valueSum += math.Abs(flows[i])
	}

	n := float64(len(flows) - 1)
	meanDiff := diffSum / n
	meanValue := valueSum / n
	if meanValue <= 0 {
		return false
	}
	return meanDiff < constants.CumulativeDetectionRatio*meanValue
}

// Cumulative returns the running sum of a per-period flow series. It is the
// inverse of Normalize with ModeCumulative.
func Cumulative(flows []float64) []float64 {
	cumulative := make([]float64, len(flows))
	running := 0.0
	for i, flow := range flows {
		running += flow
		cumulative[i] = running
	}
	return cumulative
}

// Assemble combines a revenue and an expense series into the net monthly
// cash-flow series. A nonzero pre-operative carry-over balance is folded into
// the first operating month only.
func Assemble(revenue, expense []float64, carryOver float64) ([]float64, error) {
	if len(revenue) == 0 || len(expense) == 0 {
		return nil, fmt.Errorf("revenue and expense series must be non-empty")
	}
	if len(revenue) != len(expense) {
		return nil, fmt.Errorf("revenue series has %d months but expense series has %d",
			len(revenue), len(expense))
	}

	flows := make([]float64, len(revenue))
	for i := range revenue {
		flows[i] = revenue[i] - expense[i]
	}
	if carryOver != 0 {
		flows[0] += carryOver
	}
	return flows, nil
}
