// Package irr implements a spreadsheet-compatible internal rate of return
// solver using Newton-Raphson iteration.
package irr

import (
	"errors"
	"math"

	"github.com/iwvelando/project-appraisal/pkg/constants"
	"go.uber.org/zap"
)

// ErrNotComputable is returned whenever a rate cannot be produced: no sign
// change in the extended series, a vanished derivative, an exhausted
// iteration budget, or a converged root outside plausible bounds. All of
// these collapse to the single error the way a spreadsheet collapses them to
// #NUM!; callers are not expected to distinguish sub-causes.
var ErrNotComputable = errors.New("IRR not computable")

// Solver holds the Newton-Raphson parameters. The zero value is not usable;
// construct one with NewSolver, which applies the spreadsheet defaults.
type Solver struct {
	Guess         float64
	Tolerance     float64
	MaxIterations int
	logger        *zap.Logger
}

// NewSolver creates a solver with spreadsheet-compatible defaults
// (guess 10%, tolerance 1e-7, 20 iterations).
func NewSolver(logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		Guess:         constants.IRRDefaultGuess,
		Tolerance:     constants.IRRTolerance,
		MaxIterations: constants.IRRMaxIterations,
		logger:        logger,
	}
}

// Solve computes the periodic internal rate of return for the series
// [-initialInvestment, flows...]. The result is a per-period (monthly) rate;
// annualizing is a separate step via Annualize. Invalid input (empty flows,
// non-positive investment) and all solver failures return ErrNotComputable.
func (s *Solver) Solve(flows []float64, initialInvestment float64) (float64, error) {
	if len(flows) == 0 || initialInvestment <= 0 {
		return 0, ErrNotComputable
	}

	values := make([]float64, 0, len(flows)+1)
	values = append(values, -math.Abs(initialInvestment))
	values = append(values, flows...)

	// The extended series must contain at least one strictly positive and
	// one strictly negative flow, otherwise no root exists.
	var hasPositive, hasNegative bool
	for _, v := range values {
		if v > 0 {
			hasPositive = true
		}
		if v < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0, ErrNotComputable
	}

	r := s.Guess
	for iteration := 0; iteration < s.MaxIterations; iteration++ {
		if r <= -1+constants.IRRDerivativeEpsilon {
			// Avoid raising a non-positive base to a real power.
			r = -1 + constants.IRRDerivativeEpsilon
		}

		var npv, dnpv float64
		for t, cf := range values {
			if t == 0 {
				// t=0 contributes its value directly; its derivative term is zero.
				npv += cf
				continue
			}
			npv += cf / math.Pow(1+r, float64(t))
			dnpv += -float64(t) * cf / math.Pow(1+r, float64(t+1))
		}

		if math.Abs(dnpv) < constants.IRRDerivativeEpsilon {
			s.logger.Debug("IRR derivative vanished",
				zap.String("op", "irr.Solve"),
				zap.Int("iteration", iteration),
				zap.Float64("rate", r),
			)
			return 0, ErrNotComputable
		}

		rNew := r - npv/dnpv
		if math.Abs(rNew-r) <= s.Tolerance {
			if !plausible(rNew) {
				s.logger.Debug("IRR converged outside plausible bounds",
					zap.String("op", "irr.Solve"),
					zap.Float64("rate", rNew),
				)
				return 0, ErrNotComputable
			}
			s.logger.Debug("IRR converged",
				zap.String("op", "irr.Solve"),
				zap.Int("iterations", iteration+1),
				zap.Float64("rate", rNew),
			)
			return rNew, nil
		}
		r = rNew
	}

	return 0, ErrNotComputable
}

// plausible rejects numerically unstable roots, e.g. from near-zero
// investment degenerate cases.
func plausible(r float64) bool {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return false
	}
	if math.Abs(r) > constants.IRRPeriodicBound {
		return false
	}
	if r < constants.IRRPeriodicFloor {
		return false
	}
	return true
}

// Annualize converts a periodic (monthly) rate to its annual equivalent via
// (1+r)^12 - 1. Implausibly large results are rejected with ErrNotComputable.
func Annualize(periodic float64) (float64, error) {
	annual := math.Pow(1+periodic, constants.MonthsPerYear) - 1
	if math.IsNaN(annual) || math.IsInf(annual, 0) {
		return 0, ErrNotComputable
	}
	if math.Abs(annual) > constants.IRRAnnualizedBound {
		return 0, ErrNotComputable
	}
	return annual, nil
}
