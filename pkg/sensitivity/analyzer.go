// Package sensitivity sweeps percentage perturbations over base revenue and
// expense series, recomputing IRR and NPV at every grid point.
package sensitivity

import (
	"errors"

	"github.com/iwvelando/project-appraisal/pkg/cashflow"
	"github.com/iwvelando/project-appraisal/pkg/irr"
	"github.com/iwvelando/project-appraisal/pkg/mathutil"
	"github.com/iwvelando/project-appraisal/pkg/valuation"
	"go.uber.org/zap"
)

// Grid holds the sweep result. Matrices are row-major with the expense
// variation as the row axis and the revenue variation as the column axis:
// IRR[i][j] corresponds to (ExpenseVariations[i], RevenueVariations[j]).
type Grid struct {
	RevenueVariations []float64
	ExpenseVariations []float64
	IRR               [][]float64
	NPV               [][]float64
}

// Analyzer runs sensitivity sweeps. IRRSentinel is recorded for cells whose
// IRR is not computable so one degenerate cell never aborts the grid; it
// defaults to 0.
type Analyzer struct {
	IRRSentinel float64
	solver      *irr.Solver
	logger      *zap.Logger
}

// NewAnalyzer creates an analyzer with a spreadsheet-compatible IRR solver.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		solver: irr.NewSolver(logger),
		logger: logger,
	}
}

// Sweep perturbs every base revenue entry by each revenue variation and every
// base expense entry by each expense variation (both in percent), reassembles
// the cash-flow series, and records IRR and NPV per cell. Missing base series
// yield an empty grid. The base series are never modified.
func (a *Analyzer) Sweep(revenueVariations, expenseVariations []float64, annualDiscountRate float64,
	baseRevenue, baseExpense []float64, initialInvestment float64) Grid {

	grid := Grid{
		RevenueVariations: revenueVariations,
		ExpenseVariations: expenseVariations,
	}

	if len(baseRevenue) == 0 || len(baseExpense) == 0 || len(baseRevenue) != len(baseExpense) {
		a.logger.Warn("sensitivity sweep skipped: missing or mismatched base series",
			zap.String("op", "sensitivity.Sweep"),
			zap.Int("revenueMonths", len(baseRevenue)),
			zap.Int("expenseMonths", len(baseExpense)),
		)
		return grid
	}

	grid.IRR = make([][]float64, 0, len(expenseVariations))
	grid.NPV = make([][]float64, 0, len(expenseVariations))

	for _, expensePct := range expenseVariations {
		irrRow := make([]float64, 0, len(revenueVariations))
		npvRow := make([]float64, 0, len(revenueVariations))

		for _, revenuePct := range revenueVariations {
			flows := a.perturbedFlows(baseRevenue, baseExpense, revenuePct, expensePct)

			rate, err := a.solver.Solve(flows, initialInvestment)
			if err != nil {
				if !errors.Is(err, irr.ErrNotComputable) {
					a.logger.Warn("unexpected IRR failure in sweep",
						zap.String("op", "sensitivity.Sweep"),
						zap.Error(err),
					)
				}
				a.logger.Debug("IRR not computable for grid cell",
					zap.String("op", "sensitivity.Sweep"),
					zap.Float64("revenuePct", revenuePct),
					zap.Float64("expensePct", expensePct),
				)
				rate = a.IRRSentinel
			}
			irrRow = append(irrRow, rate)
			npvRow = append(npvRow, valuation.NPV(flows, initialInvestment, annualDiscountRate))
		}

		grid.IRR = append(grid.IRR, irrRow)
		grid.NPV = append(grid.NPV, npvRow)
	}

	return grid
}

func (a *Analyzer) perturbedFlows(baseRevenue, baseExpense []float64, revenuePct, expensePct float64) []float64 {
	revenue := make([]float64, len(baseRevenue))
	expense := make([]float64, len(baseExpense))
	for i := range baseRevenue {
		revenue[i] = mathutil.ApplyPercentage(baseRevenue[i], revenuePct)
		expense[i] = mathutil.ApplyPercentage(baseExpense[i], expensePct)
	}

	// Lengths are validated by the caller, so assembly cannot fail here.
	flows, _ := cashflow.Assemble(revenue, expense, 0)
	return flows
}
