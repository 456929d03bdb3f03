// Package appraisal defines the data structures for a full project
// evaluation and includes the function for computing it.
package appraisal

import (
	"errors"
	"fmt"

	"github.com/iwvelando/project-appraisal/internal/config"
	"github.com/iwvelando/project-appraisal/pkg/cashflow"
	"github.com/iwvelando/project-appraisal/pkg/irr"
	"github.com/iwvelando/project-appraisal/pkg/preoperative"
	"github.com/iwvelando/project-appraisal/pkg/projection"
	"github.com/iwvelando/project-appraisal/pkg/sensitivity"
	"github.com/iwvelando/project-appraisal/pkg/valuation"
	"go.uber.org/zap"
)

// Indicators holds the capital-budgeting indicators for one project.
// IRRComputable is false when the solver returned its not-computable outcome;
// the rate fields are then zero and must not be interpreted.
type Indicators struct {
	IRRPeriodic   float64
	IRRAnnualized float64
	IRRComputable bool
	NPV           float64
	ROI           float64
	Payback       valuation.PayoffResult
	DiscountRate  float64
}

// Appraisal holds all series and indicators computed for a project. All
// derived data lives here, owned by the caller; no component retains a copy.
type Appraisal struct {
	Name string

	RevenueSeries  []float64
	ExpenseSeries  []float64
	CashFlowSeries []float64

	RevenueBase   float64
	RevenueDetail projection.RevenueDetail
	ExpenseBase   float64
	ExpenseDetail []map[string]float64

	Preoperative []preoperative.BalanceRecord
	CarryOver    float64

	Indicators  Indicators
	Sensitivity *sensitivity.Grid
}

// Run evaluates the configured project: projects the revenue and expense
// series, folds in the pre-operative carry-over, assembles the cash-flow
// series, and computes the indicators plus the optional sensitivity grid.
func Run(logger *zap.Logger, conf config.Configuration) (*Appraisal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if conf.Project.InitialInvestment <= 0 {
		return nil, fmt.Errorf("initial investment must be positive, got %.2f", conf.Project.InitialInvestment)
	}
	if conf.Project.OperatingMonths < 1 {
		return nil, fmt.Errorf("operating months must be at least 1, got %d", conf.Project.OperatingMonths)
	}

	result := &Appraisal{Name: conf.Project.Name}

	// Pre-operative phase, when configured.
	if conf.Project.PreoperativeMonths >= 1 {
		distribution, err := conf.DistributionMap()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pre-operative distribution: %w", err)
		}
		result.Preoperative, result.CarryOver = preoperative.Track(
			conf.Project.InitialInvestment,
			conf.Project.PreoperativeMonths,
			distribution,
			conf.CostsMap(),
		)
		logger.Debug("pre-operative phase tracked",
			zap.String("op", "appraisal.Run"),
			zap.Int("months", conf.Project.PreoperativeMonths),
			zap.Float64("carryOver", result.CarryOver),
		)
	}

	// Monthly projections.
	result.RevenueSeries, result.RevenueBase, result.RevenueDetail = projection.ProjectRevenue(
		conf.RevenueConfig(), conf.Project.OperatingMonths)

	expenses := projection.ProjectExpenses(
		conf.ExpenseBase(), conf.Project.OperatingMonths, conf.Project.ExpenseVariationPct)
	result.ExpenseSeries = expenses.Series
	result.ExpenseBase = expenses.BaseTotal
	result.ExpenseDetail = expenses.Detail

	flows, err := cashflow.Assemble(result.RevenueSeries, result.ExpenseSeries, result.CarryOver)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble cash-flow series: %w", err)
	}
	result.CashFlowSeries = flows

	result.Indicators = computeIndicators(logger, flows, conf.Project.InitialInvestment, conf.Project.DiscountRate.Total())

	if conf.Sensitivity.Enabled {
		analyzer := sensitivity.NewAnalyzer(logger)
		grid := analyzer.Sweep(
			conf.Sensitivity.RevenueVariations,
			conf.Sensitivity.ExpenseVariations,
			conf.Project.DiscountRate.Total(),
			result.RevenueSeries,
			result.ExpenseSeries,
			conf.Project.InitialInvestment,
		)
		result.Sensitivity = &grid
	}

	logger.Info("appraisal computed",
		zap.String("op", "appraisal.Run"),
		zap.String("project", conf.Project.Name),
		zap.Int("operatingMonths", conf.Project.OperatingMonths),
		zap.Bool("irrComputable", result.Indicators.IRRComputable),
	)

	return result, nil
}

func computeIndicators(logger *zap.Logger, flows []float64, initialInvestment, annualDiscountRate float64) Indicators {
	indicators := Indicators{
		DiscountRate: annualDiscountRate,
		NPV:          valuation.NPV(flows, initialInvestment, annualDiscountRate),
		ROI:          valuation.ROI(flows, initialInvestment),
		Payback:      valuation.Payback(flows, initialInvestment),
	}

	solver := irr.NewSolver(logger)
	periodic, err := solver.Solve(flows, initialInvestment)
	if err != nil {
		if !errors.Is(err, irr.ErrNotComputable) {
			logger.Warn("unexpected IRR solver failure",
				zap.String("op", "appraisal.computeIndicators"),
				zap.Error(err),
			)
		}
		return indicators
	}

	annualized, err := irr.Annualize(periodic)
	if err != nil {
		// An implausible annualized rate invalidates the root as a whole.
		logger.Debug("annualized IRR rejected",
			zap.String("op", "appraisal.computeIndicators"),
			zap.Float64("periodic", periodic),
		)
		return indicators
	}

	indicators.IRRPeriodic = periodic
	indicators.IRRAnnualized = annualized
	indicators.IRRComputable = true
	return indicators
}
