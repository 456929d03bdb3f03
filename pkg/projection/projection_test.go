package projection

import (
	"math"
	"testing"
)

func TestProjectRevenueConstantSeries(t *testing.T) {
	cfg := RevenueConfig{
		DailyFineCount:         100,
		DiscountedFineValue:    50,
		VoluntaryPaymentPct:    70,
		OperatingCollectionPct: 85,
		MonthlyVariationPct:    0,
	}

	series, base, detail := ProjectRevenue(cfg, 12)
	if len(series) != 12 {
		t.Fatalf("ProjectRevenue() returned %d months, expected 12", len(series))
	}

	// 100 fines/day * 30 days * 50 * 0.70 * 0.85
	expected := 89250.0
	if math.Abs(base-expected) > 0.01 {
		t.Errorf("base revenue = %.2f, expected %.2f", base, expected)
	}
	for m, value := range series {
		if math.Abs(value-expected) > 0.01 {
			t.Errorf("month %d revenue = %.2f, expected constant %.2f", m, value, expected)
		}
	}

	if math.Abs(detail.MonthlyFines-3000) > 0.01 {
		t.Errorf("detail.MonthlyFines = %.2f, expected 3000", detail.MonthlyFines)
	}
	if math.Abs(detail.TheoreticalGross-150000) > 0.01 {
		t.Errorf("detail.TheoreticalGross = %.2f, expected 150000", detail.TheoreticalGross)
	}
	if math.Abs(detail.VoluntaryPayment-105000) > 0.01 {
		t.Errorf("detail.VoluntaryPayment = %.2f, expected 105000", detail.VoluntaryPayment)
	}
	if math.Abs(detail.OperatingBase-89250) > 0.01 {
		t.Errorf("detail.OperatingBase = %.2f, expected 89250", detail.OperatingBase)
	}
}

// Repeated projections with identical inputs must be identical; there is no
// stochastic component.
func TestProjectRevenueDeterministic(t *testing.T) {
	cfg := RevenueConfig{
		DailyFineCount:         80,
		DiscountedFineValue:    45,
		VoluntaryPaymentPct:    65,
		OperatingCollectionPct: 90,
		MonthlyVariationPct:    1.5,
	}

	first, _, _ := ProjectRevenue(cfg, 24)
	second, _, _ := ProjectRevenue(cfg, 24)
	for m := range first {
		if first[m] != second[m] {
			t.Fatalf("month %d differs between runs: %.4f vs %.4f", m, first[m], second[m])
		}
	}
}

func TestProjectRevenueGrowth(t *testing.T) {
	tests := []struct {
		name         string
		variationPct float64
		increasing   bool
	}{
		{name: "Positive rate grows strictly", variationPct: 2, increasing: true},
		{name: "Negative rate decays strictly", variationPct: -2, increasing: false},
	}

	cfg := RevenueConfig{
		DailyFineCount:         100,
		DiscountedFineValue:    50,
		VoluntaryPaymentPct:    70,
		OperatingCollectionPct: 85,
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.MonthlyVariationPct = tt.variationPct
			series, base, _ := ProjectRevenue(cfg, 12)

			if math.Abs(series[0]-base) > 0.01 {
				t.Errorf("first month = %.2f, expected base %.2f", series[0], base)
			}
			for m := 1; m < len(series); m++ {
				if tt.increasing && series[m] <= series[m-1] {
					t.Errorf("month %d = %.2f not above month %d = %.2f", m, series[m], m-1, series[m-1])
				}
				if !tt.increasing && series[m] >= series[m-1] {
					t.Errorf("month %d = %.2f not below month %d = %.2f", m, series[m], m-1, series[m-1])
				}
			}

			// Closed-form check on the final month.
			expectedLast := base * math.Pow(1+tt.variationPct/100, 11)
			if math.Abs(series[11]-expectedLast) > 0.01 {
				t.Errorf("month 11 = %.2f, expected %.2f", series[11], expectedLast)
			}
		})
	}
}

func TestProjectRevenueZeroMonths(t *testing.T) {
	series, base, _ := ProjectRevenue(RevenueConfig{DailyFineCount: 10, DiscountedFineValue: 10}, 0)
	if series != nil {
		t.Errorf("ProjectRevenue() with 0 months returned %v, expected nil", series)
	}
	if base <= 0 {
		t.Errorf("base revenue = %.2f, expected positive even with no months", base)
	}
}

func TestProjectExpenses(t *testing.T) {
	base := []ConceptAmount{
		{Concept: "payroll", Amount: 30000},
		{Concept: "maintenance", Amount: 8000},
		{Concept: "utilities", Amount: 2000},
	}

	t.Run("Zero variation keeps base amounts", func(t *testing.T) {
		result := ProjectExpenses(base, 6, 0)
		if math.Abs(result.BaseTotal-40000) > 0.01 {
			t.Fatalf("BaseTotal = %.2f, expected 40000", result.BaseTotal)
		}
		for m, total := range result.Series {
			if math.Abs(total-40000) > 0.01 {
				t.Errorf("month %d total = %.2f, expected 40000", m, total)
			}
			if math.Abs(result.Detail[m]["payroll"]-30000) > 0.01 {
				t.Errorf("month %d payroll = %.2f, expected 30000", m, result.Detail[m]["payroll"])
			}
		}
	})

	t.Run("Concept weights survive compounding", func(t *testing.T) {
		result := ProjectExpenses(base, 12, 3)
		for m := range result.Series {
			payroll := result.Detail[m]["payroll"]
			maintenance := result.Detail[m]["maintenance"]
			if maintenance == 0 {
				t.Fatalf("month %d maintenance is zero", m)
			}
			ratio := payroll / maintenance
			if math.Abs(ratio-30000.0/8000.0) > 0.001 {
				t.Errorf("month %d payroll/maintenance = %.4f, expected %.4f", m, ratio, 30000.0/8000.0)
			}
		}
	})

	t.Run("Monthly detail sums to the monthly total", func(t *testing.T) {
		result := ProjectExpenses(base, 12, 2.5)
		for m, total := range result.Series {
			sum := 0.0
			for _, amount := range result.Detail[m] {
				sum += amount
			}
			// Per-concept rounding can drift from the rounded total by cents.
			if math.Abs(sum-total) > 0.05 {
				t.Errorf("month %d detail sum = %.2f, total = %.2f", m, sum, total)
			}
		}
	})

	t.Run("Zero months yields empty projection", func(t *testing.T) {
		result := ProjectExpenses(base, 0, 5)
		if len(result.Series) != 0 || len(result.Detail) != 0 {
			t.Errorf("expected empty series and detail, got %d/%d entries", len(result.Series), len(result.Detail))
		}
		if math.Abs(result.BaseTotal-40000) > 0.01 {
			t.Errorf("BaseTotal = %.2f, expected 40000", result.BaseTotal)
		}
	})

	t.Run("No concepts yields zero series", func(t *testing.T) {
		result := ProjectExpenses(nil, 3, 0)
		for m, total := range result.Series {
			if total != 0 {
				t.Errorf("month %d total = %.2f, expected 0", m, total)
			}
		}
	})
}
