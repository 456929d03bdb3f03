package valuation

import (
	"math"
	"testing"
)

func TestNPV(t *testing.T) {
	tests := []struct {
		name               string
		flows              []float64
		initialInvestment  float64
		annualDiscountRate float64
		expected           float64
	}{
		{
			name:               "Zero discount rate sums flows minus investment",
			flows:              []float64{300, 400, 500, 600},
			initialInvestment:  1000,
			annualDiscountRate: 0,
			expected:           800,
		},
		{
			name:              "Empty flows return zero",
			flows:             []float64{},
			initialInvestment: 1000,
			expected:          0,
		},
		{
			name:              "Non-positive investment returns zero",
			flows:             []float64{100, 200},
			initialInvestment: 0,
			expected:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NPV(tt.flows, tt.initialInvestment, tt.annualDiscountRate)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("NPV() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

// NPV at a 10% annual rate must equal the manually discounted sum with the
// annual rate converted to monthly compounding.
func TestNPVMatchesManualDiscounting(t *testing.T) {
	flows := []float64{300, 400, 500, 600}
	investment := 1000.0
	annualRate := 0.10

	monthlyRate := math.Pow(1+annualRate, 1.0/12.0) - 1
	expected := -investment
	for i, flow := range flows {
		expected += flow / math.Pow(1+monthlyRate, float64(i+1))
	}

	result := NPV(flows, investment, annualRate)
	if math.Abs(result-expected) > 0.01 {
		t.Errorf("NPV() = %.4f, expected %.4f", result, expected)
	}
}

// Raising the discount rate on an all-positive series must never raise NPV.
func TestNPVMonotoneInDiscountRate(t *testing.T) {
	flows := []float64{300, 400, 500, 600}
	investment := 1000.0

	previous := math.Inf(1)
	for _, rate := range []float64{0, 0.05, 0.10, 0.25, 0.50, 1.0} {
		result := NPV(flows, investment, rate)
		if result > previous {
			t.Errorf("NPV at rate %.2f = %.4f exceeds NPV at lower rate %.4f", rate, result, previous)
		}
		previous = result
	}
}

func TestROI(t *testing.T) {
	tests := []struct {
		name              string
		flows             []float64
		initialInvestment float64
		expected          float64
	}{
		{
			name:              "Eighty percent gain",
			flows:             []float64{300, 400, 500, 600},
			initialInvestment: 1000,
			expected:          80,
		},
		{
			name:              "Break-even is zero",
			flows:             []float64{500, 500},
			initialInvestment: 1000,
			expected:          0,
		},
		{
			name:              "Loss is negative",
			flows:             []float64{200, 200},
			initialInvestment: 1000,
			expected:          -60,
		},
		{
			name:              "Empty flows return zero",
			flows:             []float64{},
			initialInvestment: 1000,
			expected:          0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ROI(tt.flows, tt.initialInvestment)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ROI() = %.4f, expected %.4f", result, tt.expected)
			}
		})
	}
}

func TestPayback(t *testing.T) {
	tests := []struct {
		name              string
		flows             []float64
		initialInvestment float64
		recovered         bool
		expectedMonths    float64
		expectedShortfall float64
	}{
		{
			name:              "Growing flows recover within four months",
			flows:             []float64{20000, 30000, 40000, 50000},
			initialInvestment: 80000,
			recovered:         true,
			expectedMonths:    2.75,
		},
		{
			name:              "Recovery exactly on a month boundary",
			flows:             []float64{500, 500, 500},
			initialInvestment: 1000,
			recovered:         true,
			expectedMonths:    2,
		},
		{
			name:              "Recovery within the first month",
			flows:             []float64{2000, 500},
			initialInvestment: 1000,
			recovered:         true,
			expectedMonths:    0.5,
		},
		{
			name:              "Never recovered reports shortfall",
			flows:             []float64{100, 100, 100},
			initialInvestment: 1000,
			recovered:         false,
			expectedMonths:    3,
			expectedShortfall: 700,
		},
		{
			name:              "Empty flows report the full investment as shortfall",
			flows:             []float64{},
			initialInvestment: 1000,
			recovered:         false,
			expectedMonths:    0,
			expectedShortfall: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Payback(tt.flows, tt.initialInvestment)
			if result.Recovered != tt.recovered {
				t.Fatalf("Payback().Recovered = %v, expected %v", result.Recovered, tt.recovered)
			}
			if math.Abs(result.Months-tt.expectedMonths) > 0.001 {
				t.Errorf("Payback().Months = %.4f, expected %.4f", result.Months, tt.expectedMonths)
			}
			if math.Abs(result.Years-tt.expectedMonths/12) > 0.001 {
				t.Errorf("Payback().Years = %.4f, expected %.4f", result.Years, tt.expectedMonths/12)
			}
			if !tt.recovered && math.Abs(result.Shortfall-tt.expectedShortfall) > 0.01 {
				t.Errorf("Payback().Shortfall = %.2f, expected %.2f", result.Shortfall, tt.expectedShortfall)
			}
		})
	}
}

// The interpolated payback month can never exceed the number of flow periods.
func TestPaybackInterpolationBounds(t *testing.T) {
	series := [][]float64{
		{100, 900},
		{999.99, 0.01},
		{500, 500, 500, 500},
		{1000},
	}
	for _, flows := range series {
		result := Payback(flows, 1000)
		if !result.Recovered {
			continue
		}
		if result.Months < 0 || result.Months > float64(len(flows)) {
			t.Errorf("Payback(%v).Months = %.4f out of [0, %d]", flows, result.Months, len(flows))
		}
	}
}
