package irr

import (
	"errors"
	"math"
	"testing"
)

func TestSolve(t *testing.T) {
	tests := []struct {
		name       string
		flows      []float64
		investment float64
		minRate    float64
		maxRate    float64
		wantErr    bool
	}{
		{
			name:       "Growing recovery converges in range",
			flows:      []float64{300, 400, 500, 600},
			investment: 1000,
			minRate:    0.20,
			maxRate:    0.25,
		},
		{
			name:       "Even recovery over four periods",
			flows:      []float64{400, 400, 400, 400},
			investment: 1000,
			minRate:    0.20,
			maxRate:    0.25,
		},
		{
			name:       "Break-even series yields near-zero rate",
			flows:      []float64{250, 250, 250, 250},
			investment: 1000,
			minRate:    -0.001,
			maxRate:    0.001,
		},
		{
			name:       "Loss-making project converges to negative rate",
			flows:      []float64{200, 200, 200, 200},
			investment: 1000,
			minRate:    -0.20,
			maxRate:    -0.01,
		},
		{
			name:       "All-negative flows have no sign change",
			flows:      []float64{-100, -200, -300},
			investment: 1000,
			wantErr:    true,
		},
		{
			name:       "All-zero flows have no sign change",
			flows:      []float64{0, 0, 0},
			investment: 1000,
			wantErr:    true,
		},
		{
			name:       "Empty flows are not computable",
			flows:      []float64{},
			investment: 1000,
			wantErr:    true,
		},
		{
			name:       "Non-positive investment is not computable",
			flows:      []float64{100, 200},
			investment: 0,
			wantErr:    true,
		},
		{
			name:       "Negative investment is not computable",
			flows:      []float64{400, 400, 400, 400},
			investment: -1000,
			wantErr:    true,
		},
	}

	solver := NewSolver(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := solver.Solve(tt.flows, tt.investment)
			if tt.wantErr {
				if !errors.Is(err, ErrNotComputable) {
					t.Fatalf("Solve() error = %v, expected ErrNotComputable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Solve() unexpected error: %v", err)
			}
			if rate < tt.minRate || rate > tt.maxRate {
				t.Errorf("Solve() = %.6f, expected within [%.4f, %.4f]", rate, tt.minRate, tt.maxRate)
			}
		})
	}
}

// A converged rate must be a root of the NPV polynomial of the extended
// series, not just a fixed point of the iteration.
func TestSolveProducesRoot(t *testing.T) {
	solver := NewSolver(nil)
	flows := []float64{300, 400, 500, 600}
	investment := 1000.0

	rate, err := solver.Solve(flows, investment)
	if err != nil {
		t.Fatalf("Solve() unexpected error: %v", err)
	}

	npv := -investment
	for i, cf := range flows {
		npv += cf / math.Pow(1+rate, float64(i+1))
	}
	if math.Abs(npv) > 0.01 {
		t.Errorf("NPV at converged rate %.6f = %.6f, expected ~0", rate, npv)
	}
}

func TestSolveExhaustedIterations(t *testing.T) {
	solver := NewSolver(nil)
	solver.MaxIterations = 1

	_, err := solver.Solve([]float64{300, 400, 500, 600}, 1000)
	if !errors.Is(err, ErrNotComputable) {
		t.Fatalf("Solve() with one iteration error = %v, expected ErrNotComputable", err)
	}
}

func TestAnnualize(t *testing.T) {
	tests := []struct {
		name     string
		periodic float64
		expected float64
		wantErr  bool
	}{
		{
			name:     "Two percent monthly compounds to ~26.8% annual",
			periodic: 0.02,
			expected: 0.2682,
		},
		{
			name:     "Zero stays zero",
			periodic: 0,
			expected: 0,
		},
		{
			name:     "Negative monthly compounds to larger negative annual",
			periodic: -0.01,
			expected: -0.1136,
		},
		{
			name:     "Huge monthly rate overflows the plausibility bound",
			periodic: 5.0,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annual, err := Annualize(tt.periodic)
			if tt.wantErr {
				if !errors.Is(err, ErrNotComputable) {
					t.Fatalf("Annualize() error = %v, expected ErrNotComputable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Annualize() unexpected error: %v", err)
			}
			if math.Abs(annual-tt.expected) > 0.0001 {
				t.Errorf("Annualize(%.4f) = %.6f, expected %.4f", tt.periodic, annual, tt.expected)
			}
		})
	}
}
