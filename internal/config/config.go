// Package config defines the data structures describing an investment
// project and includes functions for loading and validating the YAML
// configuration.
package config

import (
	"fmt"
	"io"

	"github.com/iwvelando/project-appraisal/pkg/preoperative"
	"github.com/iwvelando/project-appraisal/pkg/projection"
	"github.com/iwvelando/project-appraisal/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for project-appraisal.
type Configuration struct {
	Project     ProjectConfig
	Sensitivity SensitivityConfig
	Logging     LoggingConfig `yaml:"logging,omitempty"`
	Output      OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// ProjectConfig describes one investment project to evaluate.
type ProjectConfig struct {
	Name              string
	InitialInvestment float64
	OperatingMonths   int

	// Pre-operative phase. When PreoperativeDistribution is empty the
	// schedule is generated from DistributionShape instead.
	PreoperativeMonths       int
	PreoperativeDistribution []DistributionEntry
	PreoperativeCosts        []ConceptAmount
	DistributionShape        string  // uniform, increasing, decreasing, exponential
	DistributionGrowth       float64 // per-month decimal rate, exponential shape only

	Revenue             RevenueConfig
	Expenses            []ConceptAmount
	ExpenseVariationPct float64
	DiscountRate        DiscountRateConfig
}

// RevenueConfig mirrors the fines-based revenue model parameters.
type RevenueConfig struct {
	DailyFineCount         float64
	DiscountedFineValue    float64
	VoluntaryPaymentPct    float64
	OperatingCollectionPct float64
	MonthlyVariationPct    float64
}

// DistributionEntry assigns a disbursement amount to a 1-based month index.
type DistributionEntry struct {
	Month  int
	Amount float64
}

// ConceptAmount is a named monetary amount, e.g. one expense concept.
type ConceptAmount struct {
	Concept string
	Amount  float64
}

// DiscountRateConfig decomposes the annual discount rate into its components,
// all expressed as decimals.
type DiscountRateConfig struct {
	RiskFree    float64
	CountryRisk float64
	ProjectRisk float64
}

// Total sums the discount-rate components into the annual rate passed to NPV.
func (d DiscountRateConfig) Total() float64 {
	return d.RiskFree + d.CountryRisk + d.ProjectRisk
}

// SensitivityConfig describes the optional sensitivity sweep axes, in percent.
type SensitivityConfig struct {
	Enabled           bool
	RevenueVariations []float64
	ExpenseVariations []float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML configuration from an in-memory
// source, e.g. an HTTP upload.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// DistributionMap resolves the pre-operative disbursement schedule into a
// month-indexed map: explicit entries win, otherwise a schedule is generated
// from the configured shape.
func (c *Configuration) DistributionMap() (map[int]float64, error) {
	if len(c.Project.PreoperativeDistribution) > 0 {
		distribution := make(map[int]float64, len(c.Project.PreoperativeDistribution))
		for _, entry := range c.Project.PreoperativeDistribution {
			distribution[entry.Month] += entry.Amount
		}
		return distribution, nil
	}

	if c.Project.PreoperativeMonths < 1 {
		return map[int]float64{}, nil
	}
	return preoperative.GenerateDistribution(
		c.Project.InitialInvestment,
		c.Project.PreoperativeMonths,
		preoperative.Shape(c.Project.DistributionShape),
		c.Project.DistributionGrowth,
	)
}

// CostsMap pools the pre-operative cost concepts into a name-indexed map.
func (c *Configuration) CostsMap() map[string]float64 {
	costs := make(map[string]float64, len(c.Project.PreoperativeCosts))
	for _, entry := range c.Project.PreoperativeCosts {
		costs[entry.Concept] += entry.Amount
	}
	return costs
}

// ExpenseBase converts the configured expense concepts into the projection
// engine's ordered representation.
func (c *Configuration) ExpenseBase() []projection.ConceptAmount {
	base := make([]projection.ConceptAmount, 0, len(c.Project.Expenses))
	for _, entry := range c.Project.Expenses {
		base = append(base, projection.ConceptAmount{Concept: entry.Concept, Amount: entry.Amount})
	}
	return base
}

// RevenueConfig converts the configured revenue parameters into the
// projection engine's representation.
func (c *Configuration) RevenueConfig() projection.RevenueConfig {
	return projection.RevenueConfig{
		DailyFineCount:         c.Project.Revenue.DailyFineCount,
		DiscountedFineValue:    c.Project.Revenue.DiscountedFineValue,
		VoluntaryPaymentPct:    c.Project.Revenue.VoluntaryPaymentPct,
		OperatingCollectionPct: c.Project.Revenue.OperatingCollectionPct,
		MonthlyVariationPct:    c.Project.Revenue.MonthlyVariationPct,
	}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Warnings are advisory: the appraisal still runs, and hard
// requirements (positive investment, at least one operating month) are
// enforced by the appraisal itself.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Project.InitialInvestment <= 0 {
		warnings = append(warnings, fmt.Sprintf("initial investment %.2f is not positive; indicators will not be computable",
			c.Project.InitialInvestment))
	}
	if c.Project.OperatingMonths < 1 {
		warnings = append(warnings, fmt.Sprintf("operating months %d leaves nothing to project", c.Project.OperatingMonths))
	}
	if len(c.Project.Expenses) == 0 {
		warnings = append(warnings, "no expense concepts are configured")
	}

	concepts := make([]validation.ExpenseConcept, 0, len(c.Project.Expenses))
	for _, entry := range c.Project.Expenses {
		concepts = append(concepts, validation.ExpenseConcept{Concept: entry.Concept, Amount: entry.Amount})
	}
	warnings = append(warnings, validation.CheckExpenseConcepts(concepts)...)

	if c.Project.PreoperativeMonths >= 1 && len(c.Project.PreoperativeDistribution) > 0 {
		if distribution, err := c.DistributionMap(); err == nil {
			if warning := validation.CheckDistributionSum(c.Project.InitialInvestment, distribution); warning != "" {
				warnings = append(warnings, warning)
			}
			for month := range distribution {
				if month < 1 || month > c.Project.PreoperativeMonths {
					warnings = append(warnings, fmt.Sprintf("distribution month %d is outside the pre-operative phase of %d months",
						month, c.Project.PreoperativeMonths))
				}
			}
		}
	}

	if c.Sensitivity.Enabled {
		if len(c.Sensitivity.RevenueVariations) == 0 || len(c.Sensitivity.ExpenseVariations) == 0 {
			warnings = append(warnings, "sensitivity analysis is enabled but one or both variation axes are empty")
		}
	}

	return warnings
}
