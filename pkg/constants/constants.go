// Package constants provides shared constants for the project-appraisal application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DaysPerMonth is the flat month length used by the fines-based revenue model
	DaysPerMonth = 30

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// IRR solver parameters. These intentionally match the iterative IRR behavior
// of spreadsheet engines (20 attempts, 0.00001% precision, 10% starting guess)
// so results line up with the reference workbooks.
const (
	// IRRDefaultGuess is the starting rate for the Newton-Raphson iteration
	IRRDefaultGuess = 0.10

	// IRRTolerance is the convergence threshold on successive rate estimates
	IRRTolerance = 1e-7

	// IRRMaxIterations caps the Newton-Raphson iteration count
	IRRMaxIterations = 20

	// IRRDerivativeEpsilon is the cutoff below which the derivative is
	// considered vanished and the solve aborts
	IRRDerivativeEpsilon = 1e-12

	// IRRPeriodicBound rejects converged periodic rates with |r| above it
	IRRPeriodicBound = 10.0

	// IRRPeriodicFloor rejects converged periodic rates below it
	IRRPeriodicFloor = -0.99

	// IRRAnnualizedBound rejects annualized rates with magnitude above it
	IRRAnnualizedBound = 50.0
)

// Flow normalization constants
const (
	// CumulativeDetectionRatio is the mean-diff to mean-value ratio below
	// which auto mode treats a series as cumulative
	CumulativeDetectionRatio = 0.2

	// CumulativeDetectionMinLength is the minimum series length before the
	// auto heuristic is attempted
	CumulativeDetectionMinLength = 3
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Validation constants
const (
	// DistributionTolerancePct is the advisory tolerance, in percent of the
	// initial investment, for the pre-operative distribution sum check
	DistributionTolerancePct = 1.0
)
