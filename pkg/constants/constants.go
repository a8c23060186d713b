// Package constants provides shared constants for the defi-nest application.
package constants

// Token value model constants
const (
	// BaseTokenValue is the unstressed value of one real-estate token in dollars
	BaseTokenValue = 100000.0

	// CreditNormalizer is the credit score at which credit quality neither
	// raises nor lowers the token value
	CreditNormalizer = 800.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Per-trial shock standard deviations
const (
	InterestRateStdDev     = 1.0
	UnemploymentRateStdDev = 0.5
	HousingDownturnStdDev  = 2.0
	BorrowerCreditStdDev   = 50.0
)

// Risk constants
const (
	// RiskThreshold is the mean token value below which risk is elevated
	RiskThreshold = 70000.0

	// LowerPercentile is the tail percentile reported as value at risk
	LowerPercentile = 5.0

	// UpperPercentile bounds the upper end of the reported band
	UpperPercentile = 95.0
)

// Trial constants
const (
	// DefaultTrials is the number of trials used when none is configured
	DefaultTrials = 500

	// MinRecommendedTrials is the lower bound offered to interactive users
	MinRecommendedTrials = 100

	// MaxRecommendedTrials is the upper bound offered to interactive users
	MaxRecommendedTrials = 1000

	// QuartersPerYear is the number of buckets in a quarterly run
	QuartersPerYear = 4

	// DefaultHistogramBins is the number of bins used for distribution charts
	DefaultHistogramBins = 30
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON summary output format
	OutputFormatJSON = "json"
)

// Export constants
const (
	// CSVHeader is the single column header of the results export
	CSVHeader = "Simulated Token Value"

	// CSVFileName is the suggested file name for the results export
	CSVFileName = "simulated_token_values.csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "DEFINEST"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultServerMaxTrials caps the trials a single API request may ask for
	DefaultServerMaxTrials = 10000

	// DefaultMaxRequestSizeBytes is the default maximum JSON request body size (64 KB)
	DefaultMaxRequestSizeBytes int64 = 64 * 1024
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100
)
