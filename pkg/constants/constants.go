// Package constants provides shared constants for the household-budget application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// ProjectionYears is the projection horizon; the projection holds
	// ProjectionYears+1 points (year 0 through ProjectionYears inclusive).
	ProjectionYears = 5

	// MaxLoanTermYears is the longest loan term accepted
	MaxLoanTermYears = 100

	// DefaultEarners is the number of people the net budget is split between
	DefaultEarners = 2

	// CurrencySuffix is appended to formatted currency amounts
	CurrencySuffix = "kr"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Export format constants used by the init command
const (
	ExportFormatYAML = "yaml"
	ExportFormatTOML = "toml"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "budget.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. BUDGET_LOAN_INTERESTRATE
	EnvPrefix = "BUDGET"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KiB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// RequestIDHeader carries the per-request identifier
	RequestIDHeader = "X-Request-ID"
)
