// Package constants provides shared constants for the portfolio-optimizer application.
package constants

// Currency constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// MinorUnitDigits is the number of decimal digits shifted when converting
	// an amount into minor currency units (cents).
	MinorUnitDigits = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DefaultCurrency is the ISO 4217 code used when none is configured.
	DefaultCurrency = "EUR"
)

// Optimization defaults
const (
	// DefaultBudget is the spending ceiling used when none is configured.
	DefaultBudget = 500.0

	// DefaultStrategy is the solver used when none is configured.
	DefaultStrategy = "dynamic"

	// DefaultExhaustiveMaxItems is the catalog size above which the
	// exponential strategies are considered impractical.
	DefaultExhaustiveMaxItems = 25
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// OutputFormatMarkdown is the terminal-rendered markdown output format
	OutputFormatMarkdown = "markdown"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// DefaultCatalogDirectory is the directory scanned for CSV datasets
	DefaultCatalogDirectory = "data"

	// EnvPrefix prefixes environment variable overrides (OPTIMIZER_BUDGET, ...)
	EnvPrefix = "OPTIMIZER"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for CSV catalogs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
