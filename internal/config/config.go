// Package config defines the data structures related to configuration and
// includes functions for loading, normalizing and validating it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/portfolio-optimizer/internal/catalog"
	"github.com/iwvelando/portfolio-optimizer/pkg/constants"
	"github.com/iwvelando/portfolio-optimizer/pkg/knapsack"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Configuration holds all configuration for portfolio-optimizer.
type Configuration struct {
	Budget   float64       `yaml:"budget" mapstructure:"budget" validate:"gte=0"`
	Strategy string        `yaml:"strategy" mapstructure:"strategy" validate:"required"`
	Currency string        `yaml:"currency" mapstructure:"currency" validate:"required,len=3,alpha"`
	Catalog  CatalogConfig `yaml:"catalog" mapstructure:"catalog"`
	Limits   LimitsConfig  `yaml:"limits" mapstructure:"limits"`
	Logging  LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output   OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
}

// CatalogConfig locates the datasets and maps their columns.
type CatalogConfig struct {
	Directory string         `yaml:"directory" mapstructure:"directory" validate:"required"`
	File      string         `yaml:"file,omitempty" mapstructure:"file"`
	Columns   catalog.Schema `yaml:"columns,omitempty" mapstructure:"columns"`
}

// LimitsConfig bounds the exponential strategies.
type LimitsConfig struct {
	ExhaustiveMaxItems     int  `yaml:"exhaustiveMaxItems" mapstructure:"exhaustiveMaxItems" validate:"gte=1"`
	SkipExhaustiveAboveMax bool `yaml:"skipExhaustiveAboveMax" mapstructure:"skipExhaustiveAboveMax"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `yaml:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=json console"`
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format" validate:"omitempty,oneof=pretty csv json markdown"`
}

// NewViper returns a viper instance carrying every default and reading
// OPTIMIZER_* environment overrides (OPTIMIZER_BUDGET, OPTIMIZER_CATALOG_DIRECTORY, ...).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("budget", constants.DefaultBudget)
	v.SetDefault("strategy", constants.DefaultStrategy)
	v.SetDefault("currency", constants.DefaultCurrency)
	v.SetDefault("catalog.directory", constants.DefaultCatalogDirectory)
	v.SetDefault("catalog.file", "")
	v.SetDefault("limits.exhaustiveMaxItems", constants.DefaultExhaustiveMaxItems)
	v.SetDefault("limits.skipExhaustiveAboveMax", true)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	return Load(NewViper(), configPath, true)
}

// Load reads configPath into v and decodes the result. When required is
// false a missing file is not an error and the defaults, environment and any
// flags bound to v apply.
func Load(v *viper.Viper, configPath string, required bool) (*Configuration, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			if required || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("error reading config file, %s", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	configuration.Normalize()
	return &configuration, nil
}

// Default returns the configuration used when no file is provided.
func Default() *Configuration {
	conf := &Configuration{
		Budget:   constants.DefaultBudget,
		Strategy: constants.DefaultStrategy,
		Limits:   LimitsConfig{SkipExhaustiveAboveMax: true},
	}
	conf.Normalize()
	return conf
}

// Normalize ensures defaults and canonical values are applied before validation.
func (c *Configuration) Normalize() {
	if c == nil {
		return
	}
	c.Strategy = knapsack.CanonicalStrategy(c.Strategy)
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	if c.Currency == "" {
		c.Currency = constants.DefaultCurrency
	}
	c.Catalog.Directory = strings.TrimSpace(c.Catalog.Directory)
	if c.Catalog.Directory == "" {
		c.Catalog.Directory = constants.DefaultCatalogDirectory
	}
	c.Catalog.File = strings.TrimSpace(c.Catalog.File)
	c.Catalog.Columns = c.Catalog.Columns.WithDefaults()
	if c.Limits.ExhaustiveMaxItems <= 0 {
		c.Limits.ExhaustiveMaxItems = constants.DefaultExhaustiveMaxItems
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = constants.OutputFormatPretty
	}
}

// Validate returns an error when the configuration cannot be used.
func (c *Configuration) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	c.Normalize()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := knapsack.Capacity(c.Budget); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := knapsack.Lookup(c.Strategy); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Budget == 0 {
		warnings = append(warnings, "Budget is zero: every strategy will return an empty selection")
	}
	if strategy, err := knapsack.Lookup(c.Strategy); err == nil && !strategy.Exact() {
		warnings = append(warnings, fmt.Sprintf("Strategy '%s' is a heuristic and may miss the optimal selection", strategy.Name()))
	}
	if c.Limits.ExhaustiveMaxItems > knapsack.MaxExhaustiveItems {
		warnings = append(warnings, fmt.Sprintf("Exhaustive item limit %d is above the practical bound of %d items",
			c.Limits.ExhaustiveMaxItems, knapsack.MaxExhaustiveItems))
	}

	return warnings
}
