// Package config provides configuration management for the dataprep pipeline.
// It handles loading and validating application settings: the dataset to
// acquire, where raw data lives, network behavior, the schema variant used for
// validation, and optional Tengo hook scripts. The package supports YAML
// configuration files and provides sensible defaults so the tool works with no
// config file at all.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/pkg/validate"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Dataset acquisition configuration
	Dataset DatasetConfig `yaml:"dataset"`

	// Validation configuration
	Validation ValidationConfig `yaml:"validation"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// DatasetConfig identifies the dataset to acquire and where it lands.
type DatasetConfig struct {
	// Slug is the remote dataset identifier, "owner/name".
	Slug string `yaml:"slug"`

	// OutDir is where the archive is downloaded and extracted.
	OutDir string `yaml:"out_dir"`

	// Unzip controls extraction of the downloaded archive. Nil means true;
	// the pointer keeps an explicit `unzip: false` distinguishable from an
	// omitted key.
	Unzip *bool `yaml:"unzip,omitempty"`

	// PostDownloadHook is an optional path to a Tengo script run after the
	// manifest has been written.
	PostDownloadHook string `yaml:"post_download_hook,omitempty"`
}

// ValidationConfig selects the schema variant and any extra checks.
type ValidationConfig struct {
	// Variant names the built-in schema variant to validate against.
	Variant string `yaml:"variant"`

	// Dir overrides the directory scanned for the input CSV. Empty means the
	// dataset's out_dir.
	Dir string `yaml:"dir,omitempty"`

	// MinRows, RateMin and RateMax override the variant's sanity bounds when
	// set.
	MinRows *int     `yaml:"min_rows,omitempty"`
	RateMin *float64 `yaml:"rate_min,omitempty"`
	RateMax *float64 `yaml:"rate_max,omitempty"`

	// CustomChecks are extra Tengo-scripted dataset assertions, run after the
	// built-in sanity checks.
	CustomChecks []CustomCheckConfig `yaml:"custom_checks,omitempty"`
}

// CustomCheckConfig is one named Tengo script loaded from a file.
type CustomCheckConfig struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
}

// Settings represents general application settings.
type Settings struct {
	// Network settings
	HTTPTimeout time.Duration `yaml:"http_timeout"`

	// Output settings
	LogLevel string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultDatasetSlug is the dataset acquired when none is configured.
	DefaultDatasetSlug = "imsparsh/churn-risk-rate-hackerearth-ml"

	// DefaultOutDir is the default raw data directory.
	DefaultOutDir = "data/raw"

	// DefaultVariant is the default validation schema variant.
	DefaultVariant = "customer-churn"

	// DefaultHTTPTimeout is the default timeout for dataset downloads.
	DefaultHTTPTimeout = 5 * time.Minute
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Slug:   DefaultDatasetSlug,
			OutDir: DefaultOutDir,
		},
		Validation: ValidationConfig{
			Variant: DefaultVariant,
		},
		Settings: Settings{
			HTTPTimeout: DefaultHTTPTimeout,
			LogLevel:    "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateDataset(c.Dataset); err != nil {
		return err
	}
	if err := validateValidation(c.Validation); err != nil {
		return err
	}
	return validateSettings(c.Settings)
}

// UnzipEnabled reports whether the downloaded archive should be extracted.
func (c *Config) UnzipEnabled() bool {
	return c.Dataset.Unzip == nil || *c.Dataset.Unzip
}

// ValidationDir returns the directory scanned for the input CSV.
func (c *Config) ValidationDir() string {
	if c.Validation.Dir != "" {
		return c.Validation.Dir
	}
	return c.Dataset.OutDir
}

// Variant resolves the configured schema variant, applying any configured
// sanity bound overrides and custom check scripts.
func (c *Config) Variant() validate.Variant {
	variant := validate.VariantByName(c.Validation.Variant)
	if c.Validation.MinRows != nil {
		variant.Rules.MinRows = *c.Validation.MinRows
	}
	if c.Validation.RateMin != nil {
		variant.Rules.RateMin = *c.Validation.RateMin
	}
	if c.Validation.RateMax != nil {
		variant.Rules.RateMax = *c.Validation.RateMax
	}
	for _, check := range c.Validation.CustomChecks {
		script, err := os.ReadFile(check.Script)
		if err != nil {
			// Surface at validation time instead; a listed script that cannot
			// be read becomes an always-failing check.
			script = []byte(`err := "custom check script unreadable: ` + check.Script + `"`)
		}
		variant.Rules.Custom = append(variant.Rules.Custom, validate.CustomCheck{
			Name:   check.Name,
			Script: string(script),
		})
	}
	return variant
}

func validateDataset(d DatasetConfig) error {
	if d.Slug == "" {
		return errors.Wrap(errors.ErrConfigValidation, "dataset slug cannot be empty")
	}
	if !strings.Contains(d.Slug, "/") {
		return errors.Wrapf(errors.ErrConfigValidation, "dataset slug %q is not of the form owner/name", d.Slug)
	}
	if d.OutDir == "" {
		return errors.Wrap(errors.ErrConfigValidation, "dataset out_dir cannot be empty")
	}
	return nil
}

func validateValidation(v ValidationConfig) error {
	names := validate.VariantNames()
	valid := false
	for _, n := range names {
		if n == v.Variant {
			valid = true
			break
		}
	}
	if !valid {
		return errors.Wrapf(errors.ErrConfigValidation, "unknown schema variant %q, valid: %s", v.Variant, strings.Join(names, ", "))
	}
	if v.MinRows != nil && *v.MinRows < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "min_rows cannot be negative")
	}
	if v.RateMin != nil && v.RateMax != nil && *v.RateMin > *v.RateMax {
		return errors.Wrapf(errors.ErrConfigValidation, "rate_min %g exceeds rate_max %g", *v.RateMin, *v.RateMax)
	}
	for i, check := range v.CustomChecks {
		if check.Name == "" {
			return errors.Wrapf(errors.ErrConfigValidation, "custom check %d has no name", i)
		}
		if check.Script == "" {
			return errors.Wrapf(errors.ErrConfigValidation, "custom check %q has no script path", check.Name)
		}
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.Wrapf(errors.ErrConfigValidation, "invalid log level %q", s.LogLevel)
	}
	return nil
}

// applyDefaults fills zero values with the defaults so partial config files
// stay valid.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Dataset.Slug == "" {
		c.Dataset.Slug = defaults.Dataset.Slug
	}
	if c.Dataset.OutDir == "" {
		c.Dataset.OutDir = defaults.Dataset.OutDir
	}
	if c.Validation.Variant == "" {
		c.Validation.Variant = defaults.Validation.Variant
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}
