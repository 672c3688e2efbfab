package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "imsparsh/churn-risk-rate-hackerearth-ml", cfg.Dataset.Slug)
	assert.Equal(t, "data/raw", cfg.Dataset.OutDir)
	assert.True(t, cfg.UnzipEnabled())
	assert.Equal(t, "customer-churn", cfg.Validation.Variant)
	assert.Equal(t, 5*time.Minute, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `dataset:
  slug: acme/telco-churn
  out_dir: /srv/data/raw
  unzip: false
validation:
  variant: churn-risk
settings:
  http_timeout: 30s
  log_level: debug`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "acme/telco-churn", cfg.Dataset.Slug)
	assert.Equal(t, "/srv/data/raw", cfg.Dataset.OutDir)
	assert.False(t, cfg.UnzipEnabled())
	assert.Equal(t, "churn-risk", cfg.Validation.Variant)
	assert.Equal(t, 30*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
}

func TestLoadConfig_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorIs(t, err, errors.ErrEmptyConfigPath)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader("dataset:\n  slug: acme/telco-churn\n"))
	require.NoError(t, err)

	assert.Equal(t, "acme/telco-churn", cfg.Dataset.Slug)
	assert.Equal(t, "data/raw", cfg.Dataset.OutDir)
	assert.True(t, cfg.UnzipEnabled())
	assert.Equal(t, "customer-churn", cfg.Validation.Variant)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "malformed yaml",
			content: "dataset: [",
			errText: "failed to parse config",
		},
		{
			name:    "slug without owner",
			content: "dataset:\n  slug: telco-churn\n",
			errText: "not of the form owner/name",
		},
		{
			name:    "unknown variant",
			content: "validation:\n  variant: telemetry\n",
			errText: "unknown schema variant",
		},
		{
			name:    "negative timeout",
			content: "settings:\n  http_timeout: -5s\n",
			errText: "http_timeout cannot be negative",
		},
		{
			name:    "bad log level",
			content: "settings:\n  log_level: blaring\n",
			errText: "invalid log level",
		},
		{
			name:    "inverted rate bounds",
			content: "validation:\n  rate_min: 0.9\n  rate_max: 0.1\n",
			errText: "rate_min 0.9 exceeds rate_max 0.1",
		},
		{
			name:    "custom check without name",
			content: "validation:\n  custom_checks:\n    - script: checks/volume.tengo\n",
			errText: "has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFromReader(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestValidationDir(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "data/raw", cfg.ValidationDir())

	cfg.Validation.Dir = "data/staged"
	assert.Equal(t, "data/staged", cfg.ValidationDir())
}

func TestVariant_AppliesBoundOverrides(t *testing.T) {
	cfg, err := LoadConfigFromReader(strings.NewReader(
		"validation:\n  min_rows: 500\n  rate_min: 0.05\n  rate_max: 0.5\n"))
	require.NoError(t, err)

	variant := cfg.Variant()
	assert.Equal(t, 500, variant.Rules.MinRows)
	assert.Equal(t, 0.05, variant.Rules.RateMin)
	assert.Equal(t, 0.5, variant.Rules.RateMax)
}

func TestVariant_LoadsCustomCheckScripts(t *testing.T) {
	tempDir := t.TempDir()
	scriptPath := filepath.Join(tempDir, "volume.tengo")
	require.NoError(t, os.WriteFile(scriptPath, []byte(`err := ""`), fsutil.FileModeDefault))

	cfg := DefaultConfig()
	cfg.Validation.CustomChecks = []CustomCheckConfig{{Name: "volume", Script: scriptPath}}

	variant := cfg.Variant()
	require.Len(t, variant.Rules.Custom, 1)
	assert.Equal(t, "volume", variant.Rules.Custom[0].Name)
	assert.Equal(t, `err := ""`, variant.Rules.Custom[0].Script)
}
