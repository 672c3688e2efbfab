package cli

import (
	"strings"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/config"
)

// DefaultConfigFileName is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFileName = "dataprep.yaml"

// These variables will be set by the main package
var (
	ConfigPath *string
	Verbosity  *int
	Quiet      *bool
)

// loadConfig loads the configuration honoring the --config flag, falling back
// to dataprep.yaml in the working directory (missing file means defaults).
func loadConfig() (*config.Config, error) {
	configPath := DefaultConfigFileName
	if ConfigPath != nil && *ConfigPath != "" {
		configPath = *ConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	applyConfigLogLevel(cfg)
	return cfg, nil
}

// applyConfigLogLevel lets the config file's log_level take effect when no
// -v/-q flag was given. Flags always win.
func applyConfigLogLevel(cfg *config.Config) {
	if (Verbosity != nil && *Verbosity > 0) || (Quiet != nil && *Quiet) {
		return
	}
	switch strings.ToLower(cfg.Settings.LogLevel) {
	case "debug":
		logger.InitLogger(2, false)
	case "info":
		logger.InitLogger(1, false)
	case "warn", "error":
		logger.InitLogger(0, false)
	}
}

func quietFlag() bool {
	return Quiet != nil && *Quiet
}
