package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/validate"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the raw dataset",
		Long: `Validate the first CSV file in the raw data directory against the
configured schema variant, then run the dataset-level sanity checks.
Every schema violation is collected and reported before failing.`,
		RunE: runCheck,
	}

	return cmd
}

func runCheck(*cobra.Command, []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := cfg.ValidationDir()
	report, err := validate.New(cfg.Variant()).ValidateDir(dir)
	if err == nil {
		logger.Successf("dataset OK: %s (%d rows)", report.File, report.Rows)
		return nil
	}

	switch {
	case stderrors.Is(err, validate.ErrNoInputFile):
		logger.Errorf("no input data found in %s", dir)
	case stderrors.Is(err, validate.ErrSchemaValidation):
		for _, v := range report.Violations {
			logger.Errorf("schema: %s", v)
		}
	case stderrors.Is(err, validate.ErrSanityCheck):
		for _, f := range report.Failures {
			logger.Errorf("sanity: %s", f)
		}
	}
	return err
}
