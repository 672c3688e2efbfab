package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/pkg/ingest"
	"github.com/glorpus-work/dataprep/pkg/kaggle"
	"github.com/spf13/cobra"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	var (
		dataset string
		out     string
		force   bool
		noUnzip bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the dataset and write its manifest",
		Long: `Download the configured dataset archive into the output directory,
optionally extract it, and write a manifest.json recording each file's
size and SHA-256 checksum. A manifest whose files are still on disk
short-circuits the download unless --force is given.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd, dataset, out, force, noUnzip)
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset slug, owner/name (defaults to config)")
	cmd.Flags().StringVar(&out, "out", "", "output directory (defaults to config, data/raw)")
	cmd.Flags().BoolVar(&force, "force", false, "re-download even if a manifest already exists")
	cmd.Flags().BoolVar(&noUnzip, "no-unzip", false, "keep the downloaded archive without extracting")

	return cmd
}

func runFetch(cmd *cobra.Command, dataset, out string, force, noUnzip bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if dataset == "" {
		dataset = cfg.Dataset.Slug
	}
	if out == "" {
		out = cfg.Dataset.OutDir
	}
	unzip := cfg.UnzipEnabled() && !noUnzip

	client := kaggle.NewClient(kaggle.Credentials{}, cfg.Settings.HTTPTimeout, "")
	opts := []ingest.Option{
		ingest.WithUnzip(unzip),
		ingest.WithQuiet(quietFlag()),
		ingest.WithClient(client),
	}
	if cfg.Dataset.PostDownloadHook != "" {
		script, err := os.ReadFile(cfg.Dataset.PostDownloadHook)
		if err != nil {
			return errors.Wrapf(err, "failed to read post-download hook %s", cfg.Dataset.PostDownloadHook)
		}
		opts = append(opts, ingest.WithPostDownloadHook(string(script)))
	}

	ing := ingest.New(dataset, out, opts...)
	manifest, err := ing.Download(cmd.Context(), force)
	if err != nil {
		return fmt.Errorf("failed to fetch dataset: %w", err)
	}

	logger.Successf("wrote manifest: %s", ingest.ManifestPath(out))

	rendered, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to render manifest")
	}
	fmt.Println(string(rendered))
	return nil
}
