//go:generate mockgen -destination=./mocks/ingest.go -package mocks . RemoteClient

package ingest

import (
	"context"

	"github.com/hashicorp/go-version"
)

// RemoteClient is the subset of the dataset-host client used by the Ingestor.
type RemoteClient interface {
	// Authenticate resolves usable credentials, failing when none are available.
	Authenticate(ctx context.Context) error

	// DownloadDataset fetches the dataset archive for slug into destDir,
	// extracting it when unzip is set.
	DownloadDataset(ctx context.Context, slug, destDir string, unzip, quiet bool) error

	// LatestVersion returns the most recent published version of the dataset.
	LatestVersion(ctx context.Context, slug string) (*version.Version, error)
}
