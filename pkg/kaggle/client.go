// Package kaggle is the remote-access collaborator: a minimal HTTP client for
// the dataset host's v1 API covering credential resolution, dataset archive
// download and dataset version lookup.
package kaggle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/archive"
	"github.com/glorpus-work/dataprep/pkg/auth"
	pkgerrors "github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/pkg/fsutil"
	"github.com/hashicorp/go-version"
)

// DefaultBaseURL is the dataset host's API root.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// Client talks to the dataset host. It is intentionally minimal: one dataset
// archive per download, no retries, no resumable transfers.
type Client struct {
	baseURL   string
	client    *http.Client
	userAgent string
	explicit  Credentials
	resolved  *Credentials
	archiver  *archive.Manager
}

// NewClient creates a client against the public API. The credentials may be
// zero; resolution falls back to the environment and the conventional
// credential file (see ResolveCredentials).
func NewClient(creds Credentials, timeout time.Duration, userAgent string) *Client {
	return NewClientWithBaseURL(creds, DefaultBaseURL, timeout, userAgent)
}

// NewClientWithBaseURL creates a client against a specific API root.
func NewClientWithBaseURL(creds Credentials, baseURL string, timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = "dataprep/1.0"
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		explicit:  creds,
		archiver:  archive.NewManager(),
	}
}

// Authenticate resolves usable credentials and remembers them for subsequent
// requests. It fails with ErrNoCredentials when no source yields a complete
// username/key pair; whether the host accepts the pair surfaces on the first
// authenticated request.
func (c *Client) Authenticate(_ context.Context) error {
	creds, err := ResolveCredentials(c.explicit)
	if err != nil {
		return err
	}
	c.resolved = &creds
	logger.Debug("credentials resolved", logger.Fields{"username": creds.Username})
	return nil
}

// DownloadDataset fetches the dataset archive for slug into destDir. The
// archive is streamed to a sibling temporary file and renamed into place. With
// unzip set, the archive is extracted into destDir and the archive file
// removed, matching the host SDK's behavior.
func (c *Client) DownloadDataset(ctx context.Context, slug, destDir string, unzip, quiet bool) error {
	if destDir == "" {
		return fmt.Errorf("destination dir cannot be empty: %w", pkgerrors.ErrInvalidPath)
	}
	if err := os.MkdirAll(destDir, fsutil.DirModeDefault); err != nil {
		return pkgerrors.Wrap(err, "could not create destination dir")
	}

	resp, err := c.doRequest(ctx, "/datasets/download/"+slug)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	archivePath := filepath.Join(destDir, archiveFilename(slug))
	tmpPath, err := writeBodyToTemp(resp.Body, destDir)
	if err != nil {
		return err
	}
	if err := fsutil.Move(tmpPath, archivePath); err != nil {
		return pkgerrors.Wrap(err, "could not finalize archive")
	}
	if !quiet {
		logger.Infof("downloaded %s", archivePath)
	}

	if !unzip {
		return nil
	}
	if err := c.archiver.ExtractAll(ctx, archivePath, destDir); err != nil {
		return pkgerrors.Wrap(err, "could not extract archive")
	}
	if err := os.Remove(archivePath); err != nil {
		return pkgerrors.Wrap(err, "could not remove archive after extraction")
	}
	if !quiet {
		logger.Infof("extracted archive into %s", destDir)
	}
	return nil
}

// datasetView is the subset of the metadata endpoint response we consume.
type datasetView struct {
	CurrentVersionNumber int `json:"currentVersionNumber"`
}

// LatestVersion returns the most recent version of the dataset published on
// the host. Callers treat failures here as informational only.
func (c *Client) LatestVersion(ctx context.Context, slug string) (*version.Version, error) {
	resp, err := c.doRequest(ctx, "/datasets/view/"+slug)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var view datasetView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return nil, pkgerrors.Wrap(err, "could not decode dataset metadata")
	}
	return version.NewVersion(strconv.Itoa(view.CurrentVersionNumber))
}

func (c *Client) doRequest(ctx context.Context, apiPath string) (*http.Response, error) {
	if c.resolved == nil {
		if err := c.Authenticate(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPath, http.NoBody)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	basic := auth.BasicAuth{Username: c.resolved.Username, Password: c.resolved.Key}
	if err := basic.Apply(req); err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrTransferFailed, err.Error())
	}
	switch {
	case resp.StatusCode == http.StatusOK:
		return resp, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_ = resp.Body.Close()
		return nil, pkgerrors.Wrapf(pkgerrors.ErrAuthenticationFailed, "%s returned %d", apiPath, resp.StatusCode)
	default:
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%s returned %d: %w", apiPath, resp.StatusCode, pkgerrors.ErrUnexpectedStatus)
	}
}

// archiveFilename derives the local archive name from the dataset slug
// ("owner/name" -> "name.zip").
func archiveFilename(slug string) string {
	name := path.Base(slug)
	if name == "." || name == "/" || name == "" {
		name = "dataset"
	}
	return name + ".zip"
}

func writeBodyToTemp(body io.Reader, dir string) (string, error) {
	tmp, err := os.CreateTemp(dir, "dl-*.tmp")
	if err != nil {
		return "", pkgerrors.Wrap(err, "could not create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(pkgerrors.ErrTransferFailed, err.Error())
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not sync file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", pkgerrors.Wrap(err, "could not close file")
	}
	return tmpPath, nil
}
