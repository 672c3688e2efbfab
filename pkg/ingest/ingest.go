// Package ingest implements the acquisition stage: download a dataset archive
// into a local directory, optionally extract it, and persist a content
// manifest (per-file size and SHA-256) idempotently.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/glorpus-work/dataprep/internal/logger"
	"github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/pkg/fsutil"
	"github.com/glorpus-work/dataprep/pkg/hook"
	"github.com/glorpus-work/dataprep/pkg/kaggle"
	"github.com/glorpus-work/dataprep/pkg/model"
	"github.com/hashicorp/go-version"
)

const (
	// ManifestFileName is the manifest's file name inside the output directory.
	ManifestFileName = "manifest.json"

	// scratchConfigDir holds the run-scoped credential file.
	scratchConfigDir = ".kaggle_runtime"

	// checksumChunkSize bounds memory while hashing; any chunk size yields the
	// same digest.
	checksumChunkSize = 1 << 20

	// defaultHTTPTimeout covers the full archive transfer.
	defaultHTTPTimeout = 5 * time.Minute
)

// Ingestor downloads one dataset into one output directory.
type Ingestor struct {
	slug   string
	outDir string
	unzip  bool
	quiet  bool
	creds  kaggle.Credentials
	client RemoteClient
	hooks  *hook.Executor
	nowFn  func() time.Time
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithUnzip controls whether the downloaded archive is extracted (default true).
func WithUnzip(unzip bool) Option {
	return func(i *Ingestor) { i.unzip = unzip }
}

// WithQuiet reduces download verbosity.
func WithQuiet(quiet bool) Option {
	return func(i *Ingestor) { i.quiet = quiet }
}

// WithCredentials supplies explicit credentials, overriding environment and
// credential-file resolution.
func WithCredentials(creds kaggle.Credentials) Option {
	return func(i *Ingestor) { i.creds = creds }
}

// WithClient substitutes the remote client.
func WithClient(client RemoteClient) Option {
	return func(i *Ingestor) { i.client = client }
}

// WithPostDownloadHook registers a Tengo script to run after the manifest is
// written. Hook failures are logged, not fatal.
func WithPostDownloadHook(script string) Option {
	return func(i *Ingestor) { i.hooks.AddScript(hook.PostDownload, script) }
}

// New creates an Ingestor for the given dataset slug and output directory.
func New(slug, outDir string, opts ...Option) *Ingestor {
	ing := &Ingestor{
		slug:   slug,
		outDir: outDir,
		unzip:  true,
		hooks:  hook.NewExecutor(),
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(ing)
	}
	if ing.client == nil {
		ing.client = kaggle.NewClient(ing.creds, defaultHTTPTimeout, "")
	}
	return ing
}

// ManifestPath returns the manifest location for an output directory.
func ManifestPath(outDir string) string {
	return filepath.Join(outDir, ManifestFileName)
}

// Download fetches the dataset if needed, computes the manifest, writes it
// atomically and returns it. With force unset, a manifest whose listed files
// are still (at least partially) on disk short-circuits the whole operation
// without contacting the remote host.
func (i *Ingestor) Download(ctx context.Context, force bool) (*model.Manifest, error) {
	if err := os.MkdirAll(i.outDir, fsutil.DirModeDefault); err != nil {
		return nil, errors.Wrap(err, "could not create output directory")
	}

	prev, present := i.alreadyDownloaded()
	if present && !force {
		logger.Info("dataset already present, skipping download (use --force to re-download)",
			logger.Fields{"dataset": i.slug, "dir": i.outDir})
		return prev, nil
	}

	logger.Info("starting dataset download", logger.Fields{"dataset": i.slug, "dir": i.outDir})
	if err := i.fetch(ctx); err != nil {
		return nil, err
	}

	manifest, err := i.buildManifest(ctx, prev)
	if err != nil {
		return nil, err
	}
	if err := writeManifestAtomic(ManifestPath(i.outDir), manifest); err != nil {
		return nil, err
	}
	logger.Infof("download complete: %d files -> %s", len(manifest.Files), i.outDir)

	i.runPostDownloadHook(manifest)
	return manifest, nil
}

// fetch authenticates and downloads, with environment-sourced credentials
// materialized into a run-scoped, owner-only credential file so any
// config-directory lookup by the host tooling resolves to this run's
// credentials. The scratch file and the config-directory redirect never
// outlive the call, even on failure.
func (i *Ingestor) fetch(ctx context.Context) error {
	cleanup, err := i.materializeScratchCredentials()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := i.client.Authenticate(ctx); err != nil {
		return errors.Wrap(err, "authentication failed")
	}
	if err := i.client.DownloadDataset(ctx, i.slug, i.outDir, i.unzip, i.quiet); err != nil {
		return errors.Wrapf(err, "failed to download %s", i.slug)
	}
	return nil
}

// materializeScratchCredentials writes a 0600 kaggle.json under a private
// scratch directory and points KAGGLE_CONFIG_DIR at it for the duration of the
// run. The returned cleanup restores the previous environment and removes the
// scratch directory; removal is best-effort and never raises.
func (i *Ingestor) materializeScratchCredentials() (func(), error) {
	creds := i.creds
	if !creds.Complete() {
		creds = kaggle.CredentialsFromEnv()
	}
	if !creds.Complete() {
		// Nothing to materialize; the client falls back to ~/.kaggle.
		return func() {}, nil
	}

	dir := filepath.Join(i.outDir, scratchConfigDir)
	if err := os.MkdirAll(dir, fsutil.DirModePrivate); err != nil {
		return nil, errors.Wrap(errors.ErrCredentialFile, err.Error())
	}

	payload, err := json.Marshal(creds)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCredentialFile, err.Error())
	}

	credPath := filepath.Join(dir, kaggle.CredentialFileName)
	f, err := fsutil.CreateFilePerm(credPath, fsutil.FileModePrivate)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(errors.ErrCredentialFile, err.Error())
	}
	if _, err := f.Write(payload); err != nil {
		_ = f.Close()
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(errors.ErrCredentialFile, err.Error())
	}
	if err := f.Close(); err != nil {
		_ = os.RemoveAll(dir)
		return nil, errors.Wrap(errors.ErrCredentialFile, err.Error())
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		absDir = dir
	}
	prevDir, hadPrev := os.LookupEnv(kaggle.EnvConfigDir)
	_ = os.Setenv(kaggle.EnvConfigDir, absDir)

	return func() {
		if hadPrev {
			_ = os.Setenv(kaggle.EnvConfigDir, prevDir)
		} else {
			_ = os.Unsetenv(kaggle.EnvConfigDir)
		}
		if err := os.RemoveAll(dir); err != nil {
			logger.Warnf("could not remove credential scratch dir %s: %v", dir, err)
		}
	}, nil
}

// alreadyDownloaded reports whether a prior manifest exists and at least one
// of its listed files survives on disk. A cheap liveness check, not a full
// integrity re-verification.
func (i *Ingestor) alreadyDownloaded() (*model.Manifest, bool) {
	manifest, err := ReadManifest(ManifestPath(i.outDir))
	if err != nil {
		return nil, false
	}

	alive := 0
	for _, f := range manifest.Files {
		if _, err := os.Stat(f.Path); err == nil {
			alive++
		}
	}
	if alive == 0 {
		return manifest, false
	}
	if alive < len(manifest.Files) {
		logger.Debugf("manifest lists %d files but only %d remain on disk; still treated as present",
			len(manifest.Files), alive)
	}
	return manifest, true
}

// ReadManifest loads a manifest from path.
func ReadManifest(path string) (*model.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest model.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(errors.ErrManifestParse, err.Error())
	}
	return &manifest, nil
}

// buildManifest enumerates every regular file under the output directory
// except the manifest itself and records size and checksum for each.
func (i *Ingestor) buildManifest(ctx context.Context, prev *model.Manifest) (*model.Manifest, error) {
	manifest := &model.Manifest{
		Dataset:      i.slug,
		DownloadedAt: i.nowFn().Format(model.ManifestTimeFormat),
		Unzip:        i.unzip,
		Files:        []model.FileRecord{},
	}

	err := filepath.WalkDir(i.outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() == ManifestFileName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		sum, err := checksumFile(path)
		if err != nil {
			return err
		}
		manifest.Files = append(manifest.Files, model.FileRecord{
			Path:   path,
			Size:   info.Size(),
			SHA256: sum,
		})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not enumerate downloaded files")
	}

	i.recordVersion(ctx, manifest, prev)
	return manifest, nil
}

// recordVersion asks the host for the dataset's current version. Failures are
// informational; the manifest just omits the version.
func (i *Ingestor) recordVersion(ctx context.Context, manifest, prev *model.Manifest) {
	remote, err := i.client.LatestVersion(ctx, i.slug)
	if err != nil {
		logger.Debugf("could not determine dataset version for %s: %v", i.slug, err)
		return
	}
	manifest.DatasetVersion = remote.Original()

	if prev == nil || prev.DatasetVersion == "" {
		return
	}
	if local, err := version.NewVersion(prev.DatasetVersion); err == nil && remote.GreaterThan(local) {
		logger.Infof("dataset advanced from version %s to %s", prev.DatasetVersion, manifest.DatasetVersion)
	}
}

func (i *Ingestor) runPostDownloadHook(manifest *model.Manifest) {
	if !i.hooks.HasScript(hook.PostDownload) {
		return
	}
	vars := map[string]interface{}{
		"dataset":      manifest.Dataset,
		"outDir":       i.outDir,
		"files":        len(manifest.Files),
		"manifestPath": ManifestPath(i.outDir),
	}
	if err := i.hooks.Execute(hook.PostDownload, vars); err != nil {
		logger.Warnf("post-download hook failed: %v", err)
	}
}

// writeManifestAtomic pretty-prints the manifest and writes it via a sibling
// temp file plus rename, so a reader never observes a half-written manifest.
func writeManifestAtomic(path string, manifest *model.Manifest) error {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrManifestWrite, err.Error())
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(path, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrManifestWrite, err.Error())
	}
	return nil
}

// checksumFile computes the file's streaming SHA-256 digest in fixed-size
// chunks.
func checksumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, checksumChunkSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
