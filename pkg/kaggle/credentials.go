package kaggle

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/glorpus-work/dataprep/pkg/errors"
)

// Environment variables consulted during credential resolution.
const (
	EnvUsername  = "KAGGLE_USERNAME"
	EnvKey       = "KAGGLE_API_KEY"
	EnvConfigDir = "KAGGLE_CONFIG_DIR"
)

// CredentialFileName is the conventional credential file name inside a config
// directory.
const CredentialFileName = "kaggle.json"

// Credentials holds a username and API key pair for the dataset host.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// IsZero reports whether no credential material is present.
func (c Credentials) IsZero() bool {
	return c.Username == "" && c.Key == ""
}

// Complete reports whether both parts of the pair are present.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Key != ""
}

// CredentialsFromEnv reads credentials from the environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		Username: os.Getenv(EnvUsername),
		Key:      os.Getenv(EnvKey),
	}
}

// ReadCredentialFile loads a kaggle.json credential file from dir.
func ReadCredentialFile(dir string) (Credentials, error) {
	data, err := os.ReadFile(filepath.Join(dir, CredentialFileName))
	if err != nil {
		return Credentials{}, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, errors.Wrap(err, "failed to parse credential file")
	}
	return creds, nil
}

// ResolveCredentials resolves usable credentials in priority order: the
// explicit pair, then environment variables, then a credential file under
// KAGGLE_CONFIG_DIR or ~/.kaggle. Returns ErrNoCredentials when no source
// yields a complete pair.
func ResolveCredentials(explicit Credentials) (Credentials, error) {
	if explicit.Complete() {
		return explicit, nil
	}

	if env := CredentialsFromEnv(); env.Complete() {
		return env, nil
	}

	for _, dir := range credentialDirs() {
		creds, err := ReadCredentialFile(dir)
		if err != nil {
			continue
		}
		if creds.Complete() {
			return creds, nil
		}
	}

	return Credentials{}, errors.ErrNoCredentials
}

func credentialDirs() []string {
	var dirs []string
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		dirs = append(dirs, dir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".kaggle"))
	}
	return dirs
}
