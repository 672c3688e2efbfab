package kaggle

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glorpus-work/dataprep/pkg/errors"
	"github.com/glorpus-work/dataprep/test/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{Username: "tester", Key: "secret"}

func newTestClient(baseURL string) *Client {
	return NewClientWithBaseURL(testCreds, baseURL, 5*time.Second, "dataprep-test/1.0")
}

func TestDownloadDataset_Unzip(t *testing.T) {
	payload := map[string]string{
		"customer_churn.csv": "CustomerID,Churn\n1,0\n2,1\n",
		"README.md":          "about this dataset",
	}

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/datasets/download/owner/churn", r.URL.Path)
		_, _ = w.Write(testutil.ZipBytes(t, payload))
	}))
	defer srv.Close()

	destDir := t.TempDir()
	c := newTestClient(srv.URL)

	err := c.DownloadDataset(context.Background(), "owner/churn", destDir, true, true)
	require.NoError(t, err)

	// Basic auth header carries the username/key pair.
	assert.NotEmpty(t, gotAuth)
	assert.Contains(t, gotAuth, "Basic ")

	// Extracted files are in place, archive and temp files are gone.
	for name, content := range payload {
		got, err := os.ReadFile(filepath.Join(destDir, name))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}
	entries, err := os.ReadDir(destDir)
	require.NoError(t, err)
	assert.Len(t, entries, len(payload))
}

func TestDownloadDataset_NoUnzip(t *testing.T) {
	zipBody := testutil.ZipBytes(t, map[string]string{"data.csv": "a,b\n1,2\n"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(zipBody)
	}))
	defer srv.Close()

	destDir := t.TempDir()
	c := newTestClient(srv.URL)

	err := c.DownloadDataset(context.Background(), "owner/churn", destDir, false, true)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(destDir, "churn.zip"))
	require.NoError(t, err)
	assert.Equal(t, zipBody, got)
}

func TestDownloadDataset_AuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.DownloadDataset(context.Background(), "owner/churn", t.TempDir(), true, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrAuthenticationFailed)
}

func TestDownloadDataset_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.DownloadDataset(context.Background(), "owner/churn", t.TempDir(), true, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnexpectedStatus)
}

func TestAuthenticate_NoCredentials(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvKey, "")
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	c := NewClient(Credentials{}, time.Second, "")
	err := c.Authenticate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoCredentials)
}

func TestLatestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets/view/owner/churn", r.URL.Path)
		_, _ = w.Write([]byte(`{"currentVersionNumber": 3}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	v, err := c.LatestVersion(context.Background(), "owner/churn")
	require.NoError(t, err)
	assert.Equal(t, "3.0.0", v.String())
}

func TestArchiveFilename(t *testing.T) {
	tests := []struct {
		slug     string
		expected string
	}{
		{"owner/churn-risk", "churn-risk.zip"},
		{"plain", "plain.zip"},
		{"", "dataset.zip"},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			assert.Equal(t, tt.expected, archiveFilename(tt.slug))
		})
	}
}
