// Package model contains the shared data structures handed between pipeline
// stages. The manifest file is the only artifact the acquirer publishes.
package model

// Manifest records the outcome of one successful dataset download. It is
// written atomically next to the downloaded files and overwritten as a whole on
// a forced re-download; readers never see a partial manifest.
type Manifest struct {
	Dataset        string       `json:"dataset"`
	DatasetVersion string       `json:"dataset_version,omitempty"`
	DownloadedAt   string       `json:"downloaded_at"`
	Unzip          bool         `json:"unzip"`
	Files          []FileRecord `json:"files"`
}

// FileRecord describes one regular file under the output directory. Immutable
// once written.
type FileRecord struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// ManifestTimeFormat is the timestamp layout used for Manifest.DownloadedAt.
const ManifestTimeFormat = "2006-01-02 15:04:05"
