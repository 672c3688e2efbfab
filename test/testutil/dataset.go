// Package testutil provides fixture helpers for tests: canned CSV datasets and
// zip archives shaped like the payload the dataset host serves.
package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteZip builds a zip archive containing the given files (name -> content)
// and writes it to path.
func WriteZip(t *testing.T, path string, files map[string]string) {
	t.Helper()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write zip %s: %v", path, err)
	}
}

// ZipBytes builds an in-memory zip archive containing the given files.
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s to zip: %v", name, err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s to zip: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip writer: %v", err)
	}
	return buf.Bytes()
}

// ChurnCSV renders a well-formed customer churn CSV with rows data rows. The
// churn column alternates 0 and 1 so the rate sits at a plausible 0.5, and
// CustomerID values are unique.
func ChurnCSV(rows int) string {
	var sb strings.Builder
	sb.WriteString("CustomerID,Age,Gender,Tenure,Usage Frequency,Support Calls,Payment Delay,Subscription Type,Contract Length,Total Spend,Last Interaction,Churn\n")
	for i := 0; i < rows; i++ {
		churn := i % 2
		fmt.Fprintf(&sb, "%d,%d,Female,%d,%d,%d,%d,Standard,Monthly,%d,%d,%d\n",
			i+1, 20+i%60, i%72, i%30, i%10, i%25, 100+i, i%30, churn)
	}
	return sb.String()
}

// WriteChurnCSV writes a well-formed churn CSV into dir and returns its path.
func WriteChurnCSV(t *testing.T, dir string, rows int) string {
	t.Helper()
	path := filepath.Join(dir, "customer_churn.csv")
	if err := os.WriteFile(path, []byte(ChurnCSV(rows)), 0o644); err != nil {
		t.Fatalf("failed to write churn csv: %v", err)
	}
	return path
}
