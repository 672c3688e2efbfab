package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMove_File_SameFilesystem tests moving a file within the same filesystem
func TestMove_File_SameFilesystem(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "source.csv")
	dstFile := filepath.Join(tempDir, "destination.csv")

	content := "CustomerID,Churn\n1,0\n"
	err := os.WriteFile(srcFile, []byte(content), 0644)
	require.NoError(t, err)

	err = Move(srcFile, dstFile)
	require.NoError(t, err)

	movedContent, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, content, string(movedContent))

	// Verify source file no longer exists
	_, err = os.Stat(srcFile)
	assert.True(t, os.IsNotExist(err))
}

func TestMove_CreatesDestinationDir(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "source.bin")
	dstFile := filepath.Join(tempDir, "nested", "deeper", "dest.bin")

	require.NoError(t, os.WriteFile(srcFile, []byte("payload"), 0644))
	require.NoError(t, Move(srcFile, dstFile))

	got, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestMove_EmptyPaths(t *testing.T) {
	assert.Error(t, Move("", "dst"))
	assert.Error(t, Move("src", ""))
}

func TestCopy(t *testing.T) {
	tempDir := t.TempDir()

	srcFile := filepath.Join(tempDir, "a.txt")
	dstFile := filepath.Join(tempDir, "b.txt")

	require.NoError(t, os.WriteFile(srcFile, []byte("copy me"), 0644))
	require.NoError(t, Copy(srcFile, dstFile))

	got, err := os.ReadFile(dstFile)
	require.NoError(t, err)
	assert.Equal(t, "copy me", string(got))

	// Source stays in place after a copy.
	_, err = os.Stat(srcFile)
	assert.NoError(t, err)
}

func TestCreateFilePerm(t *testing.T) {
	tempDir := t.TempDir()

	path := filepath.Join(tempDir, "secret.json")
	f, err := CreateFilePerm(path, FileModePrivate)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileModePrivate), info.Mode().Perm())
}

func TestWriteFileAtomic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "manifest.json")

	require.NoError(t, WriteFileAtomic(path, []byte(`{"files": []}`), FileModeDefault))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"files": []}`, string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(FileModeDefault), info.Mode().Perm())

	// No temp file residue.
	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileAtomic_OverwritesExisting(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "manifest.json")

	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("new"), FileModeDefault))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}
