package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestDirectory_UnderTempDir(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), DefaultDirectoryName), TestDirectory())
}

func TestResetDirectory_CreatesMissing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tests")

	require.NoError(t, ResetDirectory(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResetDirectory_RemovesContents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "download.bin"), []byte("data"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "deeper", "f.txt"), []byte("x"), 0o644))

	require.NoError(t, ResetDirectory(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResetDirectory_RefusesSharedDirectories(t *testing.T) {
	assert.Error(t, ResetDirectory(os.TempDir()))
	assert.Error(t, ResetDirectory(string(filepath.Separator)))
}

func TestResetDirectory_PathIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, ResetDirectory(file))
}

func TestBase_SetUpIsolatesRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "suite")
	base := New(Config{TestDirectory: dir})
	assert.Equal(t, dir, base.Directory())

	got := base.SetUp(t)
	assert.Equal(t, dir, got)
	require.NoError(t, os.WriteFile(filepath.Join(got, "leftover"), []byte("x"), 0o644))

	// The next test starts from an empty directory.
	got = base.SetUp(t)
	entries, err := os.ReadDir(got)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
