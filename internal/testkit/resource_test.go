package testkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestBundle_URL(t *testing.T) {
	b := DefaultBundle()

	path, err := b.URL("sample", "json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, "sample.json", filepath.Base(path))

	// Leading dot is accepted.
	dotted, err := b.URL("sample", ".json")
	require.NoError(t, err)
	assert.Equal(t, path, dotted)
}

func TestBundle_URLWithoutExtension(t *testing.T) {
	path, err := DefaultBundle().URL("README", "")
	require.NoError(t, err)
	assert.Equal(t, "README", filepath.Base(path))
}

func TestBundle_URLMissing(t *testing.T) {
	_, err := DefaultBundle().URL("missing", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceNotFound)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestBundle_URLDirectory(t *testing.T) {
	_, err := DefaultBundle().URL("certificates", "")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestBundle_URLEmptyName(t *testing.T) {
	_, err := DefaultBundle().URL("", "json")
	assert.Error(t, err)
}

func TestBundle_CustomRoot(t *testing.T) {
	b := Bundle{Root: filepath.Join("testdata", "resources")}

	path, err := b.URL("utf8_string", "txt")
	require.NoError(t, err)
	assert.Equal(t, "utf8_string.txt", filepath.Base(path))
}

func TestBase_URL(t *testing.T) {
	base := New(Config{TestDirectory: t.TempDir()})
	assert.Equal(t, DefaultResourceRoot, base.Bundle().Root)

	path := base.URL(t, "sample", "json")
	assert.Equal(t, "sample.json", filepath.Base(path))
}

func TestBundle_URLNormalization(t *testing.T) {
	root := t.TempDir()
	decomposed := norm.NFD.String("café")
	require.NoError(t, os.WriteFile(filepath.Join(root, decomposed+".txt"), []byte("x"), 0o644))

	b := Bundle{Root: root}
	path, err := b.URL(norm.NFC.String("café"), "txt")
	require.NoError(t, err)
	assert.Equal(t, decomposed+".txt", filepath.Base(path))
}

func TestNormalForms(t *testing.T) {
	assert.Equal(t, []string{"plain.txt"}, normalForms("plain.txt"))

	nfc := norm.NFC.String("café")
	forms := normalForms(nfc)
	require.Len(t, forms, 2)
	assert.Equal(t, nfc, forms[0])
	assert.Equal(t, norm.NFD.String("café"), forms[1])
}
