package testkit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrResourceNotFound is returned when a bundled fixture does not exist.
var ErrResourceNotFound = errors.New("resource not found")

// Bundle resolves fixture files stored under Root.
type Bundle struct {
	Root string
}

// DefaultBundle resolves fixtures under DefaultResourceRoot.
func DefaultBundle() Bundle {
	return Bundle{Root: DefaultResourceRoot}
}

// URL returns the absolute path of <Root>/<name>.<ext>.
// ext may be given with or without its leading dot, or empty for files
// without an extension.
//
// Names are matched in the given form first, then NFC and NFD, so a name
// with accents resolves whichever normalization the filesystem stored.
func (b Bundle) URL(name, ext string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("resource name is required")
	}

	file := name
	if ext = strings.TrimPrefix(ext, "."); ext != "" {
		file += "." + ext
	}

	var firstPath string
	for _, candidate := range normalForms(file) {
		path, err := filepath.Abs(filepath.Join(b.Root, candidate))
		if err != nil {
			return "", fmt.Errorf("failed to resolve resource %s: %w", file, err)
		}
		if firstPath == "" {
			firstPath = path
		}

		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to stat resource %s: %w", file, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrResourceNotFound, path)
		}
		return path, nil
	}

	return "", fmt.Errorf("%w: %s", ErrResourceNotFound, firstPath)
}

// normalForms returns s followed by its distinct NFC and NFD forms.
func normalForms(s string) []string {
	forms := []string{s}
	for _, f := range []string{norm.NFC.String(s), norm.NFD.String(s)} {
		if f != forms[0] && (len(forms) == 1 || f != forms[1]) {
			forms = append(forms, f)
		}
	}
	return forms
}
