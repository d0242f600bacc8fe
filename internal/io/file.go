package ioutils

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Exists reports whether anything is present at path.
//
// Errors other than "does not exist" count as present, so callers that use
// Exists to skip work never overwrite something they could not inspect.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// HasExt reports whether name ends with one of exts, ignoring case.
// Extensions include the leading dot.
func HasExt(name string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// TrimExt returns name without its final extension.
//
// Example:
//
//	TrimExt("Game (USA).zip") // "Game (USA)"
func TrimExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// RemoveAllExcept deletes every entry of dir except regular files whose
// extension is keepExt. Subdirectories are removed recursively.
//
// All entries are attempted; the first error is returned.
func RemoveAllExcept(dir, keepExt string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var firstErr error
	for _, entry := range entries {
		if !entry.IsDir() && HasExt(entry.Name(), keepExt) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// RemoveIfEmpty removes dir when it has no entries and reports whether it did.
func RemoveIfEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}
	return true, os.Remove(dir)
}
