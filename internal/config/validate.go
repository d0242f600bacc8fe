package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrInvalidWorkerCount is returned for worker counts that are not positive integers.
	ErrInvalidWorkerCount = errors.New("worker count must be a positive integer")

	// ErrNotADirectory is returned when a source folder exists but is a file.
	ErrNotADirectory = errors.New("not a directory")

	// ErrInvalidAnswer is returned by ParseYesNo for anything but yes or no.
	ErrInvalidAnswer = errors.New("answer y or n")
)

// ParseWorkerCount parses the number of simultaneous downloads.
func ParseWorkerCount(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidWorkerCount, raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, n)
	}
	return n, nil
}

// ValidatePageURL checks that raw is an absolute http or https URL.
func ValidatePageURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid URL %q: expected http(s)://host/...", raw)
	}
	return nil
}

// ValidateSourceFolder checks that path exists and is a directory.
func ValidateSourceFolder(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("folder path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("invalid folder path %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid folder path %q: %w", path, ErrNotADirectory)
	}
	return nil
}

// PrepareOutputDir creates path when it is set and missing. An empty path is
// valid and means "no separate output directory".
func PrepareOutputDir(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	return nil
}

// ParseYesNo parses a y/n answer. An empty answer means no.
func ParseYesNo(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "y", "yes", "true":
		return true, nil
	case "", "n", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w, got %q", ErrInvalidAnswer, raw)
}
