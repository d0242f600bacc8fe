package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
)

// ErrConverterNotFound is returned when the converter binary does not exist.
var ErrConverterNotFound = errors.New("converter not found")

// Result holds the outcome of a converter process that ran.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Converter turns one disc image into one CHD file.
//
// Convert returns a nil error whenever the process ran, whatever its exit
// code. A non-nil error means it could not be started.
type Converter interface {
	Convert(ctx context.Context, input, output string) (Result, error)
}

// ChdmanConverter runs "chdman createcd".
type ChdmanConverter struct {
	Path string
}

// NewChdmanConverter creates a converter running the chdman binary at path.
func NewChdmanConverter(path string) *ChdmanConverter {
	return &ChdmanConverter{Path: path}
}

// Convert runs chdman createcd -i input -o output and captures its output.
func (c *ChdmanConverter) Convert(ctx context.Context, input, output string) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Path, "createcd", "-i", input, "-o", output)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return res, fmt.Errorf("%w at: %s", ErrConverterNotFound, c.Path)
	}
	return res, err
}
