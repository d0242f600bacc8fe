// Package failurelog records the archives that could not be downloaded.
//
// The log is a plain text file with one file name per line. It is only ever
// appended to, across runs, so an operator can retry the listed files later.
package failurelog

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
)

// Log is an append-only failure log file. It is safe for concurrent use.
type Log struct {
	path string
	mu   sync.Mutex
}

// New returns a Log writing to path. The file is created on first Append.
func New(path string) *Log {
	return &Log{path: path}
}

// Path returns the file the log appends to.
func (l *Log) Path() string {
	return l.path
}

// Append adds name as one line.
//
// Every call opens the file in append mode, writes the whole line with a
// single write, and closes it again, so lines from concurrent writers (even
// other processes) never interleave.
func (l *Log) Append(name string) error {
	line := strings.ReplaceAll(name, "\n", " ") + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Entries returns every recorded name in file order. A missing file has no
// entries.
func (l *Log) Entries() ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}
