// Command romtool mirrors ROM archives from a directory listing and converts
// the downloaded disc images to CHD.
//
// Usage:
//
//	romtool fetch [URL] [flags]
//	romtool convert [FOLDER] [flags]
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/rom-archiver/internal/config"
	"github.com/handiism/rom-archiver/internal/tui"
	"github.com/spf13/cobra"
)

const (
	exitOK        = 0
	exitError     = 1
	exitCancelled = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	code := exitCode(err)
	switch code {
	case exitCancelled:
		fmt.Fprintln(os.Stderr, "Cancelled.")
	case exitError:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(code)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "romtool",
		Short:         "Download ROM archives and convert disc images to CHD",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newFetchCmd(), newConvertCmd())
	return root
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled), errors.Is(err, tui.ErrCancelled):
		return exitCancelled
	default:
		return exitError
	}
}

// loadSettings reads the settings file at path, or returns the defaults when
// no path is given.
func loadSettings(path string) (*config.Settings, error) {
	if path == "" {
		return config.DefaultSettings(), nil
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return settings, nil
}
