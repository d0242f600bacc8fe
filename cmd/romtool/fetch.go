package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/handiism/rom-archiver/internal/config"
	"github.com/handiism/rom-archiver/internal/download"
	"github.com/handiism/rom-archiver/internal/model"
	"github.com/handiism/rom-archiver/internal/report"
	"github.com/handiism/rom-archiver/internal/tui"
	"github.com/spf13/cobra"
)

type fetchOptions struct {
	configPath string
	output     string
	region     string
	workers    int
	retries    int
	retryDelay time.Duration
	failureLog string
	tui        bool
	verbose    bool
}

func newFetchCmd() *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch [URL]",
		Short: "Download every matching .zip archive linked from a listing page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pageURL string
			if len(args) > 0 {
				pageURL = args[0]
			}
			return runFetch(cmd, opts, pageURL)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "JSON or YAML settings file")
	f.StringVarP(&opts.output, "output", "o", "", "download directory (default \"downloads\")")
	f.StringVarP(&opts.region, "region", "r", "", "region filter: "+model.RegionNames())
	f.IntVarP(&opts.workers, "workers", "w", 0, "number of simultaneous downloads (prompted when unset)")
	f.IntVar(&opts.retries, "retries", 0, "attempts per file (default 3)")
	f.DurationVar(&opts.retryDelay, "retry-delay", 0, "delay between attempts (default 5s)")
	f.StringVar(&opts.failureLog, "failure-log", "", "file that failed downloads are appended to (default \"failed_downloads.txt\")")
	f.BoolVar(&opts.tui, "tui", false, "show the interactive run view")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *fetchOptions, pageURL string) error {
	ctx := cmd.Context()

	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	applyFetchFlags(cmd, opts, settings)

	if pageURL == "" || settings.MaxConcurrentDownloads < 1 {
		if pageURL, err = promptFetch(ctx, settings, pageURL); err != nil {
			return err
		}
	}

	cfg, err := settings.ToFetchConfig(pageURL)
	if err != nil {
		return err
	}

	if opts.tui {
		view := tui.NewRunView("ROM Fetch", opts.verbose)
		mgr := download.NewManager(cfg, view.Report())
		return view.Run(ctx, mgr.GetProgress, func(ctx context.Context) (string, error) {
			summary, err := mgr.Run(ctx)
			if summary == nil {
				return "", err
			}
			return summary.String(), err
		})
	}

	printer := report.NewPrinter(os.Stdout, opts.verbose)
	mgr := download.NewManager(cfg, printer.Func())
	summary, err := mgr.Run(ctx)
	if summary != nil {
		printFetchSummary(summary, cfg.FailureLogPath)
	}
	return err
}

func applyFetchFlags(cmd *cobra.Command, opts *fetchOptions, s *config.Settings) {
	f := cmd.Flags()
	if f.Changed("output") {
		s.DownloadsPath = opts.output
	}
	if f.Changed("region") {
		s.RegionFilter = opts.region
	}
	if f.Changed("workers") {
		s.MaxConcurrentDownloads = opts.workers
	}
	if f.Changed("retries") {
		s.DownloadMaxRetries = opts.retries
	}
	if f.Changed("retry-delay") {
		s.DownloadRetryCooldown = opts.retryDelay.Seconds()
	}
	if f.Changed("failure-log") {
		s.FailureLogPath = opts.failureLog
	}
}

// promptFetch asks for the page URL, worker count, download directory and
// region, pre-filled with what is already known, and stores the answers.
func promptFetch(ctx context.Context, s *config.Settings, pageURL string) (string, error) {
	workers := ""
	if s.MaxConcurrentDownloads > 0 {
		workers = strconv.Itoa(s.MaxConcurrentDownloads)
	}

	values, err := tui.Prompt(ctx, "ROM Fetch", []tui.Field{
		{
			Label:       "Listing URL",
			Placeholder: "https://example.org/roms/",
			Default:     pageURL,
			Validate:    config.ValidatePageURL,
		},
		{
			Label:       "Simultaneous downloads",
			Placeholder: "4",
			Default:     workers,
			Validate: func(v string) error {
				_, err := config.ParseWorkerCount(v)
				return err
			},
		},
		{
			Label:   "Download directory",
			Default: s.DownloadsPath,
		},
		{
			Label:       "Region",
			Placeholder: model.RegionNames(),
			Default:     s.RegionFilter,
			Validate: func(v string) error {
				_, err := model.ParseRegion(v)
				return err
			},
		},
	})
	if err != nil {
		return "", err
	}

	// Validated by the form.
	s.MaxConcurrentDownloads, _ = config.ParseWorkerCount(values[1])
	if values[2] != "" {
		s.DownloadsPath = values[2]
	}
	s.RegionFilter = values[3]
	return values[0], nil
}

func printFetchSummary(s *download.Summary, failureLog string) {
	fmt.Println()
	fmt.Printf("✨ %s\n", s)
	if len(s.FailedFiles) > 0 {
		fmt.Printf("   Failed downloads appended to %s:\n", failureLog)
		for _, name := range s.FailedFiles {
			fmt.Printf("     %s\n", name)
		}
	}
}
