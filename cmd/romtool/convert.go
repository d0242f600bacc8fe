package main

import (
	"context"
	"fmt"
	"os"

	"github.com/handiism/rom-archiver/internal/config"
	"github.com/handiism/rom-archiver/internal/convert"
	"github.com/handiism/rom-archiver/internal/report"
	"github.com/handiism/rom-archiver/internal/tui"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	configPath string
	output     string
	removeZip  bool
	chdman     string
	playlist   bool
	tui        bool
	verbose    bool
}

func newConvertCmd() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [FOLDER]",
		Short: "Extract every .zip archive in a folder and convert its disc images to CHD",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var folder string
			if len(args) > 0 {
				folder = args[0]
			}
			return runConvert(cmd, opts, folder)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "JSON or YAML settings file")
	f.StringVarP(&opts.output, "output", "o", "", "directory for converted files (default: next to the extracted files)")
	f.BoolVar(&opts.removeZip, "remove-zip", false, "delete each archive once all of its images converted")
	f.StringVar(&opts.chdman, "chdman", "", "path to the chdman binary (default \""+config.DefaultChdmanPath+"\")")
	f.BoolVar(&opts.playlist, "playlist", false, "write an .m3u playlist for archives holding several discs")
	f.BoolVar(&opts.tui, "tui", false, "show the interactive run view")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "show verbose output")

	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions, folder string) error {
	ctx := cmd.Context()

	settings, err := loadSettings(opts.configPath)
	if err != nil {
		return err
	}
	applyConvertFlags(cmd, opts, settings)

	if folder == "" {
		if folder, err = promptConvert(ctx, settings); err != nil {
			return err
		}
	}

	cfg, err := settings.ToConvertConfig(folder)
	if err != nil {
		return err
	}
	converter := convert.NewChdmanConverter(cfg.ChdmanPath)

	if opts.tui {
		view := tui.NewRunView("CHD Convert", opts.verbose)
		proc := convert.NewProcessor(cfg, converter, view.Report())
		poll := func() (int32, int32, int64) {
			finished, total := proc.GetProgress()
			return finished, total, 0
		}
		return view.Run(ctx, poll, func(ctx context.Context) (string, error) {
			summary, err := proc.ProcessFolder(ctx)
			if summary == nil {
				return "", err
			}
			return summary.String(), err
		})
	}

	printer := report.NewPrinter(os.Stdout, opts.verbose)
	proc := convert.NewProcessor(cfg, converter, printer.Func())
	summary, err := proc.ProcessFolder(ctx)
	if summary != nil {
		printConvertSummary(summary)
	}
	return err
}

func applyConvertFlags(cmd *cobra.Command, opts *convertOptions, s *config.Settings) {
	f := cmd.Flags()
	if f.Changed("output") {
		s.ConvertOutputPath = opts.output
	}
	if f.Changed("remove-zip") {
		s.RemoveArchives = opts.removeZip
	}
	if f.Changed("chdman") {
		s.ChdmanPath = opts.chdman
	}
	if f.Changed("playlist") {
		s.CreatePlaylist = opts.playlist
	}
}

// promptConvert asks for the source folder and the optional convert settings.
func promptConvert(ctx context.Context, s *config.Settings) (string, error) {
	removeDefault := "n"
	if s.RemoveArchives {
		removeDefault = "y"
	}

	values, err := tui.Prompt(ctx, "CHD Convert", []tui.Field{
		{
			Label:       "Folder with .zip archives",
			Placeholder: "downloads",
			Validate:    config.ValidateSourceFolder,
		},
		{
			Label:   "Output directory (empty: next to the extracted files)",
			Default: s.ConvertOutputPath,
		},
		{
			Label:   "Remove archives after conversion? (y/n)",
			Default: removeDefault,
			Validate: func(v string) error {
				_, err := config.ParseYesNo(v)
				return err
			},
		},
		{
			Label:   "chdman path",
			Default: s.ChdmanPath,
		},
	})
	if err != nil {
		return "", err
	}

	s.ConvertOutputPath = values[1]
	s.RemoveArchives, _ = config.ParseYesNo(values[2])
	if values[3] != "" {
		s.ChdmanPath = values[3]
	}
	return values[0], nil
}

func printConvertSummary(s *convert.Summary) {
	fmt.Println()
	fmt.Printf("✨ %s\n", s)
	for _, name := range s.KeptArchives {
		fmt.Printf("   Kept %s (some images failed to convert)\n", name)
	}
}
