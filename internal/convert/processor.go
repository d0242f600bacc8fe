package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/handiism/rom-archiver/internal/config"
	ioutils "github.com/handiism/rom-archiver/internal/io"
	"github.com/handiism/rom-archiver/internal/report"
)

// Summary is the outcome of one convert run.
type Summary struct {
	RunID           string
	Archives        int
	Processed       int
	ExtractFailed   int
	Converted       int
	ConvertFailed   int
	RemovedArchives int
	Playlists       int
	KeptArchives    []string
}

// Processor runs the convert pipeline over one folder.
type Processor struct {
	cfg        config.ConvertConfig
	converter  Converter
	runID      string
	onProgress report.Func

	totalArchives    int32
	finishedArchives int32
}

// NewProcessor creates a Processor converting images with converter.
func NewProcessor(cfg config.ConvertConfig, converter Converter, onProgress report.Func) *Processor {
	return &Processor{
		cfg:        cfg,
		converter:  converter,
		runID:      uuid.NewString(),
		onProgress: onProgress,
	}
}

// RunID identifies this run in operator output.
func (p *Processor) RunID() string {
	return p.runID
}

// GetProgress returns how many archives have been handled so far.
func (p *Processor) GetProgress() (finished, total int32) {
	return atomic.LoadInt32(&p.finishedArchives), atomic.LoadInt32(&p.totalArchives)
}

// ProcessFolder handles every archive in the source folder.
//
// Only a failure to list the folder, or cancellation, is returned as an
// error. Everything else is reported and counted in the Summary.
func (p *Processor) ProcessFolder(ctx context.Context) (*Summary, error) {
	p.progress(report.LevelVerbose, "Run %s", p.runID)

	archives, err := ScanArchives(p.cfg.SourceDir)
	if err != nil {
		p.progress(report.LevelError, "Error reading %s: %v", p.cfg.SourceDir, err)
		return nil, err
	}

	summary := &Summary{RunID: p.runID, Archives: len(archives)}
	atomic.StoreInt32(&p.totalArchives, int32(len(archives)))

	if len(archives) == 0 {
		p.progress(report.LevelWarning, "No archives found in %s", p.cfg.SourceDir)
		return summary, nil
	}
	p.progress(report.LevelInfo, "Found %d archive(s) in %s", len(archives), p.cfg.SourceDir)

	for _, archive := range archives {
		if err := ctx.Err(); err != nil {
			p.progress(report.LevelWarning, "Conversion cancelled")
			return summary, err
		}
		p.processArchive(ctx, archive, summary)
		atomic.AddInt32(&p.finishedArchives, 1)
	}

	p.progress(report.LevelSuccess, "Processing complete: %d converted, %d failed", summary.Converted, summary.ConvertFailed+summary.ExtractFailed)
	return summary, ctx.Err()
}

func (p *Processor) processArchive(ctx context.Context, archivePath string, s *Summary) {
	name := filepath.Base(archivePath)
	scratch := filepath.Join(filepath.Dir(archivePath), ioutils.TrimExt(name))

	p.progress(report.LevelInfo, "Extracting %s", name)
	if err := extractZip(archivePath, scratch); err != nil {
		p.progress(report.LevelError, "Error processing %s: %v", name, err)
		s.ExtractFailed++
		return
	}

	created, failed := p.convertImages(ctx, scratch)
	s.Converted += len(created)
	s.ConvertFailed += failed

	if err := p.cleanup(scratch); err != nil {
		p.progress(report.LevelWarning, "Error cleaning up %s: %v", scratch, err)
	}

	if p.cfg.CreatePlaylist && len(created) > 1 {
		path, err := writePlaylist(filepath.Dir(created[0]), name, created)
		if err != nil {
			p.progress(report.LevelWarning, "Error writing playlist for %s: %v", name, err)
		} else {
			s.Playlists++
			p.progress(report.LevelSuccess, "Created playlist: %s", filepath.Base(path))
		}
	}

	s.Processed++
	if !p.cfg.RemoveArchives {
		p.progress(report.LevelSuccess, "Processed: %s", name)
		return
	}
	if failed > 0 {
		p.progress(report.LevelWarning, "Processed: %s (kept, %d image(s) failed to convert)", name, failed)
		s.KeptArchives = append(s.KeptArchives, name)
		return
	}
	if err := os.Remove(archivePath); err != nil {
		p.progress(report.LevelError, "Error deleting %s: %v", name, err)
		return
	}
	s.RemovedArchives++
	p.progress(report.LevelSuccess, "Processed and deleted: %s", name)
}

// convertImages converts every disc image at the top level of dir, removes
// each image whose conversion succeeded and returns the CHD files created.
func (p *Processor) convertImages(ctx context.Context, dir string) (created []string, failed int) {
	images, err := scanImages(dir)
	if err != nil {
		p.progress(report.LevelError, "Error scanning %s: %v", dir, err)
		return nil, 1
	}
	if len(images) == 0 {
		p.progress(report.LevelWarning, "No disc images found in %s", filepath.Base(dir))
		return nil, 0
	}

	outDir := dir
	if p.cfg.OutputDir != "" {
		outDir = p.cfg.OutputDir
	}

	for _, image := range images {
		imageName := filepath.Base(image)
		output := filepath.Join(outDir, chdName(image))

		p.progress(report.LevelVerbose, "Converting %s -> %s", imageName, output)
		res, err := p.converter.Convert(ctx, image, output)
		switch {
		case errors.Is(err, ErrConverterNotFound):
			p.progress(report.LevelError, "chdman not found: %v", err)
			failed++
		case err != nil:
			p.progress(report.LevelError, "Error processing %s: %v", imageName, err)
			failed++
		case res.ExitCode != 0:
			p.progress(report.LevelError, "Error processing %s: chdman failed with exit status %d", imageName, res.ExitCode)
			p.surface(report.LevelError, res.Stderr)
			failed++
		default:
			p.surface(report.LevelInfo, res.Stdout)
			p.surface(report.LevelInfo, res.Stderr)
			if err := os.Remove(image); err != nil {
				p.progress(report.LevelWarning, "Could not remove %s: %v", imageName, err)
			}
			p.progress(report.LevelSuccess, "Created CHD: %s", chdName(image))
			created = append(created, output)
		}
	}
	return created, failed
}

// cleanup removes the scratch directory. Without a separate output directory
// the converted files live in it, so only everything else is removed and the
// directory goes only once it is empty.
func (p *Processor) cleanup(scratch string) error {
	if p.cfg.OutputDir != "" {
		return os.RemoveAll(scratch)
	}

	if err := ioutils.RemoveAllExcept(scratch, ChdExtension); err != nil {
		return err
	}
	removed, err := ioutils.RemoveIfEmpty(scratch)
	if err != nil {
		return err
	}
	if removed {
		p.progress(report.LevelVerbose, "Removed empty directory %s", filepath.Base(scratch))
	}
	return nil
}

func (p *Processor) surface(level report.ProgressLevel, output string) {
	if output = strings.TrimSpace(output); output != "" {
		p.progress(level, "%s", output)
	}
}

func (p *Processor) progress(level report.ProgressLevel, format string, args ...any) {
	p.onProgress.Emit(level, format, args...)
}

// String renders the summary for the final status line.
func (s *Summary) String() string {
	out := fmt.Sprintf("%d archive(s): %d processed, %d extraction failure(s), %d CHD(s) created, %d conversion failure(s), %d archive(s) removed",
		s.Archives, s.Processed, s.ExtractFailed, s.Converted, s.ConvertFailed, s.RemovedArchives)
	if s.Playlists > 0 {
		out += fmt.Sprintf(", %d playlist(s) written", s.Playlists)
	}
	return out
}
