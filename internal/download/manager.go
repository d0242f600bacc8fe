package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/handiism/rom-archiver/internal/config"
	"github.com/handiism/rom-archiver/internal/failurelog"
	"github.com/handiism/rom-archiver/internal/http"
	ioutils "github.com/handiism/rom-archiver/internal/io"
	"github.com/handiism/rom-archiver/internal/listing"
	"github.com/handiism/rom-archiver/internal/model"
	"github.com/handiism/rom-archiver/internal/report"
)

// Summary is the outcome of one fetch run.
type Summary struct {
	RunID       string
	Total       int
	Downloaded  int
	Skipped     int
	Failed      int
	Cancelled   int
	Bytes       int64
	FailedFiles []string
}

type outcome int

const (
	outcomeDownloaded outcome = iota
	outcomeSkipped
	outcomeFailed
	outcomeCancelled
)

// Manager coordinates a fetch run.
type Manager struct {
	cfg        config.FetchConfig
	httpClient *http.Client
	failures   *failurelog.Log
	runID      string

	tasks []model.DownloadTask

	totalFiles    int32
	finishedFiles int32
	receivedBytes int64

	downloaded int32
	skipped    int32
	failed     int32
	cancelled  int32

	failedNames []string
	mu          sync.Mutex

	onProgress report.Func
}

// NewManager creates a new download Manager.
//
// A WorkerCount below one is raised to one; callers are expected to have
// validated it with config.ParseWorkerCount already.
func NewManager(cfg config.FetchConfig, onProgress report.Func) *Manager {
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}
	if cfg.Retry.MaxRetries < 1 {
		cfg.Retry.MaxRetries = 1
	}

	return &Manager{
		cfg:        cfg,
		httpClient: http.NewClient(cfg.UserAgent, cfg.ResponseHeaderTimeout),
		failures:   failurelog.New(cfg.FailureLogPath),
		runID:      uuid.NewString(),
		onProgress: onProgress,
	}
}

// RunID identifies this run in operator output.
func (m *Manager) RunID() string {
	return m.runID
}

// Run fetches the listing and downloads every matching archive.
func (m *Manager) Run(ctx context.Context) (*Summary, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}
	return m.StartDownloads(ctx)
}

// Initialize fetches the listing page and builds the task list.
//
// Any failure to fetch or parse the page aborts before a single task is
// queued.
func (m *Manager) Initialize(ctx context.Context) error {
	m.progress(report.LevelVerbose, "Run %s", m.runID)
	m.progress(report.LevelInfo, "Fetching listing: %s", m.cfg.PageURL)

	page, err := m.httpClient.Get(ctx, m.cfg.PageURL)
	if err != nil {
		m.progress(report.LevelError, "Error accessing the URL: %v", err)
		return fmt.Errorf("fetch listing: %w", err)
	}

	tasks, err := listing.Extract(page, m.cfg.PageURL, m.cfg.Region)
	if err != nil {
		m.progress(report.LevelError, "Error reading listing: %v", err)
		return err
	}

	if err := ioutils.EnsureDir(m.cfg.DownloadDir); err != nil {
		m.progress(report.LevelError, "Error creating directory: %v", err)
		return err
	}

	m.tasks = tasks
	atomic.StoreInt32(&m.totalFiles, int32(len(tasks)))

	if len(tasks) == 0 {
		m.progress(report.LevelWarning, "No %s archives found for region %s", model.ArchiveExtension, m.cfg.Region)
	} else {
		m.progress(report.LevelInfo, "Found %d archive(s) for region %s", len(tasks), m.cfg.Region)
	}
	return nil
}

// Tasks returns the tasks built by Initialize.
func (m *Manager) Tasks() []model.DownloadTask {
	return m.tasks
}

// StartDownloads drains the task list with the configured number of workers
// and returns once every task is finished.
//
// Per-file failures do not make StartDownloads fail. The only error returned
// is the context's, when the run was cancelled.
func (m *Manager) StartDownloads(ctx context.Context) (*Summary, error) {
	m.progress(report.LevelInfo, "Starting %d worker(s) for %d file(s)", m.cfg.WorkerCount, len(m.tasks))

	runPool(m.cfg.WorkerCount, m.tasks, func(task model.DownloadTask) {
		m.finish(m.process(ctx, task))
	})

	summary := m.summary()
	switch {
	case ctx.Err() != nil:
		m.progress(report.LevelWarning, "Download cancelled (%d file(s) not attempted or interrupted)", summary.Cancelled)
		return summary, ctx.Err()
	case summary.Failed > 0:
		m.progress(report.LevelWarning, "Download process completed with %d failure(s), see %s", summary.Failed, m.failures.Path())
	default:
		m.progress(report.LevelSuccess, "Download process completed")
	}
	return summary, nil
}

// GetProgress returns current download progress.
func (m *Manager) GetProgress() (finished, total int32, receivedBytes int64) {
	return atomic.LoadInt32(&m.finishedFiles), atomic.LoadInt32(&m.totalFiles), atomic.LoadInt64(&m.receivedBytes)
}

func (m *Manager) process(ctx context.Context, task model.DownloadTask) outcome {
	if ctx.Err() != nil {
		return outcomeCancelled
	}

	dest := task.DestPath(m.cfg.DownloadDir)
	if ioutils.Exists(dest) {
		m.progress(report.LevelInfo, "Skipping '%s' (already downloaded)", task.FileName)
		return outcomeSkipped
	}
	return m.downloadWithRetry(ctx, task, dest)
}

// downloadWithRetry downloads task to dest, retrying per the retry policy.
//
// After the last failed attempt the base file name is appended to the failure
// log exactly once and any partially written file is removed, so a later run
// does not mistake it for a finished download.
func (m *Manager) downloadWithRetry(ctx context.Context, task model.DownloadTask, dest string) outcome {
	name := filepath.Base(dest)
	maxRetries := m.cfg.Retry.MaxRetries

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		m.progress(report.LevelInfo, "Downloading '%s' (Attempt %d/%d)...", name, attempt+1, maxRetries)

		var last int64
		err = m.httpClient.DownloadFile(ctx, task.URL, dest, func(written, _ int64) {
			atomic.AddInt64(&m.receivedBytes, written-last)
			last = written
		})
		if err == nil {
			m.progress(report.LevelSuccess, "'%s' downloaded successfully", name)
			return outcomeDownloaded
		}
		if ctx.Err() != nil {
			m.removePartial(dest)
			return outcomeCancelled
		}

		if attempt < maxRetries-1 {
			wait := m.cfg.Retry.Backoff(attempt)
			m.progress(report.LevelWarning, "Error downloading '%s' (Attempt %d/%d): %v; retrying in %s", name, attempt+1, maxRetries, err, wait)
			if !m.waitForRetry(ctx, wait) {
				m.removePartial(dest)
				return outcomeCancelled
			}
		}
	}

	m.progress(report.LevelError, "Failed to download '%s' after %d attempts: %v", name, maxRetries, err)
	m.removePartial(dest)
	m.recordFailure(name)
	return outcomeFailed
}

func (m *Manager) waitForRetry(ctx context.Context, wait time.Duration) bool {
	if wait <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (m *Manager) removePartial(dest string) {
	if err := os.Remove(dest); err != nil && !os.IsNotExist(err) {
		m.progress(report.LevelWarning, "Could not remove partial file %s: %v", dest, err)
	}
}

func (m *Manager) recordFailure(name string) {
	m.mu.Lock()
	m.failedNames = append(m.failedNames, name)
	m.mu.Unlock()

	if err := m.failures.Append(name); err != nil {
		m.progress(report.LevelError, "Could not record '%s' in %s: %v", name, m.failures.Path(), err)
	}
}

func (m *Manager) finish(o outcome) {
	switch o {
	case outcomeDownloaded:
		atomic.AddInt32(&m.downloaded, 1)
	case outcomeSkipped:
		atomic.AddInt32(&m.skipped, 1)
	case outcomeFailed:
		atomic.AddInt32(&m.failed, 1)
	case outcomeCancelled:
		atomic.AddInt32(&m.cancelled, 1)
	}
	atomic.AddInt32(&m.finishedFiles, 1)
}

func (m *Manager) summary() *Summary {
	m.mu.Lock()
	failed := append([]string(nil), m.failedNames...)
	m.mu.Unlock()

	return &Summary{
		RunID:       m.runID,
		Total:       len(m.tasks),
		Downloaded:  int(atomic.LoadInt32(&m.downloaded)),
		Skipped:     int(atomic.LoadInt32(&m.skipped)),
		Failed:      int(atomic.LoadInt32(&m.failed)),
		Cancelled:   int(atomic.LoadInt32(&m.cancelled)),
		Bytes:       atomic.LoadInt64(&m.receivedBytes),
		FailedFiles: failed,
	}
}

func (m *Manager) progress(level report.ProgressLevel, format string, args ...any) {
	m.onProgress.Emit(level, format, args...)
}

// String renders the summary for the final status line.
func (s *Summary) String() string {
	return fmt.Sprintf("%d file(s): %d downloaded, %d skipped, %d failed, %d cancelled (%.2f MB)",
		s.Total, s.Downloaded, s.Skipped, s.Failed, s.Cancelled, float64(s.Bytes)/1024/1024)
}
