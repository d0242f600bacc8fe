package config

import (
	"fmt"
	"math"
	"time"

	"github.com/handiism/rom-archiver/internal/model"
)

// RetryPolicy controls how often and how far apart a download is attempted.
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
	Exponent   float64
}

// Backoff returns the pause after the given zero-based failed attempt.
// With Exponent 1 (or unset) every pause equals Delay.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.Exponent <= 1 {
		return p.Delay
	}
	return time.Duration(float64(p.Delay) * math.Pow(p.Exponent, float64(attempt)))
}

// FetchConfig is the frozen configuration of one fetch run.
type FetchConfig struct {
	PageURL        string
	DownloadDir    string
	Region         model.Region
	WorkerCount    int
	Retry          RetryPolicy
	FailureLogPath string

	UserAgent             string
	ResponseHeaderTimeout time.Duration
}

// ConvertConfig is the frozen configuration of one convert run.
type ConvertConfig struct {
	SourceDir      string
	OutputDir      string // empty: converted files stay in the scratch directory
	RemoveArchives bool
	ChdmanPath     string
	CreatePlaylist bool // write an .m3u for archives holding more than one disc
}

// ToFetchConfig validates the settings and freezes them for a fetch of pageURL.
func (s *Settings) ToFetchConfig(pageURL string) (FetchConfig, error) {
	if err := ValidatePageURL(pageURL); err != nil {
		return FetchConfig{}, err
	}
	region, err := model.ParseRegion(s.RegionFilter)
	if err != nil {
		return FetchConfig{}, err
	}
	if s.MaxConcurrentDownloads < 1 {
		return FetchConfig{}, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, s.MaxConcurrentDownloads)
	}
	if s.DownloadMaxRetries < 1 {
		return FetchConfig{}, fmt.Errorf("download_max_retries must be at least 1, got %d", s.DownloadMaxRetries)
	}
	if s.DownloadRetryCooldown < 0 {
		return FetchConfig{}, fmt.Errorf("download_retry_cooldown must not be negative, got %v", s.DownloadRetryCooldown)
	}

	dir := s.DownloadsPath
	if dir == "" {
		dir = DefaultSettings().DownloadsPath
	}
	failureLog := s.FailureLogPath
	if failureLog == "" {
		failureLog = DefaultSettings().FailureLogPath
	}

	return FetchConfig{
		PageURL:        pageURL,
		DownloadDir:    dir,
		Region:         region,
		WorkerCount:    s.MaxConcurrentDownloads,
		FailureLogPath: failureLog,
		Retry: RetryPolicy{
			MaxRetries: s.DownloadMaxRetries,
			Delay:      seconds(s.DownloadRetryCooldown),
			Exponent:   s.DownloadRetryExponent,
		},
		UserAgent:             s.UserAgent,
		ResponseHeaderTimeout: seconds(s.ResponseHeaderTimeout),
	}, nil
}

// ToConvertConfig validates the settings and freezes them for a convert run
// over sourceDir. The output directory is created when missing.
func (s *Settings) ToConvertConfig(sourceDir string) (ConvertConfig, error) {
	if err := ValidateSourceFolder(sourceDir); err != nil {
		return ConvertConfig{}, err
	}
	if err := PrepareOutputDir(s.ConvertOutputPath); err != nil {
		return ConvertConfig{}, err
	}

	chdman := s.ChdmanPath
	if chdman == "" {
		chdman = DefaultChdmanPath
	}

	return ConvertConfig{
		SourceDir:      sourceDir,
		OutputDir:      s.ConvertOutputPath,
		RemoveArchives: s.RemoveArchives,
		ChdmanPath:     chdman,
		CreatePlaylist: s.CreatePlaylist,
	}, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
