package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/rom-archiver/internal/model"
	"gopkg.in/yaml.v2"
)

// DefaultChdmanPath is where chdman is looked up when no path is configured.
const DefaultChdmanPath = "/usr/bin/mame/chdman"

// Settings holds all configuration options.
type Settings struct {
	// Fetch settings
	DownloadsPath          string  `json:"downloads_path" yaml:"downloads_path"`
	RegionFilter           string  `json:"region_filter" yaml:"region_filter"`
	MaxConcurrentDownloads int     `json:"max_concurrent_downloads" yaml:"max_concurrent_downloads"` // 0 means ask
	DownloadMaxRetries     int     `json:"download_max_retries" yaml:"download_max_retries"`
	DownloadRetryCooldown  float64 `json:"download_retry_cooldown" yaml:"download_retry_cooldown"` // seconds
	DownloadRetryExponent  float64 `json:"download_retry_exponent" yaml:"download_retry_exponent"`
	FailureLogPath         string  `json:"failure_log_path" yaml:"failure_log_path"`

	// HTTP settings
	UserAgent             string  `json:"user_agent" yaml:"user_agent"`
	ResponseHeaderTimeout float64 `json:"response_header_timeout" yaml:"response_header_timeout"` // seconds

	// Convert settings
	ConvertOutputPath string `json:"convert_output_path" yaml:"convert_output_path"` // empty means next to the extracted files
	RemoveArchives    bool   `json:"remove_archives" yaml:"remove_archives"`
	ChdmanPath        string `json:"chdman_path" yaml:"chdman_path"`
	CreatePlaylist    bool   `json:"create_playlist" yaml:"create_playlist"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadsPath:          "downloads",
		RegionFilter:           string(model.RegionAll),
		MaxConcurrentDownloads: 0,
		DownloadMaxRetries:     3,
		DownloadRetryCooldown:  5,
		DownloadRetryExponent:  1,
		FailureLogPath:         "failed_downloads.txt",

		UserAgent:             "rom-archiver",
		ResponseHeaderTimeout: 60,

		ConvertOutputPath: "",
		RemoveArchives:    false,
		ChdmanPath:        DefaultChdmanPath,
		CreatePlaylist:    false,
	}
}

// Load reads settings from a JSON or YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
