// Package config provides configuration management for rom-archiver.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Conversion to the immutable FetchConfig and ConvertConfig used by the
//     two pipelines
//   - Validation of raw operator input (worker count, folders, yes/no answers)
//
// # Default Settings
//
// Use DefaultSettings() to get the stock behaviour:
//
//	settings := config.DefaultSettings()
//	// Downloads to ./downloads
//	// 3 attempts per file, 5 seconds apart
//	// Failures appended to ./failed_downloads.txt
//	// chdman at /usr/bin/mame/chdman
//
// # Loading from File
//
// The format is picked from the extension: .yaml and .yml are read as YAML,
// anything else as JSON. A missing file yields the defaults.
//
//	settings, err := config.Load("/path/to/romtool.yaml")
//
// # Pipeline Configs
//
// Settings are mutable while flags and prompts are applied. Once the run
// starts they are frozen into a per-pipeline config:
//
//	fetchCfg, err := settings.ToFetchConfig(pageURL)
//	convertCfg, err := settings.ToConvertConfig(folder)
//
// # Validation
//
// Validators take the raw string an operator typed and return either the
// parsed value or an error, so prompt loops and flag parsing share them:
//
//	n, err := config.ParseWorkerCount("4")
//	err = config.ValidateSourceFolder("/roms")
package config
