package model

import "path/filepath"

// ArchiveExtension is the suffix of the files the fetch pipeline downloads and
// the convert pipeline unpacks.
const ArchiveExtension = ".zip"

// DownloadTask is a single archive to fetch.
type DownloadTask struct {
	// URL is the absolute URL of the archive.
	URL string

	// FileName is the percent-decoded file name the archive is saved under.
	FileName string
}

// DestPath returns the path the task is written to inside dir.
func (t DownloadTask) DestPath(dir string) string {
	return filepath.Join(dir, t.FileName)
}
