// Package http provides the HTTP client used to read directory listings and
// stream archives to disk.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Response header timeouts (bodies may take as long as they need)
//   - Treating any non-2xx status as an error
//   - Streamed file downloads with progress tracking
//
// # Basic Usage
//
//	client := http.NewClient("rom-archiver", time.Minute)
//
//	// Fetch the listing page
//	page, err := client.Get(ctx, "https://example.org/roms/")
//
//	// Stream an archive to disk
//	err = client.DownloadFile(ctx, zipURL, "/downloads/Game.zip", nil)
//
// # Status Errors
//
// Non-2xx responses are reported as *StatusError so callers can tell them
// apart from transport failures:
//
//	var se *http.StatusError
//	if errors.As(err, &se) && se.Code == 404 { ... }
package http
