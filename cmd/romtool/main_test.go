package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/rom-archiver/internal/config"
	"github.com/handiism/rom-archiver/internal/tui"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"signal", fmt.Errorf("fetch listing: %w", context.Canceled), exitCancelled},
		{"form left", tui.ErrCancelled, exitCancelled},
		{"config", config.ErrInvalidWorkerCount, exitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFetchCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/roms/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/roms/" {
			fmt.Fprintf(w, "data for %s", filepath.Base(r.URL.Path))
			return
		}
		fmt.Fprint(w, `<html><body><pre>
<a href="../">Parent Directory</a>
<a href="Alpha%20(USA).zip">Alpha (USA).zip</a>
<a href="Beta%20(Japan).zip">Beta (Japan).zip</a>
</pre></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	dir := t.TempDir()
	root := newRootCmd()
	root.SetArgs([]string{
		"fetch", srv.URL + "/roms/",
		"--workers", "2",
		"--region", "usa",
		"--output", dir,
		"--retry-delay", "0s",
		"--failure-log", filepath.Join(dir, "failed.txt"),
	})

	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "Alpha (USA).zip"))
	if err != nil {
		t.Fatalf("expected archive not downloaded: %v", err)
	}
	if string(data) != "data for Alpha (USA).zip" {
		t.Errorf("content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "Beta (Japan).zip")); err == nil {
		t.Error("region filter ignored")
	}
}

func TestFetchCommand_InvalidRegion(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"fetch", "http://example.invalid/", "-w", "1", "-r", "Mars"})
	err := root.ExecuteContext(context.Background())
	if exitCode(err) != exitError {
		t.Errorf("err = %v, want configuration error", err)
	}
}

func TestConvertCommand_MissingFolder(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"convert", filepath.Join(t.TempDir(), "missing")})
	err := root.ExecuteContext(context.Background())
	if err == nil || exitCode(err) != exitError {
		t.Errorf("err = %v, want configuration error", err)
	}
	if errors.Is(err, context.Canceled) {
		t.Error("configuration error reported as cancellation")
	}
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "romtool.yaml")
	if err := os.WriteFile(path, []byte("max_concurrent_downloads: 6\nregion_filter: Europe\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := loadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.MaxConcurrentDownloads != 6 || s.RegionFilter != "Europe" {
		t.Errorf("settings = %+v", s)
	}
	if s.DownloadMaxRetries != 3 {
		t.Errorf("unset field lost its default: retries = %d", s.DownloadMaxRetries)
	}
}

func TestFetchCommand_RegionUsage(t *testing.T) {
	fetch, _, err := newRootCmd().Find([]string{"fetch"})
	if err != nil {
		t.Fatal(err)
	}
	flag := fetch.Flags().Lookup("region")
	if flag == nil {
		t.Fatal("fetch has no --region flag")
	}
	want := "region filter: USA, Europe, Japan, World, All"
	if flag.Usage != want {
		t.Errorf("usage = %q, want %q", flag.Usage, want)
	}
	if flag.Shorthand != "r" {
		t.Errorf("shorthand = %q, want r", flag.Shorthand)
	}
}
