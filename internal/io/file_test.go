package ioutils

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "Game.zip")
	if Exists(file) {
		t.Error("Exists reported a missing file")
	}
	touch(t, file)
	if !Exists(file) {
		t.Error("Exists missed an existing file")
	}
}

func TestHasExt(t *testing.T) {
	tests := []struct {
		name string
		exts []string
		want bool
	}{
		{"Game.ISO", []string{".iso", ".cue"}, true},
		{"Game.cue", []string{".iso", ".cue"}, true},
		{"Game.bin", []string{".iso", ".cue"}, false},
		{"Game", []string{".iso"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasExt(tt.name, tt.exts...); got != tt.want {
				t.Errorf("HasExt(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTrimExt(t *testing.T) {
	if got := TrimExt("Game (USA).zip"); got != "Game (USA)" {
		t.Errorf("TrimExt = %q", got)
	}
}

func TestRemoveAllExcept(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Game.chd"))
	touch(t, filepath.Join(dir, "Game.bin"))
	touch(t, filepath.Join(dir, "Game.cue"))
	touch(t, filepath.Join(dir, "extras", "manual.pdf"))

	if err := RemoveAllExcept(dir, ".chd"); err != nil {
		t.Fatalf("RemoveAllExcept failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "Game.chd" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("remaining entries = %v, want [Game.chd]", names)
	}
}

func TestRemoveIfEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	touch(t, filepath.Join(dir, "Game.chd"))

	removed, err := RemoveIfEmpty(dir)
	if err != nil || removed {
		t.Fatalf("non-empty dir: removed=%v err=%v", removed, err)
	}

	os.Remove(filepath.Join(dir, "Game.chd"))
	removed, err = RemoveIfEmpty(dir)
	if err != nil || !removed {
		t.Fatalf("empty dir: removed=%v err=%v", removed, err)
	}
	if Exists(dir) {
		t.Error("directory still present")
	}
}
