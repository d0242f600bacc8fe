package convert

import (
	"os"
	"path/filepath"

	ioutils "github.com/handiism/rom-archiver/internal/io"
	"github.com/handiism/rom-archiver/internal/model"
)

// ChdExtension is the extension of converted files.
const ChdExtension = ".chd"

// imageExtensions are the disc image formats chdman createcd accepts as
// input. A .bin track is converted through the .cue sheet that lists it.
var imageExtensions = []string{".iso", ".cue"}

// ScanArchives returns the paths of the archives at the top level of dir,
// sorted by name.
func ScanArchives(dir string) ([]string, error) {
	return scan(dir, model.ArchiveExtension)
}

// scanImages returns the disc images at the top level of dir, sorted by name.
func scanImages(dir string) ([]string, error) {
	return scan(dir, imageExtensions...)
}

func scan(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !ioutils.HasExt(entry.Name(), exts...) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// chdName returns the CHD file name for a disc image path.
//
// Example:
//
//	chdName("/tmp/Game (USA)/Game (USA).cue") // "Game (USA).chd"
func chdName(imagePath string) string {
	return chdBase(imagePath) + ChdExtension
}

func chdBase(path string) string {
	return ioutils.TrimExt(filepath.Base(path))
}
