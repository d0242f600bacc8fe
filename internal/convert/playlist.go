package convert

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PlaylistExtension is the extension of multi-disc playlists.
const PlaylistExtension = ".m3u"

// createM3U generates an M3U playlist of the given CHD files, one base name
// per line in name order, so "Disc 1" comes before "Disc 2".
//
// Emulators load a multi-disc game through the playlist and swap discs
// from it:
//
//	Game (USA) (Disc 1).chd
//	Game (USA) (Disc 2).chd
func createM3U(chds []string) string {
	names := make([]string, len(chds))
	for i, chd := range chds {
		names[i] = filepath.Base(chd)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		sb.WriteString(name + "\n")
	}
	return sb.String()
}

// writePlaylist writes an M3U named after the archive into dir and returns
// its path. The CHD paths are written relative to dir.
func writePlaylist(dir, archiveName string, chds []string) (string, error) {
	path := filepath.Join(dir, chdBase(archiveName)+PlaylistExtension)
	return path, os.WriteFile(path, []byte(createM3U(chds)), 0644)
}
