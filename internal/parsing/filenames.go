package parsing

import (
	"fmt"
	"path/filepath"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/models"
)

// SanitizeFilename substitutes characters disallowed in filenames with '-'.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		if strings.ContainsRune(consts.InvalidFilenameChars, r) {
			b.WriteRune('-')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ResolveFilename picks the output filename for an entry.
//
// Preference order: sanitized custom name, then prefix + index + identifier,
// then the bare identifier. The default video extension is appended when the
// name carries none.
func ResolveFilename(entry models.DownloadEntry, videoID, prefix string) string {
	var stem string
	switch {
	case entry.CustomName != "":
		stem = SanitizeFilename(entry.CustomName)
	case prefix != "":
		stem = SanitizeFilename(fmt.Sprintf("%s%d_%s", prefix, entry.Index+1, videoID))
	default:
		stem = SanitizeFilename(videoID)
	}

	if filepath.Ext(stem) == "" {
		stem += consts.DefaultVideoExt
	}
	return stem
}
