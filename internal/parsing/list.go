package parsing

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"grabarr/internal/models"
	"grabarr/internal/utils/logging"
)

// ParseListFile reads download entries from a batch list file.
//
// One entry per line in the form '<url>|<optional custom name>'. Blank lines
// are dropped. Ordering in the file is preserved and recorded on each entry.
func ParseListFile(path string) ([]models.DownloadEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open list file %q: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.E("Failed to close file %q: %v", path, err)
		}
	}()

	var entries []models.DownloadEntry
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		url, name, _ := strings.Cut(line, "|")
		entries = append(entries, models.DownloadEntry{
			URL:        strings.TrimSpace(url),
			CustomName: strings.TrimSpace(name),
			Index:      len(entries),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading list file %q: %w", path, err)
	}
	return entries, nil
}
