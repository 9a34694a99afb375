package downloads

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"

	"grabarr/internal/domain/consts"
	"grabarr/internal/utils/logging"
)

// transferClient has no overall timeout: media transfers are open-ended.
var transferClient = &http.Client{}

// streamToFile GETs directURL and streams the body to the target path,
// re-rendering progress as chunks arrive.
//
// On any failure the partially written file is removed (best-effort) and an
// error describing the cause is returned. Success is only reported once all
// buffered data is flushed to disk.
func (d *Download) streamToFile(directURL string) error {
	req, err := http.NewRequestWithContext(d.Context, http.MethodGet, directURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build transfer request for %q: %w", d.VideoID, err)
	}

	resp, err := transferClient.Do(req)
	if err != nil {
		return fmt.Errorf("transfer request failed for %q: %w", d.VideoID, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close transfer body for %q: %v", d.VideoID, err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("transfer for %q returned status %d", d.VideoID, resp.StatusCode)
	}

	// ContentLength is -1 when absent or unparseable: progress then degrades
	// to a bytes-received readout with no bar.
	totalBytes := resp.ContentLength

	f, err := os.Create(d.TargetPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", d.TargetPath, err)
	}

	received, copyErr := copyWithProgress(f, resp.Body, totalBytes, d.TargetPath)

	closeErr := f.Close()

	if copyErr != nil || closeErr != nil {
		removePartial(d.TargetPath)
		if copyErr != nil {
			return fmt.Errorf("transfer of %q failed after %d bytes: %w", d.VideoID, received, copyErr)
		}
		return fmt.Errorf("failed to flush output file %q: %w", d.TargetPath, closeErr)
	}

	fmt.Println()
	logging.D(1, "Wrote %d bytes to %q", received, d.TargetPath)
	return nil
}

// copyWithProgress streams body chunks to w, rendering progress per chunk.
func copyWithProgress(w io.Writer, body io.Reader, totalBytes int64, label string) (int64, error) {
	var received int64
	buf := make([]byte, 32*1024)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			if _, writeErr := w.Write(buf[:n]); writeErr != nil {
				return received, fmt.Errorf("disk write error: %w", writeErr)
			}
			received += int64(n)
			renderProgress(received, totalBytes, label)
		}

		if readErr == io.EOF {
			return received, nil
		}
		if readErr != nil {
			return received, fmt.Errorf("transport error: %w", readErr)
		}
	}
}

// renderProgress overwrites the current console line with a progress bar, or
// a plain byte count when the total size is unknown.
//
// Cosmetic only: concurrent transfers may interleave lines.
func renderProgress(received, totalBytes int64, label string) {
	if totalBytes <= 0 {
		fmt.Printf("\r%s: %d bytes", label, received)
		return
	}

	filled := int(math.Round(consts.ProgressBarWidth * float64(received) / float64(totalBytes)))
	if filled > consts.ProgressBarWidth {
		filled = consts.ProgressBarWidth
	}

	bar := strings.Repeat("=", filled) + strings.Repeat(" ", consts.ProgressBarWidth-filled)
	fmt.Printf("\r%s: [%s] %3.0f%%", label, bar, float64(received)/float64(totalBytes)*100)
}

// removePartial deletes a partially written file, swallowing errors.
func removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.D(1, "Could not remove partial file %q: %v", path, err)
	}
}
