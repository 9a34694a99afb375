package downloads

import (
	"fmt"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/models"
	"grabarr/internal/utils/logging"
)

// sleepFn is swappable for tests.
var sleepFn = time.Sleep

// Execute performs the download with retries.
//
// The backoff delay starts at Options.RetryStart and doubles between
// attempts. The ceiling is compared before waiting: a scheduled delay above
// Options.RetryCeiling propagates the last failure instead of sleeping.
func (d *Download) Execute() error {
	var (
		lastErr error
		delay   = d.Options.RetryStart
	)

	for attempt := 1; attempt <= d.Options.MaxAttempts; attempt++ {
		logging.I("Starting download attempt %d/%d for video %q",
			attempt, d.Options.MaxAttempts, d.VideoID)

		err := d.executeAttempt()
		if err == nil {
			logging.S(0, "Successfully downloaded video %q to %q", d.VideoID, d.TargetPath)
			d.sendStatus(consts.DLStatusCompleted, 100.0, nil)
			return nil
		}

		lastErr = err
		logging.E("Download attempt %d failed for video %q: %v", attempt, d.VideoID, err)
		d.sendStatus(consts.DLStatusFailed, 0.0, err)

		if attempt == d.Options.MaxAttempts {
			break
		}
		if delay > d.Options.RetryCeiling {
			logging.W("Backoff delay %v exceeds ceiling %v for video %q, giving up",
				delay, d.Options.RetryCeiling, d.VideoID)
			break
		}

		logging.D(1, "Waiting %v before retrying video %q", delay, d.VideoID)
		sleepFn(delay)
		delay *= 2
	}

	return fmt.Errorf("all %d download attempts failed for video %q: %w",
		d.Options.MaxAttempts, d.VideoID, lastErr)
}

// ExecuteOnce performs a single resolve-and-transfer with no retries.
//
// Used by the single-URL path, where failures propagate straight to the top
// level.
func (d *Download) ExecuteOnce() error {
	return d.executeAttempt()
}

// executeAttempt performs a single resolve-and-transfer attempt.
func (d *Download) executeAttempt() error {
	directURL, err := d.Resolver.Resolve(d.Context, d.VideoID, d.ShareURL)
	if err != nil {
		return err
	}

	d.sendStatus(consts.DLStatusDownloading, 0.0, nil)
	return d.streamToFile(directURL)
}

// sendStatus forwards a status update to the tracker when one is attached.
func (d *Download) sendStatus(status consts.DownloadStatus, pct float64, err error) {
	if d.Tracker == nil {
		return
	}
	d.Tracker.SendUpdate(models.StatusUpdate{
		VideoID:  d.VideoID,
		VideoURL: d.ShareURL,
		FilePath: d.TargetPath,
		Status:   status,
		Percent:  pct,
		Error:    err,
	})
}
