package downloads

import (
	"context"
	"time"

	"grabarr/internal/contracts"
	"grabarr/internal/models"
	"grabarr/internal/utils/logging"
)

// Tracker records download status updates into the history database.
//
// History is observational only: skip decisions always come from the ledger,
// never from these records.
type Tracker struct {
	updates chan models.StatusUpdate
	done    chan struct{}
	dlStore contracts.DownloadStore
}

// NewTracker returns the model used for tracking downloads.
func NewTracker(store contracts.DownloadStore) *Tracker {
	return &Tracker{
		updates: make(chan models.StatusUpdate, 100),
		done:    make(chan struct{}),
		dlStore: store,
	}
}

// Start starts download tracking.
func (t *Tracker) Start(ctx context.Context) {
	go t.processUpdates(ctx)
}

// Stop stops download tracking.
func (t *Tracker) Stop() {
	close(t.done)
}

// SendUpdate sends a status update into the processing channel.
func (t *Tracker) SendUpdate(update models.StatusUpdate) {
	if update.VideoID == "" {
		logging.E("Invalid status update, missing video ID: %+v", update)
		return
	}

	select {
	case t.updates <- update:
	case <-t.done:
	}
}

// processUpdates processes download status updates.
func (t *Tracker) processUpdates(ctx context.Context) {
	for {
		select {
		case <-t.done:
			// Drain whatever is still buffered before exiting.
			for {
				select {
				case update := <-t.updates:
					t.flushUpdate(ctx, update)
				default:
					return
				}
			}

		case update := <-t.updates:
			logging.D(2, "Status update for video %q: status %s, pct %.1f, err %v",
				update.VideoID, update.Status, update.Percent, update.Error)
			t.flushUpdate(ctx, update)
		}
	}
}

// flushUpdate flushes one status update to the database.
func (t *Tracker) flushUpdate(ctx context.Context, update models.StatusUpdate) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Retry logic for transient failures
	const maxRetries = 3
	backoff := 100 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := t.dlStore.UpsertDownload(ctx, update); err != nil {
			if attempt == maxRetries-1 {
				logging.E("Failed to record download status after %d attempts: %v", maxRetries, err)
				return
			}
			logging.W("Retrying status record after failure (attempt %d/%d): %v",
				attempt+1, maxRetries, err)
			time.Sleep(backoff * time.Duration(attempt+1))
			continue
		}
		break
	}
	logging.D(2, "Flushed status update for video %q", update.VideoID)
}
