// Package process drives single and batch download runs.
package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"grabarr/internal/contracts"
	"grabarr/internal/domain/consts"
	"grabarr/internal/downloads"
	"grabarr/internal/ledger"
	"grabarr/internal/models"
	"grabarr/internal/parsing"
	"grabarr/internal/resolver"
	"grabarr/internal/utils/logging"
)

// BatchOptions configures a batch run.
type BatchOptions struct {
	ListFile   string
	OutputDir  string
	Prefix     string
	LedgerPath string
	APIBase    string

	Concurrency int
	Retries     int

	// Pause is a courtesy delay each task takes after finishing its own
	// download. It does not throttle the pool as a whole.
	Pause time.Duration
}

// RunBatch turns a list file into a bounded-concurrency set of download
// tasks with skip logic and per-task error isolation.
//
// Per-entry failures are logged and never abort sibling tasks; only setup
// problems (unreadable list file, uncreatable output directory) return an
// error.
func RunBatch(ctx context.Context, opts BatchOptions, store contracts.DownloadStore) error {
	if opts.Concurrency < 1 {
		opts.Concurrency = consts.DefaultConcurrency
	}
	if opts.Retries < 1 {
		opts.Retries = consts.DefaultRetries
	}
	if opts.LedgerPath == "" {
		opts.LedgerPath = filepath.Join(opts.OutputDir, consts.LedgerFilename)
	}

	ldgr := ledger.New(opts.LedgerPath)
	if err := ldgr.Load(); err != nil {
		// A broken ledger only means no prior completions are known.
		logging.W("Could not load ledger, treating all entries as new: %v", err)
	}

	entries, err := parsing.ParseListFile(opts.ListFile)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		logging.I("List file %q has no entries, nothing to do", opts.ListFile)
		return nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", opts.OutputDir, err)
	}

	res := resolver.New(opts.APIBase)

	var tracker *downloads.Tracker
	if store != nil {
		tracker = downloads.NewTracker(store)
		tracker.Start(ctx)
		defer tracker.Stop()
	}

	logging.I("Starting batch of %d entries (concurrency %d)", len(entries), opts.Concurrency)

	var (
		wg                            sync.WaitGroup
		nSucceeded, nFailed, nSkipped atomic.Int32
	)

	sem := make(chan struct{}, opts.Concurrency)
	lastIdx := len(entries) - 1

	for _, entry := range entries {
		wg.Add(1)
		go func(entry models.DownloadEntry) {
			sem <- struct{}{}
			defer func() {
				<-sem
				wg.Done()
			}()

			switch runEntry(ctx, entry, opts, ldgr, res, tracker) {
			case entryCompleted:
				nSucceeded.Add(1)
			case entrySkipped:
				nSkipped.Add(1)
			case entryFailed:
				nFailed.Add(1)
			}

			// Courtesy pause within this task only; siblings keep running.
			if opts.Pause > 0 && entry.Index != lastIdx {
				time.Sleep(opts.Pause)
			}
		}(entry)
	}

	wg.Wait()

	logging.I("All downloads finished: %d succeeded, %d skipped, %d failed",
		nSucceeded.Load(), nSkipped.Load(), nFailed.Load())
	return nil
}

type entryResult int

const (
	entryCompleted entryResult = iota
	entrySkipped
	entryFailed
)

// runEntry processes one list entry from identifier to ledger append.
func runEntry(
	ctx context.Context,
	entry models.DownloadEntry,
	opts BatchOptions,
	ldgr *ledger.Ledger,
	res *resolver.Resolver,
	tracker *downloads.Tracker) entryResult {

	videoID := parsing.ExtractVideoID(entry.URL)

	if ldgr.IsDone(videoID) {
		logging.I("Skipping video %q, already downloaded", videoID)
		if tracker != nil {
			tracker.SendUpdate(models.StatusUpdate{
				VideoID:  videoID,
				VideoURL: entry.URL,
				Status:   consts.DLStatusSkipped,
			})
		}
		return entrySkipped
	}

	filename := parsing.ResolveFilename(entry, videoID, opts.Prefix)
	target := filepath.Join(opts.OutputDir, filename)

	dlOpts := downloads.Options{
		MaxAttempts:  opts.Retries,
		RetryStart:   consts.RetryStartDelay,
		RetryCeiling: consts.RetryDelayCeiling,
	}

	dl := downloads.NewDownload(ctx, videoID, entry.URL, target, res, tracker, &dlOpts)

	if err := dl.Execute(); err != nil {
		logging.E("Download failed for video %q: %v", videoID, err)
		return entryFailed
	}

	if err := ldgr.RecordDone(videoID); err != nil {
		// The file landed but the run can't remember it; a later run will
		// redownload (at-least-once semantics).
		logging.E("Failed to record video %q in ledger: %v", videoID, err)
		return entryFailed
	}

	return entryCompleted
}
