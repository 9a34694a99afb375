// Package ledger persists identifiers of completed downloads.
package ledger

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"grabarr/internal/utils/logging"
)

// Ledger is an append-only record of successfully downloaded video IDs.
//
// The file is the sole source of truth for skip-on-resume: IDs are appended
// after a confirmed successful write and the file is never rewritten or
// compacted. Concurrent appends from parallel tasks rely on the platform's
// atomic append guarantee for small writes.
type Ledger struct {
	path string

	mu   sync.RWMutex
	done map[string]struct{}
}

// New returns a Ledger backed by the file at path.
func New(path string) *Ledger {
	return &Ledger{
		path: path,
		done: make(map[string]struct{}),
	}
}

// Load reads completed IDs from disk into the membership set.
//
// An absent file is the first-run case and loads an empty set without error.
func (l *Ledger) Load() error {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.D(1, "No ledger file at %q, starting fresh", l.path)
			return nil
		}
		return fmt.Errorf("failed to open ledger %q: %w", l.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.E("Failed to close ledger file %q: %v", l.path, err)
		}
	}()

	l.mu.Lock()
	defer l.mu.Unlock()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id := strings.TrimSpace(scanner.Text())
		if id == "" {
			continue
		}
		l.done[id] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed reading ledger %q: %w", l.path, err)
	}

	logging.D(1, "Loaded %d completed IDs from ledger %q", len(l.done), l.path)
	return nil
}

// IsDone reports whether id was already downloaded.
func (l *Ledger) IsDone(id string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.done[id]
	return ok
}

// RecordDone appends id to the ledger file and membership set.
func (l *Ledger) RecordDone(id string) error {
	if id == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", l.path, err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger %q: %w", l.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.E("Failed to close ledger file %q: %v", l.path, err)
		}
	}()

	if _, err := f.WriteString(id + "\n"); err != nil {
		return fmt.Errorf("failed to append %q to ledger: %w", id, err)
	}

	l.mu.Lock()
	l.done[id] = struct{}{}
	l.mu.Unlock()

	return nil
}
