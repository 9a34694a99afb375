// Package downloads handles file transfer operations.
package downloads

import (
	"context"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/resolver"
)

// Options holds configuration for download operations.
type Options struct {
	MaxAttempts  int
	RetryStart   time.Duration
	RetryCeiling time.Duration
}

// DefaultOptions provides sensible defaults.
var DefaultOptions = Options{
	MaxAttempts:  consts.DefaultRetries,
	RetryStart:   consts.RetryStartDelay,
	RetryCeiling: consts.RetryDelayCeiling,
}

// Download encapsulates one video transfer.
//
// Transient per entry: created when the task starts, discarded when it
// settles. Every attempt re-resolves the direct URL and rewrites the target
// file from byte zero; there is no partial-file resume.
type Download struct {
	VideoID    string
	ShareURL   string
	TargetPath string
	Resolver   *resolver.Resolver
	Tracker    *Tracker
	Options    Options
	Context    context.Context
}

// NewDownload creates a download operation with specified options.
func NewDownload(ctx context.Context, videoID, shareURL, targetPath string, res *resolver.Resolver, tracker *Tracker, opts *Options) *Download {
	dl := &Download{
		VideoID:    videoID,
		ShareURL:   shareURL,
		TargetPath: targetPath,
		Resolver:   res,
		Tracker:    tracker,
		Context:    ctx,
	}

	if opts != nil {
		dl.Options = *opts
	} else {
		dl.Options = DefaultOptions
	}
	return dl
}
