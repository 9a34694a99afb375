package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"grabarr/internal/domain/consts"
	"grabarr/internal/downloads"
	"grabarr/internal/parsing"
	"grabarr/internal/resolver"
	"grabarr/internal/utils/logging"
)

// SingleOptions configures a one-off download.
type SingleOptions struct {
	URL            string
	OutputDir      string
	OutputFilename string
	APIBase        string
}

// RunSingle downloads one video with no retries and no ledger interaction.
//
// Any failure propagates to the caller; the top level exits non-zero.
func RunSingle(ctx context.Context, opts SingleOptions) error {
	videoID := parsing.ExtractVideoID(opts.URL)

	filename := opts.OutputFilename
	if filename == "" {
		filename = videoID + consts.DefaultVideoExt
	} else {
		filename = parsing.SanitizeFilename(filename)
	}

	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %q: %w", opts.OutputDir, err)
		}
	}
	target := filepath.Join(opts.OutputDir, filename)

	res := resolver.New(opts.APIBase)
	dl := downloads.NewDownload(ctx, videoID, opts.URL, target, res, nil, nil)

	if err := dl.ExecuteOnce(); err != nil {
		return err
	}

	logging.S(0, "Downloaded video %q to %q", videoID, target)
	return nil
}
