// Package consts holds various global, unchanging values.
package consts

import "time"

// Share service API.
const (
	// DefaultAPIBase is the endpoint base for resolving a video ID into a
	// time-limited direct media URL.
	DefaultAPIBase = "https://api.vidshare.tv"

	// ResolveEndpointFmt is filled with the video identifier.
	ResolveEndpointFmt = "%s/videos/%s/download-url"

	ResolverTimeout = 30 * time.Second
)

// Download defaults.
const (
	DefaultConcurrency = 5
	DefaultRetries     = 5
	DefaultPause       = 5 * time.Second

	RetryStartDelay   = 1 * time.Second
	RetryDelayCeiling = 32 * time.Second
)

// File handling.
const (
	DefaultVideoExt = ".mp4"
	LedgerFilename  = "downloaded.txt"
	HistoryDBName   = "grabarr.db"
	LogFilename     = "grabarr.log"

	// InvalidFilenameChars are substituted with '-' in output filenames.
	InvalidFilenameChars = `<>:"/\|?*`
)

// Progress bar rendering.
const (
	ProgressBarWidth = 30
)
