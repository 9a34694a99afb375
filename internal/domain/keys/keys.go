// Package keys holds Viper key name constants.
package keys

// Terminal keys
const (
	VideoURL       string = "video-url"
	ListFile       string = "list-file"
	OutputDir      string = "output-dir"
	OutputFilename string = "output-filename"
	FilenamePrefix string = "filename-prefix"

	Concurrency string = "concurrency"
	DLRetries   string = "dl-retries"
	Pause       string = "pause"

	LedgerFile string = "ledger-file"
	HistoryDB  string = "history-db"
	NoHistory  string = "no-history"

	APIBase    string = "api-url"
	ConfigFile string = "config-file"
)

// Logging
const (
	DebugLevel string = "debug"
)

// Internal
const (
	Execute string = "execute"
)
