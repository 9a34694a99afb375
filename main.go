package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"grabarr/internal/cfg"
	"grabarr/internal/contracts"
	"grabarr/internal/database"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"
	"grabarr/internal/process"
	"grabarr/internal/repo"
	logging "grabarr/internal/utils/logging"

	"github.com/spf13/viper"
)

var startTime time.Time

func init() {
	startTime = time.Now()
}

// main is the program entrypoint (duh!)
func main() {
	if err := cfg.InitCommands(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println()
		os.Exit(1)
	}

	if err := cfg.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Println()
		os.Exit(1)
	}

	if !viper.GetBool(keys.Execute) {
		return // Exit early if not meant to execute (help, subcommands)
	}

	logging.Level = cfg.GetInt(keys.DebugLevel)

	// Output directory setup
	outDir := cfg.GetString(keys.OutputDir)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Println("Failed to create directory structure:", err)
		fmt.Println()
		os.Exit(1)
	}

	// Setup logging
	if err := logging.SetupLogging(outDir); err != nil {
		fmt.Printf("\n\nNotice: Log file was not created\nReason: %s\n\n", err)
	}
	defer logging.CloseLogging()

	logging.I("grabarr started at: %v", startTime.Format("2006-01-02 15:04:05.00 MST"))

	// Begin processing
	if err := initProcess(context.Background(), outDir); err != nil {
		logging.E("%v", err)
		os.Exit(1)
	}

	endTime := time.Now()
	logging.I("grabarr finished at: %v", endTime.Format("2006-01-02 15:04:05.00 MST"))
	logging.I("Time elapsed: %.2f seconds", endTime.Sub(startTime).Seconds())
}

// initProcess begins the main grabarr program.
func initProcess(ctx context.Context, outDir string) error {
	// Single URL mode
	if url := cfg.GetString(keys.VideoURL); url != "" {
		return process.RunSingle(ctx, process.SingleOptions{
			URL:            url,
			OutputDir:      outDir,
			OutputFilename: cfg.GetString(keys.OutputFilename),
			APIBase:        cfg.GetString(keys.APIBase),
		})
	}

	// Batch mode
	var store contracts.DownloadStore
	if !cfg.GetBool(keys.NoHistory) {
		db, err := database.InitDB(cfg.HistoryDBPath())
		if err != nil {
			logging.W("Download history database unavailable, continuing without history: %v", err)
		} else {
			defer db.Close()
			store = repo.GetDownloadStore(db.DB)
		}
	}

	ledgerPath := cfg.GetString(keys.LedgerFile)
	if ledgerPath == "" {
		ledgerPath = filepath.Join(outDir, consts.LedgerFilename)
	}

	return process.RunBatch(ctx, process.BatchOptions{
		ListFile:    cfg.GetString(keys.ListFile),
		OutputDir:   outDir,
		Prefix:      cfg.GetString(keys.FilenamePrefix),
		LedgerPath:  ledgerPath,
		APIBase:     cfg.GetString(keys.APIBase),
		Concurrency: cfg.GetInt(keys.Concurrency),
		Retries:     cfg.GetInt(keys.DLRetries),
		Pause:       time.Duration(cfg.GetInt(keys.Pause)) * time.Second,
	}, store)
}
