// Package logging prints and writes program logs.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"grabarr/internal/domain/consts"
)

var (
	// Level is the verbosity for D and S calls (0-5).
	Level int

	loggable   bool
	fileLogger *log.Logger
	logFile    *os.File
	mu         sync.Mutex
)

// Regular expression to match ANSI escape codes
var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// SetupLogging creates and/or opens the log file inside the target directory.
func SetupLogging(targetDir string) error {
	path := filepath.Join(targetDir, consts.LogFilename)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", path, err)
	}

	mu.Lock()
	defer mu.Unlock()

	logFile = f
	fileLogger = log.New(f, "", log.LstdFlags)
	loggable = true

	fileLogger.Printf(":\n=========== %v ===========\n\n", time.Now().Format(time.RFC1123Z))
	return nil
}

// CloseLogging closes the log file if one was opened.
func CloseLogging() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
		loggable = false
		logFile = nil
		fileLogger = nil
	}
}

// writeLog writes a message to the log file with ANSI codes stripped.
//
// Callers must hold mu.
func writeLog(msg string) {
	if loggable && fileLogger != nil {
		fileLogger.Print(ansiEscape.ReplaceAllString(msg, ""))
	}
}
