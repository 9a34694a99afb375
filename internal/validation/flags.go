package validation

import (
	"errors"
	"fmt"

	"grabarr/internal/domain/keys"

	"github.com/spf13/viper"
)

// ValidateViperFlags checks flag combinations before any work starts.
func ValidateViperFlags() error {
	videoURL := viper.GetString(keys.VideoURL)
	listFile := viper.GetString(keys.ListFile)

	if videoURL != "" && listFile != "" {
		return errors.New("cannot set both a video URL and a list file, pick one")
	}
	if videoURL == "" && listFile == "" {
		return errors.New("either a video URL or a list file is required")
	}

	if listFile != "" {
		if _, err := ValidateFile(listFile); err != nil {
			return err
		}
	}

	if pause := viper.GetInt(keys.Pause); pause < 0 {
		return fmt.Errorf("pause seconds cannot be negative, got %d", pause)
	}
	if conc := viper.GetInt(keys.Concurrency); conc < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", conc)
	}
	if retries := viper.GetInt(keys.DLRetries); retries < 1 {
		return fmt.Errorf("retries must be at least 1, got %d", retries)
	}
	if debug := viper.GetInt(keys.DebugLevel); debug < 0 || debug > 5 {
		return fmt.Errorf("debug level should be between 0-5, got %d", debug)
	}

	return nil
}
