package cfg

import (
	"fmt"

	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initProgramFlags sets up the root command's flag surface.
func initProgramFlags(cmd *cobra.Command) error {
	cmd.PersistentFlags().String(keys.VideoURL, "", "Share URL of a single video to download")
	cmd.PersistentFlags().String(keys.ListFile, "", "Path to a batch list file ('<url>|<optional name>' per line)")
	cmd.PersistentFlags().StringP(keys.OutputDir, "o", ".", "Directory to write downloaded videos into")
	cmd.PersistentFlags().String(keys.OutputFilename, "", "Output filename for single-URL downloads")
	cmd.PersistentFlags().String(keys.FilenamePrefix, "", "Prefix for default batch filenames (prefix + index + ID)")

	cmd.PersistentFlags().Int(keys.Concurrency, consts.DefaultConcurrency, "Maximum simultaneous downloads in batch mode")
	cmd.PersistentFlags().Int(keys.DLRetries, consts.DefaultRetries, "Number of attempts per download before failure")
	cmd.PersistentFlags().Int(keys.Pause, int(consts.DefaultPause.Seconds()), "Seconds each worker pauses after finishing a download (not a global throttle)")

	cmd.PersistentFlags().String(keys.LedgerFile, "", "Path of the completed-download ledger (default: <output-dir>/"+consts.LedgerFilename+")")
	cmd.PersistentFlags().String(keys.HistoryDB, "", "Path of the download history database (default: <output-dir>/"+consts.HistoryDBName+")")
	cmd.PersistentFlags().Bool(keys.NoHistory, false, "Disable the download history database")

	cmd.PersistentFlags().String(keys.APIBase, consts.DefaultAPIBase, "Base URL of the share service resolve API")
	cmd.PersistentFlags().String(keys.ConfigFile, "", "Path to a config file with flag defaults")

	cmd.PersistentFlags().Int(keys.DebugLevel, 0, "Debug level (0-5)")

	flagKeys := []string{
		keys.VideoURL, keys.ListFile, keys.OutputDir, keys.OutputFilename,
		keys.FilenamePrefix, keys.Concurrency, keys.DLRetries, keys.Pause,
		keys.LedgerFile, keys.HistoryDB, keys.NoHistory, keys.APIBase,
		keys.ConfigFile, keys.DebugLevel,
	}

	for _, k := range flagKeys {
		if err := viper.BindPFlag(k, cmd.PersistentFlags().Lookup(k)); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", k, err)
		}
	}
	return nil
}
