package cfg

import (
	"fmt"
	"path/filepath"

	"grabarr/internal/database"
	"grabarr/internal/domain/consts"
	"grabarr/internal/domain/keys"
	"grabarr/internal/repo"
	"grabarr/internal/utils/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initHistoryCmd returns the command printing recent download history.
func initHistoryCmd() *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent download history",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitDB(HistoryDBPath())
			if err != nil {
				return fmt.Errorf("download history database is unavailable: %w", err)
			}
			defer db.Close()

			ds := repo.GetDownloadStore(db.DB)

			records, err := ds.GetRecentDownloads(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				logging.I("No download history recorded yet")
				return nil
			}

			for _, rec := range records {
				line := fmt.Sprintf("%s  %-12s  %5.1f%%  %s",
					rec.UpdatedAt.Format("2006-01-02 15:04:05"), rec.Status, rec.Pct, rec.VideoID)
				if rec.FilePath != "" {
					line += "  -> " + rec.FilePath
				}
				if rec.Status == consts.DLStatusFailed && rec.ErrMsg != "" {
					line += "  (" + rec.ErrMsg + ")"
				}
				logging.P("%s", line)
			}
			return nil
		},
	}

	historyCmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of history rows to show")

	return historyCmd
}

// HistoryDBPath returns the history database location, defaulting into the
// output directory.
func HistoryDBPath() string {
	if path := viper.GetString(keys.HistoryDB); path != "" {
		return path
	}
	return filepath.Join(viper.GetString(keys.OutputDir), consts.HistoryDBName)
}
