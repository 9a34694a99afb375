// Package repo implements persistence stores over the history database.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"grabarr/internal/domain/consts"
	"grabarr/internal/models"
	"grabarr/internal/utils/logging"

	"github.com/Masterminds/squirrel"
)

// DownloadStore persists download history rows.
type DownloadStore struct {
	DB *sql.DB
}

// GetDownloadStore returns a download store instance with injected database.
func GetDownloadStore(db *sql.DB) *DownloadStore {
	return &DownloadStore{
		DB: db,
	}
}

// UpsertDownload inserts or refreshes the history row for one video.
func (ds *DownloadStore) UpsertDownload(ctx context.Context, update models.StatusUpdate) error {
	errMsg := ""
	if update.Error != nil {
		errMsg = update.Error.Error()
	}

	now := time.Now()

	query := squirrel.Insert(consts.DBDownloads).
		Columns(consts.QDLVideoID, consts.QDLURL, consts.QDLFilePath,
			consts.QDLStatus, consts.QDLPct, consts.QDLError,
			consts.QDLCreatedAt, consts.QDLUpdatedAt).
		Values(update.VideoID, update.VideoURL, update.FilePath,
			update.Status, update.Percent, errMsg, now, now).
		Suffix(fmt.Sprintf(
			"ON CONFLICT(%s) DO UPDATE SET %s=excluded.%s, %s=excluded.%s, %s=excluded.%s, %s=excluded.%s, %s=excluded.%s",
			consts.QDLVideoID,
			consts.QDLStatus, consts.QDLStatus,
			consts.QDLPct, consts.QDLPct,
			consts.QDLError, consts.QDLError,
			consts.QDLFilePath, consts.QDLFilePath,
			consts.QDLUpdatedAt, consts.QDLUpdatedAt)).
		RunWith(ds.DB)

	if _, err := query.ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to upsert download row for video %q: %w", update.VideoID, err)
	}
	return nil
}

// UpdateDownloadStatuses updates the status of an array of videos in one
// transaction.
func (ds *DownloadStore) UpdateDownloadStatuses(ctx context.Context, updates []models.StatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	var committed bool

	tx, err := ds.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logging.E("Error rolling back download statuses: %v", rollbackErr)
			}
		}
	}()

	for _, u := range updates {
		errMsg := ""
		if u.Error != nil {
			errMsg = u.Error.Error()
		}

		query := squirrel.Update(consts.DBDownloads).
			Set(consts.QDLStatus, u.Status).
			Set(consts.QDLPct, u.Percent).
			Set(consts.QDLError, errMsg).
			Set(consts.QDLUpdatedAt, time.Now()).
			Where(squirrel.Eq{consts.QDLVideoID: u.VideoID}).
			RunWith(tx)

		if _, err := query.ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to update status for video %q: %w", u.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	committed = true
	return nil
}

// GetRecentDownloads returns history rows ordered by most recent update.
func (ds *DownloadStore) GetRecentDownloads(ctx context.Context, limit int) ([]models.DownloadRecord, error) {
	if limit <= 0 {
		limit = 25
	}

	query := squirrel.Select(consts.QDLID, consts.QDLVideoID, consts.QDLURL,
		consts.QDLFilePath, consts.QDLStatus, consts.QDLPct, consts.QDLError,
		consts.QDLCreatedAt, consts.QDLUpdatedAt).
		From(consts.DBDownloads).
		OrderBy(consts.QDLUpdatedAt + " DESC").
		Limit(uint64(limit)).
		RunWith(ds.DB)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query download history: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logging.E("Failed to close history rows: %v", err)
		}
	}()

	var records []models.DownloadRecord
	for rows.Next() {
		var rec models.DownloadRecord
		if err := rows.Scan(&rec.ID, &rec.VideoID, &rec.URL, &rec.FilePath,
			&rec.Status, &rec.Pct, &rec.ErrMsg, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan download row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating download rows: %w", err)
	}
	return records, nil
}
