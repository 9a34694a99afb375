// Package contracts holds interfaces shared between packages.
package contracts

import (
	"context"

	"grabarr/internal/models"
)

// DownloadStore persists download history records.
type DownloadStore interface {
	UpsertDownload(ctx context.Context, update models.StatusUpdate) error
	UpdateDownloadStatuses(ctx context.Context, updates []models.StatusUpdate) error
	GetRecentDownloads(ctx context.Context, limit int) ([]models.DownloadRecord, error)
}
