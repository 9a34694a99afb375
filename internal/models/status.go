package models

import (
	"time"

	"grabarr/internal/domain/consts"
)

// StatusUpdate models updates to the download status of a video.
type StatusUpdate struct {
	VideoID  string
	VideoURL string
	FilePath string
	Status   consts.DownloadStatus
	Percent  float64
	Error    error
}

// DownloadRecord is one row of the download history database.
type DownloadRecord struct {
	ID        int64
	VideoID   string
	URL       string
	FilePath  string
	Status    consts.DownloadStatus
	Pct       float64
	ErrMsg    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
