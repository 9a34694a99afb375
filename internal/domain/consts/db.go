package consts

// Database tables.
const (
	DBDownloads = "downloads"
)

// Download table columns.
const (
	QDLID        = "id"
	QDLVideoID   = "video_id"
	QDLURL       = "url"
	QDLFilePath  = "file_path"
	QDLStatus    = "status"
	QDLPct       = "percentage"
	QDLError     = "error"
	QDLCreatedAt = "created_at"
	QDLUpdatedAt = "updated_at"
)

// DownloadStatus holds constant download status strings.
type DownloadStatus string

// Download status states.
const (
	DLStatusPending     DownloadStatus = "waiting"
	DLStatusDownloading DownloadStatus = "downloading"
	DLStatusCompleted   DownloadStatus = "finished"
	DLStatusFailed      DownloadStatus = "failed"
	DLStatusSkipped     DownloadStatus = "skipped"
)
