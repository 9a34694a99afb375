// Package models holds shared data models.
package models

// DownloadEntry is one parsed line from a batch list file.
//
// Immutable once parsed. Index reflects the original position in the list
// file and drives default naming.
type DownloadEntry struct {
	URL        string
	CustomName string
	Index      int
}
