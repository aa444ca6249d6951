package model

import (
	"fmt"
	"time"
)

// DownloadTask represents a single song download
type DownloadTask struct {
	ID         string
	Record     Record
	Status     TaskStatus
	OutputPath string    // path to downloaded file
	Bytes      int64     // bytes written so far
	LastError  string    // last error message if any
	Tagged     bool      // ID3 tags were written after the download
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// GetDisplayTitle returns song name, falling back to the song ID
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.Record.SongName != "" {
		return dt.Record.SongName
	}
	return dt.Record.SongID
}

// GetSizeString returns the written size in a compact human readable form
func (dt *DownloadTask) GetSizeString() string {
	const unit = 1024
	if dt.Bytes < unit {
		return fmt.Sprintf("%d B", dt.Bytes)
	}
	div, exp := int64(unit), 0
	for n := dt.Bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(dt.Bytes)/float64(div), "KMGTPE"[exp])
}

// Duration returns how long the download took, zero while it is running
func (dt *DownloadTask) Duration() time.Duration {
	if dt.FinishedAt.IsZero() || dt.StartedAt.IsZero() {
		return 0
	}
	return dt.FinishedAt.Sub(dt.StartedAt)
}
