package download

import (
	"context"

	"github.com/ytget/nong-manager/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	SetUpdateCallback(func(*model.DownloadTask))

	// Download fetches record's audio into the download directory and blocks until done
	Download(ctx context.Context, record model.Record) (*model.DownloadTask, error)

	// SetDownloadDirectory sets the download directory
	SetDownloadDirectory(dir string)

	// SetTagging enables ID3 tagging of finished downloads
	SetTagging(enabled bool)
}
