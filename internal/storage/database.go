// Package storage keeps the local download history in SQLite.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ytget/nong-manager/internal/model"
)

// DefaultHistoryLimit is the number of entries ListDownloads returns for limit <= 0
const DefaultHistoryLimit = 100

// Download is one finished song download
type Download struct {
	ID           int64     `json:"id"`
	SongID       string    `json:"song_id"`
	SongName     string    `json:"song_name"`
	LevelName    string    `json:"level_name"`
	State        string    `json:"state"`
	URL          string    `json:"url"`
	Path         string    `json:"path"`
	Bytes        int64     `json:"bytes"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// FromTask converts a completed download task into a history entry
func FromTask(task *model.DownloadTask) *Download {
	downloadedAt := task.FinishedAt
	if downloadedAt.IsZero() {
		downloadedAt = time.Now()
	}
	return &Download{
		SongID:       task.Record.SongID,
		SongName:     task.Record.SongName,
		LevelName:    task.Record.LevelName,
		State:        task.Record.State,
		URL:          task.Record.DownloadURL,
		Path:         task.OutputPath,
		Bytes:        task.Bytes,
		DownloadedAt: downloadedAt,
	}
}

// History is the download history database
type History struct {
	db *sql.DB
}

// Open opens (creating when needed) the history database at path
func Open(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history tables: %w", err)
	}

	return &History{db: db}, nil
}

func createTables(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS downloads (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        song_id TEXT NOT NULL,
        song_name TEXT NOT NULL,
        level_name TEXT NOT NULL,
        state TEXT NOT NULL,
        url TEXT NOT NULL,
        path TEXT NOT NULL,
        bytes INTEGER DEFAULT 0,
        downloaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_downloads_song_id ON downloads(song_id);`

	_, err := db.Exec(query)
	return err
}

// SaveDownload inserts a history entry and sets its ID
func (h *History) SaveDownload(download *Download) (int64, error) {
	query := `
    INSERT INTO downloads (song_id, song_name, level_name, state, url, path, bytes, downloaded_at)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.db.Exec(query,
		download.SongID,
		download.SongName,
		download.LevelName,
		download.State,
		download.URL,
		download.Path,
		download.Bytes,
		download.DownloadedAt.UTC(),
	)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	download.ID = id
	return id, nil
}

// ListDownloads returns the newest entries first
func (h *History) ListDownloads(limit int) ([]*Download, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
    SELECT id, song_id, song_name, level_name, state, url, path, bytes, downloaded_at
    FROM downloads ORDER BY downloaded_at DESC, id DESC LIMIT ?`

	rows, err := h.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var downloads []*Download
	for rows.Next() {
		download := &Download{}
		err := rows.Scan(
			&download.ID,
			&download.SongID,
			&download.SongName,
			&download.LevelName,
			&download.State,
			&download.URL,
			&download.Path,
			&download.Bytes,
			&download.DownloadedAt,
		)
		if err != nil {
			return nil, err
		}
		downloads = append(downloads, download)
	}

	return downloads, rows.Err()
}

// Close closes the database
func (h *History) Close() error {
	return h.db.Close()
}
