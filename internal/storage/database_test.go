package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/nong-manager/internal/model"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	history, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { history.Close() })
	return history
}

func TestSaveAndListDownloads(t *testing.T) {
	history := openTestHistory(t)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"1", "2", "3"} {
		_, err := history.SaveDownload(&Download{
			SongID:       id,
			SongName:     "song " + id,
			LevelName:    "level " + id,
			State:        "verified",
			URL:          "https://cdn.example/" + id + ".mp3",
			Path:         "/songs/" + id + ".mp3",
			Bytes:        int64(100 * (i + 1)),
			DownloadedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	downloads, err := history.ListDownloads(0)
	require.NoError(t, err)
	require.Len(t, downloads, 3)

	assert.Equal(t, "3", downloads[0].SongID)
	assert.Equal(t, "1", downloads[2].SongID)
	assert.Equal(t, int64(300), downloads[0].Bytes)
	assert.Equal(t, "level 3", downloads[0].LevelName)
	assert.True(t, downloads[0].DownloadedAt.Equal(base.Add(2*time.Minute)))

	limited, err := history.ListDownloads(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSaveDownloadSetsID(t *testing.T) {
	history := openTestHistory(t)

	download := &Download{SongID: "9", DownloadedAt: time.Now()}
	id, err := history.SaveDownload(download)
	require.NoError(t, err)
	assert.Positive(t, id)
	assert.Equal(t, id, download.ID)
}

func TestFromTask(t *testing.T) {
	finished := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	task := &model.DownloadTask{
		Record: model.Record{
			SongName:    "Clubstep",
			State:       "verified",
			LevelName:   "Clubstep Remix",
			DownloadURL: "https://cdn.example/a.mp3",
			SongID:      "467339",
		},
		OutputPath: "/songs/467339.mp3",
		Bytes:      42,
		FinishedAt: finished,
	}

	download := FromTask(task)
	assert.Equal(t, "467339", download.SongID)
	assert.Equal(t, "https://cdn.example/a.mp3", download.URL)
	assert.Equal(t, "/songs/467339.mp3", download.Path)
	assert.Equal(t, int64(42), download.Bytes)
	assert.Equal(t, finished, download.DownloadedAt)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	history, err := Open(path)
	require.NoError(t, err)
	_, err = history.SaveDownload(&Download{SongID: "1", DownloadedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, history.Close())

	history, err = Open(path)
	require.NoError(t, err)
	defer history.Close()

	downloads, err := history.ListDownloads(10)
	require.NoError(t, err)
	assert.Len(t, downloads, 1)
}
