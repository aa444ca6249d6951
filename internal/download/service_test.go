package download

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nonghttp "github.com/ytget/nong-manager/internal/http"
	"github.com/ytget/nong-manager/internal/model"
	"github.com/ytget/nong-manager/internal/platform"
)

func newTestService(t *testing.T, body []byte) (*Service, string, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.mp3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(body)
	}))
	t.Cleanup(server.Close)

	opts := nonghttp.DefaultOptions()
	opts.RetryAttempts = 0
	dir := t.TempDir()
	return NewService(nonghttp.NewClient(opts), dir), dir, server
}

func testRecord(server *httptest.Server, path string) model.Record {
	return model.Record{
		SongName:    "Clubstep",
		State:       "verified",
		LevelName:   "Clubstep Remix",
		DownloadURL: server.URL + path,
		SongID:      "467339",
	}
}

func TestNewService(t *testing.T) {
	service := NewService(nil, "/tmp")

	if service.downloadDir != "/tmp" {
		t.Errorf("Expected downloadDir to be '/tmp', got '%s'", service.downloadDir)
	}

	if service.tagging {
		t.Error("Expected tagging to be off by default")
	}
}

func TestDownloadWritesBodyVerbatim(t *testing.T) {
	body := bytes.Repeat([]byte{0xFF, 0xFB, 0x00, 0x42}, 50_000)
	service, dir, server := newTestService(t, body)

	task, err := service.Download(context.Background(), testRecord(server, "/song.mp3"))
	require.NoError(t, err)

	expectedPath := filepath.Join(dir, "467339.mp3")
	assert.Equal(t, expectedPath, task.OutputPath)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.Equal(t, int64(len(body)), task.Bytes)
	assert.False(t, task.Tagged)
	assert.False(t, task.FinishedAt.IsZero())

	written, err := os.ReadFile(expectedPath)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(body, written), "file contents differ from response body")

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDownloadOverwritesExistingFile(t *testing.T) {
	service, dir, server := newTestService(t, []byte("new"))
	path := filepath.Join(dir, "467339.mp3")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0644))

	_, err := service.Download(context.Background(), testRecord(server, "/song.mp3"))
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(written))
}

func TestDownloadCreatesDirectory(t *testing.T) {
	service, dir, server := newTestService(t, []byte("abc"))
	nested := filepath.Join(dir, "GeometryDash")
	service.SetDownloadDirectory(nested)

	task, err := service.Download(context.Background(), testRecord(server, "/song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "467339.mp3"), task.OutputPath)
}

func TestDownloadHTTPErrorLeavesNoFile(t *testing.T) {
	service, dir, server := newTestService(t, nil)
	path := filepath.Join(dir, "467339.mp3")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	task, err := service.Download(context.Background(), testRecord(server, "/missing.mp3"))
	require.ErrorIs(t, err, nonghttp.ErrNotFound)
	assert.Equal(t, model.TaskStatusError, task.Status)
	assert.NotEmpty(t, task.LastError)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(written))
}

func TestDownloadRejectsUnsafeSongID(t *testing.T) {
	service, _, server := newTestService(t, []byte("abc"))
	record := testRecord(server, "/song.mp3")
	record.SongID = "../escape"

	task, err := service.Download(context.Background(), record)
	require.ErrorIs(t, err, platform.ErrInvalidSongID)
	assert.Equal(t, model.TaskStatusError, task.Status)
}

func TestDownloadWithTagging(t *testing.T) {
	service, _, server := newTestService(t, []byte("audio"))
	service.SetTagging(true)

	var taggedPath string
	var taggedRecord model.Record
	service.writeTags = func(path string, record model.Record) error {
		taggedPath = path
		taggedRecord = record
		return nil
	}

	task, err := service.Download(context.Background(), testRecord(server, "/song.mp3"))
	require.NoError(t, err)
	assert.True(t, task.Tagged)
	assert.Equal(t, task.OutputPath, taggedPath)
	assert.Equal(t, "Clubstep", taggedRecord.SongName)
}

func TestDownloadTaggingErrorKeepsSong(t *testing.T) {
	service, _, server := newTestService(t, []byte("audio"))
	service.SetTagging(true)
	service.writeTags = func(string, model.Record) error {
		return errors.New("id3 save error")
	}

	task, err := service.Download(context.Background(), testRecord(server, "/song.mp3"))
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	assert.False(t, task.Tagged)
	assert.Empty(t, task.LastError)

	data, err := os.ReadFile(task.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), data)
}

func TestUpdateCallback(t *testing.T) {
	service, _, server := newTestService(t, []byte("audio"))

	var mu sync.Mutex
	var statuses []model.TaskStatus
	service.SetUpdateCallback(func(task *model.DownloadTask) {
		mu.Lock()
		defer mu.Unlock()
		statuses = append(statuses, task.Status)
	})

	_, err := service.Download(context.Background(), testRecord(server, "/song.mp3"))
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []model.TaskStatus{
		model.TaskStatusPending,
		model.TaskStatusDownloading,
		model.TaskStatusCompleted,
	}, statuses)
}

func TestGenerateTaskID(t *testing.T) {
	id1 := generateTaskID()
	id2 := generateTaskID()

	if id1 == id2 {
		t.Error("Expected different task IDs")
	}

	if !strings.HasPrefix(id1, TaskIDPrefix) {
		t.Errorf("Expected ID to start with %q, got: %s", TaskIDPrefix, id1)
	}

	// task- + 36 chars for UUID
	if len(id1) != len(TaskIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(TaskIDPrefix)+36, len(id1), id1)
	}
}
