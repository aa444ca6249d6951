package download

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	nonghttp "github.com/ytget/nong-manager/internal/http"
	"github.com/ytget/nong-manager/internal/model"
	"github.com/ytget/nong-manager/internal/platform"
	"github.com/ytget/nong-manager/internal/tags"
)

// Task and file naming
const (
	TaskIDPrefix     = "task-"
	TempFilePattern  = ".nong-*.part"
	DefaultFilePerms = 0644
)

// Fetcher is the subset of the HTTP client used for downloads
type Fetcher interface {
	Get(ctx context.Context, url string) (*nonghttp.Response, error)
}

// TagWriter writes metadata into a finished file
type TagWriter func(path string, record model.Record) error

// Service handles download operations
type Service struct {
	fetcher     Fetcher
	tasksMutex  sync.RWMutex // guards settings and the fields of running tasks
	downloadDir string
	tagging     bool
	writeTags   TagWriter
	onUpdate    func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service
func NewService(fetcher Fetcher, downloadDir string) *Service {
	return &Service{
		fetcher:     fetcher,
		downloadDir: downloadDir,
		writeTags:   tags.Write,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.downloadDir = dir
}

// SetTagging enables ID3 tagging of finished downloads
func (s *Service) SetTagging(enabled bool) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.tagging = enabled
}

// Download fetches record.DownloadURL into <dir>/<songID>.mp3, replacing any
// existing file. The returned task is also returned on error with
// TaskStatusError and LastError set. With tagging enabled, a failure to write
// tags is logged and the download still completes.
func (s *Service) Download(ctx context.Context, record model.Record) (*model.DownloadTask, error) {
	s.tasksMutex.Lock()
	dir := s.downloadDir
	tagging := s.tagging
	task := &model.DownloadTask{
		ID:        generateTaskID(),
		Record:    record,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	outputPath, err := s.fetch(ctx, task, dir)
	tagged := false
	if err == nil && tagging {
		// The song is already in place; a tagging failure leaves it untagged
		if tagErr := s.writeTags(outputPath, record); tagErr != nil {
			log.Printf("Failed to tag %s: %v", outputPath, tagErr)
		} else {
			tagged = true
		}
	}

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.OutputPath = outputPath
		task.Tagged = tagged
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	if err != nil {
		log.Printf("Download failed for task %s (%s): %v", task.ID, record, err)
		return task, err
	}

	log.Printf("Downloaded %s to %s (%s in %s)", record, outputPath, task.GetSizeString(), task.Duration())
	return task, nil
}

// fetch streams the response body into a temp file next to the target and
// renames it into place
func (s *Service) fetch(ctx context.Context, task *model.DownloadTask, dir string) (string, error) {
	outputPath, err := platform.SongFilePath(dir, task.Record)
	if err != nil {
		return "", err
	}

	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create song directory: %w", err)
	}

	resp, err := s.fetcher.Get(ctx, task.Record.DownloadURL)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	s.tasksMutex.Lock()
	task.Status = model.TaskStatusDownloading
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), TempFilePattern)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	written, copyErr := io.Copy(tmp, &countingReader{r: resp.Body, onRead: func(n int64) {
		s.tasksMutex.Lock()
		task.Bytes += n
		s.tasksMutex.Unlock()
	}})
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", fmt.Errorf("failed to copy content: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}
	if resp.ContentLength >= 0 && written != resp.ContentLength {
		return "", fmt.Errorf("short download: got %d of %d bytes", written, resp.ContentLength)
	}

	if err := os.Chmod(tmpPath, DefaultFilePerms); err != nil {
		return "", fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return outputPath, nil
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(task)
	}
}

// countingReader reports every successful read
type countingReader struct {
	r      io.Reader
	onRead func(n int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.onRead(int64(n))
	}
	return n, err
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.New().String()
}
