package model

import (
	"testing"
	"time"
)

func TestDownloadTask_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		songName string
		songID   string
		expected string
	}{
		{"Clubstep", "12345", "Clubstep"},
		{"", "12345", "12345"},
		{"", "", ""},
	}

	for _, test := range tests {
		task := &DownloadTask{Record: Record{SongName: test.songName, SongID: test.songID}}
		result := task.GetDisplayTitle()
		if result != test.expected {
			t.Errorf("GetDisplayTitle() with name=%q id=%q = %q, expected %q", test.songName, test.songID, result, test.expected)
		}
	}
}

func TestDownloadTask_GetSizeString(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, test := range tests {
		task := &DownloadTask{Bytes: test.bytes}
		if result := task.GetSizeString(); result != test.expected {
			t.Errorf("GetSizeString() with Bytes=%d = %s, expected %s", test.bytes, result, test.expected)
		}
	}
}

func TestDownloadTask_Duration(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	task := &DownloadTask{StartedAt: start}
	if task.Duration() != 0 {
		t.Errorf("Expected zero duration for running task, got %v", task.Duration())
	}

	task.FinishedAt = start.Add(3 * time.Second)
	if task.Duration() != 3*time.Second {
		t.Errorf("Expected 3s duration, got %v", task.Duration())
	}
}

func TestRecord_FileName(t *testing.T) {
	r := Record{SongID: "467339"}
	if r.FileName() != "467339.mp3" {
		t.Errorf("Expected 467339.mp3, got %s", r.FileName())
	}
}
