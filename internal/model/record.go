package model

import "fmt"

// SongExtension is the extension of downloaded songs
const SongExtension = ".mp3"

// Record is one NoNG entry returned by the search API
type Record struct {
	SongName    string `json:"songName"`
	State       string `json:"state"`
	LevelName   string `json:"name"`
	DownloadURL string `json:"downloadUrl"`
	SongID      string `json:"songID"`
}

// FileName returns the name the downloaded song is stored under
func (r Record) FileName() string {
	return r.SongID + SongExtension
}

// String returns a short human readable description used in logs
func (r Record) String() string {
	return fmt.Sprintf("%s (%s, %s)", r.SongName, r.LevelName, r.SongID)
}
