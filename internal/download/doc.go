package download

// Package download fetches song files for search records into the configured
// song directory as <songID>.mp3. It tracks each download as a task, reports
// task changes through a callback, and optionally writes ID3 tags.
