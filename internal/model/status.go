package model

// Status is the state shown in the main window status line
type Status int

const (
	// StatusWaiting is the initial state before any search
	StatusWaiting Status = iota

	// StatusDownloading means a song download is in progress
	StatusDownloading

	// StatusFinished means the last download completed
	StatusFinished

	// StatusNoResults means the last search returned nothing
	StatusNoResults

	// StatusResultsFound means the last search returned at least one record
	StatusResultsFound
)

// String returns the string representation of Status
func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "Waiting"
	case StatusDownloading:
		return "Downloading"
	case StatusFinished:
		return "Finished"
	case StatusNoResults:
		return "NoResults"
	case StatusResultsFound:
		return "ResultsFound"
	default:
		return "Unknown"
	}
}

// StatusFor returns the status matching a search that produced count records
func StatusFor(count int) Status {
	if count == 0 {
		return StatusNoResults
	}
	return StatusResultsFound
}

// TaskStatus represents the status of a download task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but the request is not sent yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusDownloading means the response body is being written
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means the file is in place
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
