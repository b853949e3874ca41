package domain

type JobStatus string

const (
	StatusPending     JobStatus = "pending"
	StatusDownloading JobStatus = "downloading"
	StatusConverting  JobStatus = "converting" // yt-dlp is extracting audio to another codec
	StatusCompleted   JobStatus = "completed"
	StatusFailed      JobStatus = "failed"

	// StatusNotFound is only ever produced by a status query, never stored.
	StatusNotFound JobStatus = "not_found"
)

// IsTerminal reports whether no further transitions follow this status.
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// IsActive reports whether progress is meaningful for this status.
func (s JobStatus) IsActive() bool {
	return s == StatusDownloading || s == StatusConverting
}

// DownloadJob is the status snapshot the browser polls for one download id.
type DownloadJob struct {
	Status   JobStatus `json:"status"`
	Progress float64   `json:"progress,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// NotFound is the snapshot returned for ids that were never registered.
func NotFound() DownloadJob {
	return DownloadJob{Status: StatusNotFound}
}

// DownloadRequest is what the HTTP layer (or CLI) hands to the scheduler.
type DownloadRequest struct {
	ID           string `json:"download_id"`
	URL          string `json:"url"`
	FormatID     string `json:"format_id"`
	ConvertToMP3 bool   `json:"convert_to_mp3"`
}
