package domain

import "time"

// ToolInvocation carries everything needed to launch one yt-dlp download.
type ToolInvocation struct {
	URL            string
	FormatID       string
	OutputTemplate string // e.g. <dir>/%(title)s.%(ext)s

	// ExtractAudio converts the download to AudioFormat at best quality.
	ExtractAudio bool
	AudioFormat  string
}

// DownloadRecord is the persisted history entry for a finished job.
type DownloadRecord struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	FormatID     string    `json:"format_id"`
	Title        string    `json:"title,omitempty"`
	OutputDir    string    `json:"output_dir,omitempty"`
	ConvertAudio bool      `json:"convert_audio"`
	Status       JobStatus `json:"status"`
	Progress     float64   `json:"progress"`
	Message      string    `json:"message,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Snapshot converts a history entry back into the shape status polls return.
func (r *DownloadRecord) Snapshot() DownloadJob {
	return DownloadJob{Status: r.Status, Progress: r.Progress, Message: r.Message}
}
