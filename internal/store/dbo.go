package store

import (
	"database/sql"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

// downloadDBO maps to the downloads table
type downloadDBO struct {
	ID           string         `db:"id"`
	URL          string         `db:"url"`
	FormatID     string         `db:"format_id"`
	Title        sql.NullString `db:"title"`
	OutputDir    sql.NullString `db:"output_dir"`
	ConvertAudio int            `db:"convert_audio"`
	Status       string         `db:"status"`
	Progress     float64        `db:"progress"`
	Message      sql.NullString `db:"message"`
	StartedAt    int64          `db:"started_at"`  // unix millis
	FinishedAt   int64          `db:"finished_at"` // unix millis
}

// Mapper: DBO to Domain DownloadRecord
func (d *downloadDBO) ToDomain() *domain.DownloadRecord {
	return &domain.DownloadRecord{
		ID:           d.ID,
		URL:          d.URL,
		FormatID:     d.FormatID,
		Title:        d.Title.String,
		OutputDir:    d.OutputDir.String,
		ConvertAudio: d.ConvertAudio != 0,
		Status:       domain.JobStatus(d.Status),
		Progress:     d.Progress,
		Message:      d.Message.String,
		StartedAt:    fromMillis(d.StartedAt),
		FinishedAt:   fromMillis(d.FinishedAt),
	}
}

// Mapper: Domain DownloadRecord to DBO
func (d *downloadDBO) FromDomain(rec *domain.DownloadRecord) {
	d.ID = rec.ID
	d.URL = rec.URL
	d.FormatID = rec.FormatID
	d.Title = sql.NullString{String: rec.Title, Valid: rec.Title != ""}
	d.OutputDir = sql.NullString{String: rec.OutputDir, Valid: rec.OutputDir != ""}
	d.ConvertAudio = 0
	if rec.ConvertAudio {
		d.ConvertAudio = 1
	}
	d.Status = string(rec.Status)
	d.Progress = rec.Progress
	d.Message = sql.NullString{String: rec.Message, Valid: rec.Message != ""}
	d.StartedAt = toMillis(rec.StartedAt)
	d.FinishedAt = toMillis(rec.FinishedAt)
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
