package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/datallboy/ytweb/internal/domain"
	"github.com/datallboy/ytweb/internal/infra/config"
)

// DefaultHistoryLimit applies when ListDownloads is asked for <= 0 rows.
const DefaultHistoryLimit = 50

const downloadColumns = `id, url, format_id, title, output_dir, convert_audio, status, progress, message, started_at, finished_at`

// SaveDownload inserts the record, replacing any earlier run with the same id.
func (s *PersistentStore) SaveDownload(ctx context.Context, rec *domain.DownloadRecord) error {
	var d downloadDBO
	d.FromDomain(rec)

	query := `INSERT INTO downloads (` + downloadColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
              ON CONFLICT (id) DO UPDATE SET
                url = excluded.url,
                format_id = excluded.format_id,
                title = excluded.title,
                output_dir = excluded.output_dir,
                convert_audio = excluded.convert_audio,
                status = excluded.status,
                progress = excluded.progress,
                message = excluded.message,
                started_at = excluded.started_at,
                finished_at = excluded.finished_at`

	_, err := s.db.ExecContext(ctx, s.rebind(query),
		d.ID, d.URL, d.FormatID, d.Title, d.OutputDir, d.ConvertAudio,
		d.Status, d.Progress, d.Message, d.StartedAt, d.FinishedAt,
	)
	return err
}

// GetDownload returns the stored record, or nil if the id is unknown.
func (s *PersistentStore) GetDownload(ctx context.Context, id string) (*domain.DownloadRecord, error) {
	query := `SELECT ` + downloadColumns + ` FROM downloads WHERE id = ? LIMIT 1`

	row := s.db.QueryRowContext(ctx, s.rebind(query), id)

	d, err := scanDownload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.ToDomain(), nil
}

// ListDownloads returns the most recently finished downloads first.
func (s *PersistentStore) ListDownloads(ctx context.Context, limit int) ([]*domain.DownloadRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `SELECT ` + downloadColumns + ` FROM downloads ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, s.rebind(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.DownloadRecord, 0)
	for rows.Next() {
		d, err := scanDownload(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, d.ToDomain())
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDownload(sc scanner) (*downloadDBO, error) {
	var d downloadDBO
	err := sc.Scan(&d.ID, &d.URL, &d.FormatID, &d.Title, &d.OutputDir, &d.ConvertAudio,
		&d.Status, &d.Progress, &d.Message, &d.StartedAt, &d.FinishedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// rebind rewrites ? placeholders to $1, $2... for postgres.
func (s *PersistentStore) rebind(query string) string {
	if s.driver != config.StoreDriverPostgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
