package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
)

func renderMediaInfo(w io.Writer, info *domain.MediaInfo) {
	fmt.Fprintf(w, "Title:    %s\n", info.Title)
	if info.Uploader != "" {
		fmt.Fprintf(w, "Uploader: %s\n", info.Uploader)
	}
	if info.Duration != nil {
		d := time.Duration(*info.Duration * float64(time.Second)).Round(time.Second)
		fmt.Fprintf(w, "Duration: %s\n", d)
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Type", "Ext", "Quality", "Resolution", "Rate", "Size"})

	for _, f := range info.Formats {
		t.AppendRow(table.Row{f.FormatID, f.Type, f.Ext, f.Quality, f.Resolution, formatRate(f), formatSize(f.Filesize)})
	}
	t.Render()
}

func formatRate(f domain.Format) string {
	switch {
	case f.IsAudio() && f.ABR != nil:
		return fmt.Sprintf("%.0fk", *f.ABR)
	case f.FPS != nil:
		return fmt.Sprintf("%.0ffps", *f.FPS)
	default:
		return ""
	}
}

func formatSize(size *int64) string {
	if size == nil || *size <= 0 {
		return "?"
	}
	return humanize.Bytes(uint64(*size))
}

func renderHistory(w io.Writer, records []*domain.DownloadRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No downloads recorded yet.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Finished", "ID", "Title", "Format", "Status", "Progress", "Message"})

	for _, r := range records {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		t.AppendRow(table.Row{
			humanize.Time(r.FinishedAt),
			r.ID,
			truncate(title, 48),
			r.FormatID,
			r.Status,
			fmt.Sprintf("%.1f%%", r.Progress),
			truncate(r.Message, 48),
		})
	}
	t.Render()
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
