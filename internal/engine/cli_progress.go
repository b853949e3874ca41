package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

// StartCLIProgress redraws a one-line progress bar for id on w until ctx is
// cancelled, then prints the final state once.
func (m *Manager) StartCLIProgress(ctx context.Context, id string, w io.Writer) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	started := m.now()

	for {
		select {
		case <-ticker.C:
			renderCLIProgress(w, m.Query(ctx, id), time.Since(started))
		case <-ctx.Done():
			renderCLIProgress(w, m.Query(context.Background(), id), time.Since(started))
			fmt.Fprintln(w)
			return
		}
	}
}

func renderCLIProgress(w io.Writer, job domain.DownloadJob, elapsed time.Duration) {
	percent := job.Progress
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	// Progress Bar go brrr [====>   ]
	const barWidth = 20
	completedWidth := int(percent / 100 * barWidth)
	bar := strings.Repeat("=", completedWidth)
	if completedWidth < barWidth {
		bar += ">" + strings.Repeat(" ", barWidth-completedWidth-1)
	}

	// [Bar]  50.0% | downloading | Time: 2m30s
	fmt.Fprintf(w, "\r[%s] %5.1f%% | %-11s | Time: %-7s      ",
		bar, percent, job.Status, elapsed.Truncate(time.Second))
}
