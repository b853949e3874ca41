package engine

import (
	"context"
	"fmt"

	"github.com/datallboy/ytweb/internal/domain"
	"github.com/datallboy/ytweb/internal/layout"
)

// runJob drives one download from pending to a terminal state. Every path,
// panics included, ends in finalizeJob.
func (m *Manager) runJob(ctx context.Context, req domain.DownloadRequest) {
	defer m.wg.Done()

	rec := &domain.DownloadRecord{
		ID:           req.ID,
		URL:          req.URL,
		FormatID:     req.FormatID,
		ConvertAudio: req.ConvertToMP3,
		StartedAt:    m.now(),
	}

	if err := m.acquire(ctx); err != nil {
		m.finalizeJob(ctx, rec, domain.NewJobError(domain.ErrUnexpectedWorker, err))
		return
	}
	defer m.release()

	m.finalizeJob(ctx, rec, m.safeExecute(ctx, rec))
}

func (m *Manager) safeExecute(ctx context.Context, rec *domain.DownloadRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.NewJobError(domain.ErrUnexpectedWorker, fmt.Errorf("worker panic: %v", r))
		}
	}()
	return m.execute(ctx, rec)
}

func (m *Manager) execute(ctx context.Context, rec *domain.DownloadRecord) error {
	log := m.app.Logger

	info, err := m.app.Tool.Fetch(ctx, rec.URL)
	if err != nil {
		return err
	}
	rec.Title = info.Title

	format := info.FindFormat(rec.FormatID)
	if format == nil {
		return domain.NewJobError(domain.ErrFormatNotFound, fmt.Errorf("format not found: %s", rec.FormatID))
	}

	convert := rec.ConvertAudio && format.IsAudio()
	if rec.ConvertAudio && !convert {
		log.Warn("[%s] Format %s is not audio only, ignoring conversion request", rec.ID, rec.FormatID)
	}

	rec.OutputDir = m.app.Layout.DirFor(format.Type)

	status := domain.StatusDownloading
	if convert {
		status = domain.StatusConverting
	}
	m.reg.Set(rec.ID, domain.DownloadJob{Status: status})

	inv := domain.ToolInvocation{
		URL:            rec.URL,
		FormatID:       rec.FormatID,
		OutputTemplate: layout.OutputTemplate(rec.OutputDir),
		ExtractAudio:   convert,
		AudioFormat:    m.app.Config.Download.AudioFormat,
	}

	log.Info("[%s] Starting download (%s): %q format %s into %s", rec.ID, status, info.Title, rec.FormatID, rec.OutputDir)

	return m.app.Tool.Download(ctx, inv, func(line string) {
		pct, ok := ParseProgress(line)
		if !ok {
			return
		}
		rec.Progress = pct
		m.reg.UpdateProgress(rec.ID, pct)
		m.progressLog.Do(func() {
			log.Debug("[%s] %.1f%%", rec.ID, pct)
		})
	})
}

// finalizeJob writes the terminal snapshot and hands the record to history.
// A failed job keeps the last progress it reported.
func (m *Manager) finalizeJob(ctx context.Context, rec *domain.DownloadRecord, err error) {
	if err != nil {
		rec.Status = domain.StatusFailed
		rec.Message = err.Error()
		m.app.Logger.Error("[%s] Download failed: %s", rec.ID, rec.Message)
	} else {
		rec.Status = domain.StatusCompleted
		rec.Progress = 100
		m.app.Logger.Info("[%s] Download completed: %q", rec.ID, rec.Title)
	}
	rec.FinishedAt = m.now()

	m.reg.Set(rec.ID, rec.Snapshot())

	if m.app.Store == nil {
		return
	}
	if err := m.app.Store.SaveDownload(ctx, rec); err != nil {
		m.app.Logger.Warn("[%s] Failed to save history: %v", rec.ID, err)
	}
}
