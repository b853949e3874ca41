package engine

import (
	"context"
	"sync"
	"time"

	"github.com/datallboy/ytweb/internal/app"
	"github.com/datallboy/ytweb/internal/domain"
	"github.com/segmentio/ksuid"
	"golang.org/x/time/rate"
)

// Manager dispatches one goroutine per download and answers status polls.
type Manager struct {
	app *app.Context
	reg *Registry

	// slots caps concurrently running jobs; nil means unlimited
	slots chan struct{}
	wg    sync.WaitGroup

	progressLog rate.Sometimes
	now         func() time.Time
}

// NewManager wires a Manager to the shared app context.
// download.max_concurrent of 0 leaves concurrency unbounded.
func NewManager(app *app.Context, reg *Registry) *Manager {
	m := &Manager{
		app:         app,
		reg:         reg,
		progressLog: rate.Sometimes{First: 1, Interval: 2 * time.Second},
		now:         time.Now,
	}
	if n := app.Config.Download.MaxConcurrent; n > 0 {
		m.slots = make(chan struct{}, n)
	}
	return m
}

// Len is the number of ids the registry currently remembers.
func (m *Manager) Len() int {
	return m.reg.Len()
}

// Schedule registers the job as pending and starts it in the background.
// It never waits for the work; the outcome is only observable through Query.
// An empty req.ID gets a fresh ksuid, which is returned either way.
func (m *Manager) Schedule(req domain.DownloadRequest) string {
	if req.ID == "" {
		req.ID = ksuid.New().String()
	}

	m.reg.Set(req.ID, domain.DownloadJob{Status: domain.StatusPending})

	m.wg.Add(1)
	go m.runJob(context.Background(), req)

	return req.ID
}

// Query returns the current snapshot for id without waiting on any worker.
// Ids unknown to the registry fall back to the history store, then not_found.
func (m *Manager) Query(ctx context.Context, id string) domain.DownloadJob {
	if job, ok := m.reg.Get(id); ok {
		return job
	}

	if m.app.Store != nil {
		rec, err := m.app.Store.GetDownload(ctx, id)
		if err != nil {
			m.app.Logger.Warn("history lookup for %s failed: %v", id, err)
		} else if rec != nil {
			return rec.Snapshot()
		}
	}

	return domain.NotFound()
}

// Active is the number of jobs that have not finished yet.
func (m *Manager) Active() int {
	return m.reg.Active()
}

// Wait blocks until every scheduled job has finished or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartJanitor evicts old terminal records every jobs.sweep_interval until
// ctx is cancelled. It returns immediately when retention is disabled.
func (m *Manager) StartJanitor(ctx context.Context) {
	retention := m.app.Config.Jobs.Retention
	if retention <= 0 {
		return
	}

	ticker := time.NewTicker(m.app.Config.Jobs.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.reg.Sweep(retention); n > 0 {
				m.app.Logger.Debug("Evicted %d finished downloads older than %s", n, retention)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) acquire(ctx context.Context) error {
	if m.slots == nil {
		return nil
	}
	select {
	case m.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) release() {
	if m.slots != nil {
		<-m.slots
	}
}
