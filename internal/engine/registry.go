package engine

import (
	"sync"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

type entry struct {
	job     domain.DownloadJob
	updated time.Time
}

// Registry maps download ids to their latest status snapshot. Snapshots are
// stored by value so readers never see a half-written record.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]entry
	now  func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]entry),
		now:  time.Now,
	}
}

// Set replaces (or creates) the record for id. Last writer wins.
func (r *Registry) Set(id string, job domain.DownloadJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[id] = entry{job: job, updated: r.now()}
}

func (r *Registry) Get(id string) (domain.DownloadJob, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.jobs[id]
	return e.job, ok
}

// UpdateProgress overwrites the progress of an existing record and leaves its
// status alone. Values are applied as given, regressions included.
func (r *Registry) UpdateProgress(id string, pct float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.jobs[id]
	if !ok {
		return false
	}
	e.job.Progress = pct
	e.updated = r.now()
	r.jobs[id] = e
	return true
}

// Sweep drops terminal records last written more than maxAge ago and returns
// how many went. In-flight jobs are never touched. maxAge <= 0 is a no-op.
func (r *Registry) Sweep(maxAge time.Duration) int {
	if maxAge <= 0 {
		return 0
	}
	cutoff := r.now().Add(-maxAge)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.jobs {
		if e.job.Status.IsTerminal() && e.updated.Before(cutoff) {
			delete(r.jobs, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Active counts records that have not reached a terminal state yet.
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, e := range r.jobs {
		if !e.job.Status.IsTerminal() {
			n++
		}
	}
	return n
}
