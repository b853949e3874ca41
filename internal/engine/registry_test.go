package engine

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

func TestRegistrySetGet(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("never"); ok {
		t.Fatal("expected miss for unknown id")
	}

	want := domain.DownloadJob{Status: domain.StatusDownloading, Progress: 42}
	r.Set("a", want)

	got, ok := r.Get("a")
	if !ok || got != want {
		t.Fatalf("Get() = %+v, %v; want %+v", got, ok, want)
	}

	r.Set("a", domain.DownloadJob{Status: domain.StatusCompleted, Progress: 100})
	if got, _ := r.Get("a"); got.Status != domain.StatusCompleted {
		t.Errorf("expected last writer to win, got %+v", got)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRegistryUpdateProgress(t *testing.T) {
	r := NewRegistry()

	if r.UpdateProgress("missing", 10) {
		t.Error("UpdateProgress should not create records")
	}

	r.Set("a", domain.DownloadJob{Status: domain.StatusConverting})
	for _, pct := range []float64{30, 20} {
		r.UpdateProgress("a", pct)
	}

	got, _ := r.Get("a")
	if got.Status != domain.StatusConverting || got.Progress != 20 {
		t.Errorf("expected regression applied as-is with status kept, got %+v", got)
	}
}

func TestRegistryConcurrentWriters(t *testing.T) {
	r := NewRegistry()
	const n = 64

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("job-%d", i)
			for p := 0; p <= 100; p += 10 {
				r.Set(id, domain.DownloadJob{Status: domain.StatusDownloading, Progress: float64(p)})
				_, _ = r.Get(fmt.Sprintf("job-%d", (i+1)%n))
			}
			r.Set(id, domain.DownloadJob{Status: domain.StatusCompleted, Progress: float64(i)})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		got, ok := r.Get(fmt.Sprintf("job-%d", i))
		if !ok || got.Status != domain.StatusCompleted || got.Progress != float64(i) {
			t.Errorf("job-%d: got %+v", i, got)
		}
	}
}

func TestRegistrySweep(t *testing.T) {
	r := NewRegistry()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return now }

	r.Set("old-done", domain.DownloadJob{Status: domain.StatusCompleted, Progress: 100})
	r.Set("old-failed", domain.DownloadJob{Status: domain.StatusFailed, Message: "boom"})
	r.Set("old-running", domain.DownloadJob{Status: domain.StatusDownloading, Progress: 5})

	now = now.Add(2 * time.Hour)
	r.Set("fresh-done", domain.DownloadJob{Status: domain.StatusCompleted, Progress: 100})

	if n := r.Sweep(0); n != 0 {
		t.Fatalf("Sweep(0) removed %d, want 0", n)
	}

	if n := r.Sweep(time.Hour); n != 2 {
		t.Fatalf("Sweep removed %d, want 2", n)
	}

	for _, id := range []string{"old-running", "fresh-done"} {
		if _, ok := r.Get(id); !ok {
			t.Errorf("%s should survive the sweep", id)
		}
	}
	for _, id := range []string{"old-done", "old-failed"} {
		if _, ok := r.Get(id); ok {
			t.Errorf("%s should have been swept", id)
		}
	}
	if r.Active() != 1 {
		t.Errorf("Active() = %d, want 1", r.Active())
	}
}
