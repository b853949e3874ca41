package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datallboy/ytweb/internal/domain"
)

type countingTool struct {
	fetches int
	err     error
	updates int
}

func (c *countingTool) Fetch(_ context.Context, url string) (*domain.MediaInfo, error) {
	c.fetches++
	if c.err != nil {
		return nil, c.err
	}
	return &domain.MediaInfo{Title: url}, nil
}

func (c *countingTool) Download(context.Context, domain.ToolInvocation, func(string)) error {
	return nil
}

func (c *countingTool) Update(context.Context) (string, error) {
	c.updates++
	return "ok", nil
}

func TestCachedToolReusesLookups(t *testing.T) {
	inner := &countingTool{}
	c := NewCachedTool(inner, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		info, err := c.Fetch(ctx, "a")
		if err != nil || info.Title != "a" {
			t.Fatalf("Fetch = %+v, %v", info, err)
		}
	}
	if inner.fetches != 1 {
		t.Fatalf("expected one upstream fetch, got %d", inner.fetches)
	}

	if _, err := c.Fetch(ctx, "b"); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	now = now.Add(time.Minute)
	if _, err := c.Fetch(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if inner.fetches != 3 {
		t.Errorf("expected expired entry to be refetched, fetches = %d", inner.fetches)
	}
	if c.Len() != 1 {
		t.Errorf("expired entry for b should be pruned, Len() = %d", c.Len())
	}
}

func TestCachedToolSkipsErrors(t *testing.T) {
	inner := &countingTool{err: errors.New("request timed out")}
	c := NewCachedTool(inner, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.Fetch(context.Background(), "a"); err == nil {
			t.Fatal("expected error")
		}
	}
	if inner.fetches != 2 || c.Len() != 0 {
		t.Errorf("errors must not be cached: fetches=%d len=%d", inner.fetches, c.Len())
	}
}

func TestCachedToolPassesThrough(t *testing.T) {
	inner := &countingTool{}
	c := NewCachedTool(inner, time.Minute)

	if msg, err := c.Update(context.Background()); err != nil || msg != "ok" || inner.updates != 1 {
		t.Errorf("Update = %q, %v (updates %d)", msg, err, inner.updates)
	}
}
