// Package cache decorates the yt-dlp client with a short-lived metadata cache,
// so the lookup behind /api/info is reused when the same URL is downloaded
// right after.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/datallboy/ytweb/internal/app"
	"github.com/datallboy/ytweb/internal/domain"
)

type entry struct {
	info    *domain.MediaInfo
	expires time.Time
}

// CachedTool wraps a MediaTool. Only successful Fetch results are cached;
// Download and Update pass straight through. Cached MediaInfo values are
// shared and must be treated as read-only.
type CachedTool struct {
	app.MediaTool

	ttl     time.Duration
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewCachedTool(inner app.MediaTool, ttl time.Duration) *CachedTool {
	return &CachedTool{
		MediaTool: inner,
		ttl:       ttl,
		entries:   make(map[string]entry),
		now:       time.Now,
	}
}

func (c *CachedTool) Fetch(ctx context.Context, url string) (*domain.MediaInfo, error) {
	// 1. Check the cache first
	if info, ok := c.get(url); ok {
		return info, nil
	}

	// 2. Cache miss: ask yt-dlp
	info, err := c.MediaTool.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	// 3. Save for next time
	c.put(url, info)
	return info, nil
}

// Len is the number of live entries.
func (c *CachedTool) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	return len(c.entries)
}

func (c *CachedTool) get(url string) (*domain.MediaInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, url)
		return nil, false
	}
	return e.info, true
}

func (c *CachedTool) put(url string, info *domain.MediaInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked()
	c.entries[url] = entry{info: info, expires: c.now().Add(c.ttl)}
}

func (c *CachedTool) pruneLocked() {
	now := c.now()
	for url, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, url)
		}
	}
}
