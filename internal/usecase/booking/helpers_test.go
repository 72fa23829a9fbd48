package booking_test

import (
	"context"
	"sync"

	"github.com/glowbook/artist-scheduler/internal/audit"
	domain "github.com/glowbook/artist-scheduler/internal/domain/appointment"
)

type nopSink struct{}

func (nopSink) Log(*uint, string, string, *uint, any) error { return nil }

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(nopSink{})
}

// spyCache records invalidations so tests can assert a write cleared
// the cached slot lists for that day.
type spyCache struct {
	mu          sync.Mutex
	entries     map[string][]domain.TimeSlot
	invalidated []string
}

func newSpyCache() *spyCache {
	return &spyCache{entries: map[string][]domain.TimeSlot{}}
}

func (c *spyCache) key(artistID, serviceID uint, date string) string {
	return date
}

func (c *spyCache) Get(_ context.Context, artistID, serviceID uint, date string) ([]domain.TimeSlot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	slots, ok := c.entries[c.key(artistID, serviceID, date)]
	return slots, ok
}

func (c *spyCache) Set(_ context.Context, artistID, serviceID uint, date string, slots []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(artistID, serviceID, date)] = slots
}

func (c *spyCache) Invalidate(_ context.Context, artistID uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, date)
	c.invalidated = append(c.invalidated, date)
}
