package reconcile

import (
	"context"
	"sync"
	"time"

	"twii-miner/core/graph"

	"golang.org/x/sync/singleflight"
)

// Snapshot is a finished run: the reconciled graph and its report.
type Snapshot struct {
	// Graph is read-only once the snapshot is cached.
	Graph *graph.Graph

	// Report is the reconciliation outcome.
	Report *Report

	// Built is the timestamp when this snapshot was built.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *Snapshot) IsExpired() bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return time.Since(s.Built) > s.TTL
}

// BuildFunc runs a full rebuild.
type BuildFunc func(ctx context.Context) (*graph.Graph, *Report, error)

// Cache keeps one snapshot per key and rebuilds expired ones at most once at a time.
type Cache struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	sf        singleflight.Group
	ttl       time.Duration
}

// NewCache creates a cache whose snapshots live for ttl. A zero ttl rebuilds on
// every call, with concurrent callers still sharing one build.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		snapshots: make(map[string]*Snapshot),
		ttl:       ttl,
	}
}

// Get returns the snapshot for key, or builds a new one if it doesn't exist or
// has expired. Uses singleflight to prevent rebuild stampedes.
func (c *Cache) Get(ctx context.Context, key string, build BuildFunc) (*Snapshot, error) {
	// Fast path: check if snapshot exists and is fresh
	c.mu.RLock()
	snap, exists := c.snapshots[key]
	c.mu.RUnlock()

	if exists && !snap.IsExpired() {
		return snap, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		snap, exists := c.snapshots[key]
		c.mu.RUnlock()

		if exists && !snap.IsExpired() {
			return snap, nil
		}

		g, report, err := build(ctx)
		if err != nil {
			return nil, err
		}
		fresh := &Snapshot{Graph: g, Report: report, Built: time.Now(), TTL: c.ttl}

		c.mu.Lock()
		c.snapshots[key] = fresh
		c.mu.Unlock()

		return fresh, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// Invalidate removes the snapshot for key, forcing the next Get to rebuild.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.snapshots, key)
	c.mu.Unlock()
}
