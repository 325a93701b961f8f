package drain

import "sync/atomic"

type drainerCounters struct {
	handled    atomic.Int64 // entries accepted by the handler
	errors     atomic.Int64 // entries the handler rejected with an error
	scans      atomic.Int64 // paced attempts against a non-empty queue
	scanHits   atomic.Int64 // attempts that produced an entry
	scanMisses atomic.Int64 // attempts that lost the race for the last entry
}

func newDrainerCounters() *drainerCounters {
	return &drainerCounters{}
}

func (c *drainerCounters) snapshot() (handled, errors, scans, hits, misses int64) {
	handled = c.handled.Load()
	errors = c.errors.Load()
	scans = c.scans.Load()
	hits = c.scanHits.Load()
	misses = c.scanMisses.Load()
	return
}
