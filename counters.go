package ringfifo

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

type counters struct {
	enqueued atomic.Int64
	_        cpu.CacheLinePad // isolation between producer and consumer counters
	dequeued atomic.Int64
	_        cpu.CacheLinePad

	rejectedFull atomic.Int64
	emptyMisses  atomic.Int64

	scans       atomic.Int64
	scanUpdated atomic.Int64
	scanSkipped atomic.Int64
	resets      atomic.Int64
}

func newCounters() *counters {
	return &counters{}
}

func (c *counters) snapshot() (enqueued, dequeued, rejectedFull, emptyMisses int64) {
	return c.enqueued.Load(), c.dequeued.Load(), c.rejectedFull.Load(), c.emptyMisses.Load()
}

func (c *counters) scanSnapshot() (scans, updated, skipped, resets int64) {
	return c.scans.Load(), c.scanUpdated.Load(), c.scanSkipped.Load(), c.resets.Load()
}
