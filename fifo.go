// Package ringfifo is a fixed-capacity, fixed-entry-size circular queue over
// a caller-supplied byte region. Every operation runs under a single
// non-reentrant lock, never blocks on queue state, and reports full or empty
// conditions as sentinel errors instead of waiting.
package ringfifo

import (
	"math"
	"sync"
)

// Fifo is the queue descriptor. The zero value is not usable; build one with
// NewFifo or NewWithLock. Capacity and entry size are immutable afterwards.
type Fifo struct {
	lock      sync.Locker
	storage   []byte
	capacity  int
	entrySize int
	avail     int // occupied slots, 0..capacity
	tail      int // oldest occupied slot; head is (tail+avail)%capacity
	counters  *counters
}

// NewFifo binds a descriptor to storage, which must hold at least
// capacity*entrySize bytes and stays owned by the queue until the caller
// stops using it. The used region is zero-filled. Guarded by *sync.Mutex.
func NewFifo(storage []byte, capacity, entrySize int) (*Fifo, error) {
	return NewWithLock(storage, capacity, entrySize, &sync.Mutex{})
}

// NewWithLock is NewFifo with a caller-supplied mutual-exclusion primitive,
// e.g. a spinlock.Lock. The lock must be non-reentrant-safe to share only
// through this queue and must start in the unlocked state.
func NewWithLock(storage []byte, capacity, entrySize int, lock sync.Locker) (*Fifo, error) {
	if capacity <= 0 || entrySize <= 0 || lock == nil {
		return nil, ErrInvalidArgument
	}
	// The byte size of the region must fit in int before it can size anything.
	if capacity > math.MaxInt/entrySize {
		return nil, ErrInvalidArgument
	}
	need := capacity * entrySize
	if len(storage) < need {
		return nil, ErrInvalidArgument
	}

	f := &Fifo{
		lock:      lock,
		storage:   storage[:need:need],
		capacity:  capacity,
		entrySize: entrySize,
		counters:  newCounters(),
	}
	clear(f.storage)

	return f, nil
}

// Enqueue copies exactly EntrySize bytes from data into the next free slot.
// Returns ErrCapacityExceeded on a full queue without touching any state.
func (f *Fifo) Enqueue(data []byte) error {
	if f == nil || len(data) != f.entrySize {
		return ErrInvalidArgument
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.avail == f.capacity {
		f.counters.rejectedFull.Add(1)
		return ErrCapacityExceeded
	}

	head := (f.tail + f.avail) % f.capacity
	copyEntry(f.slot(head), data)
	f.avail++
	f.counters.enqueued.Add(1)

	return nil
}

// Dequeue copies the oldest entry into dst (exactly EntrySize bytes) and
// frees its slot. Returns ErrNotFound on an empty queue without touching
// any state.
func (f *Fifo) Dequeue(dst []byte) error {
	if f == nil || len(dst) != f.entrySize {
		return ErrInvalidArgument
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	if f.avail == 0 {
		f.counters.emptyMisses.Add(1)
		return ErrNotFound
	}

	copyEntry(dst, f.slot(f.tail))
	f.tail = (f.tail + 1) % f.capacity
	f.avail--
	f.counters.dequeued.Add(1)

	return nil
}

// IsFull reports whether every slot is occupied. The answer is a snapshot:
// it may be stale the moment the lock is released.
func (f *Fifo) IsFull() (bool, error) {
	if f == nil {
		return false, ErrInvalidArgument
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.avail == f.capacity, nil
}

// IsEmpty reports whether no slot is occupied. Snapshot semantics as IsFull.
func (f *Fifo) IsEmpty() (bool, error) {
	if f == nil {
		return false, ErrInvalidArgument
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.avail == 0, nil
}

// Avail returns the number of occupied slots. A nil queue has a natural
// answer here, zero, so no error is reported.
func (f *Fifo) Avail() int {
	if f == nil {
		return 0
	}
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.avail
}

// Reset discards all queued entries unconditionally and zero-fills the
// backing region.
func (f *Fifo) Reset() error {
	if f == nil {
		return ErrInvalidArgument
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	clear(f.storage)
	f.tail = 0
	f.avail = 0
	f.counters.resets.Add(1)

	return nil
}

// ScanAndUpdate walks occupied entries oldest to newest under a single lock
// acquisition, handing each entry to visit together with the opaque in
// argument. The walk stops at the first Updated or Skipped result and
// returns it; otherwise it returns the last result, which for an all
// Unchanged walk (or an empty queue) is Unchanged. Nil queue, in, or visit
// also yield Unchanged.
//
// Entries are never removed or reordered by a scan, only their contents may
// change. The callback must not call back into this queue: the lock is not
// reentrant and a nested operation deadlocks.
func (f *Fifo) ScanAndUpdate(in any, visit VisitFunc) Outcome {
	if f == nil || in == nil || visit == nil {
		return Unchanged
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	f.counters.scans.Add(1)

	ret := Unchanged
	for i := 0; i < f.avail; i++ {
		ret = visit(in, f.slot((f.tail+i)%f.capacity))
		if ret == Updated {
			f.counters.scanUpdated.Add(1)
			break
		}
		if ret == Skipped {
			f.counters.scanSkipped.Add(1)
			break
		}
	}

	return ret
}

// Capacity returns the slot count, zero for a nil queue.
func (f *Fifo) Capacity() int {
	if f == nil {
		return 0
	}
	return f.capacity
}

// EntrySize returns the byte size of one entry, zero for a nil queue.
func (f *Fifo) EntrySize() int {
	if f == nil {
		return 0
	}
	return f.entrySize
}

// Metrics returns cumulative operation counters.
func (f *Fifo) Metrics() (enqueued, dequeued, rejectedFull, emptyMisses int64) {
	if f == nil {
		return 0, 0, 0, 0
	}
	return f.counters.snapshot()
}

// ScanMetrics returns cumulative scan and reset counters.
func (f *Fifo) ScanMetrics() (scans, updated, skipped, resets int64) {
	if f == nil {
		return 0, 0, 0, 0
	}
	return f.counters.scanSnapshot()
}

// slot returns the i-th slot capped to exactly one entry, so a scan callback
// cannot grow it over a neighbour.
func (f *Fifo) slot(i int) []byte {
	off := i * f.entrySize
	return f.storage[off : off+f.entrySize : off+f.entrySize]
}
