package spinlock

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Lock is a non-reentrant busy-wait lock satisfying sync.Locker. Contended
// acquires yield to the scheduler between attempts, so a holder that was
// preempted can run and release. The zero value is an unlocked lock.
type Lock struct {
	state atomic.Int32
}

var _ sync.Locker = (*Lock)(nil)

func (l *Lock) Lock() {
	for !l.state.CompareAndSwap(0, 1) {
		runtime.Gosched()
	}
}

func (l *Lock) Unlock() {
	l.state.Store(0)
}
