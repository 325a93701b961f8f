package spinlock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLock_Sequential verifies repeated lock/unlock cycles on one goroutine.
func TestLock_Sequential(t *testing.T) {
	var l Lock

	for i := 0; i < 100; i++ {
		l.Lock()
		l.Unlock()
	}

	require.Equal(t, int32(0), l.state.Load())
}

// TestLock_MutualExclusion verifies that a plain counter guarded by the lock
// is not torn by concurrent writers.
func TestLock_MutualExclusion(t *testing.T) {
	const numGoroutines = 8
	const opsPerGoroutine = 10_000

	var l Lock
	var total int

	var wg sync.WaitGroup
	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				l.Lock()
				total++
				l.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, numGoroutines*opsPerGoroutine, total)
}

// TestLock_HeldBlocksOthers verifies that a held lock keeps a second goroutine out.
func TestLock_HeldBlocksOthers(t *testing.T) {
	var l Lock
	l.Lock()

	acquired := make(chan struct{})
	go func() {
		l.Lock()
		close(acquired)
		l.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("lock acquired while held")
	default:
	}

	l.Unlock()
	<-acquired
}
