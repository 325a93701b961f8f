package ringfifo

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/Borislavv/go-ring-fifo/config"
	"github.com/stretchr/testify/require"
)

// testContext stands in for testing.T.Context, which requires Go 1.24+:
// a context canceled when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// TestNewQueue_InvalidConfig verifies that a broken config never yields a queue.
func TestNewQueue_InvalidConfig(t *testing.T) {
	_, err := New(testContext(t), nil, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(testContext(t), &config.Config{}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(testContext(t), &config.Config{Fifo: config.FifoCfg{Capacity: 8}}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(testContext(t), &config.Config{Fifo: config.FifoCfg{Capacity: -1, EntrySize: 4}}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(testContext(t), &config.Config{Fifo: config.FifoCfg{Capacity: math.MaxInt / 2, EntrySize: 4}}, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

// TestQueue_FacadeOps verifies the facade delegates to the ring underneath.
func TestQueue_FacadeOps(t *testing.T) {
	cfg := &config.Config{Fifo: config.FifoCfg{Capacity: 4, EntrySize: 4, LockMode: config.LockModeSpin}}
	q, err := New(testContext(t), cfg, slog.Default())
	require.NoError(t, err)
	defer q.Close()

	require.Equal(t, 4, q.Capacity())
	require.Equal(t, 4, q.EntrySize())
	require.NotNil(t, q.Fifo())

	require.NoError(t, q.Enqueue(u32(11)))
	require.NoError(t, q.Enqueue(u32(22)))
	require.Equal(t, 2, q.Avail())

	empty, err := q.IsEmpty()
	require.NoError(t, err)
	require.False(t, empty)

	ret := q.ScanAndUpdate(struct{}{}, func(in any, entry []byte) Outcome { return Unchanged })
	require.Equal(t, Unchanged, ret)

	dst := make([]byte, 4)
	require.NoError(t, q.Dequeue(dst))
	require.Equal(t, []byte{11, 0, 0, 0}, dst)

	require.NoError(t, q.Reset())
	require.Equal(t, 0, q.Avail())

	enqueued, dequeued, _, _ := q.Metrics()
	require.Equal(t, int64(2), enqueued)
	require.Equal(t, int64(1), dequeued)
}

// TestQueue_Close verifies Close is idempotent and survives repeated calls.
func TestQueue_Close(t *testing.T) {
	cfg := &config.Config{Fifo: config.FifoCfg{Capacity: 8, EntrySize: 8}}
	q, err := New(testContext(t), cfg, slog.Default())
	require.NoError(t, err)

	require.NoError(t, q.Close())
	require.NoError(t, q.Close())
}
