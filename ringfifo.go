package ringfifo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/Borislavv/go-ring-fifo/config"
	"github.com/Borislavv/go-ring-fifo/internal/drain"
	"github.com/Borislavv/go-ring-fifo/internal/shared/spinlock"
	"github.com/Borislavv/go-ring-fifo/internal/snapshot"
	"github.com/Borislavv/go-ring-fifo/internal/telemetry"
)

// RingQueue is the full queue surface: the ring operations plus the optional
// drain, persistence and telemetry subsystems wired around it.
type RingQueue interface {
	Enqueue(data []byte) error
	Dequeue(dst []byte) error
	IsFull() (bool, error)
	IsEmpty() (bool, error)
	Avail() int
	Capacity() int
	EntrySize() int
	Reset() error
	ScanAndUpdate(in any, visit VisitFunc) Outcome
	Metrics() (enqueued, dequeued, rejectedFull, emptyMisses int64)
	ScanMetrics() (scans, updated, skipped, resets int64)
	DrainMetrics() (handled, errors, scans, hits, misses int64)
	ForceDrain(timeout time.Duration) error
	ForceDump(ctx context.Context) error
	Interval() time.Duration
	Fifo() *Fifo
	io.Closer
}

var _ RingQueue = (*Queue)(nil)

// Queue owns a ring plus the workers built from the config. Subsystems stop
// when Close is called or when the parent context dies.
type Queue struct {
	fifo    *Fifo
	cfg     *config.Config
	logger  *slog.Logger
	drainer drain.Drainer
	snap    snapshot.Snapshotter
	logs    telemetry.Logger
	cancel  context.CancelFunc
	once    sync.Once
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Queue, error) {
	if cfg == nil {
		return nil, fmt.Errorf("build queue: %w", ErrInvalidArgument)
	}
	cfg.AdjustConfig()
	if logger == nil {
		logger = slog.Default()
	}

	// Bad geometry must fail here, before it can size the storage allocation.
	if cfg.Fifo.Capacity <= 0 || cfg.Fifo.EntrySize <= 0 ||
		cfg.Fifo.Capacity > math.MaxInt/cfg.Fifo.EntrySize {
		return nil, fmt.Errorf("build queue: %w", ErrInvalidArgument)
	}

	var lock sync.Locker = &sync.Mutex{}
	if cfg.Fifo.LockMode == config.LockModeSpin {
		lock = &spinlock.Lock{}
	}

	fifo, err := NewWithLock(make([]byte, cfg.Fifo.StorageBytes), cfg.Fifo.Capacity, cfg.Fifo.EntrySize, lock)
	if err != nil {
		return nil, fmt.Errorf("build queue: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)

	snap := snapshot.New(ctx, cfg.Persistence, snapshotSource{f: fifo})
	if cfg.Persistence.Enabled() && cfg.Persistence.LoadOnStart {
		if err = snap.Load(ctx); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("queue restore failed", "error", err.Error())
		}
	}

	return &Queue{
		fifo:    fifo,
		cfg:     cfg,
		logger:  logger,
		cancel:  cancel,
		snap:    snap,
		drainer: drain.New(ctx, cfg.Drain, logger, drainSource{f: fifo}),
		logs:    telemetry.New(ctx, logger, telemetrySource{f: fifo}, cfg.Telemetry.LogsInterval()),
	}, nil
}

func (q *Queue) Enqueue(data []byte) error { return q.fifo.Enqueue(data) }
func (q *Queue) Dequeue(dst []byte) error  { return q.fifo.Dequeue(dst) }
func (q *Queue) IsFull() (bool, error)     { return q.fifo.IsFull() }
func (q *Queue) IsEmpty() (bool, error)    { return q.fifo.IsEmpty() }
func (q *Queue) Avail() int                { return q.fifo.Avail() }
func (q *Queue) Capacity() int             { return q.fifo.Capacity() }
func (q *Queue) EntrySize() int            { return q.fifo.EntrySize() }
func (q *Queue) Reset() error              { return q.fifo.Reset() }

func (q *Queue) ScanAndUpdate(in any, visit VisitFunc) Outcome {
	return q.fifo.ScanAndUpdate(in, visit)
}

func (q *Queue) Metrics() (enqueued, dequeued, rejectedFull, emptyMisses int64) {
	return q.fifo.Metrics()
}

func (q *Queue) ScanMetrics() (scans, updated, skipped, resets int64) {
	return q.fifo.ScanMetrics()
}

func (q *Queue) DrainMetrics() (handled, errors, scans, hits, misses int64) {
	return q.drainer.Metrics()
}

// ForceDrain flushes queued entries to the drain handler ahead of the rate.
func (q *Queue) ForceDrain(timeout time.Duration) error {
	return q.drainer.ForceDrain(timeout)
}

// ForceDump writes a dump right now instead of waiting for the next tick.
func (q *Queue) ForceDump(ctx context.Context) error {
	return q.snap.Dump(ctx)
}

// Interval returns the telemetry logging period, zero when telemetry is off.
func (q *Queue) Interval() time.Duration { return q.logs.Interval() }

// Fifo returns the underlying ring for callers that want the bare queue
// without the facade indirection, e.g. on a hot path.
func (q *Queue) Fifo() *Fifo { return q.fifo }

// Close stops the workers and, when persistence is on, writes a final dump.
// Safe to call more than once.
func (q *Queue) Close() error {
	q.once.Do(func() {
		q.cancel()
		if q.cfg.Persistence.Enabled() {
			if err := q.snap.Dump(context.Background()); err != nil {
				q.logger.Error("final queue dump failed", "error", err.Error())
			}
		}
	})
	return nil
}

// drainSource adapts the ring to the drain worker.
type drainSource struct{ f *Fifo }

func (s drainSource) DrainNext(dst []byte) bool { return s.f.Dequeue(dst) == nil }
func (s drainSource) Avail() int                { return s.f.Avail() }
func (s drainSource) EntrySize() int            { return s.f.EntrySize() }

// snapshotSource adapts the ring to the snapshotter. The dump walk rides
// ScanAndUpdate, so the whole snapshot sees one consistent queue state.
type snapshotSource struct{ f *Fifo }

func (s snapshotSource) Capacity() int  { return s.f.Capacity() }
func (s snapshotSource) EntrySize() int { return s.f.EntrySize() }

func (s snapshotSource) Snapshot(visit func(entry []byte) bool) {
	s.f.ScanAndUpdate(visit, func(in any, entry []byte) Outcome {
		if in.(func(entry []byte) bool)(entry) {
			return Unchanged
		}
		return Skipped
	})
}

func (s snapshotSource) Restore(entry []byte) bool { return s.f.Enqueue(entry) == nil }
func (s snapshotSource) Clear()                    { _ = s.f.Reset() }

// telemetrySource adapts the ring counters to the telemetry sampler.
type telemetrySource struct{ f *Fifo }

func (s telemetrySource) Avail() int     { return s.f.Avail() }
func (s telemetrySource) Capacity() int  { return s.f.Capacity() }
func (s telemetrySource) EntrySize() int { return s.f.EntrySize() }

func (s telemetrySource) Sample() telemetry.Sample {
	enqueued, dequeued, rejectedFull, emptyMisses := s.f.Metrics()
	scans, updated, skipped, resets := s.f.ScanMetrics()
	return telemetry.Sample{
		Enqueued:     enqueued,
		Dequeued:     dequeued,
		RejectedFull: rejectedFull,
		EmptyMisses:  emptyMisses,
		Scans:        scans,
		ScanUpdated:  updated,
		ScanSkipped:  skipped,
		Resets:       resets,
	}
}
