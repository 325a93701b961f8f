package drain

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/Borislavv/go-ring-fifo/config"
	"github.com/Borislavv/go-ring-fifo/internal/shared/rate"
)

var ErrDrainerNotResponded = errors.New("drainer not responded")

// Source is the queue surface the drain worker consumes.
type Source interface {
	// DrainNext moves the oldest entry into dst and frees its slot.
	// Reports false when the queue has nothing to hand out.
	DrainNext(dst []byte) bool
	Avail() int
	EntrySize() int
}

type Drainer interface {
	ForceDrain(timeout time.Duration) error
	Metrics() (handled, errors, scans, hits, misses int64)
	Close() error
}

type DrainWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.DrainCfg
	logger   *slog.Logger
	src      Source
	jitter   *rate.Jitter
	counters *drainerCounters
	invokeCh chan []byte
	forceCh  chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.DrainCfg,
	logger *slog.Logger,
	src Source,
) Drainer {
	if !cfg.Enabled() {
		return &NoOpDrainer{}
	}

	ctx, cancel := context.WithCancel(ctx)

	var invokeCap = cfg.Rate
	if invokeCap <= 0 {
		invokeCap = 1
	}

	return (&DrainWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		src:      src,
		jitter:   rate.NewJitter(ctx, cfg.Rate),
		counters: newDrainerCounters(),
		invokeCh: make(chan []byte, invokeCap),
		forceCh:  make(chan struct{}),
	}).run()
}

// ForceDrain asks the worker to flush the queue to the handler right now,
// ignoring the configured rate. It only waits for the worker to accept the
// call, not for the flush to finish.
func (w *DrainWorker) ForceDrain(timeout time.Duration) error {
	after := time.NewTimer(timeout)
	defer after.Stop()

	select {
	case <-w.ctx.Done():
	case w.forceCh <- struct{}{}:
	case <-after.C:
		return ErrDrainerNotResponded
	}
	return nil
}

func (w *DrainWorker) Metrics() (handled, errors, scans, hits, misses int64) {
	return w.counters.snapshot()
}

func (w *DrainWorker) Close() error {
	w.cancel()
	return nil
}

func (w *DrainWorker) run() *DrainWorker {
	w.logger.Info("drainer is running", "rate", w.cfg.Rate)

	go func() {
		defer w.logger.Info("drainer is stopped")
		var wg sync.WaitGroup
		for i := 0; i <= runtime.GOMAXPROCS(0); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.consumer()
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.provider()
		}()
		wg.Wait()
	}()

	return w
}

// provider - moves entries out of the queue, paced by the jitter, or all at
// once on a force call.
func (w *DrainWorker) provider() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.jitter.Chan():
			if w.src.Avail() > 0 {
				w.counters.scans.Add(1)
				if !w.pump() {
					w.counters.scanMisses.Add(1)
				}
			}
		case <-w.forceCh:
			for w.pump() {
			}
		}
	}
}

// pump transfers one entry from the queue into the handler pipeline.
func (w *DrainWorker) pump() bool {
	entry := make([]byte, w.src.EntrySize())
	if !w.src.DrainNext(entry) {
		return false
	}
	w.counters.scanHits.Add(1)

	select {
	case <-w.ctx.Done():
		return false
	case w.invokeCh <- entry:
	}
	return true
}

// consumer - hands drained entries to the configured handler.
func (w *DrainWorker) consumer() {
	for {
		select {
		case <-w.ctx.Done():
			return
		case entry := <-w.invokeCh:
			if err := w.cfg.Handler(entry); err == nil {
				w.counters.handled.Add(1)
			} else {
				w.counters.errors.Add(1)
			}
		}
	}
}
