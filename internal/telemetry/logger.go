package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/Borislavv/go-ring-fifo/internal/shared/bytes"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Source exposes the queue state the telemetry loop reports on.
type Source interface {
	Sample() Sample
	Avail() int
	Capacity() int
	EntrySize() int
}

type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
	src      Source
	interval time.Duration
}

func New(ctx context.Context, logger *slog.Logger, src Source, interval time.Duration) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	return (&Logs{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		src:      src,
		interval: interval,
	}).run()
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) run() *Logs {
	if l.interval > 0 {
		go l.loop()
	}
	return l
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	capacity := l.src.Capacity()
	region := bytes.FmtMem(uint64(capacity * l.src.EntrySize()))

	prev := l.src.Sample()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := l.src.Sample()
			d := deltaSample(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}

			l.logger.Info("queue",
				append(common,
					"len", l.src.Avail(),
					"capacity", capacity,
					"region", region,
					"enqueued", d.Enqueued,
					"dequeued", d.Dequeued,
					"rejected_full", d.RejectedFull,
					"empty_misses", d.EmptyMisses,
				)...,
			)

			if d.Scans > 0 || d.Resets > 0 {
				l.logger.Info("queue_scans",
					append(common,
						"scans", d.Scans,
						"updated", d.ScanUpdated,
						"skipped", d.ScanSkipped,
						"resets", d.Resets,
					)...,
				)
			}
		}
	}
}
