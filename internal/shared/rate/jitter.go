package rate

import (
	"context"

	"go.uber.org/ratelimit"
)

// Jitter converts a per-second rate into a paced signal channel. The
// channel carries a small burst headroom so a consumer woken late does not
// lose its slot.
type Jitter struct {
	ch  chan struct{}
	lim ratelimit.Limiter
}

func NewJitter(ctx context.Context, perSec int) *Jitter {
	if perSec < 1 {
		perSec = 1
	}
	burst := perSec / 10
	if burst < 1 {
		burst = 1
	}

	j := &Jitter{
		ch:  make(chan struct{}, burst),
		lim: ratelimit.New(perSec),
	}
	go j.feed(ctx)

	return j
}

func (j *Jitter) feed(ctx context.Context) {
	defer close(j.ch)
	for {
		j.lim.Take()
		select {
		case <-ctx.Done():
			return
		case j.ch <- struct{}{}:
		}
	}
}

func (j *Jitter) Take() {
	<-j.ch
}

func (j *Jitter) Chan() <-chan struct{} {
	return j.ch
}
