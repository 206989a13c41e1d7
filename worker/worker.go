package worker

import (
	"context"
	"time"
)

// Worker a long running unit launched by the worker command
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker drives onWork repeatedly, backing off after a failed round
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick start tick
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	delay := w.Delay
	if delay <= 0 {
		delay = time.Second
	}

	errDelay := w.ErrDelay
	if errDelay <= 0 {
		errDelay = 10 * time.Second
	}

	timer := time.NewTimer(time.Millisecond)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := onWork(ctx); err != nil {
				timer.Reset(errDelay)
			} else {
				timer.Reset(delay)
			}
		}
	}
}
