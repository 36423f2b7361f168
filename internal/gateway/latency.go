package gateway

import (
	"context"
	"time"
)

type latencyGateway struct {
	next  Gateway
	delay time.Duration
}

// WithLatency delays every call on gw by d to mimic a remote backend.
// A non-positive d returns gw unchanged. Cancelling ctx aborts the wait.
func WithLatency(gw Gateway, d time.Duration) Gateway {
	if d <= 0 {
		return gw
	}
	return &latencyGateway{next: gw, delay: d}
}

func (l *latencyGateway) wait(ctx context.Context) error {
	t := time.NewTimer(l.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *latencyGateway) Get(ctx context.Context, key string) ([]byte, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Get(ctx, key)
}

func (l *latencyGateway) Put(ctx context.Context, key string, value []byte) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Put(ctx, key, value)
}

func (l *latencyGateway) Delete(ctx context.Context, key string) error {
	if err := l.wait(ctx); err != nil {
		return err
	}
	return l.next.Delete(ctx, key)
}
