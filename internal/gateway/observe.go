package gateway

import (
	"context"
	"errors"
	"time"
)

// Observer receives one call per gateway operation.
// outcome is "ok", "missing" or "error".
type Observer interface {
	ObserveGateway(op, key, outcome string, elapsed time.Duration)
}

type observedGateway struct {
	next Gateway
	obs  Observer
}

// WithObserver reports every operation on gw to obs
func WithObserver(gw Gateway, obs Observer) Gateway {
	if obs == nil {
		return gw
	}
	return &observedGateway{next: gw, obs: obs}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissing):
		return "missing"
	default:
		return "error"
	}
}

func (o *observedGateway) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	data, err := o.next.Get(ctx, key)
	o.obs.ObserveGateway("get", key, outcome(err), time.Since(start))
	return data, err
}

func (o *observedGateway) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := o.next.Put(ctx, key, value)
	o.obs.ObserveGateway("put", key, outcome(err), time.Since(start))
	return err
}

func (o *observedGateway) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := o.next.Delete(ctx, key)
	o.obs.ObserveGateway("delete", key, outcome(err), time.Since(start))
	return err
}
