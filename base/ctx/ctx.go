package ctx

import (
	"context"
	"os"
	"os/signal"
	"time"

	log "github.com/x-xyz/metagen/base/log"
)

// Ctx carries a context together with a logger holding the request scoped fields.
type Ctx struct {
	context.Context
	log.Logger
}

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, key, val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, cancel
}

// WithSignal returns a Ctx that is cancelled when one of the signals arrives.
func WithSignal(parent Ctx, sig ...os.Signal) (Ctx, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, sig...)
	return Ctx{
		Context: ctx,
		Logger:  parent.Logger,
	}, stop
}

// Sleep waits for d or until c is done, whichever comes first.
func Sleep(c Ctx, d time.Duration) error {
	if d <= 0 {
		return c.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-c.Done():
		return c.Err()
	case <-t.C:
		return nil
	}
}
