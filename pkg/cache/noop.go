package cache

import (
	"context"
	"time"
)

// Noop is the Cache used when Redis is disabled: every lookup misses and
// counters never grow, so callers fall through to the store.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
func (Noop) Ping(context.Context) error { return nil }
func (Noop) Increment(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Expire(context.Context, string, time.Duration) error { return nil }
func (Noop) TTL(context.Context, string) (time.Duration, error) { return 0, nil }
