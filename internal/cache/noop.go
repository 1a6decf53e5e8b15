package cache

import (
	"context"
	"time"

	"reparto_tracker/internal/ports"
)

// Noop never stores anything; every read is a miss.
type Noop struct{}

var _ ports.Cache = Noop{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error               { return nil }
func (Noop) Generation(context.Context, string) (int64, error)     { return 0, nil }
func (Noop) Bump(context.Context, string) error                    { return nil }
