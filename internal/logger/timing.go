package logger

import (
	"context"
	"time"

	logrus "github.com/sirupsen/logrus"
)

type ctxKey string

const requestIDKey ctxKey = "req_id"

// WithRequestID attaches the request id used to correlate log lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// Time logs the duration of op when the returned func runs, usually deferred with
// the address of a named error result.
func Time(ctx context.Context, op string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		e := logrus.WithFields(logrus.Fields{
			"req_id": RequestID(ctx),
			"op":     op,
			"dur_ms": time.Since(start).Milliseconds(),
		})
		if errp != nil && *errp != nil {
			e.WithError(*errp).Info("operation failed")
			return
		}
		e.Debug("operation done")
	}
}
