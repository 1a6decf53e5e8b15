package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM's SQL and error logging into Logrus.
type GormLogger struct {
	log   *logrus.Logger
	level gormlogger.LogLevel
	slow  time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger logs every statement when log runs at debug level, and otherwise only
// errors and statements slower than slow.
func NewGormLogger(log *logrus.Logger, slow time.Duration) *GormLogger {
	level := gormlogger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return &GormLogger{log: log, level: level, slow: slow}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	c := *g
	c.level = level
	return &c
}

func (g *GormLogger) entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(g.log).WithField("component", "gorm")
	if id := RequestID(ctx); id != "" {
		e = e.WithField("req_id", id)
	}
	return e
}

func (g *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		g.entry(ctx).Infof(msg, data...)
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		g.entry(ctx).Warnf(msg, data...)
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		g.entry(ctx).Errorf(msg, data...)
	}
}

func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	e := g.entry(ctx).WithFields(logrus.Fields{
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
	})

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		e.WithError(err).Error(sql)
	case g.slow > 0 && elapsed > g.slow && g.level >= gormlogger.Warn:
		e.Warn(fmt.Sprintf("slow query (>%s): %s", g.slow, sql))
	case g.level >= gormlogger.Info:
		e.Debug(sql)
	}
}
