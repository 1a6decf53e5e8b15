package logger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	logrus "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reparto_tracker/internal/config"
)

func captureStandard(t *testing.T) *bytes.Buffer {
	t.Helper()
	std := logrus.StandardLogger()
	out, level, formatter := std.Out, std.GetLevel(), std.Formatter
	t.Cleanup(func() {
		std.SetOutput(out)
		std.SetLevel(level)
		std.SetFormatter(formatter)
	})

	var buf bytes.Buffer
	std.SetOutput(&buf)
	std.SetLevel(logrus.DebugLevel)
	std.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return &buf
}

func TestSetupWritesToFile(t *testing.T) {
	captureStandard(t)
	path := filepath.Join(t.TempDir(), "app.log")

	_, err := Setup(config.LogConfig{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	logrus.Info("hello")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)

	_, err = Setup(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestTime(t *testing.T) {
	buf := captureStandard(t)
	ctx := WithRequestID(context.Background(), "abc")

	err := errors.New("boom")
	Time(ctx, "route.create")(&err)
	assert.Contains(t, buf.String(), "req_id=abc")
	assert.Contains(t, buf.String(), "op=route.create")
	assert.Contains(t, buf.String(), "error=boom")

	buf.Reset()
	var ok error
	Time(context.Background(), "route.list")(&ok)
	assert.Contains(t, buf.String(), "operation done")
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)

	g := NewGormLogger(l, 10*time.Millisecond)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	g.Trace(context.Background(), time.Now(), sql, nil)
	assert.Empty(t, buf.String())

	g.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	g.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "slow query")

	buf.Reset()
	g.Trace(context.Background(), time.Now(), sql, errors.New("syntax error"))
	assert.Contains(t, buf.String(), "syntax error")
}
