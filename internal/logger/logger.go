package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/natefinch/lumberjack"
	logrus "github.com/sirupsen/logrus"

	"reparto_tracker/internal/config"
)

// Setup initializes Logrus on a rotating file, optionally mirrored to stdout, and
// returns the writer so access logs land in the same place.
func Setup(cfg config.LogConfig) (io.Writer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	var writers []io.Writer
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // megabytes
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   cfg.Compress,
		})
	}
	if cfg.Stdout || len(writers) == 0 {
		writers = append(writers, os.Stdout)
	}
	out := io.MultiWriter(writers...)

	logrus.SetOutput(out)
	logrus.SetFormatter(Formatter(cfg.Format))
	logrus.SetLevel(level)
	return out, nil
}

// Formatter returns the JSON formatter for "json" and the text formatter otherwise.
func Formatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{TimestampFormat: time.RFC3339}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	}
}
