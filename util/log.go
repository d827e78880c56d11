package util

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConsoleLog selects stderr instead of a log file
const ConsoleLog = "console"

// the migrator runs once per app start, so a few small files cover many runs
const (
	logMaxSizeMB  = 2
	logMaxBackups = 3
	logMaxAgeDays = 90
)

// LogSource names the side of the migration an entry was logged from
type LogSource string

const (
	LegacySource   LogSource = "CLICKONCE"
	SquirrelSource LogSource = "SQUIRREL"
	SystemSource   LogSource = "SYSTEM"
)

type contextKey string

// SourceKey is the context key a caller sets to tag log entries with a LogSource.
const SourceKey contextKey = "source"

// WithSource tags every entry logged through log.WithContext(ctx) with source
func WithSource(ctx context.Context, source LogSource) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// InitLog sets the level of the standard logger and sends its output to logPath, rotated by
// lumberjack. An empty path or "console" keeps logging on stderr.
func InitLog(logLevel string, logPath string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", logLevel, err)
	}

	if logPath != "" && logPath != ConsoleLog {
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   filepath.ToSlash(logPath),
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
			Compress:   true,
		})
	}

	log.SetFormatter(&CustomFormatter{})
	log.SetLevel(level)
	return nil
}

// CustomFormatter adds the LogSource found in the entry context as a "source" field
type CustomFormatter struct {
	log.TextFormatter
}

func (f *CustomFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Context != nil {
		if source, ok := entry.Context.Value(SourceKey).(LogSource); ok {
			entry.Data["source"] = string(source)
		}
	}
	return f.TextFormatter.Format(entry)
}
