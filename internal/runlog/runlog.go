// Package runlog is the process-wide logger for requiregraph. It keeps the
// message-plus-metadata call shape used across the codebase and writes
// through charmbracelet/log.
package runlog

import (
	"io"
	"os"
	"sort"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

const appName = "requiregraph"

var current atomic.Pointer[log.Logger]

func init() {
	current.Store(New(os.Stderr, log.WarnLevel))
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: appName,
	})
}

// Configure replaces the process logger with one writing to w at the named
// level ("debug", "info", "warn", "error").
func Configure(w io.Writer, level string) error {
	if level == "" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	current.Store(New(w, parsed))
	return nil
}

// SetLogger installs l as the process logger. A nil logger is ignored.
func SetLogger(l *log.Logger) {
	if l != nil {
		current.Store(l)
	}
}

// Logger returns the process logger.
func Logger() *log.Logger {
	return current.Load()
}

func Info(message string, metadata map[string]any) {
	emit(log.InfoLevel, message, metadata)
}

func Debug(message string, metadata map[string]any) {
	emit(log.DebugLevel, message, metadata)
}

func Warn(message string, metadata map[string]any) {
	emit(log.WarnLevel, message, metadata)
}

func Error(message string, metadata map[string]any) {
	emit(log.ErrorLevel, message, metadata)
}

func emit(level log.Level, message string, metadata map[string]any) {
	current.Load().Log(level, message, keyvals(metadata)...)
}

// keyvals flattens metadata into sorted key/value pairs so log lines are stable.
func keyvals(metadata map[string]any) []interface{} {
	if len(metadata) == 0 {
		return nil
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]interface{}, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, metadata[k])
	}
	return pairs
}
