// Package logger is a small leveled logger for diagnostics that should
// stay off stdout, which is reserved for command output.
package logger

import (
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Level controls verbosity.
type Level int32

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose adds debug output.
	LevelVerbose
)

// Logger writes timestamped, tagged lines at or above its level.
// Safe for concurrent use.
type Logger struct {
	level atomic.Int32
	out   *log.Logger
}

// New creates a logger writing to out; nil means os.Stderr.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	l := &Logger{out: log.New(out, "", log.Ltime)}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

// Debug logs a debug line, visible only in verbose mode.
func (l *Logger) Debug(format string, args ...any) {
	l.printf(LevelVerbose, "[DBG]", format, args...)
}

// Info logs an informational line.
func (l *Logger) Info(format string, args ...any) {
	l.printf(LevelNormal, "[INF]", format, args...)
}

// Warn logs a warning line.
func (l *Logger) Warn(format string, args ...any) {
	l.printf(LevelNormal, "[WRN]", format, args...)
}

// Error logs an error line.
func (l *Logger) Error(format string, args ...any) {
	l.printf(LevelNormal, "[ERR]", format, args...)
}

func (l *Logger) printf(min Level, tag, format string, args ...any) {
	if Level(l.level.Load()) < min {
		return
	}
	l.out.Printf(tag+" "+format, args...)
}
