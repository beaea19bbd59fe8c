// Package logging provides the leveled logger injected into library
// packages.
package logging

import (
	"log"
	"strings"
)

type Logger interface {
	Debugf(format string, v ...any)
	Infof(format string, v ...any)
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel is case-insensitive and falls back to info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type Leveled struct {
	level  Level
	logger *log.Logger
}

// New writes through the standard logger.
func New(level string) *Leveled {
	return &Leveled{level: ParseLevel(level), logger: log.Default()}
}

func NewWithLogger(level string, l *log.Logger) *Leveled {
	return &Leveled{level: ParseLevel(level), logger: l}
}

func (l *Leveled) Level() Level { return l.level }

func (l *Leveled) logf(level Level, tag, format string, v ...any) {
	if level >= l.level {
		l.logger.Printf(tag+" "+format, v...)
	}
}

func (l *Leveled) Debugf(format string, v ...any) { l.logf(LevelDebug, "[DEBUG]", format, v...) }
func (l *Leveled) Infof(format string, v ...any)  { l.logf(LevelInfo, "[INFO]", format, v...) }
func (l *Leveled) Warnf(format string, v ...any)  { l.logf(LevelWarn, "[WARN]", format, v...) }
func (l *Leveled) Errorf(format string, v ...any) { l.logf(LevelError, "[ERROR]", format, v...) }

type NoOp struct{}

func (NoOp) Debugf(format string, v ...any) {}
func (NoOp) Infof(format string, v ...any)  {}
func (NoOp) Warnf(format string, v ...any)  {}
func (NoOp) Errorf(format string, v ...any) {}

// OrNoOp returns l, or a NoOp logger when l is nil.
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOp{}
	}
	return l
}
