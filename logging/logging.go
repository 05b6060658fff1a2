// Package logging is a small leveled logger on top of the standard log
// package.
package logging

import (
	"fmt"
	"io"
	"log"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name, in any case, to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "NONE", "OFF":
		return LevelNone, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// UnmarshalText lets levels be read straight from config files.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

type Logger struct {
	logger *log.Logger
	level  Level
}

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		logger: log.New(out, "", log.LstdFlags),
		level:  level,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, LevelNone)
}

// With returns a logger that prefixes every message with name.
func (l *Logger) With(name string) *Logger {
	return &Logger{
		logger: log.New(l.logger.Writer(), "["+name+"] ", l.logger.Flags()|log.Lmsgprefix),
		level:  l.level,
	}
}

func (l *Logger) Debugf(format string, v ...any) {
	l.logf(LevelDebug, format, v...)
}

func (l *Logger) Infof(format string, v ...any) {
	l.logf(LevelInfo, format, v...)
}

func (l *Logger) Warnf(format string, v ...any) {
	l.logf(LevelWarn, format, v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.logf(LevelError, format, v...)
}

func (l *Logger) logf(level Level, format string, v ...any) {
	if l == nil || level < l.level || l.level == LevelNone {
		return
	}
	l.logger.Printf(level.String()+": "+format, v...)
}

func (l *Logger) SetLevel(level Level) {
	l.level = level
}

func (l *Logger) Level() Level {
	return l.level
}
