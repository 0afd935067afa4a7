package logger

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
	LevelOff
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "off", "none":
		return LevelOff
	default:
		return LevelInfo
	}
}

// Logger writes leveled lines through the standard log package.
type Logger struct {
	out   *log.Logger
	level Level
}

func New(w io.Writer, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		level: level,
	}
}

func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

func Nop() *Logger {
	return New(io.Discard, LevelOff)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.write(LevelInfo, "INFO", format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.write(LevelWarn, "WARN", format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.write(LevelError, "ERROR", format, v...)
}

func (l *Logger) write(level Level, tag, format string, v ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	l.out.Printf("["+tag+"] "+format, v...)
}
