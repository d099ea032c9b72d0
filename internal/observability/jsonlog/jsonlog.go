package jsonlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var ErrUnknownLevel = errors.New("unknown log level")

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
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

type Logger struct {
	base *log.Logger
	min  Level
}

func New(w io.Writer, min Level) *Logger {
	return &Logger{base: log.New(w, "", 0), min: min} // no prefix; we emit JSON ourselves
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

func (l *Logger) Enabled(level Level) bool {
	return level >= l.min
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.emit(LevelDebug, msg, fields)
}

func (l *Logger) Info(msg string, fields map[string]any) {
	l.emit(LevelInfo, msg, fields)
}

func (l *Logger) Warn(msg string, fields map[string]any) {
	l.emit(LevelWarn, msg, fields)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.emit(LevelError, msg, fields)
}

func (l *Logger) emit(level Level, msg string, fields map[string]any) {
	if !l.Enabled(level) {
		return
	}
	m := make(map[string]any, 3+len(fields))
	for k, v := range fields {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		m[k] = v
	}
	m["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	m["level"] = level.String()
	m["msg"] = msg
	b, err := json.Marshal(m)
	if err != nil {
		b, _ = json.Marshal(map[string]any{
			"ts":    m["ts"],
			"level": "ERROR",
			"msg":   "jsonlog: marshal failed",
			"error": err.Error(),
			"orig":  msg,
		})
	}
	l.base.Print(string(b))
}
