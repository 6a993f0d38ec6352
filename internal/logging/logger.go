package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

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
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

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
	}
	return LevelInfo, fmt.Errorf("invalid log level %q (use debug, info, warn or error)", s)
}

type HandlerFunc func(level Level, msg string, attrs map[string]interface{})

type Logger struct {
	handler HandlerFunc
	min     Level
	attrs   map[string]interface{}
}

func New(min Level, handler HandlerFunc) *Logger {
	return &Logger{
		handler: handler,
		min:     min,
		attrs:   make(map[string]interface{}),
	}
}

// NewDevelopment writes "RFC3339 [LEVEL] msg | k=v" lines to w. Attribute
// keys are sorted so lines are stable.
func NewDevelopment(w io.Writer, min Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	var mu sync.Mutex
	return New(min, func(level Level, msg string, attrs map[string]interface{}) {
		line := fmt.Sprintf("%s [%s] %s%s\n", time.Now().Format(time.RFC3339), level, msg, formatAttrs(attrs))
		mu.Lock()
		defer mu.Unlock()
		_, _ = io.WriteString(w, line)
	})
}

func Nop() *Logger {
	return New(LevelError+1, nil)
}

func formatAttrs(attrs map[string]interface{}) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, attrs[k])
	}
	return " | " + strings.Join(parts, " ")
}

func (l *Logger) enabled(level Level) bool {
	return l.handler != nil && level >= l.min
}

// log treats args as slog-style key/value pairs. A non-string key is
// stringified and a trailing value without a key lands under "!BADKEY".
func (l *Logger) log(level Level, msg string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	if len(args) == 0 {
		l.handler(level, msg, l.attrs)
		return
	}
	attrs := make(map[string]interface{}, len(l.attrs)+len(args)/2)
	for k, v := range l.attrs {
		attrs[k] = v
	}
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			attrs["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		attrs[key] = args[i+1]
	}
	l.handler(level, msg, attrs)
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if !l.enabled(level) {
		return
	}
	l.handler(level, fmt.Sprintf(format, args...), l.attrs)
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

func (l *Logger) With(attrs map[string]interface{}) *Logger {
	combined := make(map[string]interface{}, len(l.attrs)+len(attrs))
	for k, v := range l.attrs {
		combined[k] = v
	}
	for k, v := range attrs {
		combined[k] = v
	}
	return &Logger{
		handler: l.handler,
		min:     l.min,
		attrs:   combined,
	}
}
