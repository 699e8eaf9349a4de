package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Color codes for terminal output
const (
	ColorReset  = "\033[0m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
	ColorRed    = "\033[31m"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var severity = map[LogLevel]int{
	LogLevelDebug: 0,
	LogLevelInfo:  1,
	LogLevelWarn:  2,
	LogLevelError: 3,
}

var (
	mu          sync.RWMutex
	globalLevel           = LogLevelInfo
	globalOut   io.Writer = os.Stdout
)

// SetGlobalLevel sets the level picked up by loggers created afterwards.
// Unknown names fall back to info.
func SetGlobalLevel(level string) {
	l := LogLevel(strings.ToLower(strings.TrimSpace(level)))
	if _, ok := severity[l]; !ok {
		l = LogLevelInfo
	}
	mu.Lock()
	globalLevel = l
	mu.Unlock()
}

// SetOutput redirects every logger created afterwards.
func SetOutput(w io.Writer) {
	mu.Lock()
	globalOut = w
	mu.Unlock()
}

type Log struct {
	level     LogLevel
	component string
	out       io.Writer
	err       error
}

func New() *Log {
	mu.RLock()
	defer mu.RUnlock()
	return &Log{
		level: globalLevel,
		out:   globalOut,
	}
}

// Named returns a logger that prefixes messages with component.
func Named(component string) *Log {
	l := New()
	l.component = component
	return l
}

// Named returns a child logger whose component is appended to l's.
func (l *Log) Named(component string) *Log {
	child := *l
	if child.component != "" {
		component = child.component + "/" + component
	}
	child.component = component
	return &child
}

func (l *Log) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Log) SetOutput(w io.Writer) {
	l.out = w
}

func (l *Log) WithError(err error) *Log {
	return &Log{level: l.level, component: l.component, out: l.out, err: err}
}

func (l *Log) enabled(level LogLevel) bool {
	return severity[level] >= severity[l.level]
}

func (l *Log) timestamp() string {
	return time.Now().Format("15:04:05")
}

func (l *Log) write(color, icon, msg string) {
	if l.component != "" {
		msg = "[" + l.component + "] " + msg
	}
	if l.err != nil {
		fmt.Fprintf(l.out, "%s[%s]%s %s %s: %v%s\n", color, l.timestamp(), ColorReset, icon, msg, l.err, ColorReset)
		return
	}
	fmt.Fprintf(l.out, "%s[%s]%s %s %s%s\n", color, l.timestamp(), ColorReset, icon, msg, ColorReset)
}

func (l *Log) Debug(msg string) {
	if !l.enabled(LogLevelDebug) {
		return
	}
	l.write(ColorCyan, "🔍", msg)
}

func (l *Log) Info(msg string) {
	if !l.enabled(LogLevelInfo) {
		return
	}
	l.write(ColorBlue, "ℹ️ ", msg)
}

func (l *Log) Warn(msg string) {
	if !l.enabled(LogLevelWarn) {
		return
	}
	l.write(ColorYellow, "⚠️ ", msg)
}

// Error is never filtered.
func (l *Log) Error(msg string) {
	l.write(ColorRed, "❌", msg)
}
