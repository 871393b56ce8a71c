// Package logger prints leveled, colored messages to stderr.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu     sync.Mutex
	level            = LevelWarn
	output io.Writer = os.Stderr

	debugColor = color.New(color.FgCyan)
	infoColor  = color.New(color.FgYellow)
	warnColor  = color.New(color.FgMagenta)
	errorColor = color.New(color.FgRed)
)

// ParseLevel maps a level name to a Level
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning", "":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
}

// SetLevel sets the minimum level that gets printed
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetOutput redirects log output. A nil writer restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

func logf(l Level, c *color.Color, prefix, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	message := fmt.Sprintf(format, v...)
	c.Fprintf(output, "%s %s\n", prefix, message)
}

// Debug prints in cyan
func Debug(format string, v ...interface{}) {
	logf(LevelDebug, debugColor, "[DEBUG]", format, v...)
}

// Info prints in yellow
func Info(format string, v ...interface{}) {
	logf(LevelInfo, infoColor, "[INFO]", format, v...)
}

// Warn prints in magenta
func Warn(format string, v ...interface{}) {
	logf(LevelWarn, warnColor, "[WARN]", format, v...)
}

// Error prints in red
func Error(format string, v ...interface{}) {
	logf(LevelError, errorColor, "[ERROR]", format, v...)
}
