// Package log writes leveled, prefixed messages to stderr. stdout belongs
// to the JSON-RPC stream, so nothing here ever writes there.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// String returns the name of the level as printed in log lines.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel reads a level name as given on the command line or in the
// server configuration. "warning" is accepted as an alias for warn.
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
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel           = LevelInfo
)

const prefix = "[LESS]"

// SetOutput sets the output destination (primarily for testing)
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// GetLevel returns the current minimum log level
func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return minLevel
}

// Debug logs a message useful only when tracing the server.
func Debug(format string, args ...any) {
	log(LevelDebug, format, args...)
}

// Info logs a routine operational event.
func Info(format string, args ...any) {
	log(LevelInfo, format, args...)
}

// Warn logs a problem the server recovered from.
func Warn(format string, args ...any) {
	log(LevelWarn, format, args...)
}

// Error logs a failure that affects what the client sees.
func Error(format string, args ...any) {
	log(LevelError, format, args...)
}

func log(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel || output == nil {
		return
	}
	fmt.Fprintf(output, prefix+" "+format+"\n", args...)
}
