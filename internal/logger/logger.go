// Package logger writes debug output for --verbose runs. Nothing is written
// unless SetVerbose(true) was called, so call sites never need to check.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()
}

func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects log lines, os.Stderr by default. The TUI points it at
// a file while it owns the terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	output = w
	mu.Unlock()
}

// printf writes one line under the read lock so concurrent loggers do not
// interleave with SetOutput.
func printf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, format, args...)
	}
}

// Logger tags lines with a component name such as "github" or "mcp".
type Logger struct {
	name string
}

func Named(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) Debug(format string, args ...any) { l.log("DEBUG", format, args) }
func (l *Logger) Info(format string, args ...any)  { l.log("INFO", format, args) }
func (l *Logger) Warn(format string, args ...any)  { l.log("WARN", format, args) }

func (l *Logger) log(level, format string, args []any) {
	prefix := "[" + level + "] "
	if l.name != "" {
		prefix += l.name + ": "
	}
	printf(prefix+format+"\n", args...)
}

var root Logger

func Debug(format string, args ...any) { root.Debug(format, args...) }
func Info(format string, args ...any)  { root.Info(format, args...) }
func Warn(format string, args ...any)  { root.Warn(format, args...) }

// Section prints a banner separating phases of a command.
func Section(name string) {
	printf("\n=== %s ===\n", name)
}
