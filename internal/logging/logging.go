// Package logging filters the standard logger by the bracketed level prefix
// every log line in this module carries ([DEBUG], [INFO], [WARN], [ERROR]).
package logging

import (
	"bytes"
	"io"
	"log"
	"strings"
	"sync"
)

// Level is a minimum severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var prefixes = []struct {
	tag   []byte
	level Level
}{
	{[]byte("[DEBUG]"), LevelDebug},
	{[]byte("[INFO]"), LevelInfo},
	{[]byte("[WARN]"), LevelWarn},
	{[]byte("[ERROR]"), LevelError},
}

// ParseLevel maps a level name to a Level, defaulting to info
func ParseLevel(name string) Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Writer drops log lines tagged below its minimum level. Untagged lines pass.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
	min Level
}

// NewWriter creates a filtering writer
func NewWriter(out io.Writer, min Level) *Writer {
	return &Writer{out: out, min: min}
}

// Write implements io.Writer. The standard logger calls Write once per line.
func (w *Writer) Write(p []byte) (int, error) {
	for _, pfx := range prefixes {
		if bytes.Contains(p, pfx.tag) {
			if pfx.level < w.min {
				return len(p), nil
			}
			break
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Write(p)
}

// Setup installs a filtering writer on the standard logger
func Setup(out io.Writer, level string) {
	log.SetOutput(NewWriter(out, ParseLevel(level)))
}
