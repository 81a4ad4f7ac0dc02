package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	file    *os.File
	logger  *slog.Logger
	mu      sync.Mutex
	enabled bool
)

// DefaultPath returns ~/.config/go-abcplay/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-abcplay", "debug.log")
}

// Enable starts debug logging to path. An empty path uses DefaultPath.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}

	file = f
	logger = newLogger(f)
	enabled = true
	logger.Info("=== Debug logging started ===", "category", "debug")
	return nil
}

// EnableWriter logs to w instead of a file. Used by tests.
func EnableWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
	enabled = true
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	logger = nil
	enabled = false
}

// Enabled reports whether Log writes anywhere.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a message with key/value attributes to the debug log
func Log(category, msg string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if !enabled || logger == nil {
		return
	}

	logger.Debug(msg, append([]any{"category", category}, args...)...)
	if file != nil {
		file.Sync() // flush immediately so we see logs even on crash
	}
}

var counters = make(map[string]int)

// LogEvery logs only every n-th call with the same category and message
// (use for high-frequency events). n <= 1 logs every call.
func LogEvery(n int, category, msg string, args ...any) {
	if n <= 1 {
		Log(category, msg, args...)
		return
	}

	mu.Lock()
	key := category + msg
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, msg, append(args, "every", n, "count", count)...)
	}
}
