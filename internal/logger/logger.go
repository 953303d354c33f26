package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// historySize is the number of WARN/ERROR entries kept for :messages.
const historySize = 100

// Entry is a captured warning or error.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// ringBuffer is a fixed-size circular buffer for log entries.
type ringBuffer struct {
	mu      sync.RWMutex
	entries []Entry
	size    int
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		entries: make([]Entry, size),
		size:    size,
	}
}

func (rb *ringBuffer) add(entry Entry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.head] = entry
	rb.head = (rb.head + 1) % rb.size
	if rb.count < rb.size {
		rb.count++
	}

	if entry.Level >= slog.LevelError {
		rb.errorCount++
	} else {
		rb.warnCount++
	}
}

func (rb *ringBuffer) latest() (Entry, bool) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.count == 0 {
		return Entry{}, false
	}
	return rb.entries[(rb.head-1+rb.size)%rb.size], true
}

func (rb *ringBuffer) counts() (warn, err int) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.warnCount, rb.errorCount
}

// historyHandler wraps another handler and captures WARN and ERROR records.
type historyHandler struct {
	inner  slog.Handler
	buffer *ringBuffer
}

func (h *historyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *historyHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.buffer.add(Entry{
			Time:    r.Time,
			Level:   r.Level,
			Message: r.Message,
		})
	}
	return h.inner.Handle(ctx, r)
}

func (h *historyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &historyHandler{
		inner:  h.inner.WithAttrs(attrs),
		buffer: h.buffer,
	}
}

func (h *historyHandler) WithGroup(name string) slog.Handler {
	return &historyHandler{
		inner:  h.inner.WithGroup(name),
		buffer: h.buffer,
	}
}

var (
	// Log is the global structured logger
	Log *slog.Logger
	// LogPath is the path to the current log file
	LogPath string

	logWriter *lumberjack.Logger
	history   *ringBuffer
)

// DefaultPath returns ~/.config/vex/vex.log, falling back to the temp
// directory when the home directory is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	return filepath.Join(homeDir, ".config", "vex", "vex.log")
}

// Init sets up the global logger writing JSON to a rotating file at
// logPath. An empty logPath selects DefaultPath. debug lowers the level
// from Info to Debug.
func Init(debug bool, logPath string) error {
	if logPath == "" {
		logPath = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	LogPath = logPath

	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	InitWriter(logWriter, level)
	return nil
}

// InitWriter sets up the global logger writing JSON to w.
func InitWriter(w io.Writer, level slog.Level) {
	history = newRingBuffer(historySize)

	// historyHandler -> JSONHandler -> w
	handler := &historyHandler{
		inner:  slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}),
		buffer: history,
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Close closes the log file
func Close() {
	if logWriter != nil {
		_ = logWriter.Close()
		logWriter = nil
	}
}

func getLogger() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return getLogger().With(args...)
}

// Counts returns the number of warnings and errors logged since Init.
func Counts() (warn, err int) {
	if history == nil {
		return 0, 0
	}
	return history.counts()
}

// Latest returns the most recently captured entry.
func Latest() (Entry, bool) {
	if history == nil {
		return Entry{}, false
	}
	return history.latest()
}

// Summary is the one-line report shown by :messages.
func Summary() string {
	warn, errs := Counts()
	e, ok := Latest()
	if !ok {
		return "No messages"
	}
	return fmt.Sprintf("%s (%d warnings, %d errors)", e.Format(), warn, errs)
}

// Format renders the entry as "15:04:05 LEVEL message".
func (e Entry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
}
