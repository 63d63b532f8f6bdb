package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// MemoryHandler is a slog.Handler that collects formatted records in
// memory so they can be flushed to a log file at shutdown.
type MemoryHandler struct {
	inner slog.Handler
	mu    sync.Mutex
	buf   *lockedBuffer
}

type lockedBuffer struct {
	mu    sync.Mutex
	lines []byte
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, p...)
	return len(p), nil
}

func (b *lockedBuffer) snapshot() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.lines))
	copy(out, b.lines)
	return out
}

func (b *lockedBuffer) reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}

// NewMemoryHandler creates a MemoryHandler that records everything at or
// above the given level as JSON lines.
func NewMemoryHandler(level slog.Level) *MemoryHandler {
	buf := &lockedBuffer{}
	return &MemoryHandler{
		inner: slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level}),
		buf:   buf,
	}
}

func (h *MemoryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *MemoryHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inner.Handle(ctx, record)
}

func (h *MemoryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MemoryHandler{inner: h.inner.WithAttrs(attrs), buf: h.buf}
}

func (h *MemoryHandler) WithGroup(name string) slog.Handler {
	return &MemoryHandler{inner: h.inner.WithGroup(name), buf: h.buf}
}

// Logs returns everything collected so far.
func (h *MemoryHandler) Logs() []byte {
	return h.buf.snapshot()
}

// Clear discards everything collected so far.
func (h *MemoryHandler) Clear() {
	h.buf.reset()
}

// SaveToFile appends the collected records to the given log file,
// creating parent directories as needed, and clears the buffer.
func (h *MemoryHandler) SaveToFile(path string) error {
	logs := h.buf.snapshot()
	if len(logs) == 0 {
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening log file: %w", err)
	}
	defer f.Close() // nolint:errcheck

	if _, err := f.Write(logs); err != nil {
		return fmt.Errorf("error writing log file: %w", err)
	}

	h.buf.reset()
	return nil
}

// teeHandler fans records out to two handlers.
type teeHandler struct {
	a, b slog.Handler
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.a.Enabled(ctx, level) || t.b.Enabled(ctx, level)
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	errA := t.a.Handle(ctx, record.Clone())
	errB := t.b.Handle(ctx, record)
	if errA != nil {
		return errA
	}
	return errB
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return teeHandler{a: t.a.WithAttrs(attrs), b: t.b.WithAttrs(attrs)}
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return teeHandler{a: t.a.WithGroup(name), b: t.b.WithGroup(name)}
}

// NewCollectingLogger builds a logger that writes JSON records to w and
// also collects them in the returned MemoryHandler.
func NewCollectingLogger(w io.Writer, level slog.Level) (*slog.Logger, *MemoryHandler) {
	memory := NewMemoryHandler(level)
	console := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(teeHandler{a: console, b: memory}), memory
}
