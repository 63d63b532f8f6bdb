package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewStructuredLogger(&buf, slog.LevelDebug), &buf
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	return record
}

func TestLogError(t *testing.T) {
	logger, buf := newTestLogger()

	LogError(logger, "load failed", errors.New("disk full"),
		slog.String("table", "people"))

	record := decodeLogLine(t, buf)
	assert.Equal(t, "load failed", record["msg"])
	assert.Equal(t, "disk full", record["error"])
	assert.Equal(t, "people", record["table"])
	assert.Equal(t, "ERROR", record["level"])
}

func TestLogErrorNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "message", errors.New("oops"))
	})
}

func TestLogOperation(t *testing.T) {
	logger, buf := newTestLogger()

	LogOperation(logger, "transfer_complete",
		slog.Int("rows", 42),
		slog.Duration("duration", 5*time.Millisecond))

	record := decodeLogLine(t, buf)
	assert.Equal(t, "transfer_complete", record["msg"])
	assert.Equal(t, 42.0, record["rows"])
	assert.Contains(t, record, "duration")
}

func TestLogOperationSkipsZeroDuration(t *testing.T) {
	logger, buf := newTestLogger()

	LogOperation(logger, "transfer_complete",
		slog.Duration("duration", 0))

	record := decodeLogLine(t, buf)
	assert.NotContains(t, record, "duration")
}

func TestLogHTTPRequest(t *testing.T) {
	logger, buf := newTestLogger()

	LogHTTPRequest(logger, "POST", "/api/transfer", 200, 12.5)

	record := decodeLogLine(t, buf)
	assert.Equal(t, "http_request", record["msg"])
	assert.Equal(t, "POST", record["method"])
	assert.Equal(t, "/api/transfer", record["path"])
	assert.Equal(t, 200.0, record["status"])
	assert.Equal(t, 12.5, record["duration_ms"])
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger, _ := newTestLogger()

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

type failingCloser struct{}

func (failingCloser) Close() error { return errors.New("close failed") }

func TestSafeCloseWithLogging(t *testing.T) {
	logger, buf := newTestLogger()

	SafeCloseWithLogging(failingCloser{}, logger, "destination_db")

	record := decodeLogLine(t, buf)
	assert.Equal(t, "failed to close resource", record["msg"])
	assert.Equal(t, "close failed", record["error"])
	assert.Equal(t, "destination_db", record["operation"])
}

func TestSafeCloseWithLoggingNilCloser(t *testing.T) {
	logger, buf := newTestLogger()

	SafeCloseWithLogging(nil, logger, "noop")

	assert.Empty(t, buf.Bytes())
}
