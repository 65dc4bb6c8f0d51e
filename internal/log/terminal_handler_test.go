package log

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2024, 6, 1, 14, 3, 7, 123_000_000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "server listening", 0)
	r.AddAttrs(slog.Int("port", 8080))
	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "14:03:07.123 INF server listening port=8080\n", stripANSI(buf.String()))
}

func TestTerminalHandler_LevelTags(t *testing.T) {
	tests := []struct {
		level slog.Level
		tag   string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.tag, stripANSI(levelTag(tt.level)))
		})
	}
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestTerminalHandler_NilOptionsDefaultToInfo(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
}

func TestTerminalHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil)).
		With(slog.String("job", "index")).
		WithGroup("gcs")

	logger.Info("uploaded", slog.String("object", "campgrounds.index"))

	out := stripANSI(buf.String())
	assert.Contains(t, out, "job=index")
	assert.Contains(t, out, "gcs.object=campgrounds.index")
}

func TestTerminalHandler_QuotesStringsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, nil))

	logger.Info("query", slog.String("text", "campgrounds in Oregon"))

	assert.True(t, strings.Contains(stripANSI(buf.String()), `text="campgrounds in Oregon"`))
}
