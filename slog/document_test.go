package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaldes/prunedoc"
	"github.com/mvaldes/prunedoc/memdoc"
	prunedocslog "github.com/mvaldes/prunedoc/slog"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingDocument_DeleteRange(t *testing.T) {
	t.Parallel()

	t.Run("logs range and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := memdoc.New(memdoc.NewPage("alpha"), memdoc.NewPage("beta"))

		doc := prunedocslog.NewLoggingDocument(inner, debugLogger(&buf))
		err := doc.DeleteRange(6, 10)

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "delete range")
		assert.Contains(t, output, "start=6")
		assert.Contains(t, output, "end=10")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := memdoc.New(memdoc.NewPage("alpha"))
		inner.FailDeletes(true)

		doc := prunedocslog.NewLoggingDocument(inner, debugLogger(&buf))
		err := doc.DeleteRange(0, 5)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "delete range")
		assert.Contains(t, buf.String(), "error=")
	})
}

func TestLoggingDocument_Delegates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := memdoc.New(memdoc.NewPage("alpha"), memdoc.NewPage("beta"))
	doc := prunedocslog.NewLoggingDocument(inner, debugLogger(&buf))

	count, err := doc.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	text, err := doc.Text(0, 5)
	require.NoError(t, err)
	assert.Equal(t, "alpha", text)

	// Read-only queries pass through unlogged.
	assert.Empty(t, buf.String())
}

func TestLoggingHost_Open(t *testing.T) {
	t.Parallel()

	t.Run("wraps opened documents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &memdoc.Host{Docs: map[string]*memdoc.Document{
			"report.docx": memdoc.New(memdoc.NewPage("alpha")),
		}}

		host := prunedocslog.NewLoggingHost(inner, debugLogger(&buf))
		doc, err := host.Open(context.Background(), "report.docx")

		require.NoError(t, err)
		assert.IsType(t, &prunedocslog.LoggingDocument{}, doc)
		assert.Contains(t, buf.String(), "open document")
		assert.Contains(t, buf.String(), "path=report.docx")
	})

	t.Run("propagates acquisition failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		host := prunedocslog.NewLoggingHost(&memdoc.Host{}, debugLogger(&buf))

		_, err := host.Open(context.Background(), "missing.docx")

		assert.Equal(t, prunedoc.EUNAVAILABLE, prunedoc.ErrorCode(err))
		assert.Contains(t, buf.String(), "open document")
	})
}
