package audit

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
)

var _ assistant.Recorder = (*Log)(nil)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usage.db")
	l, err := Open(path, "openai/gpt-4o-mini", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLog_RecordAndRecent(t *testing.T) {
	l := openTestLog(t)

	l.Record("contract_analysis", "ok", "", 1200*time.Millisecond, 640, 2048)
	l.Record("memo_generator", "error", "missing_credential", 0, 512, 0)

	entries, err := l.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "memo_generator", entries[0].Function)
	assert.Equal(t, "error", entries[0].Status)
	assert.Equal(t, "missing_credential", entries[0].ErrorKind)
	assert.Zero(t, entries[0].CompletionChars)

	assert.Equal(t, "contract_analysis", entries[1].Function)
	assert.Equal(t, "ok", entries[1].Status)
	assert.Empty(t, entries[1].ErrorKind)
	assert.Equal(t, int64(1200), entries[1].DurationMS)
	assert.Equal(t, 640, entries[1].PromptChars)
	assert.Equal(t, 2048, entries[1].CompletionChars)
	assert.Equal(t, "openai/gpt-4o-mini", entries[1].Model)
	assert.False(t, entries[1].Timestamp.IsZero())
}

func TestLog_RecentLimit(t *testing.T) {
	l := openTestLog(t)

	for i := 0; i < 5; i++ {
		l.Record("case_research", "ok", "", time.Second, 100, 100)
	}

	entries, err := l.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = l.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestLog_Disabled(t *testing.T) {
	l := Disabled()

	l.Record("contract_analysis", "ok", "", time.Second, 10, 10)
	entries, err := l.Recent(10)
	require.NoError(t, err)
	assert.Nil(t, entries)
	assert.NoError(t, l.Close())
}
