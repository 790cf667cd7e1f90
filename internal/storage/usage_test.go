package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now time.Time) *UsageStore {
	t.Helper()
	store := NewUsageStore(filepath.Join(t.TempDir(), "usage"))
	store.now = func() time.Time { return now }
	return store
}

func TestRecordUsage_Accumulates(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, now)

	require.NoError(t, store.RecordUsage("completions", 5, 7))
	require.NoError(t, store.RecordUsage("completions", 1, 2))
	require.NoError(t, store.RecordUsage("search", 0, 0))

	records, err := store.GetUsageHistory(1)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, UsageRecord{
		Date:             "2024-03-10",
		Endpoint:         "completions",
		PromptTokens:     6,
		CompletionTokens: 9,
		TotalTokens:      15,
		RequestCount:     2,
	}, records[0])
	assert.Equal(t, "search", records[1].Endpoint)
	assert.Equal(t, int64(1), records[1].RequestCount)
}

func TestGetUsageHistory_Cutoff(t *testing.T) {
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	store := newTestStore(t, day)
	require.NoError(t, store.RecordUsage("answers", 1, 1))

	store.now = func() time.Time { return day.AddDate(0, 0, 10) }
	require.NoError(t, store.RecordUsage("answers", 1, 1))

	records, err := store.GetUsageHistory(7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-03-11", records[0].Date)

	records, err = store.GetUsageHistory(30)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGetUsageHistory_MissingDir(t *testing.T) {
	store := NewUsageStore(filepath.Join(t.TempDir(), "absent"))

	records, err := store.GetUsageHistory(7)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetUsageHistory_SkipsForeignFiles(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, now)
	require.NoError(t, store.RecordUsage("edits", 2, 3))

	require.NoError(t, os.WriteFile(filepath.Join(store.usageDir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(store.usageDir, "garbage.json"), []byte("{"), 0644))

	records, err := store.GetUsageHistory(1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "edits", records[0].Endpoint)
}

func TestRecordUsage_RejectsPathLikeNames(t *testing.T) {
	store := newTestStore(t, time.Now())

	assert.Error(t, store.RecordUsage("../etc", 0, 0))
	assert.Error(t, store.RecordUsage("a_b", 0, 0))
	assert.Error(t, store.RecordUsage("", 0, 0))
}
