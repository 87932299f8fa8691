package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(status schema.VerdictStatus) schema.GateRunRecord {
	baseLine := 84.5
	baseBranch := 79.0
	return schema.GateRunRecord{
		CreatedAt:      time.Now(),
		RepoPath:       "/repos/covgate",
		BaseRef:        "main",
		TargetRef:      "HEAD",
		Classification: string(schema.SourceCodeChange),
		Mode:           string(schema.FullMode),
		Status:         string(status),
		TotalFiles:     5,
		SourceFiles:    3,
		TestFiles:      2,
		HeadLine:       85.2,
		HeadBranch:     79.4,
		BaseLine:       &baseLine,
		BaseBranch:     &baseBranch,
		Reasons:        "",
	}
}

func TestGateStore_NoneBackend(t *testing.T) {
	store, err := NewGateStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	// All operations should be no-ops
	runID, err := store.RecordRun(sampleRecord(schema.PassStatus))
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	records, err := store.ListRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, records)

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Close())
}

func TestGateStore_SQLite(t *testing.T) {
	store, err := NewGateStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() { _ = store.Close() }()

	// Record a run and get back a positive ID
	runID, err := store.RecordRun(sampleRecord(schema.PassStatus))
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	// Round-trip: list the recorded run back
	records, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, runID, rec.RunID)
	assert.Equal(t, "/repos/covgate", rec.RepoPath)
	assert.Equal(t, "main", rec.BaseRef)
	assert.Equal(t, string(schema.SourceCodeChange), rec.Classification)
	assert.Equal(t, string(schema.PassStatus), rec.Status)
	assert.Equal(t, int32(5), rec.TotalFiles)
	assert.InDelta(t, 85.2, rec.HeadLine, 0.001)
	require.NotNil(t, rec.BaseLine)
	assert.InDelta(t, 84.5, *rec.BaseLine, 0.001)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestGateStore_NullableBaseCoverage(t *testing.T) {
	store, err := NewGateStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	record := sampleRecord(schema.PassStatus)
	record.BaseLine = nil
	record.BaseBranch = nil
	record.BaseRef = ""

	_, err = store.RecordRun(record)
	require.NoError(t, err)

	records, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].BaseLine)
	assert.Nil(t, records[0].BaseBranch)
	assert.Empty(t, records[0].BaseRef)
}

func TestGateStore_ListRunsNewestFirst(t *testing.T) {
	store, err := NewGateStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	statuses := []schema.VerdictStatus{schema.PassStatus, schema.WarnStatus, schema.FailStatus}
	for _, status := range statuses {
		_, err := store.RecordRun(sampleRecord(status))
		require.NoError(t, err)
	}

	records, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, string(schema.FailStatus), records[0].Status)
	assert.Equal(t, string(schema.PassStatus), records[2].Status)

	// Limit applies
	records, err = store.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestGateStore_GetStatus(t *testing.T) {
	store, err := NewGateStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store: connected with zero runs
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(0), status.TotalRuns)

	first := sampleRecord(schema.PassStatus)
	first.CreatedAt = time.Now().Add(-time.Hour)
	_, err = store.RecordRun(first)
	require.NoError(t, err)

	second := sampleRecord(schema.WarnStatus)
	_, err = store.RecordRun(second)
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, int64(2), status.TotalRuns)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
}

func TestGateStore_FileBacked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "covgate_history.db")

	store, err := NewGateStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)

	_, err = store.RecordRun(sampleRecord(schema.PassStatus))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopen the same file: data persists
	store, err = NewGateStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	records, err := store.ListRuns(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestGateStore_UnsupportedBackend(t *testing.T) {
	_, err := NewGateStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported history backend")
}
