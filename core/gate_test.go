package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockGitClient returns canned values so the pipeline can run without a
// real git executable.
type mockGitClient struct {
	changed     []string
	parentCount int
}

var _ contract.GitClient = &mockGitClient{} // Compile-time check

func (m *mockGitClient) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}

func (m *mockGitClient) GetChangedFilesBetweenRefs(_ context.Context, _, _, _ string) ([]string, error) {
	return m.changed, nil
}

func (m *mockGitClient) GetParentCount(_ context.Context, _, _ string) (int, error) {
	return m.parentCount, nil
}

func (m *mockGitClient) GetRepoRoot(_ context.Context, path string) (string, error) {
	return path, nil
}

func (m *mockGitClient) GetRepoHash(_ context.Context, _, _ string) (string, error) {
	return "deadbeef", nil
}

// mockHistoryManager captures recorded runs.
type mockHistoryManager struct {
	records []schema.GateRunRecord
}

func (m *mockHistoryManager) GetGateStore() contract.GateStore { return m }

func (m *mockHistoryManager) RecordRun(record schema.GateRunRecord) (int64, error) {
	m.records = append(m.records, record)
	return int64(len(m.records)), nil
}

func (m *mockHistoryManager) ListRuns(_ int) ([]schema.GateRunRecord, error) {
	return m.records, nil
}

func (m *mockHistoryManager) GetStatus() (schema.HistoryStatus, error) {
	return schema.HistoryStatus{}, nil
}

func (m *mockHistoryManager) Close() error { return nil }

func writeTempReport(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newGateConfig() *contract.Config {
	return &contract.Config{
		RepoPath:   ".",
		BaseRef:    "main",
		TargetRef:  "HEAD",
		Thresholds: schema.DefaultThresholds(),
	}
}

func TestExecuteGateCheckSourceCode(t *testing.T) {
	cfg := newGateConfig()
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 85, "branch": 80}`)

	git := &mockGitClient{changed: []string{"core/policy.go", "core/policy_test.go"}, parentCount: 1}
	mgr := &mockHistoryManager{}

	result, err := ExecuteGateCheck(context.Background(), cfg, git, mgr)
	require.NoError(t, err)

	assert.Equal(t, schema.SourceCodeChange, result.Verdict.Classification)
	assert.Equal(t, schema.FullMode, result.Verdict.Mode)
	assert.Equal(t, schema.PassStatus, result.Verdict.Status)
	assert.Equal(t, 2, result.TotalFiles)
	assert.True(t, result.Passed())

	// The degraded comparison is always called out without a base report.
	assert.Contains(t, result.Verdict.Reasons[len(result.Verdict.Reasons)-1], "base comparison unavailable")

	// The run was recorded to history.
	require.Len(t, mgr.records, 1)
	assert.Equal(t, string(schema.PassStatus), mgr.records[0].Status)
	assert.Equal(t, 85.0, mgr.records[0].HeadLine)
	assert.Nil(t, mgr.records[0].BaseLine)
}

func TestExecuteGateCheckConfigOnlySkipsReports(t *testing.T) {
	cfg := newGateConfig()
	// No head report configured at all: config-only must not need one.
	git := &mockGitClient{changed: []string{"config/settings.yaml", "docs/guide.md"}, parentCount: 1}

	result, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)

	assert.Equal(t, schema.ConfigOnlyChange, result.Verdict.Classification)
	assert.Equal(t, schema.SkipMode, result.Verdict.Mode)
	assert.Equal(t, schema.PassStatus, result.Verdict.Status)
	assert.Empty(t, result.Verdict.Deltas)
}

func TestExecuteGateCheckMergeCommit(t *testing.T) {
	cfg := newGateConfig()
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 84, "branch": 79}`)
	cfg.BaseReportPath = writeTempReport(t, "base.json", `{"line": 85, "branch": 80}`)

	git := &mockGitClient{
		changed:     []string{"core/a.go", "core/b.go", "core/a_test.go"},
		parentCount: 2,
	}

	result, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)

	assert.Equal(t, schema.MergeCommitChange, result.Verdict.Classification)
	assert.Equal(t, schema.InformationalMode, result.Verdict.Mode)
	assert.Equal(t, schema.PassStatus, result.Verdict.Status)
}

func TestExecuteGateCheckMergeThresholdMet(t *testing.T) {
	cfg := newGateConfig()
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 90, "branch": 85}`)

	// Five source files: merge status no longer overrides enforcement.
	git := &mockGitClient{
		changed:     []string{"a.go", "b.go", "c.go", "d.go", "e.go"},
		parentCount: 2,
	}

	result, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)

	assert.Equal(t, schema.SourceCodeChange, result.Verdict.Classification)
	assert.Equal(t, schema.FullMode, result.Verdict.Mode)
}

func TestExecuteGateCheckFailsAbsoluteThreshold(t *testing.T) {
	cfg := newGateConfig()
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 70, "branch": 80}`)

	git := &mockGitClient{changed: []string{"core/policy.go"}, parentCount: 1}

	result, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)

	assert.Equal(t, schema.FailStatus, result.Verdict.Status)
	assert.False(t, result.Passed())
}

func TestExecuteGateCheckMalformedHeadReport(t *testing.T) {
	cfg := newGateConfig()
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 90}`)

	git := &mockGitClient{changed: []string{"core/policy.go"}, parentCount: 1}

	_, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.Error(t, err)

	var malformed *MalformedReportError
	assert.ErrorAs(t, err, &malformed)
}

func TestExecuteGateCheckChangedFileInput(t *testing.T) {
	cfg := newGateConfig()
	cfg.BaseRef = ""
	cfg.ChangedFile = writeTempReport(t, "changed.txt", "core/policy.go\n\ncore/policy_test.go\n")
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 85, "branch": 80}`)

	// Git must not be consulted in changed-file mode.
	result, err := ExecuteGateCheck(context.Background(), cfg, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalFiles)
	assert.Equal(t, schema.SourceCodeChange, result.Verdict.Classification)
	assert.False(t, result.Commit.IsMerge)
}

func TestExecuteGateCheckExcludes(t *testing.T) {
	cfg := newGateConfig()
	cfg.Excludes = []string{"docs/"}

	git := &mockGitClient{changed: []string{"docs/guide.md"}, parentCount: 1}

	result, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.TotalFiles)
	assert.Equal(t, schema.ConfigOnlyChange, result.Verdict.Classification)
}

func TestExecuteGateCheckRequiresBaseRef(t *testing.T) {
	cfg := newGateConfig()
	cfg.BaseRef = ""

	git := &mockGitClient{changed: []string{"core/policy.go"}, parentCount: 1}

	_, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base-ref")
}

// TestExecuteGateCheckIdempotent verifies that running the pipeline twice
// on identical inputs produces identical verdicts.
func TestExecuteGateCheckIdempotent(t *testing.T) {
	cfg := newGateConfig()
	cfg.HeadReportPath = writeTempReport(t, "head.json", `{"line": 82.3, "branch": 76.0}`)
	cfg.BaseReportPath = writeTempReport(t, "base.json", `{"line": 82.4, "branch": 76.1}`)

	git := &mockGitClient{changed: []string{"core/policy.go"}, parentCount: 1}

	first, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)
	second, err := ExecuteGateCheck(context.Background(), cfg, git, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, schema.WarnStatus, first.Verdict.Status)
}
