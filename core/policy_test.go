package core

import (
	"strings"
	"testing"

	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCompare(t *testing.T, head, base *schema.CoverageReport) []schema.CoverageDelta {
	t.Helper()
	deltas, err := CompareCoverage(head, base)
	require.NoError(t, err)
	return deltas
}

func reasonsContain(reasons []string, substr string) bool {
	for _, r := range reasons {
		if strings.Contains(r, substr) {
			return true
		}
	}
	return false
}

func TestEvaluatePolicyConfigOnly(t *testing.T) {
	mode, status, reasons := EvaluatePolicy(schema.ConfigOnlyChange, nil, schema.DefaultThresholds())

	assert.Equal(t, schema.SkipMode, mode)
	assert.Equal(t, schema.PassStatus, status)
	assert.NotEmpty(t, reasons)
}

func TestEvaluatePolicyTestOnlyIgnoresThresholds(t *testing.T) {
	// Head coverage is below both absolute thresholds, yet test-only
	// changes always pass in informational mode.
	deltas := mustCompare(t, report(40, 30), nil)
	mode, status, _ := EvaluatePolicy(schema.TestOnlyChange, deltas, schema.DefaultThresholds())

	assert.Equal(t, schema.InformationalMode, mode)
	assert.Equal(t, schema.PassStatus, status)
}

func TestEvaluatePolicyMergeCommit(t *testing.T) {
	th := schema.DefaultThresholds()

	tests := []struct {
		name   string
		head   *schema.CoverageReport
		base   *schema.CoverageReport
		status schema.VerdictStatus
	}{
		{"no decrease", report(85, 80), report(84, 79), schema.PassStatus},
		{"small decrease passes", report(84, 79), report(85, 80), schema.PassStatus},
		{"significant decrease warns", report(78, 80), report(85, 80), schema.WarnStatus},
		// Merge commits never fail, even below absolute thresholds.
		{"below absolute thresholds", report(60, 50), report(70, 60), schema.WarnStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := mustCompare(t, tt.head, tt.base)
			mode, status, _ := EvaluatePolicy(schema.MergeCommitChange, deltas, th)
			assert.Equal(t, schema.InformationalMode, mode)
			assert.Equal(t, tt.status, status)
			assert.NotEqual(t, schema.FailStatus, status)
		})
	}
}

func TestEvaluatePolicySourceCodeFull(t *testing.T) {
	th := schema.DefaultThresholds()

	tests := []struct {
		name   string
		head   *schema.CoverageReport
		base   *schema.CoverageReport
		status schema.VerdictStatus
	}{
		{"healthy", report(90, 85), report(89, 84), schema.PassStatus},
		{"small decrease warns", report(82.3, 76.0), report(82.4, 76.1), schema.WarnStatus},
		{"below line minimum fails", report(70, 80), report(70, 80), schema.FailStatus},
		{"below branch minimum fails", report(85, 60), report(85, 60), schema.FailStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltas := mustCompare(t, tt.head, tt.base)
			mode, status, _ := EvaluatePolicy(schema.SourceCodeChange, deltas, th)
			assert.Equal(t, schema.FullMode, mode)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestEvaluatePolicySignificantDropFailsDespiteAbsolutePass(t *testing.T) {
	// Absolute thresholds are met, but a 7-point drop on the line axis is
	// at or above the 5-point significance threshold.
	th := schema.Thresholds{MinLine: 70, MinBranch: 70, MergeCommitThreshold: 3, SignificantDecrease: 5}
	deltas := mustCompare(t, report(78, 80), report(85, 80))

	mode, status, reasons := EvaluatePolicy(schema.SourceCodeChange, deltas, th)
	assert.Equal(t, schema.FullMode, mode)
	assert.Equal(t, schema.FailStatus, status)
	assert.True(t, reasonsContain(reasons, "dropped"))
}

func TestEvaluatePolicyDegradedComparison(t *testing.T) {
	th := schema.DefaultThresholds()

	// Healthy head without a base: pass, with the degraded state called out.
	deltas := mustCompare(t, report(85, 80), nil)
	mode, status, reasons := EvaluatePolicy(schema.SourceCodeChange, deltas, th)
	assert.Equal(t, schema.FullMode, mode)
	assert.Equal(t, schema.PassStatus, status)
	assert.True(t, reasonsContain(reasons, "base comparison unavailable"))

	// Absolute line threshold violated: fail, same degraded note.
	deltas = mustCompare(t, report(70, 80), nil)
	_, status, reasons = EvaluatePolicy(schema.SourceCodeChange, deltas, th)
	assert.Equal(t, schema.FailStatus, status)
	assert.True(t, reasonsContain(reasons, "base comparison unavailable"))
}

func TestEvaluatePolicyFailDominatesWarn(t *testing.T) {
	// Line axis fails the absolute minimum while branch only dips: the
	// verdict is Fail and both reasons are kept.
	th := schema.DefaultThresholds()
	deltas := mustCompare(t, report(70, 76), report(71, 77))

	_, status, reasons := EvaluatePolicy(schema.SourceCodeChange, deltas, th)
	assert.Equal(t, schema.FailStatus, status)
	assert.GreaterOrEqual(t, len(reasons), 2)
}

func TestComposeVerdictCopiesInputs(t *testing.T) {
	deltas := mustCompare(t, report(85, 80), report(84, 79))
	reasons := []string{"a", "b"}

	v := ComposeVerdict(schema.SourceCodeChange, schema.FullMode, schema.PassStatus, deltas, reasons)
	reasons[0] = "mutated"
	deltas[0].Head = 0

	assert.Equal(t, "a", v.Reasons[0])
	assert.Equal(t, 85.0, v.Deltas[0].Head)
	assert.Equal(t, schema.SourceCodeChange, v.Classification)
}
