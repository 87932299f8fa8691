package core

import (
	"testing"

	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(line, branch float64) *schema.CoverageReport {
	return &schema.CoverageReport{Metrics: map[schema.MetricAxis]float64{
		schema.LineAxis:   line,
		schema.BranchAxis: branch,
	}}
}

func TestCompareCoverageWithBase(t *testing.T) {
	deltas, err := CompareCoverage(report(82.3, 76.0), report(82.4, 76.1))
	require.NoError(t, err)
	require.Len(t, deltas, 2)

	assert.Equal(t, schema.LineAxis, deltas[0].Axis)
	assert.InDelta(t, -0.1, deltas[0].Diff, 1e-9)
	assert.True(t, deltas[0].ComparisonAvailable)

	assert.Equal(t, schema.BranchAxis, deltas[1].Axis)
	assert.InDelta(t, -0.1, deltas[1].Diff, 1e-9)
	assert.True(t, deltas[1].ComparisonAvailable)
}

func TestCompareCoverageWithoutBase(t *testing.T) {
	deltas, err := CompareCoverage(report(85, 80), nil)
	require.NoError(t, err)
	require.Len(t, deltas, 2)

	for _, d := range deltas {
		assert.False(t, d.ComparisonAvailable)
		assert.Zero(t, d.Diff)
	}
	assert.Equal(t, 85.0, deltas[0].Head)
	assert.Equal(t, 80.0, deltas[1].Head)
	assert.False(t, ComparisonAvailable(deltas))
}

func TestCompareCoverageMalformedHead(t *testing.T) {
	head := &schema.CoverageReport{Metrics: map[schema.MetricAxis]float64{
		schema.LineAxis: 90,
	}}

	_, err := CompareCoverage(head, nil)
	require.Error(t, err)

	// Malformed reports surface as a named error, never as 0% coverage.
	var malformed *MalformedReportError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, schema.BranchAxis, malformed.Axis)
}

func TestCompareCoverageBaseMissingAxis(t *testing.T) {
	base := &schema.CoverageReport{Metrics: map[schema.MetricAxis]float64{
		schema.LineAxis: 85,
	}}

	deltas, err := CompareCoverage(report(80, 75), base)
	require.NoError(t, err)
	require.Len(t, deltas, 2)

	assert.True(t, deltas[0].ComparisonAvailable)
	assert.InDelta(t, -5.0, deltas[0].Diff, 1e-9)

	// The base never tracked branches, so that axis has no comparison.
	assert.False(t, deltas[1].ComparisonAvailable)
	assert.True(t, ComparisonAvailable(deltas))
}
