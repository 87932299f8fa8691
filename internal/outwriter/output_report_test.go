package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteReportTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	rep := &schema.CoverageReport{Metrics: map[schema.MetricAxis]float64{
		schema.LineAxis:   85.2,
		schema.BranchAxis: 79.4,
	}}

	err := writeReportTable(&buf, rep, "cov.json", fmtFloat)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Coverage report: cov.json")
	assert.Contains(t, out, "85.2")
	assert.Contains(t, out, "79.4")
}

func TestWriteReportTableMissingAxis(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(1)
	rep := &schema.CoverageReport{Metrics: map[schema.MetricAxis]float64{
		schema.LineAxis: 85.2,
	}}

	err := writeReportTable(&buf, rep, "cov.json", fmtFloat)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "missing")
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	fmtFloat, _ := createFormatters(1)
	rep := &schema.CoverageReport{Metrics: map[schema.MetricAxis]float64{
		schema.LineAxis:   85.25,
		schema.BranchAxis: 79.4,
	}}

	require.NoError(t, writeReportCSV(w, rep, fmtFloat))
	w.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"line", "85.2"}, records[1])
	assert.Equal(t, []string{"branch", "79.4"}, records[2])
}
