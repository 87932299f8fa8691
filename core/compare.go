package core

import (
	"fmt"

	"github.com/huangsam/covgate/schema"
)

// MalformedReportError indicates that a head report is missing a required
// metric axis. This is fatal to the run and must never be coerced to 0%,
// since treating a malformed report as zero coverage would falsely fail
// healthy pull requests.
type MalformedReportError struct {
	Axis schema.MetricAxis
}

func (e *MalformedReportError) Error() string {
	return fmt.Sprintf("malformed head report: missing required %q coverage axis", e.Axis)
}

// CompareCoverage computes per-axis coverage deltas between a required head
// report and an optional base report. Deltas are returned in canonical axis
// order. A nil base is the valid MissingBaseReport state: deltas carry the
// head values with ComparisonAvailable=false. A base that is present but
// missing an axis disables comparison for that axis only.
func CompareCoverage(head *schema.CoverageReport, base *schema.CoverageReport) ([]schema.CoverageDelta, error) {
	deltas := make([]schema.CoverageDelta, 0, len(schema.AllMetricAxes))
	for _, axis := range schema.AllMetricAxes {
		headVal, ok := head.Get(axis)
		if !ok {
			return nil, &MalformedReportError{Axis: axis}
		}

		delta := schema.CoverageDelta{Axis: axis, Head: headVal}
		if baseVal, ok := base.Get(axis); ok {
			delta.Base = baseVal
			delta.Diff = headVal - baseVal
			delta.ComparisonAvailable = true
		}
		deltas = append(deltas, delta)
	}
	return deltas, nil
}

// ComparisonAvailable reports whether any axis carries a usable base value.
func ComparisonAvailable(deltas []schema.CoverageDelta) bool {
	for _, d := range deltas {
		if d.ComparisonAvailable {
			return true
		}
	}
	return false
}
