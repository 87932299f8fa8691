// Package schema has configs, models and shared value types for all parts of covgate.
package schema

// CoverageReport maps metric axes to coverage percentages in [0,100].
// A nil *CoverageReport represents an absent report (base only).
type CoverageReport struct {
	Metrics map[MetricAxis]float64 `json:"metrics"`
}

// Get returns the value for an axis and whether the axis is present.
func (r *CoverageReport) Get(axis MetricAxis) (float64, bool) {
	if r == nil || r.Metrics == nil {
		return 0, false
	}
	v, ok := r.Metrics[axis]
	return v, ok
}

// CoverageDelta captures the head/base comparison for a single metric axis.
// Base and Diff are only meaningful when ComparisonAvailable is true.
type CoverageDelta struct {
	Axis                MetricAxis `json:"axis"`
	Head                float64    `json:"head"`
	Base                float64    `json:"base"`
	Diff                float64    `json:"diff"`
	ComparisonAvailable bool       `json:"comparison_available"`
}

// CommitShape describes the triggering commit of a run.
type CommitShape struct {
	ParentCount int  `json:"parent_count"`
	IsMerge     bool `json:"is_merge"`
}

// Thresholds holds the configured gate thresholds for one run.
// The value is immutable once built and never mutated by any component.
type Thresholds struct {
	MinLine              float64 `json:"min_line"`
	MinBranch            float64 `json:"min_branch"`
	MergeCommitThreshold int     `json:"merge_commit_threshold"`
	SignificantDecrease  float64 `json:"significant_decrease"`
}

// Default threshold values, overridable via config.
const (
	DefaultMinLineCoverage      = 80.0
	DefaultMinBranchCoverage    = 75.0
	DefaultMergeCommitThreshold = 3
	DefaultSignificantDecrease  = 5.0
)

// DefaultThresholds returns the default gate thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinLine:              DefaultMinLineCoverage,
		MinBranch:            DefaultMinBranchCoverage,
		MergeCommitThreshold: DefaultMergeCommitThreshold,
		SignificantDecrease:  DefaultSignificantDecrease,
	}
}

// CategoryCounts holds per-category counts for one changed-path set.
type CategoryCounts map[FileCategory]int

// Source returns the number of source paths.
func (c CategoryCounts) Source() int { return c[SourceCategory] }

// Test returns the number of test paths.
func (c CategoryCounts) Test() int { return c[TestCategory] }

// Total returns the total number of counted paths.
func (c CategoryCounts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Verdict is the final decision for one gate run. It is plain data:
// rendering it into a human-readable report happens in outwriter.
type Verdict struct {
	Status         VerdictStatus        `json:"status"`
	Mode           EnforcementMode      `json:"mode"`
	Classification ChangeClassification `json:"classification"`
	Deltas         []CoverageDelta      `json:"deltas,omitempty"`
	Reasons        []string             `json:"reasons"`
}
