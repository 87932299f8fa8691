package core

import (
	"fmt"

	"github.com/huangsam/covgate/schema"
)

// EvaluatePolicy maps a change classification, coverage deltas and the
// configured thresholds to an enforcement mode, a status and an ordered
// list of human-readable reasons. Reasons are accumulated rather than
// short-circuited, so a verdict can carry several explanatory strings even
// though only one status is emitted. An absolute-threshold failure always
// dominates a delta-based warning.
func EvaluatePolicy(classification schema.ChangeClassification, deltas []schema.CoverageDelta, th schema.Thresholds) (schema.EnforcementMode, schema.VerdictStatus, []string) {
	switch classification {
	case schema.ConfigOnlyChange:
		// Deltas are not evaluated at all for config-only changes.
		return schema.SkipMode, schema.PassStatus, []string{
			"no source or test files changed; coverage enforcement skipped",
		}

	case schema.TestOnlyChange:
		reasons := []string{"test-only change; coverage reported for visibility"}
		return schema.InformationalMode, schema.PassStatus, reasons

	case schema.MergeCommitChange:
		return evaluateMergeCommit(deltas, th)

	default:
		return evaluateSourceCode(deltas, th)
	}
}

// evaluateMergeCommit applies the informational policy for merge commits
// with few source changes. A significant decrease warns; nothing fails.
func evaluateMergeCommit(deltas []schema.CoverageDelta, th schema.Thresholds) (schema.EnforcementMode, schema.VerdictStatus, []string) {
	status := schema.PassStatus
	var reasons []string

	for _, d := range deltas {
		if !d.ComparisonAvailable || d.Diff >= 0 {
			continue
		}
		if -d.Diff >= th.SignificantDecrease {
			status = schema.WarnStatus
			reasons = append(reasons, fmt.Sprintf(
				"%s coverage dropped %.1f points (head %.1f%%, base %.1f%%); informational for merge commits",
				d.Axis, -d.Diff, d.Head, d.Base))
		} else {
			reasons = append(reasons, fmt.Sprintf(
				"%s coverage dipped %.1f points; below the %.1f-point significance threshold",
				d.Axis, -d.Diff, th.SignificantDecrease))
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "merge commit with few source changes; coverage reported for visibility")
	}
	return schema.InformationalMode, status, reasons
}

// evaluateSourceCode applies full enforcement. Without a base comparison it
// degrades to absolute thresholds only, and the degraded state is always
// called out in the reasons.
func evaluateSourceCode(deltas []schema.CoverageDelta, th schema.Thresholds) (schema.EnforcementMode, schema.VerdictStatus, []string) {
	status := schema.PassStatus
	var reasons []string

	raise := func(s schema.VerdictStatus) {
		if severity(s) > severity(status) {
			status = s
		}
	}

	for _, d := range deltas {
		if minVal := absoluteMinimum(d.Axis, th); d.Head < minVal {
			raise(schema.FailStatus)
			reasons = append(reasons, fmt.Sprintf(
				"%s coverage %.1f%% is below the required minimum of %.1f%%",
				d.Axis, d.Head, minVal))
		}
	}

	if !ComparisonAvailable(deltas) {
		reasons = append(reasons, "base comparison unavailable; enforcing absolute thresholds only")
		return schema.FullMode, status, reasons
	}

	for _, d := range deltas {
		if !d.ComparisonAvailable || d.Diff >= 0 {
			continue
		}
		if -d.Diff >= th.SignificantDecrease {
			raise(schema.FailStatus)
			reasons = append(reasons, fmt.Sprintf(
				"%s coverage dropped %.1f points (head %.1f%%, base %.1f%%), at or above the %.1f-point significance threshold",
				d.Axis, -d.Diff, d.Head, d.Base, th.SignificantDecrease))
		} else {
			raise(schema.WarnStatus)
			reasons = append(reasons, fmt.Sprintf(
				"%s coverage decreased %.1f points (head %.1f%%, base %.1f%%)",
				d.Axis, -d.Diff, d.Head, d.Base))
		}
	}

	return schema.FullMode, status, reasons
}

// absoluteMinimum returns the configured floor for an axis.
func absoluteMinimum(axis schema.MetricAxis, th schema.Thresholds) float64 {
	if axis == schema.BranchAxis {
		return th.MinBranch
	}
	return th.MinLine
}

// severity orders statuses so Fail dominates Warn dominates Pass.
func severity(s schema.VerdictStatus) int {
	switch s {
	case schema.FailStatus:
		return 2
	case schema.WarnStatus:
		return 1
	default:
		return 0
	}
}
