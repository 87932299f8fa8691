package core

import "github.com/huangsam/covgate/schema"

// ComposeVerdict assembles the classification, mode, deltas and ordered
// reasons into the final Verdict value. It performs no additional judgment;
// the result is read-only data for the reporting side.
func ComposeVerdict(classification schema.ChangeClassification, mode schema.EnforcementMode, status schema.VerdictStatus, deltas []schema.CoverageDelta, reasons []string) schema.Verdict {
	v := schema.Verdict{
		Status:         status,
		Mode:           mode,
		Classification: classification,
	}
	if len(deltas) > 0 {
		v.Deltas = make([]schema.CoverageDelta, len(deltas))
		copy(v.Deltas, deltas)
	}
	v.Reasons = make([]string, len(reasons))
	copy(v.Reasons, reasons)
	return v
}
