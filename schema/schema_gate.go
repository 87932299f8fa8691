package schema

// GateResult holds everything needed to render the outcome of one gate run.
type GateResult struct {
	Verdict    Verdict        `json:"verdict"`
	Counts     CategoryCounts `json:"counts"`
	Commit     CommitShape    `json:"commit"`
	Thresholds Thresholds     `json:"thresholds"`
	BaseRef    string         `json:"base_ref,omitempty"`
	TargetRef  string         `json:"target_ref,omitempty"`
	TotalFiles int            `json:"total_files"`
}

// Passed reports whether the calling process should exit successfully.
// Warn does not block a merge; only Fail does.
func (r *GateResult) Passed() bool {
	return r.Verdict.Status != FailStatus
}
