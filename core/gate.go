package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/huangsam/covgate/internal/contract"
	covreport "github.com/huangsam/covgate/internal/report"
	"github.com/huangsam/covgate/schema"
)

// GateRunner resolves the inputs for one gate run and drives the decision
// pipeline over them. All entities are built fresh per run and discarded
// afterwards; there is no cross-run state.
type GateRunner struct {
	cfg *contract.Config
	git contract.GitClient
	mgr contract.HistoryManager

	paths          []string
	counts         schema.CategoryCounts
	commit         schema.CommitShape
	classification schema.ChangeClassification
	verdict        schema.Verdict
	result         *schema.GateResult
}

// NewGateRunner is the starting point for one gate run.
func NewGateRunner(cfg *contract.Config, git contract.GitClient, mgr contract.HistoryManager) *GateRunner {
	return &GateRunner{cfg: cfg, git: git, mgr: mgr}
}

// ExecuteGateCheck runs the full gate pipeline for one CI run and returns
// the renderable result. Rendering and exit-code mapping belong to the
// caller. Any returned error means the run could not be evaluated, which
// is distinct from a Fail verdict.
func ExecuteGateCheck(ctx context.Context, cfg *contract.Config, git contract.GitClient, mgr contract.HistoryManager) (*schema.GateResult, error) {
	runner := NewGateRunner(cfg, git, mgr)

	if err := runner.ResolveChangedPaths(ctx); err != nil {
		return nil, err
	}
	if err := runner.ResolveCommitShape(ctx); err != nil {
		return nil, err
	}
	runner.ClassifyChanges()
	if err := runner.EvaluateCoverage(); err != nil {
		return nil, err
	}

	result := runner.BuildResult()
	runner.RecordHistory(result)
	return result, nil
}

// ResolveChangedPaths resolves the changed-path list, either from an
// explicit file (or stdin) or from a git diff between the configured refs.
// Excluded paths are dropped before classification.
func (r *GateRunner) ResolveChangedPaths(ctx context.Context) error {
	var paths []string
	var err error

	if r.cfg.ChangedFile != "" {
		paths, err = readChangedFile(r.cfg.ChangedFile)
	} else {
		if r.cfg.BaseRef == "" {
			return fmt.Errorf("base-ref is required to diff changed files; pass --base-ref or provide --changed-file")
		}
		paths, err = r.git.GetChangedFilesBetweenRefs(ctx, r.cfg.RepoPath, r.cfg.BaseRef, r.cfg.TargetRef)
	}
	if err != nil {
		return err
	}

	r.paths = make([]string, 0, len(paths))
	for _, p := range paths {
		if !contract.ShouldIgnore(p, r.cfg.Excludes) {
			r.paths = append(r.paths, p)
		}
	}
	return nil
}

// ResolveCommitShape determines whether the triggering commit is a merge
// commit. An explicit --parent-count wins; otherwise git is asked, and in
// changed-file mode without git a single parent is assumed.
func (r *GateRunner) ResolveCommitShape(ctx context.Context) error {
	parentCount := r.cfg.ParentCount
	if parentCount == 0 {
		if r.cfg.ChangedFile != "" {
			parentCount = 1
		} else {
			var err error
			parentCount, err = r.git.GetParentCount(ctx, r.cfg.RepoPath, r.cfg.TargetRef)
			if err != nil {
				return err
			}
		}
	}
	r.commit = NewCommitShape(parentCount)
	return nil
}

// ClassifyChanges computes category counts and the change classification.
func (r *GateRunner) ClassifyChanges() {
	r.counts = ClassifyFiles(r.paths)
	r.classification = ClassifyChange(
		r.counts.Source(),
		r.counts.Test(),
		r.commit.IsMerge,
		r.cfg.Thresholds.MergeCommitThreshold,
	)
}

// EvaluateCoverage loads the coverage reports, compares them and applies
// the threshold policy. Config-only changes skip report loading entirely:
// their verdict is Pass regardless of coverage values.
func (r *GateRunner) EvaluateCoverage() error {
	if r.classification == schema.ConfigOnlyChange {
		mode, status, reasons := EvaluatePolicy(r.classification, nil, r.cfg.Thresholds)
		r.verdict = ComposeVerdict(r.classification, mode, status, nil, reasons)
		return nil
	}

	if r.cfg.HeadReportPath == "" {
		return fmt.Errorf("head coverage report is required for %s changes; pass --head-report", r.classification)
	}
	head, err := covreport.LoadReport(r.cfg.HeadReportPath, r.cfg.ReportFormat)
	if err != nil {
		return err
	}
	base, err := covreport.LoadOptionalReport(r.cfg.BaseReportPath, r.cfg.ReportFormat)
	if err != nil {
		return err
	}

	deltas, err := CompareCoverage(head, base)
	if err != nil {
		return err
	}

	mode, status, reasons := EvaluatePolicy(r.classification, deltas, r.cfg.Thresholds)
	r.verdict = ComposeVerdict(r.classification, mode, status, deltas, reasons)
	return nil
}

// BuildResult assembles the renderable result for this run.
func (r *GateRunner) BuildResult() *schema.GateResult {
	r.result = &schema.GateResult{
		Verdict:    r.verdict,
		Counts:     r.counts,
		Commit:     r.commit,
		Thresholds: r.cfg.Thresholds,
		BaseRef:    r.cfg.BaseRef,
		TargetRef:  r.cfg.TargetRef,
		TotalFiles: len(r.paths),
	}
	return r.result
}

// RecordHistory persists the run to the gate history store when one is
// configured. Persistence failures never change the verdict; they only
// produce a warning.
func (r *GateRunner) RecordHistory(result *schema.GateResult) {
	if r.mgr == nil {
		return
	}
	store := r.mgr.GetGateStore()
	if store == nil {
		return
	}

	record := schema.GateRunRecord{
		CreatedAt:      time.Now().UTC(),
		RepoPath:       r.cfg.RepoPath,
		BaseRef:        r.cfg.BaseRef,
		TargetRef:      r.cfg.TargetRef,
		Classification: string(result.Verdict.Classification),
		Mode:           string(result.Verdict.Mode),
		Status:         string(result.Verdict.Status),
		TotalFiles:     int32(result.TotalFiles),
		SourceFiles:    int32(r.counts.Source()),
		TestFiles:      int32(r.counts.Test()),
		Reasons:        strings.Join(result.Verdict.Reasons, "; "),
	}
	for _, d := range result.Verdict.Deltas {
		switch d.Axis {
		case schema.LineAxis:
			record.HeadLine = d.Head
			if d.ComparisonAvailable {
				base := d.Base
				record.BaseLine = &base
			}
		case schema.BranchAxis:
			record.HeadBranch = d.Head
			if d.ComparisonAvailable {
				base := d.Base
				record.BaseBranch = &base
			}
		}
	}

	if _, err := store.RecordRun(record); err != nil {
		contract.LogWarn("could not record gate run", err)
	}
}

// readChangedFile reads a newline-delimited path list from a file, or from
// stdin when the path is "-".
func readChangedFile(path string) ([]string, error) {
	var reader io.Reader
	if path == "-" {
		reader = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not read changed-path list %q: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	var paths []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not scan changed-path list %q: %w", path, err)
	}
	return paths, nil
}
