package cmd

import (
	"os"

	"github.com/huangsam/covgate/core"
	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/internal/history"
	"github.com/huangsam/covgate/internal/outwriter"
	"github.com/spf13/cobra"
)

// Exit codes for the check command. CI distinguishes "coverage regressed"
// from "the tool could not evaluate coverage".
const (
	exitGateFailed = 1
	exitEvalError  = 2
)

// checkCmd focused on CI/CD coverage enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [repo-path]",
	Short: "Enforce coverage thresholds for CI/CD pipelines (fails build on violations)",
	Long: `Classify the changed files of a commit or pull request, compare coverage
reports, and enforce the coverage policy.

Designed specifically for CI/CD integration - fails with non-zero exit code when
coverage regresses on source-code changes. Config-only changes skip enforcement
and test-only or merge-commit changes are reported without blocking.

Exit codes:
  0 - verdict is Pass or Warn
  1 - verdict is Fail
  2 - the gate could not be evaluated (bad inputs, malformed report)

Examples:
  # Check PR changes against main branch
  covgate check --base-ref origin/main --head-report coverage.json

  # Compare against the base build's report
  covgate check --base-ref main --head-report head.json --base-report base.json

  # CI without a git checkout: feed the changed paths directly
  git diff --name-only main...HEAD | covgate check --changed-file - --head-report coverage.json

  # Custom thresholds
  covgate check --base-ref main --head-report cov.info --min-line-coverage 90 --min-branch-coverage 85`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.ExecuteGateCheck(rootCtx, cfg, contract.NewLocalGitClient(), historyManager)
		if err != nil {
			contract.LogFatalCode("Gate evaluation failed", err, exitEvalError)
		}

		if err := outwriter.NewOutWriter().WriteGate(result, cfg); err != nil {
			contract.LogFatalCode("Could not write gate result", err, exitEvalError)
		}

		if !result.Passed() {
			history.CloseStores()
			os.Exit(exitGateFailed)
		}
	},
}
