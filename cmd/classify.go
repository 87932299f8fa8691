package cmd

import (
	"github.com/huangsam/covgate/core"
	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/internal/outwriter"
	"github.com/spf13/cobra"
)

// classifyCmd previews how the gate would treat a change.
var classifyCmd = &cobra.Command{
	Use:   "classify [repo-path]",
	Short: "Classify changed files without evaluating coverage",
	Long: `Resolve the changed paths of a change, categorize each one, and report
the resulting change classification.

No coverage report is needed: this is a dry run of the gate's first stage.
Use it to understand why a change will be skipped, reported informationally,
or fully enforced before CI runs the real check.

Examples:
  # Preview the classification of a branch
  covgate classify --base-ref main

  # Classify an explicit path list
  covgate classify --changed-file changed.txt

  # Machine-readable output for scripting
  covgate classify --base-ref main --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		result, err := core.ExecuteClassification(rootCtx, cfg, contract.NewLocalGitClient())
		if err != nil {
			contract.LogFatalCode("Classification failed", err, exitEvalError)
		}
		if err := outwriter.NewOutWriter().WriteClassification(result, cfg); err != nil {
			contract.LogFatalCode("Could not write classification", err, exitEvalError)
		}
	},
}
