// Package cmd defines the command-line interface for covgate.
package cmd

import (
	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("base-ref", "", "Base Git reference the change is compared against")
	rootCmd.PersistentFlags().String("target-ref", "", "Target Git reference under evaluation (defaults to HEAD)")
	rootCmd.PersistentFlags().String("changed-file", "", "Newline-delimited changed-path list replacing the git diff ('-' reads stdin)")
	rootCmd.PersistentFlags().Int("parent-count", 0, "Override the parent count of the target commit (0 = detect via git)")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or markdown")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji markers in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "History backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("head-report", "", "Path to the head coverage report")
	checkCmd.Flags().String("base-report", "", "Path to the base coverage report (optional)")
	checkCmd.Flags().String("report-format", string(schema.AutoFormat), "Report format: auto or json or lcov or cobertura")
	checkCmd.Flags().Float64("min-line-coverage", schema.DefaultMinLineCoverage, "Minimum acceptable line coverage percentage")
	checkCmd.Flags().Float64("min-branch-coverage", schema.DefaultMinBranchCoverage, "Minimum acceptable branch coverage percentage")
	checkCmd.Flags().Int("merge-commit-threshold", schema.DefaultMergeCommitThreshold, "Source-file count at which a merge commit is enforced in full")
	checkCmd.Flags().Float64("significant-decrease", schema.DefaultSignificantDecrease, "Coverage decrease in points treated as significant")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("report-format", string(schema.AutoFormat), "Report format: auto or json or lcov or cobertura")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of historyListCmd to Viper
	historyListCmd.Flags().Int("limit", 20, "Number of recorded runs to display")
	if err := viper.BindPFlags(historyListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history list flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
