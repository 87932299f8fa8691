package cmd

import (
	"fmt"
	"strings"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/internal/outwriter"
	"github.com/huangsam/covgate/internal/report"
	"github.com/huangsam/covgate/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// reportSetup loads the minimal configuration needed to parse and display a
// coverage report. No git repository is required.
func reportSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	cfg.Output = schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, markdown", viper.GetString("output"))
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = viper.GetInt("precision")
	if cfg.Precision < 1 || cfg.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", cfg.Precision)
	}

	cfg.ReportFormat = schema.ReportFormat(strings.ToLower(viper.GetString("report-format")))
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = schema.AutoFormat
	}
	if _, ok := schema.ValidReportFormats[cfg.ReportFormat]; !ok {
		return fmt.Errorf("invalid report format '%s'. must be auto, json, lcov, cobertura", viper.GetString("report-format"))
	}
	return nil
}

// reportCmd parses a coverage report and shows what the gate would read.
var reportCmd = &cobra.Command{
	Use:   "report <report-path>",
	Short: "Parse a coverage report and display its metric axes",
	Long: `Parse a coverage report file and display the line and branch coverage
the gate would read from it.

Supported formats: JSON summary, LCOV info, Cobertura XML. The format is
detected from the file extension unless --report-format is given.

Examples:
  # Inspect a JSON summary
  covgate report coverage.json

  # Inspect an LCOV trace with explicit format
  covgate report lcov.info --report-format lcov`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return reportSetup()
	},
	Run: func(_ *cobra.Command, args []string) {
		rep, err := report.LoadReport(args[0], cfg.ReportFormat)
		if err != nil {
			contract.LogFatalCode("Could not parse coverage report", err, exitEvalError)
		}
		if err := outwriter.NewOutWriter().WriteReport(rep, args[0], cfg); err != nil {
			contract.LogFatalCode("Could not write report summary", err, exitEvalError)
		}
	},
}
