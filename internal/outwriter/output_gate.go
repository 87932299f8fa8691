package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteGateResult outputs a gate verdict, dispatching based on the output format configured.
func WriteGateResult(result *schema.GateResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGateJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeGateCSV(csvWriter, result, fmtFloat)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGateMarkdown(w, result, cfg, fmtFloat)
		}, "Wrote Markdown")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeGateTable(w, result, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeGateTable generates and writes the human-readable verdict report.
func writeGateTable(w io.Writer, result *schema.GateResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Classification: %s (%d files, %d source, %d test)\n",
		result.Verdict.Classification, result.TotalFiles, result.Counts.Source(), result.Counts.Test()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Enforcement: %s\n", modeDisplay(result.Verdict.Mode)); err != nil {
		return err
	}
	if result.Commit.IsMerge {
		if _, err := fmt.Fprintf(w, "Commit: merge commit with %d parents\n", result.Commit.ParentCount); err != nil {
			return err
		}
	}

	if len(result.Verdict.Deltas) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Axis", "Head", "Base", "Diff", "Minimum"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, d := range result.Verdict.Deltas {
			base, diff := "n/a", "n/a"
			if d.ComparisonAvailable {
				base = fmtFloat(d.Base)
				diff = fmtSigned(d.Diff, cfg.Precision)
			}
			data = append(data, []string{
				string(d.Axis),
				fmtFloat(d.Head),
				base,
				diff,
				fmtFloat(minimumFor(d.Axis, result.Thresholds)),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	for _, reason := range result.Verdict.Reasons {
		if _, err := fmt.Fprintf(w, "- %s\n", reason); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Verdict: %s\n", statusDisplay(result.Verdict.Status, cfg))
	return err
}

// writeGateJSON writes the verdict in JSON format.
func writeGateJSON(w io.Writer, result *schema.GateResult) error {
	// Add the plain label so downstream tooling does not need to map statuses
	type JSONGateResult struct {
		Label string `json:"label"`
		*schema.GateResult
	}
	return writeJSON(w, JSONGateResult{
		Label:      contract.GetPlainLabel(result.Verdict.Status),
		GateResult: result,
	})
}

// writeGateCSV writes one row per metric axis with the verdict repeated,
// which keeps the file trivially loadable into a dataframe.
func writeGateCSV(w *csv.Writer, result *schema.GateResult, fmtFloat func(float64) string) error {
	header := []string{
		"classification",
		"mode",
		"status",
		"axis",
		"head",
		"base",
		"diff",
		"comparison_available",
		"reasons",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	reasons := strings.Join(result.Verdict.Reasons, "; ")
	if len(result.Verdict.Deltas) == 0 {
		// Config-only runs have no axes; still emit the verdict
		rec := []string{
			string(result.Verdict.Classification),
			string(result.Verdict.Mode),
			string(result.Verdict.Status),
			"", "", "", "", "false",
			reasons,
		}
		return w.Write(rec)
	}

	for _, d := range result.Verdict.Deltas {
		base, diff := "", ""
		if d.ComparisonAvailable {
			base = fmtFloat(d.Base)
			diff = fmtFloat(d.Diff)
		}
		rec := []string{
			string(result.Verdict.Classification),
			string(result.Verdict.Mode),
			string(result.Verdict.Status),
			string(d.Axis),
			fmtFloat(d.Head),
			base,
			diff,
			strconv.FormatBool(d.ComparisonAvailable),
			reasons,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeGateMarkdown writes a PR-comment friendly summary.
func writeGateMarkdown(w io.Writer, result *schema.GateResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	emoji := ""
	if cfg.UseEmojis {
		switch result.Verdict.Status {
		case schema.FailStatus:
			emoji = "❌ "
		case schema.WarnStatus:
			emoji = "⚠️ "
		default:
			emoji = "✅ "
		}
	}

	if _, err := fmt.Fprintf(w, "## %sCoverage Gate: %s\n\n", emoji, contract.GetPlainLabel(result.Verdict.Status)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "**Classification:** `%s` | **Enforcement:** `%s` | **Files:** %d\n\n",
		result.Verdict.Classification, result.Verdict.Mode, result.TotalFiles); err != nil {
		return err
	}

	if len(result.Verdict.Deltas) > 0 {
		if _, err := fmt.Fprintln(w, "| Axis | Head | Base | Diff | Minimum |"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "|------|-----:|-----:|-----:|--------:|"); err != nil {
			return err
		}
		for _, d := range result.Verdict.Deltas {
			base, diff := "n/a", "n/a"
			if d.ComparisonAvailable {
				base = fmtFloat(d.Base)
				diff = fmtSigned(d.Diff, cfg.Precision)
			}
			if _, err := fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
				d.Axis, fmtFloat(d.Head), base, diff, fmtFloat(minimumFor(d.Axis, result.Thresholds))); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	for _, reason := range result.Verdict.Reasons {
		if _, err := fmt.Fprintf(w, "- %s\n", reason); err != nil {
			return err
		}
	}
	return nil
}

// minimumFor returns the configured absolute minimum for an axis.
func minimumFor(axis schema.MetricAxis, th schema.Thresholds) float64 {
	if axis == schema.BranchAxis {
		return th.MinBranch
	}
	return th.MinLine
}
