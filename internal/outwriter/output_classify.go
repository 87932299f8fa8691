package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteClassificationResult outputs a classification-only result, dispatching
// based on the output format configured.
func WriteClassificationResult(result *schema.ClassificationResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeClassificationCSV(csvWriter, result)
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassificationMarkdown(w, result)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeClassificationTable(w, result, cfg)
		}, "Wrote table")
	}
}

// writeClassificationTable generates and writes the human-readable table.
func writeClassificationTable(w io.Writer, result *schema.ClassificationResult, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Path", "Category"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, f := range result.Files {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(f.Path, getMaxTablePathWidth(cfg)),
			string(f.Category),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, cat := range schema.AllFileCategories {
		if n := result.Counts[cat]; n > 0 {
			if _, err := fmt.Fprintf(w, "%s: %d\n", cat, n); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Classification: %s (%d files)\n", result.Classification, result.Counts.Total())
	return err
}

// writeClassificationCSV writes one row per classified path.
func writeClassificationCSV(w *csv.Writer, result *schema.ClassificationResult) error {
	header := []string{"rank", "path", "category", "classification"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, f := range result.Files {
		rec := []string{
			strconv.Itoa(i + 1),
			f.Path,
			string(f.Category),
			string(result.Classification),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeClassificationMarkdown writes a PR-comment friendly summary.
func writeClassificationMarkdown(w io.Writer, result *schema.ClassificationResult) error {
	if _, err := fmt.Fprintf(w, "## Change Classification: `%s`\n\n", result.Classification); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| Path | Category |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "|------|----------|"); err != nil {
		return err
	}
	for _, f := range result.Files {
		if _, err := fmt.Fprintf(w, "| `%s` | %s |\n", f.Path, f.Category); err != nil {
			return err
		}
	}
	return nil
}
