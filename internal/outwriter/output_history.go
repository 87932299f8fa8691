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

// WriteHistoryRuns outputs recorded gate runs, dispatching based on the
// output format configured.
func WriteHistoryRuns(records []schema.GateRunRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeHistoryCSV(csvWriter, records, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(w, records, cfg, fmtFloat)
		}, "Wrote table")
	}
}

// writeHistoryTable generates and writes the human-readable run table.
func writeHistoryTable(w io.Writer, records []schema.GateRunRecord, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "When", "Classification", "Mode", "Status", "Files", "Line", "Branch"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, rec := range records {
		data = append(data, []string{
			strconv.FormatInt(rec.RunID, 10),
			rec.CreatedAt.Format(contract.DateTimeFormat),
			rec.Classification,
			rec.Mode,
			rec.Status,
			strconv.Itoa(int(rec.TotalFiles)),
			fmtFloat(rec.HeadLine),
			fmtFloat(rec.HeadBranch),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Showing %d gate runs\n", len(records))
	return err
}

// writeHistoryCSV writes one row per recorded run.
func writeHistoryCSV(w *csv.Writer, records []schema.GateRunRecord, fmtFloat func(float64) string) error {
	header := []string{
		"run_id",
		"created_at",
		"repo_path",
		"base_ref",
		"target_ref",
		"classification",
		"mode",
		"status",
		"total_files",
		"source_files",
		"test_files",
		"head_line",
		"head_branch",
		"base_line",
		"base_branch",
		"reasons",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		baseLine, baseBranch := "", ""
		if rec.BaseLine != nil {
			baseLine = fmtFloat(*rec.BaseLine)
		}
		if rec.BaseBranch != nil {
			baseBranch = fmtFloat(*rec.BaseBranch)
		}
		row := []string{
			strconv.FormatInt(rec.RunID, 10),
			rec.CreatedAt.Format(contract.DateTimeFormat),
			rec.RepoPath,
			rec.BaseRef,
			rec.TargetRef,
			rec.Classification,
			rec.Mode,
			rec.Status,
			strconv.Itoa(int(rec.TotalFiles)),
			strconv.Itoa(int(rec.SourceFiles)),
			strconv.Itoa(int(rec.TestFiles)),
			fmtFloat(rec.HeadLine),
			fmtFloat(rec.HeadBranch),
			baseLine,
			baseBranch,
			rec.Reasons,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
