package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteReportSummary outputs a parsed coverage report, dispatching based on
// the output format configured. It backs the report command, which exists so
// a developer can sanity-check what the gate will read from a report file.
func WriteReportSummary(rep *schema.CoverageReport, path string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rep)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			csvWriter := csv.NewWriter(w)
			defer csvWriter.Flush()
			return writeReportCSV(csvWriter, rep, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTable(w, rep, path, fmtFloat)
		}, "Wrote table")
	}
}

// writeReportTable generates and writes the human-readable axis table.
func writeReportTable(w io.Writer, rep *schema.CoverageReport, path string, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Coverage report: %s\n", path); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Axis", "Coverage"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, axis := range schema.AllMetricAxes {
		value := "missing"
		if v, ok := rep.Get(axis); ok {
			value = fmtFloat(v)
		}
		data = append(data, []string{string(axis), value})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeReportCSV writes one row per axis.
func writeReportCSV(w *csv.Writer, rep *schema.CoverageReport, fmtFloat func(float64) string) error {
	if err := w.Write([]string{"axis", "coverage"}); err != nil {
		return err
	}
	for _, axis := range schema.AllMetricAxes {
		value := ""
		if v, ok := rep.Get(axis); ok {
			value = fmtFloat(v)
		}
		if err := w.Write([]string{string(axis), value}); err != nil {
			return err
		}
	}
	return nil
}
