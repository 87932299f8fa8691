package history

import (
	"errors"
	"fmt"

	"github.com/huangsam/covgate/internal/parquet"
)

// ExecuteHistoryExport exports recorded gate runs to a Parquet file.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetGateStore()
	if store == nil {
		return errors.New("history tracking is disabled; nothing to export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no gate run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total gate runs: %d\n", status.TotalRuns)

	// A zero limit fetches everything up to the store default, so pass the
	// known run count explicitly.
	records, err := store.ListRuns(int(status.TotalRuns))
	if err != nil {
		return fmt.Errorf("failed to retrieve gate runs: %w", err)
	}

	rows := parquet.ConvertGateRunRecords(records)
	if err := parquet.WriteGateRunsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write gate runs: %w", err)
	}
	fmt.Printf("Exported %d gate runs to: %s\n", len(rows), outputFile)

	return nil
}
