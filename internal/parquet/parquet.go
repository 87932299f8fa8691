// Package parquet provides data structures and functions for exporting gate
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/covgate/schema"
	"github.com/parquet-go/parquet-go"
)

// GateRun represents a single coverage gate evaluation with its verdict.
// This struct maps to the covgate_runs database table.
type GateRun struct {
	// RunID is the unique identifier for this gate run
	RunID int64 `parquet:"run_id,snappy"`

	// CreatedAt is when the gate evaluated (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	// RepoPath is the repository the gate ran against
	RepoPath string `parquet:"repo_path,snappy"`

	// BaseRef is the comparison base reference (nullable in changed-file mode)
	BaseRef *string `parquet:"base_ref,optional,snappy"`

	// TargetRef is the evaluated reference
	TargetRef *string `parquet:"target_ref,optional,snappy"`

	// Classification is the change classification (config-only, test-only, merge-commit, source-code)
	Classification string `parquet:"classification,snappy"`

	// Mode is the enforcement mode applied (skip, informational, full)
	Mode string `parquet:"mode,snappy"`

	// Status is the final verdict (pass, warn, fail)
	Status string `parquet:"status,snappy"`

	// TotalFiles is the number of changed files considered
	TotalFiles int32 `parquet:"total_files,snappy"`

	// SourceFiles is the number of changed source files
	SourceFiles int32 `parquet:"source_files,snappy"`

	// TestFiles is the number of changed test files
	TestFiles int32 `parquet:"test_files,snappy"`

	// HeadLine is the head line coverage percentage
	HeadLine float64 `parquet:"head_line,snappy"`

	// HeadBranch is the head branch coverage percentage
	HeadBranch float64 `parquet:"head_branch,snappy"`

	// BaseLine is the base line coverage percentage (nullable)
	BaseLine *float64 `parquet:"base_line,optional,snappy"`

	// BaseBranch is the base branch coverage percentage (nullable)
	BaseBranch *float64 `parquet:"base_branch,optional,snappy"`

	// Reasons is the semicolon-joined reason list behind the verdict
	Reasons string `parquet:"reasons,snappy"`
}

// ConvertGateRunRecords converts database records into Parquet rows.
func ConvertGateRunRecords(records []schema.GateRunRecord) []GateRun {
	runs := make([]GateRun, 0, len(records))
	for _, rec := range records {
		run := GateRun{
			RunID:          rec.RunID,
			CreatedAt:      rec.CreatedAt,
			RepoPath:       rec.RepoPath,
			Classification: rec.Classification,
			Mode:           rec.Mode,
			Status:         rec.Status,
			TotalFiles:     rec.TotalFiles,
			SourceFiles:    rec.SourceFiles,
			TestFiles:      rec.TestFiles,
			HeadLine:       rec.HeadLine,
			HeadBranch:     rec.HeadBranch,
			BaseLine:       rec.BaseLine,
			BaseBranch:     rec.BaseBranch,
			Reasons:        rec.Reasons,
		}
		if rec.BaseRef != "" {
			baseRef := rec.BaseRef
			run.BaseRef = &baseRef
		}
		if rec.TargetRef != "" {
			targetRef := rec.TargetRef
			run.TargetRef = &targetRef
		}
		runs = append(runs, run)
	}
	return runs
}

// WriteGateRunsParquet writes a slice of GateRun structs to a Parquet file.
func WriteGateRunsParquet(data []GateRun, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the GateRun struct tags
	writer := parquet.NewGenericWriter[GateRun](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}
