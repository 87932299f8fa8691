// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteGate prints a gate verdict using the configured output format.
func (ow *OutWriter) WriteGate(result *schema.GateResult, cfg *contract.Config) error {
	return WriteGateResult(result, cfg)
}

// WriteClassification prints a classification-only result using the
// configured output format.
func (ow *OutWriter) WriteClassification(result *schema.ClassificationResult, cfg *contract.Config) error {
	return WriteClassificationResult(result, cfg)
}

// WriteReport prints a parsed coverage report using the configured output format.
func (ow *OutWriter) WriteReport(rep *schema.CoverageReport, path string, cfg *contract.Config) error {
	return WriteReportSummary(rep, path, cfg)
}

// WriteHistory prints recorded gate runs using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.GateRunRecord, cfg *contract.Config) error {
	return WriteHistoryRuns(records, cfg)
}
