// Package report loads coverage reports from disk. It is the collaborator
// that resolves reports before the core pipeline runs; the core itself
// never touches the filesystem.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/covgate/schema"
)

// LoadReport reads and parses a coverage report file. With AutoFormat the
// format is detected from the file name.
func LoadReport(path string, format schema.ReportFormat) (*schema.CoverageReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read coverage report %q: %w", path, err)
	}

	if format == schema.AutoFormat || format == "" {
		format = DetectFormat(path)
	}

	switch format {
	case schema.JSONFormat:
		return parseJSONReport(data, path)
	case schema.LCOVFormat:
		return parseLCOVReport(data, path)
	case schema.CoberturaFormat:
		return parseCoberturaReport(data, path)
	default:
		return nil, fmt.Errorf("unsupported report format %q for %q", format, path)
	}
}

// LoadOptionalReport loads a base report when a path is configured.
// An empty path is the valid "base report unavailable" state and yields a
// nil report, not an error.
func LoadOptionalReport(path string, format schema.ReportFormat) (*schema.CoverageReport, error) {
	if path == "" {
		return nil, nil
	}
	return LoadReport(path, format)
}

// DetectFormat guesses the report format from the file name.
func DetectFormat(path string) schema.ReportFormat {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(base, ".info") || base == "lcov":
		return schema.LCOVFormat
	case strings.HasSuffix(base, ".xml"):
		return schema.CoberturaFormat
	default:
		return schema.JSONFormat
	}
}

// validatePercent rejects values outside [0,100]; a CoverageMetric is a
// percentage by definition.
func validatePercent(axis schema.MetricAxis, value float64, path string) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("coverage report %q has out-of-range %s value %.2f (expected [0,100])", path, axis, value)
	}
	return nil
}
