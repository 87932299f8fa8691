package report

import (
	"encoding/json"
	"fmt"

	"github.com/huangsam/covgate/schema"
)

// jsonSummary is the native covgate summary format. Axes are optional at
// the parsing layer; the comparator decides which axes are required.
//
//	{"line": 84.2, "branch": 77.9}
//
// A nested {"metrics": {...}} wrapper is also accepted, which is what
// covgate's own JSON output produces.
type jsonSummary struct {
	Line    *float64           `json:"line"`
	Branch  *float64           `json:"branch"`
	Metrics map[string]float64 `json:"metrics"`
}

func parseJSONReport(data []byte, path string) (*schema.CoverageReport, error) {
	var summary jsonSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("coverage report %q is not valid JSON: %w", path, err)
	}

	metrics := make(map[schema.MetricAxis]float64)
	for name, value := range summary.Metrics {
		metrics[schema.MetricAxis(name)] = value
	}
	if summary.Line != nil {
		metrics[schema.LineAxis] = *summary.Line
	}
	if summary.Branch != nil {
		metrics[schema.BranchAxis] = *summary.Branch
	}

	if len(metrics) == 0 {
		return nil, fmt.Errorf("coverage report %q contains no metrics", path)
	}
	for axis, value := range metrics {
		if err := validatePercent(axis, value, path); err != nil {
			return nil, err
		}
	}
	return &schema.CoverageReport{Metrics: metrics}, nil
}
