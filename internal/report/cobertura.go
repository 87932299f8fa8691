package report

import (
	"encoding/xml"
	"fmt"

	"github.com/huangsam/covgate/schema"
)

// coberturaCoverage maps the root element of a Cobertura XML report.
// The line-rate and branch-rate attributes are ratios in [0,1].
type coberturaCoverage struct {
	XMLName    xml.Name `xml:"coverage"`
	LineRate   *float64 `xml:"line-rate,attr"`
	BranchRate *float64 `xml:"branch-rate,attr"`
}

func parseCoberturaReport(data []byte, path string) (*schema.CoverageReport, error) {
	var cov coberturaCoverage
	if err := xml.Unmarshal(data, &cov); err != nil {
		return nil, fmt.Errorf("coverage report %q is not valid Cobertura XML: %w", path, err)
	}

	metrics := make(map[schema.MetricAxis]float64)
	if cov.LineRate != nil {
		metrics[schema.LineAxis] = *cov.LineRate * 100.0
	}
	if cov.BranchRate != nil {
		metrics[schema.BranchAxis] = *cov.BranchRate * 100.0
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("coverage report %q has no line-rate or branch-rate attributes", path)
	}
	for axis, value := range metrics {
		if err := validatePercent(axis, value, path); err != nil {
			return nil, err
		}
	}
	return &schema.CoverageReport{Metrics: metrics}, nil
}
