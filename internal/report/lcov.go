package report

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/huangsam/covgate/schema"
)

// parseLCOVReport aggregates an LCOV tracefile into repository-wide line
// and branch percentages. Only the summary records matter here:
//
//	LF: lines found      LH: lines hit
//	BRF: branches found  BRH: branches hit
func parseLCOVReport(data []byte, path string) (*schema.CoverageReport, error) {
	var linesFound, linesHit, branchesFound, branchesHit int64
	sawRecord := false

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			continue
		}

		switch key {
		case "LF":
			linesFound += n
			sawRecord = true
		case "LH":
			linesHit += n
			sawRecord = true
		case "BRF":
			branchesFound += n
			sawRecord = true
		case "BRH":
			branchesHit += n
			sawRecord = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not scan LCOV report %q: %w", path, err)
	}
	if !sawRecord {
		return nil, fmt.Errorf("coverage report %q has no LCOV summary records (LF/LH/BRF/BRH)", path)
	}

	metrics := make(map[schema.MetricAxis]float64)
	if linesFound > 0 {
		metrics[schema.LineAxis] = percent(linesHit, linesFound)
	}
	if branchesFound > 0 {
		metrics[schema.BranchAxis] = percent(branchesHit, branchesFound)
	}
	if len(metrics) == 0 {
		return nil, fmt.Errorf("coverage report %q tracks zero lines and zero branches", path)
	}
	return &schema.CoverageReport{Metrics: metrics}, nil
}

func percent(hit, found int64) float64 {
	return float64(hit) / float64(found) * 100.0
}
