package core

import (
	"testing"

	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
)

func TestIsMergeCommit(t *testing.T) {
	assert.False(t, IsMergeCommit(1))
	assert.True(t, IsMergeCommit(2))
	assert.True(t, IsMergeCommit(3))
}

func TestNewCommitShape(t *testing.T) {
	shape := NewCommitShape(2)
	assert.Equal(t, 2, shape.ParentCount)
	assert.True(t, shape.IsMerge)
}

func TestClassifyChange(t *testing.T) {
	const mergeThreshold = 3

	tests := []struct {
		name        string
		sourceCount int
		testCount   int
		isMerge     bool
		want        schema.ChangeClassification
	}{
		{"nothing changed", 0, 0, false, schema.ConfigOnlyChange},
		{"tests only", 0, 4, false, schema.TestOnlyChange},
		{"source below merge threshold, no merge", 2, 0, false, schema.SourceCodeChange},
		{"merge with few source files", 2, 1, true, schema.MergeCommitChange},
		{"merge at threshold", 3, 0, true, schema.SourceCodeChange},
		{"merge above threshold", 5, 0, true, schema.SourceCodeChange},

		// Precedence: a merge commit touching zero source files is
		// ConfigOnly or TestOnly, never MergeCommit.
		{"merge with config only", 0, 0, true, schema.ConfigOnlyChange},
		{"merge with tests only", 0, 2, true, schema.TestOnlyChange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyChange(tt.sourceCount, tt.testCount, tt.isMerge, mergeThreshold)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestClassifyChangeTotal verifies the classifier is total and
// deterministic over a sweep of count combinations.
func TestClassifyChangeTotal(t *testing.T) {
	valid := map[schema.ChangeClassification]struct{}{
		schema.ConfigOnlyChange:  {},
		schema.TestOnlyChange:    {},
		schema.MergeCommitChange: {},
		schema.SourceCodeChange:  {},
	}

	for source := 0; source <= 6; source++ {
		for test := 0; test <= 6; test++ {
			for _, isMerge := range []bool{false, true} {
				first := ClassifyChange(source, test, isMerge, 3)
				second := ClassifyChange(source, test, isMerge, 3)
				assert.Equal(t, first, second)
				assert.Contains(t, valid, first)
			}
		}
	}
}
