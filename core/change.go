package core

import "github.com/huangsam/covgate/schema"

// IsMergeCommit reports whether a commit with the given parent count is a
// merge commit.
func IsMergeCommit(parentCount int) bool {
	return parentCount > 1
}

// NewCommitShape builds a CommitShape from a parent count.
func NewCommitShape(parentCount int) schema.CommitShape {
	return schema.CommitShape{
		ParentCount: parentCount,
		IsMerge:     IsMergeCommit(parentCount),
	}
}

// ClassifyChange maps category counts and merge status to exactly one
// ChangeClassification. The precedence order matters: a merge commit that
// touches zero source files is ConfigOnly or TestOnly, never MergeCommit.
// MergeCommit only applies when some, but fewer than mergeThreshold, source
// files changed.
func ClassifyChange(sourceCount, testCount int, isMerge bool, mergeThreshold int) schema.ChangeClassification {
	switch {
	case sourceCount == 0 && testCount == 0:
		return schema.ConfigOnlyChange
	case sourceCount == 0:
		return schema.TestOnlyChange
	case isMerge && sourceCount < mergeThreshold:
		return schema.MergeCommitChange
	default:
		return schema.SourceCodeChange
	}
}
