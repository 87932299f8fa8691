// Package contract provides interfaces and shared utilities for the covgate
// CLI's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/covgate/schema"
)

// GitClient defines the git operations the gate needs: which paths changed
// and the shape of the triggering commit. This allows the gate logic to be
// tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetChangedFilesBetweenRefs returns files that changed between baseRef
	// and targetRef.
	GetChangedFilesBetweenRefs(ctx context.Context, repoPath string, baseRef string, targetRef string) ([]string, error)

	// GetParentCount returns the number of parents of the given ref.
	GetParentCount(ctx context.Context, repoPath string, ref string) (int, error)

	// GetRepoRoot returns the absolute path to the root of the Git
	// repository containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// GetRepoHash returns the commit hash the given ref resolves to.
	GetRepoHash(ctx context.Context, repoPath string, ref string) (string, error)
}

// HistoryManager defines the interface for managing the gate history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetGateStore() GateStore
}

// GateStore defines the interface for recording gate runs.
type GateStore interface {
	// RecordRun stores one completed gate run and returns its unique ID.
	RecordRun(record schema.GateRunRecord) (int64, error)

	// ListRuns returns the most recent gate runs, newest first.
	ListRuns(limit int) ([]schema.GateRunRecord, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection.
	Close() error
}
