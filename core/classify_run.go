package core

import (
	"context"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/huangsam/covgate/schema"
)

// ExecuteClassification resolves the changed paths and classifies them
// without evaluating coverage. It powers the classify command, which lets a
// developer preview how the gate would treat a change before CI runs it.
func ExecuteClassification(ctx context.Context, cfg *contract.Config, git contract.GitClient) (*schema.ClassificationResult, error) {
	runner := NewGateRunner(cfg, git, nil)

	if err := runner.ResolveChangedPaths(ctx); err != nil {
		return nil, err
	}
	if err := runner.ResolveCommitShape(ctx); err != nil {
		return nil, err
	}
	runner.ClassifyChanges()

	files := make([]schema.ClassifiedFile, 0, len(runner.paths))
	for _, p := range runner.paths {
		files = append(files, schema.ClassifiedFile{Path: p, Category: ClassifyPath(p)})
	}

	return &schema.ClassificationResult{
		Files:          files,
		Counts:         runner.counts,
		Commit:         runner.commit,
		Classification: runner.classification,
	}, nil
}
