package schema

// ClassifiedFile pairs one changed path with its assigned category.
type ClassifiedFile struct {
	Path     string       `json:"path"`
	Category FileCategory `json:"category"`
}

// ClassificationResult holds the outcome of a classification-only run:
// the per-path categories plus the aggregate change classification.
type ClassificationResult struct {
	Files          []ClassifiedFile     `json:"files"`
	Counts         CategoryCounts       `json:"counts"`
	Commit         CommitShape          `json:"commit"`
	Classification ChangeClassification `json:"classification"`
}
