// Package core holds the decision logic for the coverage gate: file and
// change classification, coverage comparison, and policy evaluation.
package core

import (
	"path/filepath"
	"strings"

	"github.com/huangsam/covgate/schema"
)

// Generated and migration paths are never counted as Source, even when they
// live under a source directory. Exclusions always win over inclusions.
var excludedDirSegments = map[string]struct{}{
	"vendor":       {},
	"node_modules": {},
	"third_party":  {},
	"generated":    {},
	"migrations":   {},
	"dist":         {},
	"target":       {},
}

var excludedSuffixes = []string{
	".pb.go",
	".gen.go",
	"_generated.go",
	"_pb2.py",
	".min.js",
	".min.css",
	".map",
}

// Test directories and file naming conventions, checked before source rules
// so helpers under src/ that follow a test convention still count as Test.
var testDirSegments = map[string]struct{}{
	"test":      {},
	"tests":     {},
	"testdata":  {},
	"__tests__": {},
	"spec":      {},
}

var testBasePatterns = []string{
	"*_test.go",
	"test_*.py",
	"*_test.py",
	"*.test.js",
	"*.test.jsx",
	"*.test.ts",
	"*.test.tsx",
	"*.spec.js",
	"*.spec.ts",
	"*Test.java",
	"*_spec.rb",
	"conftest.py",
}

var sourceExtensions = map[string]struct{}{
	".go": {}, ".py": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {},
	".java": {}, ".kt": {}, ".rb": {}, ".rs": {}, ".c": {}, ".h": {},
	".cc": {}, ".cpp": {}, ".hpp": {}, ".cs": {}, ".swift": {},
	".scala": {}, ".php": {}, ".sh": {}, ".sql": {},
}

var configExtensions = map[string]struct{}{
	".yaml": {}, ".yml": {}, ".json": {}, ".toml": {}, ".ini": {},
	".cfg": {}, ".conf": {}, ".env": {}, ".properties": {},
}

var configBaseNames = map[string]struct{}{
	"makefile":         {},
	"dockerfile":       {},
	"go.mod":           {},
	"go.sum":           {},
	"package.json":     {},
	"requirements.txt": {},
	"gemfile":          {},
	"pom.xml":          {},
	"build.gradle":     {},
	".gitignore":       {},
	".gitattributes":   {},
	".editorconfig":    {},
	".dockerignore":    {},
}

var docExtensions = map[string]struct{}{
	".md": {}, ".rst": {}, ".adoc": {}, ".txt": {},
}

var docBaseNames = map[string]struct{}{
	"license":      {},
	"notice":       {},
	"authors":      {},
	"codeowners":   {},
	"readme":       {},
	"changelog":    {},
	"contributing": {},
}

// Asset and artifact paths that are recognized but never enforce coverage.
var otherExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".svg": {}, ".ico": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".eot": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".jar": {}, ".bin": {}, ".exe": {},
	".lock": {}, ".snap": {}, ".golden": {}, ".csv": {}, ".parquet": {},
}

// workflowDirPrefixes mark CI automation paths.
var workflowDirPrefixes = []string{
	".github/workflows/",
	".github/actions/",
	".gitlab/",
	".circleci/",
	".buildkite/",
}

// ClassifyPath maps a changed path to exactly one FileCategory using the
// ranked rule table. First match wins and exclusions are checked before
// inclusions. A path that matches no rule at all is counted conservatively
// as Source so an ambiguous change can never downgrade enforcement to Skip
// or Informational.
func ClassifyPath(path string) schema.FileCategory {
	path = normalizePath(path)
	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(path))

	// 1. Generated/migration exclusions beat everything, including Source.
	if matchesExclusion(path, base) {
		return schema.OtherCategory
	}

	// 2. Test directories and test file conventions.
	if matchesTest(path, base) {
		return schema.TestCategory
	}

	// 3. Source extensions.
	if _, ok := sourceExtensions[ext]; ok {
		return schema.SourceCategory
	}

	// 4. Structured-data config and project/build files.
	if _, ok := configExtensions[ext]; ok {
		return schema.ConfigCategory
	}
	if _, ok := configBaseNames[base]; ok {
		return schema.ConfigCategory
	}

	// 5. CI automation directories.
	for _, prefix := range workflowDirPrefixes {
		if strings.HasPrefix(path, prefix) {
			return schema.WorkflowCategory
		}
	}

	// 6. Documentation.
	if _, ok := docExtensions[ext]; ok {
		return schema.DocumentationCategory
	}
	if _, ok := docBaseNames[base]; ok {
		return schema.DocumentationCategory
	}

	// 7. Recognized assets and artifacts.
	if _, ok := otherExtensions[ext]; ok {
		return schema.OtherCategory
	}

	// Unclassifiable: count as Source so the strictest mode applies.
	return schema.SourceCategory
}

// ClassifyFiles returns per-category counts for a changed-path sequence.
// An empty input yields all-zero counts, not an error. Duplicate paths are
// each counted, but their classification is identical.
func ClassifyFiles(paths []string) schema.CategoryCounts {
	counts := make(schema.CategoryCounts, len(schema.AllFileCategories))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		counts[ClassifyPath(p)]++
	}
	return counts
}

func matchesExclusion(path, base string) bool {
	for _, seg := range strings.Split(path, "/") {
		if _, ok := excludedDirSegments[strings.ToLower(seg)]; ok {
			return true
		}
	}
	for _, suffix := range excludedSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func matchesTest(path, base string) bool {
	for _, seg := range strings.Split(filepath.Dir(path), "/") {
		if _, ok := testDirSegments[strings.ToLower(seg)]; ok {
			return true
		}
	}
	for _, pat := range testBasePatterns {
		if ok, err := filepath.Match(strings.ToLower(pat), base); err == nil && ok {
			return true
		}
	}
	return false
}

// normalizePath converts a path to forward slashes without a leading "./".
func normalizePath(path string) string {
	path = strings.ReplaceAll(strings.TrimSpace(path), "\\", "/")
	return strings.TrimPrefix(path, "./")
}
