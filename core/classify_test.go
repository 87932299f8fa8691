package core

import (
	"testing"

	"github.com/huangsam/covgate/schema"
	"github.com/stretchr/testify/assert"
)

func TestClassifyPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want schema.FileCategory
	}{
		// Exclusions always win, even under a source directory.
		{"migration under source dir", "src/db/migrations/0001_init.sql", schema.OtherCategory},
		{"generated protobuf", "internal/api/service.pb.go", schema.OtherCategory},
		{"vendored code", "vendor/github.com/pkg/errors/errors.go", schema.OtherCategory},
		{"minified asset", "web/static/app.min.js", schema.OtherCategory},

		// Test conventions beat source extensions.
		{"go test file", "core/policy_test.go", schema.TestCategory},
		{"pytest file", "scripts/test_deploy.py", schema.TestCategory},
		{"jest spec", "web/src/button.spec.ts", schema.TestCategory},
		{"testdata fixture", "core/testdata/head.json", schema.TestCategory},
		{"tests directory", "tests/helpers.py", schema.TestCategory},

		// Source extensions.
		{"go source", "core/policy.go", schema.SourceCategory},
		{"python source", "scripts/deploy.py", schema.SourceCategory},
		{"typescript source", "web/src/button.ts", schema.SourceCategory},

		// Config extensions and project files.
		{"yaml config", "config/settings.yaml", schema.ConfigCategory},
		{"module file", "go.mod", schema.ConfigCategory},
		{"dockerfile", "Dockerfile", schema.ConfigCategory},
		// Workflow YAML matches the config-extension rule first; the
		// workflow rule catches the remaining automation files.
		{"workflow yaml", ".github/workflows/ci.yml", schema.ConfigCategory},
		{"workflow trigger file", ".github/workflows/trigger", schema.WorkflowCategory},

		// Documentation.
		{"markdown", "docs/guide.md", schema.DocumentationCategory},
		{"license file", "LICENSE", schema.DocumentationCategory},

		// Recognized assets.
		{"image", "assets/logo.png", schema.OtherCategory},
		{"lock file", "poetry.lock", schema.OtherCategory},

		// Unclassifiable paths count as Source so enforcement stays strict.
		{"unknown extension", "bin/run.xyz", schema.SourceCategory},
		{"bare name", "mystery", schema.SourceCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPath(tt.path))
		})
	}
}

func TestClassifyFiles(t *testing.T) {
	paths := []string{
		"core/policy.go",
		"core/policy_test.go",
		"docs/guide.md",
		"config/settings.yaml",
		"vendor/lib/lib.go",
	}
	counts := ClassifyFiles(paths)

	assert.Equal(t, 1, counts.Source())
	assert.Equal(t, 1, counts.Test())
	assert.Equal(t, 1, counts[schema.ConfigCategory])
	assert.Equal(t, 1, counts[schema.DocumentationCategory])
	assert.Equal(t, 1, counts[schema.OtherCategory])
	assert.Equal(t, 5, counts.Total())
}

func TestClassifyFilesEmpty(t *testing.T) {
	counts := ClassifyFiles(nil)
	assert.Equal(t, 0, counts.Total())

	counts = ClassifyFiles([]string{"", "  "})
	assert.Equal(t, 0, counts.Total())
}

func TestClassifyFilesDuplicatesAreDeterministic(t *testing.T) {
	paths := []string{"core/policy.go", "core/policy.go"}
	counts := ClassifyFiles(paths)

	// Each occurrence is counted, but both land in the same category.
	assert.Equal(t, 2, counts.Source())
	assert.Equal(t, counts, ClassifyFiles(paths))
}

func TestClassifyPathNormalization(t *testing.T) {
	assert.Equal(t, schema.SourceCategory, ClassifyPath("./core/policy.go"))
	assert.Equal(t, schema.TestCategory, ClassifyPath("core\\testdata\\head.json"))
}
