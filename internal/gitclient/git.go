// Package gitclient has the git client.
package gitclient

import "github.com/huangsam/covgate/internal/contract"

// GitClient defines the necessary operations for resolving changed paths and
// commit shape. This allows the core gate logic to be tested without needing
// a real git executable.
type GitClient = contract.GitClient
