// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/covgate/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the covgate MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, git contract.GitClient, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Coverage Gate Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		git:     git,
		mgr:     mgr,
	}

	// --- 1. Tool: evaluate_gate ---
	s.AddTool(mcp.NewTool("evaluate_gate",
		mcp.WithDescription("Evaluate the coverage gate for a change and return the verdict with reasons."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("base_ref", mcp.Description("The base reference for the changed-file diff.")),
		mcp.WithString("target_ref", mcp.Description("The target reference for the changed-file diff. Defaults to HEAD.")),
		mcp.WithString("changed_file", mcp.Description("Path to a newline-delimited changed-path list, replacing the git diff.")),
		mcp.WithString("head_report", mcp.Description("Path to the head coverage report."), mcp.Required()),
		mcp.WithString("base_report", mcp.Description("Path to the base coverage report (optional).")),
		mcp.WithNumber("min_line_coverage", mcp.Description("Minimum acceptable line coverage percentage.")),
		mcp.WithNumber("min_branch_coverage", mcp.Description("Minimum acceptable branch coverage percentage.")),
	), h.handleEvaluateGate)

	// --- 2. Tool: classify_changes ---
	s.AddTool(mcp.NewTool("classify_changes",
		mcp.WithDescription("Classify the changed paths of a change without evaluating coverage."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("base_ref", mcp.Description("The base reference for the changed-file diff.")),
		mcp.WithString("target_ref", mcp.Description("The target reference for the changed-file diff. Defaults to HEAD.")),
		mcp.WithString("changed_file", mcp.Description("Path to a newline-delimited changed-path list, replacing the git diff.")),
	), h.handleClassifyChanges)

	return s
}

// StartMCPServer starts the covgate MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, git contract.GitClient, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, git, mgr)
	return server.ServeStdio(s)
}
