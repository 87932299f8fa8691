package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/covgate/core"
	"github.com/huangsam/covgate/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	git     contract.GitClient
	mgr     contract.HistoryManager
}

// applyChangeSource copies the change-source parameters from the request
// into a per-request config clone.
func (h *toolHandler) applyChangeSource(request mcp.CallToolRequest) *contract.Config {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if ref := request.GetString("base_ref", ""); ref != "" {
		cfg.BaseRef = ref
	}
	if ref := request.GetString("target_ref", ""); ref != "" {
		cfg.TargetRef = ref
	}
	if cfg.TargetRef == "" {
		cfg.TargetRef = contract.DefaultTargetRef
	}
	if f := request.GetString("changed_file", ""); f != "" {
		cfg.ChangedFile = f
	}
	return cfg
}

func (h *toolHandler) handleEvaluateGate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyChangeSource(request)
	cfg.HeadReportPath = request.GetString("head_report", "")
	cfg.BaseReportPath = request.GetString("base_report", "")
	if v := request.GetFloat("min_line_coverage", 0); v > 0 {
		cfg.Thresholds.MinLine = v
	}
	if v := request.GetFloat("min_branch_coverage", 0); v > 0 {
		cfg.Thresholds.MinBranch = v
	}

	result, err := core.ExecuteGateCheck(ctx, cfg, h.git, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("gate evaluation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyChanges(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.applyChangeSource(request)

	result, err := core.ExecuteClassification(ctx, cfg, h.git)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
