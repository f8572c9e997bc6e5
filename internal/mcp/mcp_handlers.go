package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/burndown/core"
	"github.com/huangsam/burndown/internal/chart"
	"github.com/huangsam/burndown/internal/contract"
	"github.com/huangsam/burndown/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
	now     func() time.Time
}

// requestConfig clones the base config and applies the tool arguments to it.
func (h *toolHandler) requestConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateInputFile(cfg, request.GetString("file_path", "")); err != nil {
		return nil, err
	}
	err := contract.RevalidateSeries(cfg,
		request.GetString("interval", ""),
		request.GetString("start", ""),
		request.GetString("end", ""),
		request.GetString("as_of", ""),
		request.GetFloat("velocity", 0),
		h.now(),
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (h *toolHandler) handleGetBurndown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid burndown parameters: %v", err)), nil
	}

	result, err := core.GetBurndownResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("burndown failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBurndownChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.requestConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid burndown parameters: %v", err)), nil
	}

	result, err := core.GetBurndownResult(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("burndown failed: %v", err)), nil
	}

	var buf bytes.Buffer
	opts := chart.Options{Format: schema.PNGChart, Width: cfg.ChartWidth, Height: cfg.ChartHeight}
	if err := chart.Render(&buf, result, opts); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("chart rendering failed: %v", err)), nil
	}

	return mcp.NewToolResultImage(chart.Title(result), base64.StdEncoding.EncodeToString(buf.Bytes()), "image/png"), nil
}
