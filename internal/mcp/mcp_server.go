// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"time"

	"github.com/huangsam/burndown/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Burndown MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Burndown Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		now:     time.Now,
	}

	seriesArgs := []mcp.ToolOption{
		mcp.WithString("file_path", mcp.Description("Path to a .csv, .tsv, .xlsx or .parquet ticket export."), mcp.Required()),
		mcp.WithString("interval", mcp.Description("Axis interval. Defaults to 'bi-weekly'."), mcp.Enum("daily", "weekly", "bi-weekly", "monthly")),
		mcp.WithString("start", mcp.Description("First date of the range (YYYY-MM-DD or e.g. '3 months ago').")),
		mcp.WithString("end", mcp.Description("Last date of the range (YYYY-MM-DD or e.g. '2 months from now').")),
		mcp.WithString("as_of", mcp.Description("Date separating history from projection. Defaults to today.")),
		mcp.WithNumber("velocity", mcp.Description("Story points burned per interval. Derived from history when omitted or 0.")),
	}

	// --- 1. Tool: get_burndown ---
	s.AddTool(mcp.NewTool("get_burndown",
		append([]mcp.ToolOption{
			mcp.WithDescription("Build a burndown series with a velocity-based projection from a ticket export."),
		}, seriesArgs...)...,
	), h.handleGetBurndown)

	// --- 2. Tool: get_burndown_chart ---
	s.AddTool(mcp.NewTool("get_burndown_chart",
		append([]mcp.ToolOption{
			mcp.WithDescription("Render the burndown series of a ticket export as a PNG chart."),
		}, seriesArgs...)...,
	), h.handleGetBurndownChart)

	return s
}

// StartMCPServer starts the Burndown MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
