// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/contract"
)

// NewMCPServer initializes and configures the riskline MCP server
// without starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store auditstore.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Riskline Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: analyze_portfolio ---
	s.AddTool(mcp.NewTool("analyze_portfolio",
		mcp.WithDescription("Run a full risk analysis over a project schedule and return the portfolio summary plus ranked assessments."),
		mcp.WithString("input_file", mcp.Description("Path to a CSV or JSON activity file (defaults to the built-in sample portfolio).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked assessments returned.")),
	), h.handleAnalyzePortfolio)

	// --- 2. Tool: get_top_risks ---
	s.AddTool(mcp.NewTool("get_top_risks",
		mcp.WithDescription("Return only the highest-ranked risk activities with their factor breakdowns."),
		mcp.WithString("input_file", mcp.Description("Path to a CSV or JSON activity file.")),
		mcp.WithNumber("limit", mcp.Description("Number of top risks to return (default 10).")),
		mcp.WithString("severity", mcp.Description("Minimum severity to include (low, medium, high, critical)."), mcp.Enum("low", "medium", "high", "critical")),
	), h.handleGetTopRisks)

	return s
}

// StartMCPServer starts the riskline MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store auditstore.Store) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
