package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/contract"
	mcp_internal "github.com/amckenna/riskline/internal/mcp"
	"github.com/amckenna/riskline/schema"
)

func baseConfig() *contract.Config {
	return &contract.Config{
		ResultLimit: contract.DefaultResultLimit,
		Precision:   contract.DefaultPrecision,
		Output:      schema.TextOut,
		Weights:     schema.DefaultWeights(),
		Thresholds:  schema.DefaultThresholds(),
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func TestMCPServerAnalyzePortfolio(t *testing.T) {
	store := auditstore.NewMockStore()
	s := mcp_internal.NewMCPServer(baseConfig(), store)

	// No input_file uses the built-in sample portfolio.
	res := callTool(t, s, "analyze_portfolio", map[string]any{})
	require.False(t, res.IsError)

	var payload struct {
		Summary     schema.PortfolioSummary `json:"summary"`
		Assessments []json.RawMessage       `json:"assessments"`
	}
	text := res.Content[0].(mcp.TextContent).Text
	require.NoError(t, json.Unmarshal([]byte(text), &payload))
	assert.Greater(t, payload.Summary.TotalActivities, 0)
	assert.NotEmpty(t, payload.Assessments)

	// The run itself is audited.
	assert.Contains(t, store.Names(), auditstore.EventAnalysisRun)
}

func TestMCPServerAnalyzePortfolioBadInput(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), auditstore.NewMockStore())

	res := callTool(t, s, "analyze_portfolio", map[string]any{
		"input_file": "nope.csv",
	})
	assert.True(t, res.IsError, "The response should indicate an error state")
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "loading activities failed")
}

func TestMCPServerGetTopRisks(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), auditstore.NewMockStore())

	t.Run("limit applies", func(t *testing.T) {
		res := callTool(t, s, "get_top_risks", map[string]any{"limit": 2.0})
		require.False(t, res.IsError)

		var risks []struct {
			Rank     int             `json:"rank"`
			Score    float64         `json:"score"`
			Severity schema.Severity `json:"severity"`
		}
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &risks))
		require.Len(t, risks, 2)
		assert.Equal(t, 1, risks[0].Rank)
		assert.GreaterOrEqual(t, risks[0].Score, risks[1].Score)
	})

	t.Run("severity filter applies", func(t *testing.T) {
		res := callTool(t, s, "get_top_risks", map[string]any{"severity": "high"})
		require.False(t, res.IsError)

		var risks []struct {
			Severity schema.Severity `json:"severity"`
		}
		text := res.Content[0].(mcp.TextContent).Text
		require.NoError(t, json.Unmarshal([]byte(text), &risks))
		for _, r := range risks {
			assert.GreaterOrEqual(t, schema.SeverityRank(r.Severity), schema.SeverityRank(schema.SeverityHigh))
		}
	})

	t.Run("unknown severity rejected", func(t *testing.T) {
		res := callTool(t, s, "get_top_risks", map[string]any{"severity": "mild"})
		assert.True(t, res.IsError)
	})
}
