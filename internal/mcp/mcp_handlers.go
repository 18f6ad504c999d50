package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/amckenna/riskline/core"
	"github.com/amckenna/riskline/internal/auditstore"
	"github.com/amckenna/riskline/internal/contract"
	"github.com/amckenna/riskline/internal/loader"
	"github.com/amckenna/riskline/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   auditstore.Store
}

// riskView is the JSON shape returned for a single ranked assessment.
type riskView struct {
	Rank     int                          `json:"rank"`
	ID       string                       `json:"id"`
	Name     string                       `json:"name"`
	Score    float64                      `json:"score"`
	Severity schema.Severity              `json:"severity"`
	Factors  map[schema.FactorKey]float64 `json:"factors"`
	EMV      float64                      `json:"emv"`
}

func (h *toolHandler) handleAnalyzePortfolio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input_file", ""); p != "" {
		cfg.InputFile = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	records, err := loader.LoadRecords(cfg.InputFile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading activities failed: %v", err)), nil
	}

	result := core.RunAnalysis(cfg, records, h.store)

	assessments := result.Assessments
	if len(assessments) > cfg.ResultLimit {
		assessments = assessments[:cfg.ResultLimit]
	}

	payload := struct {
		Summary     schema.PortfolioSummary `json:"summary"`
		Assessments []riskView              `json:"assessments"`
		Rejections  []schema.Rejection      `json:"rejections"`
	}{
		Summary:     result.Summary,
		Assessments: toRiskViews(assessments),
		Rejections:  result.Rejections,
	}

	jsonData, _ := json.MarshalIndent(payload, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTopRisks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input_file", ""); p != "" {
		cfg.InputFile = p
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	minRank := 0
	if s := request.GetString("severity", ""); s != "" {
		sev := schema.Severity(s)
		if schema.SeverityRank(sev) < 0 {
			return mcp.NewToolResultError(fmt.Sprintf("unknown severity: %s", s)), nil
		}
		minRank = schema.SeverityRank(sev)
	}

	records, err := loader.LoadRecords(cfg.InputFile)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading activities failed: %v", err)), nil
	}

	result := core.RunAnalysis(cfg, records, h.store)

	top := make([]schema.RiskAssessment, 0, limit)
	for _, a := range result.Assessments {
		if schema.SeverityRank(a.Severity) < minRank {
			continue
		}
		top = append(top, a)
		if len(top) == limit {
			break
		}
	}

	jsonData, _ := json.MarshalIndent(toRiskViews(top), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func toRiskViews(assessments []schema.RiskAssessment) []riskView {
	views := make([]riskView, len(assessments))
	for i, a := range assessments {
		views[i] = riskView{
			Rank:     i + 1,
			ID:       a.Activity.ID,
			Name:     a.Activity.Name,
			Score:    a.Score,
			Severity: a.Severity,
			Factors:  a.Factors,
			EMV:      a.Activity.EMV(),
		}
	}
	return views
}
