package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/amckenna/riskline/schema"
)

// topRisksInPrompt caps how many ranked risks the prompt includes.
const topRisksInPrompt = 5

const narrativePrompt = `You are a project risk analyst writing the insight section of a risk report.

You will receive a portfolio summary and the highest-ranked risks as JSON.

Write a short narrative (two or three paragraphs, plain prose, no markdown) covering:
- The overall risk posture of the portfolio.
- Which activities deserve attention first and why.
- Any concentration of risk on the critical path or in cost exposure.

Do not repeat raw numbers the summary table already shows; interpret them.

Here is the data:
`

// promptRisk is the minimal risk view sent to the model.
type promptRisk struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Severity string  `json:"severity"`
	EMV      float64 `json:"emv"`
	Critical bool    `json:"critical_path"`
}

// AnthropicGenerator produces narratives through the Anthropic API.
type AnthropicGenerator struct {
	inner anthropic.Client
	model anthropic.Model
}

var _ Generator = &AnthropicGenerator{} // Compile-time check

// NewAnthropicGenerator creates a generator. apiKey defaults to the
// ANTHROPIC_API_KEY env var; model defaults to Claude Sonnet.
func NewAnthropicGenerator(apiKey, model string) (*AnthropicGenerator, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	inner := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)

	m := anthropic.ModelClaudeSonnet4_0
	if model != "" {
		m = anthropic.Model(model)
	}

	return &AnthropicGenerator{inner: inner, model: m}, nil
}

// Narrative asks the model for the insight text.
func (g *AnthropicGenerator) Narrative(ctx context.Context, summary schema.PortfolioSummary, top []schema.RiskAssessment) (string, error) {
	prompt, err := buildPrompt(summary, top)
	if err != nil {
		return "", err
	}

	resp, err := g.inner.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.model,
		MaxTokens: int64(1024),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	var text string
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("anthropic returned an empty narrative")
	}
	return text, nil
}

// buildPrompt serializes the summary and top risks into the prompt.
func buildPrompt(summary schema.PortfolioSummary, top []schema.RiskAssessment) (string, error) {
	limit := min(len(top), topRisksInPrompt)
	risks := make([]promptRisk, 0, limit)
	for i := 0; i < limit; i++ {
		ra := &top[i]
		risks = append(risks, promptRisk{
			ID:       ra.Activity.ID,
			Name:     ra.Activity.Name,
			Score:    ra.Score,
			Severity: string(ra.Severity),
			EMV:      ra.Activity.EMV(),
			Critical: ra.Activity.IsCriticalPath,
		})
	}

	payload := struct {
		Summary  schema.PortfolioSummary `json:"summary"`
		TopRisks []promptRisk            `json:"top_risks"`
	}{Summary: summary, TopRisks: risks}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal risk summary: %w", err)
	}
	return narrativePrompt + string(data), nil
}
