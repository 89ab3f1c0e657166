// src/agent/advisor.go
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/skylart2025S/VTHacks/src/finance"
	"github.com/skylart2025S/VTHacks/src/logger"
)

// maxToolRounds bounds the function-calling loop.
const maxToolRounds = 6

var ErrAdvisorUnavailable = errors.New("advisor unavailable")

const systemPrompt = `You are a financial advisor focused on optimizing spending and investment strategies.

Analyze the user's financial data with particular attention to:
- Transaction patterns and spending categories
- Investment allocations and diversification
- Income to expense ratio

Use the available tools to ground every number you state.

Your final response must include:
1. A financial wellness score (0-100)
2. Three specific recommendations to improve financial health:
   - One recommendation on spending habits (e.g. "Reduce fast food spending by $X per month")
   - One recommendation on investment strategy (e.g. "Reallocate X% from crypto to index funds")
   - One recommendation on debt management or savings (e.g. "Increase emergency fund by $X")

Be precise with dollar amounts and percentages when possible.
Each recommendation should directly help increase the financial wellness score.

Respond with STRICT JSON only, no code fences and no other text:
{"financial_score": <int>, "key_recommendations": ["...", "...", "..."]}`

// Advice is the structured answer returned to clients.
type Advice struct {
	FinancialScore     int      `json:"financial_score"`
	KeyRecommendations []string `json:"key_recommendations"`
	RawText            string   `json:"raw_text,omitempty"`
}

// Advisor drives a Gemini function-calling loop over the financial tools.
type Advisor struct {
	client   *genai.Client
	model    string
	registry *Registry
}

// NewAdvisor builds an advisor with the default tool set. The API key comes
// from configuration; an empty key fails fast rather than at first request.
func NewAdvisor(ctx context.Context, apiKey, model string) (*Advisor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrAdvisorUnavailable)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	registry := NewRegistry()
	registry.RegisterAll(DefaultTools()...)
	return &Advisor{client: client, model: model, registry: registry}, nil
}

// Advise answers a user question against their snapshot, letting the model
// call the analysis tools as needed before producing its structured answer.
func (a *Advisor) Advise(ctx context.Context, snapshot finance.Snapshot, question string) (Advice, error) {
	log := logger.FromContext(ctx)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Tools: []*genai.Tool{
			{FunctionDeclarations: a.registry.Declarations()},
		},
		Temperature: genai.Ptr[float32](0.1),
	}

	if strings.TrimSpace(question) == "" {
		question = "Analyze my financial situation and provide a personalized financial plan."
	}
	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: question}}},
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
		if err != nil {
			return Advice{}, fmt.Errorf("%w: %v", ErrAdvisorUnavailable, err)
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			return Advice{}, fmt.Errorf("%w: empty response", ErrAdvisorUnavailable)
		}

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return parseAdvice(resp.Text())
		}

		contents = append(contents, resp.Candidates[0].Content)
		var responses []*genai.Part
		for _, call := range calls {
			tool, ok := a.registry.Get(call.Name)
			if !ok {
				log.Warn("Model requested unknown tool", "tool", call.Name)
				responses = append(responses, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: map[string]any{"error": "unknown tool"},
				}})
				continue
			}

			output, err := tool.Call(ctx, snapshot, call.Args)
			if err != nil {
				log.Warn("Tool execution failed", "tool", call.Name, "error", err)
				responses = append(responses, &genai.Part{FunctionResponse: &genai.FunctionResponse{
					Name:     call.Name,
					Response: map[string]any{"error": err.Error()},
				}})
				continue
			}
			log.Debug("Tool executed", "tool", call.Name, "round", round)
			responses = append(responses, &genai.Part{FunctionResponse: &genai.FunctionResponse{
				Name:     call.Name,
				Response: map[string]any{"output": output},
			}})
		}
		contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: responses})
	}

	return Advice{}, fmt.Errorf("%w: tool loop did not converge", ErrAdvisorUnavailable)
}

// parseAdvice extracts the structured answer; when the model ignored the
// format instructions the raw text is preserved so the client still gets
// something usable.
func parseAdvice(raw string) (Advice, error) {
	if strings.TrimSpace(raw) == "" {
		return Advice{}, fmt.Errorf("%w: empty answer", ErrAdvisorUnavailable)
	}

	var advice Advice
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &advice); err != nil {
		return Advice{RawText: strings.TrimSpace(raw)}, nil
	}
	if advice.FinancialScore < 0 {
		advice.FinancialScore = 0
	}
	if advice.FinancialScore > 100 {
		advice.FinancialScore = 100
	}
	return advice, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the model
// ignores the strict-JSON instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
