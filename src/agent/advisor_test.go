package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylart2025S/VTHacks/src/finance"
)

func TestRegistryRegisterAndList(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll(DefaultTools()...)

	assert.Equal(t, []string{
		"get_financial_score",
		"analyze_spending_patterns",
		"optimize_debt_repayment",
		"analyze_investment_portfolio",
	}, r.List())

	tool, ok := r.Get("get_financial_score")
	require.True(t, ok)
	assert.Equal(t, "get_financial_score", tool.Name())

	_, ok = r.Get("nonexistent")
	assert.False(t, ok)

	decls := r.Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, "get_financial_score", decls[0].Name)
	assert.NotEmpty(t, decls[0].Description)
}

func TestScoreToolFormatsReport(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll(DefaultTools()...)
	tool, ok := r.Get("get_financial_score")
	require.True(t, ok)

	out, err := tool.Call(context.Background(), finance.Snapshot{}, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Financial Wellness Score: 15/100"), out)
}

func TestParseAdvice(t *testing.T) {
	advice, err := parseAdvice(`{"financial_score": 72, "key_recommendations": ["a", "b", "c"]}`)
	require.NoError(t, err)
	assert.Equal(t, 72, advice.FinancialScore)
	assert.Len(t, advice.KeyRecommendations, 3)
	assert.Empty(t, advice.RawText)

	advice, err = parseAdvice("```json\n{\"financial_score\": 140, \"key_recommendations\": []}\n```")
	require.NoError(t, err)
	assert.Equal(t, 100, advice.FinancialScore, "score is clamped")

	advice, err = parseAdvice("Your finances look fine overall.")
	require.NoError(t, err)
	assert.Equal(t, "Your finances look fine overall.", advice.RawText)

	_, err = parseAdvice("   ")
	assert.ErrorIs(t, err, ErrAdvisorUnavailable)
}

func TestCleanModelJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go: {\"a\":1} hope that helps", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, cleanModelJSON(tc.in), "input=%q", tc.in)
	}
}

func TestNewAdvisorRequiresKey(t *testing.T) {
	_, err := NewAdvisor(context.Background(), "", "gemini-2.5-pro")
	assert.ErrorIs(t, err, ErrAdvisorUnavailable)
}
