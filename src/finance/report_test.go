package finance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReportScenarioA(t *testing.T) {
	b, err := ComputeScore(scenarioA())
	require.NoError(t, err)

	report := FormatReport(b)

	assert.True(t, strings.HasPrefix(report, "Financial Wellness Score: 68/100\n"))
	assert.Contains(t, report, "Credit Utilization: Excellent (5.0%)\n")
	assert.Contains(t, report, "Savings Rate: Excellent (40.0%)\n")
	assert.Contains(t, report, "Emergency Fund: Low (1.7 months)\n")
	assert.Contains(t, report, "Investment Diversification: None detected\n")
	assert.Contains(t, report, "Debt To Income: Excellent (2.0%)\n")
	assert.Contains(t, report, "Overall: your financial health is fair.\n")

	// Factor lines come out in the documented fixed order.
	assert.Less(t,
		strings.Index(report, "Credit Utilization"),
		strings.Index(report, "Savings Rate"))
	assert.Less(t,
		strings.Index(report, "Savings Rate"),
		strings.Index(report, "Emergency Fund"))
	assert.Less(t,
		strings.Index(report, "Investment Diversification"),
		strings.Index(report, "Debt To Income"))
}

func TestFormatReportDeterministic(t *testing.T) {
	b, err := ComputeScore(scenarioA())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, FormatReport(b), FormatReport(b))
	}
}

func TestTierComments(t *testing.T) {
	cases := []struct {
		score int
		tier  string
	}{
		{100, "excellent"},
		{90, "excellent"},
		{89, "good"},
		{75, "good"},
		{74, "fair"},
		{60, "fair"},
		{59, "needs improvement"},
		{0, "needs improvement"},
	}

	for _, c := range cases {
		assert.Equal(t, c.tier, tierComment(c.score), "score=%d", c.score)
	}
}

func TestRecommendationsScenarioA(t *testing.T) {
	b, err := ComputeScore(scenarioA())
	require.NoError(t, err)

	recs := Recommendations(b)
	categories := make([]string, 0, len(recs))
	for _, r := range recs {
		categories = append(categories, r.Category)
	}

	// Scenario A: healthy spending and debt, no investments, thin emergency fund.
	assert.Contains(t, categories, "investment")
	assert.Contains(t, categories, "savings")
	assert.NotContains(t, categories, "spending")
	assert.NotContains(t, categories, "debt")
}

func TestLabelCase(t *testing.T) {
	assert.Equal(t, "Credit Utilization", labelCase("credit_utilization"))
	assert.Equal(t, "Debt To Income", labelCase("debt_to_income"))
	assert.Equal(t, "Equity", labelCase("equity"))
}
