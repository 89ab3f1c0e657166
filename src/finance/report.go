// src/finance/report.go
package finance

import (
	"fmt"
	"strings"
)

// FormatReport renders a ScoreBreakdown into a deterministic textual
// summary: header, one label-cased line per factor in fixed order, a tier
// comment keyed by score band, and categorized recommendations. Pure text
// generation — identical input yields an identical string.
func FormatReport(b ScoreBreakdown) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Financial Wellness Score: %d/100\n\n", b.Score)

	for _, factor := range factorOrder {
		status, ok := b.Breakdown[factor]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "%s: %s\n", labelCase(factor), status)
	}

	fmt.Fprintf(&sb, "\nOverall: your financial health is %s.\n", tierComment(b.Score))

	if recs := Recommendations(b); len(recs) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for _, rec := range recs {
			fmt.Fprintf(&sb, "- [%s] %s\n", rec.Category, rec.Text)
		}
	}

	return sb.String()
}

// Recommendation is one categorized piece of advice derived from a
// breakdown. Categories are spending, debt, investment and savings.
type Recommendation struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Recommendations derives categorized advice from a breakdown. The output
// depends only on the breakdown's metrics and factor statuses, in the fixed
// order spending, debt, investment, savings.
func Recommendations(b ScoreBreakdown) []Recommendation {
	var recs []Recommendation
	m := b.Metrics

	if m.MonthlyIncome > 0 && m.MonthlyExpenses >= m.MonthlyIncome {
		recs = append(recs, Recommendation{
			Category: "spending",
			Text:     "Spending meets or exceeds income; review recurring expenses and cut the largest category first.",
		})
	} else if m.MonthlyIncome > 0 && (m.MonthlyIncome-m.MonthlyExpenses)/m.MonthlyIncome <= 0.20 {
		recs = append(recs, Recommendation{
			Category: "spending",
			Text:     "Push your savings rate above 20% of income by trimming discretionary spending.",
		})
	}

	if m.CreditUtilization >= 0.10 {
		recs = append(recs, Recommendation{
			Category: "debt",
			Text:     fmt.Sprintf("Pay revolving balances down below 10%% utilization (currently %s).", percent(m.CreditUtilization)),
		})
	} else if m.MonthlyIncome > 0 && m.TotalDebt/m.MonthlyIncome >= 0.20 {
		recs = append(recs, Recommendation{
			Category: "debt",
			Text:     "Direct extra payments at your highest-interest debt to bring debt-to-income under 20%.",
		})
	}

	if b.Breakdown[FactorDiversification] == "None detected" {
		recs = append(recs, Recommendation{
			Category: "investment",
			Text:     "Start an investment position, even a small one; low-cost index funds are a common first step.",
		})
	}

	if m.MonthlyExpenses > 0 && m.TotalSavings/m.MonthlyExpenses < 6 {
		recs = append(recs, Recommendation{
			Category: "savings",
			Text:     "Grow your emergency fund toward six months of expenses.",
		})
	}

	return recs
}

// tierComment maps a score to its qualitative band. The four bands cover
// the whole range with no gaps or overlaps.
func tierComment(score int) string {
	switch {
	case score >= 90:
		return "excellent"
	case score >= 75:
		return "good"
	case score >= 60:
		return "fair"
	default:
		return "needs improvement"
	}
}

// labelCase turns a factor key into a display label: underscores to spaces,
// title case per word.
func labelCase(factor string) string {
	words := strings.Split(factor, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
