// src/agent/tools.go
package agent

import (
	"context"

	"github.com/skylart2025S/VTHacks/src/finance"
)

// snapshotTool wraps a pure analysis function over the user's snapshot.
type snapshotTool struct {
	name        string
	description string
	run         func(finance.Snapshot) (string, error)
}

func (t snapshotTool) Name() string        { return t.name }
func (t snapshotTool) Description() string { return t.description }

func (t snapshotTool) Call(ctx context.Context, s finance.Snapshot, _ map[string]any) (string, error) {
	return t.run(s)
}

// DefaultTools returns the advisor's built-in financial analysis tools.
func DefaultTools() []Tool {
	return []Tool{
		snapshotTool{
			name:        "get_financial_score",
			description: "Calculate the user's financial wellness score (0-100) with a factor-by-factor breakdown covering credit utilization, savings rate, emergency fund, diversification and debt-to-income.",
			run: func(s finance.Snapshot) (string, error) {
				breakdown, err := finance.ComputeScore(s)
				if err != nil {
					return "", err
				}
				return finance.FormatReport(breakdown), nil
			},
		},
		snapshotTool{
			name:        "analyze_spending_patterns",
			description: "Analyze the user's transactions: top merchants by total spend, overall outflow, and concrete spending reduction suggestions.",
			run: func(s finance.Snapshot) (string, error) {
				return finance.AnalyzeSpendingPatterns(s), nil
			},
		},
		snapshotTool{
			name:        "optimize_debt_repayment",
			description: "Review the user's credit card balances, loan payments and outstanding debt, and suggest a repayment strategy.",
			run: func(s finance.Snapshot) (string, error) {
				return finance.OptimizeDebtRepayment(s), nil
			},
		},
		snapshotTool{
			name:        "analyze_investment_portfolio",
			description: "Break the user's holdings down by security type and flag concentration, crypto exposure and dust positions.",
			run: func(s finance.Snapshot) (string, error) {
				return finance.AnalyzeInvestmentPortfolio(s), nil
			},
		},
	}
}
