// src/finance/score.go
package finance

import "fmt"

// Factor names, used as breakdown keys and for report ordering.
const (
	FactorCreditUtilization = "credit_utilization"
	FactorSavingsRate       = "savings_rate"
	FactorEmergencyFund     = "emergency_fund"
	FactorDiversification   = "investment_diversification"
	FactorDebtToIncome      = "debt_to_income"
)

// factorOrder fixes the breakdown's presentation order.
var factorOrder = []string{
	FactorCreditUtilization,
	FactorSavingsRate,
	FactorEmergencyFund,
	FactorDiversification,
	FactorDebtToIncome,
}

// Neutral contribution when no credit card declares a limit. Half of the
// factor's 30-point range: no revolving history is neither good nor bad.
const noCreditCardsPoints = 15

// ScoreBreakdown is the scoring engine's sole output: a composite score
// clamped to [0,100], a qualitative status per factor, and the underlying
// aggregated metrics. Produced fresh on every call.
type ScoreBreakdown struct {
	Score     int               `json:"score"`
	Breakdown map[string]string `json:"breakdown"`
	Metrics   Metrics           `json:"metrics"`
}

// ComputeScore transforms a snapshot into a composite wellness score using
// five independently weighted factors:
//
//	credit utilization 30, savings rate 25, emergency fund 20,
//	investment diversification 15, debt-to-income 10.
//
// Each factor applies its first matching tier, highest to lowest. Ratios
// with zero denominators take a defined neutral branch instead of failing;
// the only error is a structurally malformed snapshot.
func ComputeScore(s Snapshot) (ScoreBreakdown, error) {
	if err := s.Validate(); err != nil {
		return ScoreBreakdown{}, err
	}

	m := Aggregate(s)
	breakdown := make(map[string]string, len(factorOrder))
	score := 0

	points, status := scoreCreditUtilization(s.Accounts, m)
	score += points
	breakdown[FactorCreditUtilization] = status

	points, status = scoreSavingsRate(m)
	score += points
	breakdown[FactorSavingsRate] = status

	points, status = scoreEmergencyFund(m)
	score += points
	breakdown[FactorEmergencyFund] = status

	points, status = scoreDiversification(s.Holdings, m)
	score += points
	breakdown[FactorDiversification] = status

	points, status = scoreDebtToIncome(m)
	score += points
	breakdown[FactorDebtToIncome] = status

	return ScoreBreakdown{
		Score:     clampScore(score),
		Breakdown: breakdown,
		Metrics:   m,
	}, nil
}

// scoreCreditUtilization awards up to 30 points. Without any declared limit
// there is no utilization to judge, so the factor lands mid-range.
func scoreCreditUtilization(accounts []Account, m Metrics) (int, string) {
	if CreditLimitTotal(accounts) <= 0 {
		return noCreditCardsPoints, "No credit cards detected"
	}
	util := m.CreditUtilization
	switch {
	case util < 0.10:
		return 30, fmt.Sprintf("Excellent (%s)", percent(util))
	case util < 0.30:
		return 20, fmt.Sprintf("Good (%s)", percent(util))
	default:
		return 5, fmt.Sprintf("Needs Improvement (%s)", percent(util))
	}
}

// scoreSavingsRate awards up to 25 points from the income left after
// expenses. No declared income means no rate to compute.
func scoreSavingsRate(m Metrics) (int, string) {
	if m.MonthlyIncome <= 0 {
		return 0, "No income data"
	}
	rate := (m.MonthlyIncome - m.MonthlyExpenses) / m.MonthlyIncome
	switch {
	case rate > 0.20:
		return 25, fmt.Sprintf("Excellent (%s)", percent(rate))
	case rate > 0.10:
		return 15, fmt.Sprintf("Good (%s)", percent(rate))
	default:
		return 5, fmt.Sprintf("Needs Improvement (%s)", percent(rate))
	}
}

// scoreEmergencyFund awards up to 20 points for months of expenses covered
// by savings balances.
func scoreEmergencyFund(m Metrics) (int, string) {
	if m.MonthlyExpenses <= 0 {
		return 0, "No expense data"
	}
	months := m.TotalSavings / m.MonthlyExpenses
	switch {
	case months >= 6:
		return 20, fmt.Sprintf("Strong (%.1f months)", months)
	case months >= 3:
		return 12, fmt.Sprintf("Adequate (%.1f months)", months)
	default:
		return 3, fmt.Sprintf("Low (%.1f months)", months)
	}
}

// scoreDiversification awards up to 15 points for holding investments, with
// full marks once the portfolio exceeds three months of income.
func scoreDiversification(holdings []Holding, m Metrics) (int, string) {
	if len(holdings) == 0 {
		return 0, "None detected"
	}
	value := TotalInvestmentValue(holdings)
	if value > 3*m.MonthlyIncome {
		return 15, fmt.Sprintf("Well funded ($%.2f)", value)
	}
	return 8, fmt.Sprintf("Growing ($%.2f)", value)
}

// scoreDebtToIncome awards up to 10 points for total debt relative to
// monthly income.
func scoreDebtToIncome(m Metrics) (int, string) {
	if m.MonthlyIncome <= 0 {
		return 0, "No income data"
	}
	ratio := m.TotalDebt / m.MonthlyIncome
	switch {
	case ratio < 0.20:
		return 10, fmt.Sprintf("Excellent (%s)", percent(ratio))
	case ratio < 0.40:
		return 6, fmt.Sprintf("Manageable (%s)", percent(ratio))
	default:
		return 0, fmt.Sprintf("High (%s)", percent(ratio))
	}
}

// clampScore bounds the additive total to [0,100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
