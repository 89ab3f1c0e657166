// src/finance/analysis.go
package finance

import (
	"fmt"
	"sort"
	"strings"
)

// The analysis functions below are the advisor agent's remaining tools.
// Like the score, they are pure functions of the snapshot: deterministic
// text out, no I/O, safe to call concurrently.

// merchantTotal pairs a merchant with its summed outflow.
type merchantTotal struct {
	Merchant string
	Amount   float64
}

// AnalyzeSpendingPatterns groups outflows by merchant and reports the top
// spending areas with simple targeted suggestions.
func AnalyzeSpendingPatterns(s Snapshot) string {
	totals := make(map[string]float64)
	for _, tx := range s.Transactions {
		if tx.Amount <= 0 || tx.HasCategory(categoryDeposit) {
			continue
		}
		merchant := tx.MerchantName
		if merchant == "" {
			merchant = tx.Name
		}
		if merchant == "" {
			merchant = "Unknown"
		}
		totals[merchant] += tx.Amount
	}

	ranked := make([]merchantTotal, 0, len(totals))
	var totalSpending float64
	for merchant, amount := range totals {
		ranked = append(ranked, merchantTotal{merchant, amount})
		totalSpending += amount
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].Merchant < ranked[j].Merchant
	})
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}

	var sb strings.Builder
	sb.WriteString("SPENDING ANALYSIS:\n")
	sb.WriteString("Top spending areas:\n")
	for _, mt := range ranked {
		fmt.Fprintf(&sb, "- %s: $%.2f\n", mt.Merchant, mt.Amount)
	}
	fmt.Fprintf(&sb, "\nTotal spending: $%.2f\n", totalSpending)

	sb.WriteString("\nRECOMMENDATIONS:\n")
	var foodSpending, rideSpending float64
	for merchant, amount := range totals {
		lower := strings.ToLower(merchant)
		switch {
		case strings.Contains(lower, "starbucks"), strings.Contains(lower, "mcdonald"),
			strings.Contains(lower, "kfc"), strings.Contains(lower, "restaurant"):
			foodSpending += amount
		case strings.Contains(lower, "uber"), strings.Contains(lower, "lyft"):
			rideSpending += amount
		}
	}
	if foodSpending > 100 {
		sb.WriteString("- Reduce spending on dining out. Consider cooking more meals at home.\n")
	}
	if rideSpending > 10 {
		sb.WriteString("- Consider public transportation or carpooling to reduce rideshare expenses.\n")
	}
	if foodSpending <= 100 && rideSpending <= 10 {
		sb.WriteString("- No obvious cuts found; keep tracking your largest merchants month over month.\n")
	}

	return sb.String()
}

// OptimizeDebtRepayment inspects payment-like transactions and outstanding
// balances and suggests a repayment strategy.
func OptimizeDebtRepayment(s Snapshot) string {
	var payments []Transaction
	for _, tx := range s.Transactions {
		name := strings.ToUpper(tx.MerchantName + " " + tx.Name)
		if strings.Contains(name, "PAYMENT") {
			payments = append(payments, tx)
		}
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].TransactionID < payments[j].TransactionID
	})

	var sb strings.Builder
	sb.WriteString("DEBT OPTIMIZATION ANALYSIS:\n\n")

	if len(payments) > 0 {
		sb.WriteString("Identified debt payments:\n")
		var total float64
		hasCreditPayment := false
		for _, p := range payments {
			label := p.MerchantName
			if label == "" {
				label = p.Name
			}
			amount := p.Amount
			if amount < 0 {
				amount = -amount
			}
			fmt.Fprintf(&sb, "- %s: $%.2f\n", label, amount)
			total += amount
			if strings.Contains(strings.ToUpper(label), "CREDIT") {
				hasCreditPayment = true
			}
		}
		fmt.Fprintf(&sb, "\nTotal monthly debt payments: $%.2f\n", total)
		if hasCreditPayment {
			sb.WriteString("\nCredit card debt recommendations:\n")
			sb.WriteString("- Pay more than the minimum payment when possible\n")
			sb.WriteString("- Consider a balance transfer card with 0% intro APR for high-interest debt\n")
		}
	} else {
		sb.WriteString("No specific debt payments identified in the transaction data.\n")
	}

	if debt := TotalDebt(s.Accounts); debt > 0 {
		fmt.Fprintf(&sb, "\nOutstanding debt across accounts: $%.2f\n", debt)
	}

	sb.WriteString("\nGeneral debt repayment strategy:\n")
	sb.WriteString("1. Focus on paying high-interest debt first (usually credit cards)\n")
	sb.WriteString("2. Consider debt consolidation if you have multiple high-interest debts\n")
	sb.WriteString("3. Build an emergency fund to avoid taking on new debt for unexpected expenses\n")

	return sb.String()
}

// AnalyzeInvestmentPortfolio breaks holdings down by security type and
// flags concentration and dust positions.
func AnalyzeInvestmentPortfolio(s Snapshot) string {
	totalValue := TotalInvestmentValue(s.Holdings)

	byType := make(map[string]float64)
	var smallPositions int
	for _, h := range s.Holdings {
		secType := "other"
		if sec, ok := s.Security(h.SecurityID); ok && sec.Type != "" {
			secType = sec.Type
		}
		byType[secType] += h.InstitutionValue
		if h.InstitutionValue > 0 && h.InstitutionValue < 100 {
			smallPositions++
		}
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	var sb strings.Builder
	sb.WriteString("INVESTMENT PORTFOLIO ANALYSIS:\n\n")
	fmt.Fprintf(&sb, "Total portfolio value: $%.2f\n\n", totalValue)

	if totalValue > 0 {
		sb.WriteString("Portfolio breakdown:\n")
		for _, t := range types {
			value := byType[t]
			fmt.Fprintf(&sb, "- %s: $%.2f (%.1f%%)\n", labelCase(t), value, value/totalValue*100)
		}
	}

	sb.WriteString("\nINVESTMENT RECOMMENDATIONS:\n")
	if totalValue > 0 {
		var maxAllocation float64
		for _, value := range byType {
			if value > maxAllocation {
				maxAllocation = value
			}
		}
		if maxAllocation/totalValue > 0.7 {
			sb.WriteString("- Your portfolio is concentrated in one asset class. Consider spreading investments out.\n")
		}
		if crypto := byType["crypto"] + byType["cryptocurrency"]; crypto/totalValue > 0.2 {
			sb.WriteString("- Your cryptocurrency allocation is high. Consider reducing exposure to this volatile asset class.\n")
		}
		if smallPositions > 3 {
			sb.WriteString("- Consider consolidating smaller positions to reduce management complexity.\n")
		}
	} else {
		sb.WriteString("- Start building your investment portfolio with low-cost index funds.\n")
	}
	sb.WriteString("- Review your investment allocation quarterly to ensure it aligns with your goals.\n")

	return sb.String()
}
