// src/finance/metrics.go
package finance

// categoryDeposit marks aggregator-categorized income; such transactions are
// excluded from monthly expenses regardless of sign.
const categoryDeposit = "Deposit"

// Metrics are the scalar financial indicators derived from a Snapshot. They
// ride along on every ScoreBreakdown so callers can show the underlying
// numbers next to the qualitative labels.
type Metrics struct {
	MonthlyIncome     float64 `json:"monthly_income"`
	MonthlyExpenses   float64 `json:"monthly_expenses"`
	TotalSavings      float64 `json:"total_savings"`
	TotalDebt         float64 `json:"total_debt"`
	CreditUtilization float64 `json:"credit_utilization"`
}

// TotalBySubtype sums current balances over accounts matching a subtype.
// Accounts without a current balance contribute nothing.
func TotalBySubtype(accounts []Account, subtype string) float64 {
	var total float64
	for _, acc := range accounts {
		if acc.Subtype != subtype {
			continue
		}
		if acc.Balances.Current != nil {
			total += *acc.Balances.Current
		}
	}
	return total
}

// CreditUsed sums utilized revolving credit across credit-card accounts.
// Only cards carrying both a limit and an available balance count; utilized
// is limit minus available, floored at zero.
func CreditUsed(accounts []Account) float64 {
	var used float64
	for _, acc := range accounts {
		if acc.Subtype != SubtypeCreditCard {
			continue
		}
		if acc.Balances.Limit == nil || acc.Balances.Available == nil {
			continue
		}
		if u := *acc.Balances.Limit - *acc.Balances.Available; u > 0 {
			used += u
		}
	}
	return used
}

// CreditLimitTotal sums limits over credit-card accounts that declare one.
// A zero total downstream means "no credit cards".
func CreditLimitTotal(accounts []Account) float64 {
	var total float64
	for _, acc := range accounts {
		if acc.Subtype != SubtypeCreditCard {
			continue
		}
		if acc.Balances.Limit != nil && *acc.Balances.Limit > 0 {
			total += *acc.Balances.Limit
		}
	}
	return total
}

// MonthlyIncome returns the first declared income stream's monthly figure,
// or 0 when no income data is available. Zero is not an error; the ladder
// treats it as a "no income data" branch.
func MonthlyIncome(s Snapshot) float64 {
	if len(s.IncomeStreams) == 0 {
		return 0
	}
	return s.IncomeStreams[0].MonthlyIncome
}

// MonthlyExpenses sums outflows over the snapshot's transaction window.
// Positive amounts are outflows; deposits are excluded by category.
func MonthlyExpenses(transactions []Transaction) float64 {
	var total float64
	for _, tx := range transactions {
		if tx.Amount <= 0 {
			continue
		}
		if tx.HasCategory(categoryDeposit) {
			continue
		}
		total += tx.Amount
	}
	return total
}

// TotalInvestmentValue sums current market value across holdings.
func TotalInvestmentValue(holdings []Holding) float64 {
	var total float64
	for _, h := range holdings {
		total += h.InstitutionValue
	}
	return total
}

// TotalDebt is utilized revolving credit plus outstanding loan balances.
func TotalDebt(accounts []Account) float64 {
	debt := CreditUsed(accounts)
	for _, acc := range accounts {
		if acc.Type != AccountTypeLoan {
			continue
		}
		if acc.Balances.Current != nil {
			debt += *acc.Balances.Current
		}
	}
	return debt
}

// Aggregate reduces a snapshot to the Metrics the score ladder consumes.
// Utilization is left at zero when no card declares a limit; the calculator
// distinguishes that case via CreditLimitTotal.
func Aggregate(s Snapshot) Metrics {
	m := Metrics{
		MonthlyIncome:   MonthlyIncome(s),
		MonthlyExpenses: MonthlyExpenses(s.Transactions),
		TotalSavings:    TotalBySubtype(s.Accounts, SubtypeSavings),
		TotalDebt:       TotalDebt(s.Accounts),
	}
	if limit := CreditLimitTotal(s.Accounts); limit > 0 {
		m.CreditUtilization = CreditUsed(s.Accounts) / limit
	}
	return m
}
