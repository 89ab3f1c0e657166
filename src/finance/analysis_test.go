package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func analysisSnapshot() Snapshot {
	return Snapshot{
		Accounts: []Account{
			{AccountID: "chk", Type: AccountTypeDepository, Subtype: SubtypeChecking,
				Balances: Balances{Current: fptr(4000)}},
			{AccountID: "cc", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
				Balances: Balances{Current: fptr(600), Available: fptr(1400), Limit: fptr(2000)}},
		},
		Transactions: []Transaction{
			{TransactionID: "t1", AccountID: "chk", Amount: 80.50, MerchantName: "Starbucks"},
			{TransactionID: "t2", AccountID: "chk", Amount: 45.00, MerchantName: "Starbucks"},
			{TransactionID: "t3", AccountID: "chk", Amount: 32.00, MerchantName: "Uber"},
			{TransactionID: "t4", AccountID: "chk", Amount: 250.00, MerchantName: "CREDIT CARD PAYMENT"},
			{TransactionID: "t5", AccountID: "chk", Amount: -2500, MerchantName: "Employer", Category: []string{"Deposit"}},
		},
		Holdings: []Holding{
			{AccountID: "inv", SecurityID: "s1", InstitutionValue: 9000, Quantity: 30},
			{AccountID: "inv", SecurityID: "s2", InstitutionValue: 500, Quantity: 2},
		},
		Securities: []Security{
			{SecurityID: "s1", TickerSymbol: "VOO", Type: "equity"},
			{SecurityID: "s2", TickerSymbol: "BTC", Type: "crypto"},
		},
	}
}

func TestAnalyzeSpendingPatterns(t *testing.T) {
	out := AnalyzeSpendingPatterns(analysisSnapshot())

	assert.Contains(t, out, "SPENDING ANALYSIS:")
	// Starbucks totals 125.50 and outranks the single payments.
	assert.Contains(t, out, "- Starbucks: $125.50")
	assert.Contains(t, out, "Total spending: $407.50")
	// Deposits never count as spending.
	assert.NotContains(t, out, "Employer")
	// Ride spend above threshold triggers the transport suggestion.
	assert.Contains(t, out, "rideshare")
}

func TestAnalyzeSpendingPatternsDeterministic(t *testing.T) {
	s := analysisSnapshot()
	assert.Equal(t, AnalyzeSpendingPatterns(s), AnalyzeSpendingPatterns(s))
}

func TestOptimizeDebtRepayment(t *testing.T) {
	out := OptimizeDebtRepayment(analysisSnapshot())

	assert.Contains(t, out, "CREDIT CARD PAYMENT: $250.00")
	assert.Contains(t, out, "Total monthly debt payments: $250.00")
	assert.Contains(t, out, "Credit card debt recommendations:")
	assert.Contains(t, out, "Outstanding debt across accounts: $600.00")
}

func TestOptimizeDebtRepaymentNoPayments(t *testing.T) {
	out := OptimizeDebtRepayment(Snapshot{})
	assert.Contains(t, out, "No specific debt payments identified")
	assert.Contains(t, out, "General debt repayment strategy:")
}

func TestAnalyzeInvestmentPortfolio(t *testing.T) {
	out := AnalyzeInvestmentPortfolio(analysisSnapshot())

	assert.Contains(t, out, "Total portfolio value: $9500.00")
	assert.Contains(t, out, "- Equity: $9000.00 (94.7%)")
	assert.Contains(t, out, "- Crypto: $500.00 (5.3%)")
	// 94.7% in one class trips the concentration warning.
	assert.Contains(t, out, "concentrated in one asset class")
}

func TestAnalyzeInvestmentPortfolioEmpty(t *testing.T) {
	out := AnalyzeInvestmentPortfolio(Snapshot{})
	assert.Contains(t, out, "Total portfolio value: $0.00")
	assert.Contains(t, out, "Start building your investment portfolio")
}
