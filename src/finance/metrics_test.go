package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestTotalBySubtype(t *testing.T) {
	accounts := []Account{
		{AccountID: "a1", Type: AccountTypeDepository, Subtype: SubtypeChecking, Balances: Balances{Current: fptr(10000)}},
		{AccountID: "a2", Type: AccountTypeDepository, Subtype: SubtypeSavings, Balances: Balances{Current: fptr(5000)}},
		{AccountID: "a3", Type: AccountTypeDepository, Subtype: SubtypeSavings, Balances: Balances{Current: fptr(2500)}},
	}

	assert.Equal(t, 10000.0, TotalBySubtype(accounts, SubtypeChecking))
	assert.Equal(t, 7500.0, TotalBySubtype(accounts, SubtypeSavings))
	assert.Equal(t, 0.0, TotalBySubtype(accounts, SubtypeCreditCard))
}

func TestCreditUsedAndLimit(t *testing.T) {
	accounts := []Account{
		{AccountID: "cc1", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
			Balances: Balances{Current: fptr(100), Available: fptr(1900), Limit: fptr(2000)}},
		// No limit declared: excluded from both used and limit totals.
		{AccountID: "cc2", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
			Balances: Balances{Current: fptr(300), Available: fptr(700)}},
	}

	assert.Equal(t, 100.0, CreditUsed(accounts))
	assert.Equal(t, 2000.0, CreditLimitTotal(accounts))
}

func TestCreditUsedFloorsAtZero(t *testing.T) {
	// Available above limit (e.g. overpaid card) must not produce negative usage.
	accounts := []Account{
		{AccountID: "cc1", Subtype: SubtypeCreditCard,
			Balances: Balances{Current: fptr(0), Available: fptr(2100), Limit: fptr(2000)}},
	}
	assert.Equal(t, 0.0, CreditUsed(accounts))
}

func TestMonthlyExpensesExcludesInflowsAndDeposits(t *testing.T) {
	transactions := []Transaction{
		{TransactionID: "t1", Amount: 2000},
		{TransactionID: "t2", Amount: 1000},
		{TransactionID: "t3", Amount: -5000},                                  // inflow
		{TransactionID: "t4", Amount: 5000, Category: []string{"Deposit"}},    // categorized income
		{TransactionID: "t5", Amount: 42, Category: []string{"Food", "Fast"}}, // normal spend
	}

	assert.Equal(t, 3042.0, MonthlyExpenses(transactions))
}

func TestMonthlyIncomeFirstStreamOrZero(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyIncome(Snapshot{}))

	s := Snapshot{IncomeStreams: []IncomeStream{{MonthlyIncome: 5000}, {MonthlyIncome: 1200}}}
	assert.Equal(t, 5000.0, MonthlyIncome(s))
}

func TestTotalDebtCombinesCardsAndLoans(t *testing.T) {
	accounts := []Account{
		{AccountID: "cc", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
			Balances: Balances{Current: fptr(100), Available: fptr(1900), Limit: fptr(2000)}},
		{AccountID: "loan", Type: AccountTypeLoan, Subtype: "student",
			Balances: Balances{Current: fptr(8000)}},
	}

	assert.Equal(t, 8100.0, TotalDebt(accounts))
}

func TestAggregateZeroLimitLeavesUtilizationZero(t *testing.T) {
	m := Aggregate(Snapshot{Accounts: []Account{
		{AccountID: "a1", Type: AccountTypeDepository, Subtype: SubtypeChecking, Balances: Balances{Current: fptr(500)}},
	}})
	assert.Equal(t, 0.0, m.CreditUtilization)
}
