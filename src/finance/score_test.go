package finance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenarioA is the documented end-to-end case: checking $10,000, savings
// $5,000, one card at 5% utilization, $5,000 declared income, $3,000 of
// computed expenses, no holdings, $100 of revolving debt.
func scenarioA() Snapshot {
	return Snapshot{
		Accounts: []Account{
			{AccountID: "chk", Type: AccountTypeDepository, Subtype: SubtypeChecking,
				Balances: Balances{Current: fptr(10000)}},
			{AccountID: "sav", Type: AccountTypeDepository, Subtype: SubtypeSavings,
				Balances: Balances{Current: fptr(5000)}},
			{AccountID: "cc", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
				Balances: Balances{Current: fptr(100), Available: fptr(1900), Limit: fptr(2000)}},
		},
		Transactions: []Transaction{
			{TransactionID: "t1", AccountID: "chk", Amount: 1800, MerchantName: "Rent LLC"},
			{TransactionID: "t2", AccountID: "chk", Amount: 1200, MerchantName: "Groceries"},
			{TransactionID: "t3", AccountID: "chk", Amount: -5000, MerchantName: "Employer", Category: []string{"Deposit"}},
		},
		IncomeStreams: []IncomeStream{{MonthlyIncome: 5000}},
	}
}

func TestComputeScoreScenarioA(t *testing.T) {
	b, err := ComputeScore(scenarioA())
	require.NoError(t, err)

	// 30 (util 5%) + 25 (rate 40%) + 3 (1.67 months) + 0 (no holdings) + 10 (DTI 2%)
	assert.Equal(t, 68, b.Score)
	assert.Equal(t, "Excellent (5.0%)", b.Breakdown[FactorCreditUtilization])
	assert.Equal(t, "Excellent (40.0%)", b.Breakdown[FactorSavingsRate])
	assert.Equal(t, "Low (1.7 months)", b.Breakdown[FactorEmergencyFund])
	assert.Equal(t, "None detected", b.Breakdown[FactorDiversification])
	assert.Equal(t, "Excellent (2.0%)", b.Breakdown[FactorDebtToIncome])

	assert.Equal(t, 5000.0, b.Metrics.MonthlyIncome)
	assert.Equal(t, 3000.0, b.Metrics.MonthlyExpenses)
	assert.Equal(t, 5000.0, b.Metrics.TotalSavings)
	assert.Equal(t, 100.0, b.Metrics.TotalDebt)
	assert.InDelta(t, 0.05, b.Metrics.CreditUtilization, 1e-9)
}

func TestComputeScoreScenarioBEmptySnapshot(t *testing.T) {
	b, err := ComputeScore(Snapshot{})
	require.NoError(t, err)

	// Only the no-credit-cards neutral branch contributes.
	assert.Equal(t, 15, b.Score)
	assert.Equal(t, "No credit cards detected", b.Breakdown[FactorCreditUtilization])
	assert.Equal(t, "No income data", b.Breakdown[FactorSavingsRate])
	assert.Equal(t, "No expense data", b.Breakdown[FactorEmergencyFund])
	assert.Equal(t, "None detected", b.Breakdown[FactorDiversification])
	assert.Equal(t, "No income data", b.Breakdown[FactorDebtToIncome])
}

func TestComputeScoreBounds(t *testing.T) {
	snapshots := []Snapshot{
		{},
		scenarioA(),
		{ // everything maxed out
			Accounts: []Account{
				{AccountID: "sav", Type: AccountTypeDepository, Subtype: SubtypeSavings,
					Balances: Balances{Current: fptr(100000)}},
				{AccountID: "cc", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
					Balances: Balances{Current: fptr(0), Available: fptr(10000), Limit: fptr(10000)}},
			},
			Transactions:  []Transaction{{TransactionID: "t1", AccountID: "sav", Amount: 1000}},
			Holdings:      []Holding{{AccountID: "sav", SecurityID: "s1", InstitutionValue: 500000}},
			IncomeStreams: []IncomeStream{{MonthlyIncome: 10000}},
		},
		{ // deep in debt
			Accounts: []Account{
				{AccountID: "cc", Type: AccountTypeCredit, Subtype: SubtypeCreditCard,
					Balances: Balances{Current: fptr(9500), Available: fptr(500), Limit: fptr(10000)}},
				{AccountID: "loan", Type: AccountTypeLoan, Subtype: "personal",
					Balances: Balances{Current: fptr(50000)}},
			},
			Transactions:  []Transaction{{TransactionID: "t1", AccountID: "cc", Amount: 4000}},
			IncomeStreams: []IncomeStream{{MonthlyIncome: 3000}},
		},
	}

	for _, s := range snapshots {
		b, err := ComputeScore(s)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.Score, 0)
		assert.LessOrEqual(t, b.Score, 100)
	}
}

func TestUtilizationMonotonicity(t *testing.T) {
	// Decreasing utilization never decreases the factor's contribution.
	snapshotAt := func(available float64) Snapshot {
		s := scenarioA()
		s.Accounts[2].Balances.Available = fptr(available)
		return s
	}

	var prev int
	first := true
	// available 0 -> utilization 100%, available 2000 -> 0%.
	for available := 0.0; available <= 2000; available += 100 {
		b, err := ComputeScore(snapshotAt(available))
		require.NoError(t, err)
		if !first {
			assert.GreaterOrEqual(t, b.Score, prev, "available=%v", available)
		}
		prev = b.Score
		first = false
	}
}

func TestZeroIncomeNeutrality(t *testing.T) {
	s := scenarioA()
	s.IncomeStreams = nil

	b, err := ComputeScore(s)
	require.NoError(t, err)

	assert.Equal(t, "No income data", b.Breakdown[FactorSavingsRate])
	assert.Equal(t, "No income data", b.Breakdown[FactorDebtToIncome])
	// 30 (util) + 0 + 3 (emergency) + 0 + 0
	assert.Equal(t, 33, b.Score)
}

func TestComputeScoreIdempotent(t *testing.T) {
	s := scenarioA()

	first, err := ComputeScore(s)
	require.NoError(t, err)
	second, err := ComputeScore(s)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	// Serialized form is byte-identical too (json maps marshal sorted).
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestComputeScoreMalformedSnapshot(t *testing.T) {
	s := Snapshot{Accounts: []Account{{AccountID: "broken"}}} // no current balance

	_, err := ComputeScore(s)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}

func TestDecodeSnapshot(t *testing.T) {
	raw := []byte(`{
		"accounts": [
			{"account_id": "chk", "type": "depository", "subtype": "checking",
			 "balances": {"current": 1200.50, "available": 1100}}
		],
		"transactions": [
			{"transaction_id": "t1", "account_id": "chk", "amount": 25.10,
			 "date": "2025-09-01", "merchant_name": "Starbucks", "category": ["Food and Drink"]}
		],
		"holdings": [],
		"securities": []
	}`)

	s, err := DecodeSnapshot(raw)
	require.NoError(t, err)
	require.Len(t, s.Accounts, 1)
	assert.Equal(t, 1200.50, *s.Accounts[0].Balances.Current)
	require.Len(t, s.Transactions, 1)
	assert.True(t, s.Transactions[0].HasCategory("Food and Drink"))

	_, err = DecodeSnapshot([]byte(`{"accounts": "nope"}`))
	assert.ErrorIs(t, err, ErrMalformedSnapshot)

	_, err = DecodeSnapshot([]byte(`{"accounts": [{"account_id": "x", "balances": {}}]}`))
	assert.ErrorIs(t, err, ErrMalformedSnapshot)
}
