package datasource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylart2025S/VTHacks/src/finance"
)

func TestExchangePublicTokenStable(t *testing.T) {
	src := NewSandboxSource()

	creds, err := src.ExchangePublicToken(context.Background(), "public-sandbox-abc123")
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-abc123", creds.AccessToken)
	assert.Equal(t, "item-sandbox-abc123", creds.ItemID)

	_, err = src.ExchangePublicToken(context.Background(), "")
	assert.Error(t, err)
}

func TestFetchSnapshotDeterministicPerToken(t *testing.T) {
	src := NewSandboxSource()
	ctx := context.Background()

	first, err := src.FetchSnapshot(ctx, "access-sandbox-user-1", 30)
	require.NoError(t, err)
	second, err := src.FetchSnapshot(ctx, "access-sandbox-user-1", 30)
	require.NoError(t, err)

	assert.Equal(t, first.Accounts, second.Accounts)
	assert.Equal(t, first.IncomeStreams, second.IncomeStreams)
	require.Equal(t, len(first.Transactions), len(second.Transactions))
	for i := range first.Transactions {
		assert.Equal(t, first.Transactions[i].TransactionID, second.Transactions[i].TransactionID)
		assert.Equal(t, first.Transactions[i].Amount, second.Transactions[i].Amount)
	}

	other, err := src.FetchSnapshot(ctx, "access-sandbox-user-2", 30)
	require.NoError(t, err)
	assert.NotEqual(t, first.Accounts[0].Balances.Current, other.Accounts[0].Balances.Current)
}

func TestFetchSnapshotShape(t *testing.T) {
	src := NewSandboxSource()

	s, err := src.FetchSnapshot(context.Background(), "access-sandbox-shape", 30)
	require.NoError(t, err)

	// The generated snapshot passes the scoring engine's structural checks.
	require.NoError(t, s.Validate())

	require.Len(t, s.Accounts, 3)
	var card *finance.Account
	for i := range s.Accounts {
		if s.Accounts[i].Subtype == finance.SubtypeCreditCard {
			card = &s.Accounts[i]
		}
	}
	require.NotNil(t, card, "sandbox data always includes a credit card")
	require.NotNil(t, card.Balances.Limit)
	require.NotNil(t, card.Balances.Available)
	assert.LessOrEqual(t, *card.Balances.Current, *card.Balances.Limit)

	// Paycheck deposits are inflows and categorized as such.
	var deposits int
	for _, tx := range s.Transactions {
		if tx.HasCategory("Deposit") {
			deposits++
			assert.Negative(t, tx.Amount)
		}
	}
	assert.Equal(t, 2, deposits)

	// Every holding's security is resolvable.
	for _, h := range s.Holdings {
		_, ok := s.Security(h.SecurityID)
		assert.True(t, ok)
	}

	// And the whole thing scores without error.
	_, err = finance.ComputeScore(s)
	assert.NoError(t, err)
}

func TestFetchSnapshotEmptyToken(t *testing.T) {
	src := NewSandboxSource()
	_, err := src.FetchSnapshot(context.Background(), "", 30)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
