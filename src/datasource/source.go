// src/datasource/source.go
package datasource

import (
	"context"
	"errors"

	"github.com/skylart2025S/VTHacks/src/finance"
)

// ErrItemNotFound is returned when an access token does not map to a
// connected item.
var ErrItemNotFound = errors.New("data source: item not found")

// ItemCredentials are handed back after a public-token exchange.
type ItemCredentials struct {
	AccessToken     string `json:"access_token"`
	ItemID          string `json:"item_id"`
	InstitutionName string `json:"institution_name,omitempty"`
}

// Source is the bank-data aggregator the app talks to. The scoring engine
// never sees this interface; it only receives the decoded snapshot. Real
// network transports (and their pagination/retry behavior) live behind
// implementations of this interface.
type Source interface {
	// CreateLinkToken starts an account-linking flow for a user.
	CreateLinkToken(ctx context.Context, userID string) (string, error)
	// ExchangePublicToken trades the public token from a completed link
	// flow for long-lived item credentials.
	ExchangePublicToken(ctx context.Context, publicToken string) (ItemCredentials, error)
	// FetchSnapshot pulls the item's accounts, transactions over the
	// trailing window, holdings, securities and income data.
	FetchSnapshot(ctx context.Context, accessToken string, days int) (finance.Snapshot, error)
}
