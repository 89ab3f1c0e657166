// src/finance/snapshot.go
package finance

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedSnapshot is returned when the input data does not conform to
// the expected record shapes. It is the only failure mode of the scoring
// engine; degraded metrics (zero denominators, empty lists) are absorbed
// into neutral branches and never surface as errors.
var ErrMalformedSnapshot = errors.New("malformed financial snapshot")

// Account types as delivered by the data aggregator.
const (
	AccountTypeDepository = "depository"
	AccountTypeInvestment = "investment"
	AccountTypeCredit     = "credit"
	AccountTypeLoan       = "loan"
)

// Account subtypes the scoring engine cares about.
const (
	SubtypeChecking   = "checking"
	SubtypeSavings    = "savings"
	SubtypeCreditCard = "credit card"
)

// Balances carries an account's balance set. Current is required; Available
// and Limit are optional and only credit cards carry a Limit.
type Balances struct {
	Current   *float64 `json:"current"`
	Available *float64 `json:"available,omitempty"`
	Limit     *float64 `json:"limit,omitempty"`
}

// Account is one institution's container for funds or debt. The scoring
// engine treats it as a read-only snapshot record.
type Account struct {
	AccountID string   `json:"account_id"`
	Name      string   `json:"name,omitempty"`
	Type      string   `json:"type"`
	Subtype   string   `json:"subtype"`
	Balances  Balances `json:"balances"`
}

// Transaction is one posted or pending cash movement. Positive Amount is an
// outflow (expense), negative is an inflow (income) — the aggregator's
// convention, applied uniformly.
type Transaction struct {
	TransactionID string   `json:"transaction_id"`
	AccountID     string   `json:"account_id"`
	Amount        float64  `json:"amount"`
	Date          string   `json:"date"`
	Name          string   `json:"name,omitempty"`
	MerchantName  string   `json:"merchant_name,omitempty"`
	Category      []string `json:"category,omitempty"`
}

// Holding is one investment position, joined to a Security via SecurityID.
type Holding struct {
	AccountID        string  `json:"account_id"`
	SecurityID       string  `json:"security_id"`
	InstitutionValue float64 `json:"institution_value"`
	CostBasis        float64 `json:"cost_basis"`
	Quantity         float64 `json:"quantity"`
}

// Security describes an instrument referenced by holdings. A holding whose
// security is absent from the snapshot is treated as unknown/untyped.
type Security struct {
	SecurityID   string `json:"security_id"`
	TickerSymbol string `json:"ticker_symbol,omitempty"`
	Name         string `json:"name,omitempty"`
	Type         string `json:"type,omitempty"`
}

// IncomeStream is a declared income source. Only the first stream's monthly
// figure feeds the score.
type IncomeStream struct {
	Name          string  `json:"name,omitempty"`
	MonthlyIncome float64 `json:"monthly_income"`
}

/// Snapshot is the sole input to the scoring engine: an immutable
// point-in-time bundle of a user's accounts, transactions (bounded window,
// typically trailing 30 days), holdings, securities and declared income.
type Snapshot struct {
	Accounts      []Account      `json:"accounts"`
	Transactions  []Transaction  `json:"transactions"`
	Holdings      []Holding      `json:"holdings"`
	Securities    []Security     `json:"securities"`
	IncomeStreams []IncomeStream `json:"income_streams,omitempty"`
}

// DecodeSnapshot parses a JSON document into a Snapshot and validates it.
// Structural problems come back wrapped in ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Validate performs the single structural check at the snapshot boundary.
// Optional fields default downstream; a record missing its required fields
// entirely makes the whole snapshot malformed.
func (s Snapshot) Validate() error {
	for i, acc := range s.Accounts {
		if acc.AccountID == "" {
			return fmt.Errorf("%w: account %d missing account_id", ErrMalformedSnapshot, i)
		}
		if acc.Balances.Current == nil {
			return fmt.Errorf("%w: account %q missing current balance", ErrMalformedSnapshot, acc.AccountID)
		}
	}
	for i, h := range s.Holdings {
		if h.InstitutionValue < 0 {
			return fmt.Errorf("%w: holding %d has negative institution_value", ErrMalformedSnapshot, i)
		}
	}
	return nil
}

// Security returns the security referenced by a holding, if present.
func (s Snapshot) Security(securityID string) (Security, bool) {
	for _, sec := range s.Securities {
		if sec.SecurityID == securityID {
			return sec, true
		}
	}
	return Security{}, false
}

// HasCategory reports whether the transaction's category set contains the
// given entry (case-sensitive, as delivered by the aggregator).
func (t Transaction) HasCategory(category string) bool {
	for _, c := range t.Category {
		if c == category {
			return true
		}
	}
	return false
}
