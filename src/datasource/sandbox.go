// src/datasource/sandbox.go
package datasource

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skylart2025S/VTHacks/src/finance"
)

// SandboxSource generates realistic per-user financial data without any
// network I/O, mirroring what the aggregator's sandbox environment returns.
// Data is seeded from the access token, so the same item always produces
// the same accounts, merchants and amounts.
type SandboxSource struct{}

func NewSandboxSource() *SandboxSource {
	return &SandboxSource{}
}

var sandboxVendors = []struct {
	Name     string
	Category []string
	Min, Max float64
}{
	{"Starbucks", []string{"Food and Drink", "Coffee Shop"}, 4, 18},
	{"McDonald's", []string{"Food and Drink", "Fast Food"}, 6, 25},
	{"Amazon", []string{"Shops", "Online Marketplaces"}, 10, 180},
	{"Uber", []string{"Travel", "Transportation"}, 8, 45},
	{"Netflix", []string{"Service", "Entertainment"}, 16, 16},
	{"Spotify", []string{"Service", "Entertainment"}, 11, 11},
	{"Target", []string{"Shops", "Department Stores"}, 15, 140},
	{"Walmart", []string{"Shops", "Department Stores"}, 12, 160},
	{"Shell", []string{"Travel", "Gas Stations"}, 25, 70},
	{"Chipotle", []string{"Food and Drink", "Restaurants"}, 9, 22},
}

var sandboxTickers = []struct {
	Symbol string
	Name   string
	Type   string
}{
	{"AAPL", "Apple Inc.", "equity"},
	{"GOOGL", "Alphabet Inc.", "equity"},
	{"MSFT", "Microsoft Corporation", "equity"},
	{"TSLA", "Tesla, Inc.", "equity"},
	{"VOO", "Vanguard S&P 500 ETF", "etf"},
	{"NVDA", "NVIDIA Corporation", "equity"},
	{"BTC", "Bitcoin", "crypto"},
}

func (s *SandboxSource) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	return "link-sandbox-" + uuid.New().String(), nil
}

func (s *SandboxSource) ExchangePublicToken(ctx context.Context, publicToken string) (ItemCredentials, error) {
	if publicToken == "" {
		return ItemCredentials{}, fmt.Errorf("exchange public token: empty token")
	}
	// The sandbox item inherits the public token's identity so repeated
	// exchanges of the same token land on the same data.
	suffix := strings.TrimPrefix(publicToken, "public-sandbox-")
	return ItemCredentials{
		AccessToken:     "access-sandbox-" + suffix,
		ItemID:          "item-sandbox-" + suffix,
		InstitutionName: "First Platypus Bank",
	}, nil
}

func (s *SandboxSource) FetchSnapshot(ctx context.Context, accessToken string, days int) (finance.Snapshot, error) {
	if accessToken == "" {
		return finance.Snapshot{}, ErrItemNotFound
	}
	if days <= 0 {
		days = 30
	}

	rng := rand.New(rand.NewSource(seedFor(accessToken)))
	now := time.Now()

	checking := roundCents(1500 + rng.Float64()*18500)
	savings := roundCents(500 + rng.Float64()*29500)
	limit := float64(1000 * (2 + rng.Intn(9))) // $2k..$10k
	used := roundCents(limit * rng.Float64() * 0.6)
	available := roundCents(limit - used)
	suffix := rng.Intn(10000)

	checkingAvailable := roundCents(checking * 0.9)
	savingsAvailable := savings
	accounts := []finance.Account{
		{
			AccountID: fmt.Sprintf("sandbox-checking-%04d", suffix),
			Name:      "Checking Account",
			Type:      finance.AccountTypeDepository,
			Subtype:   finance.SubtypeChecking,
			Balances:  finance.Balances{Current: &checking, Available: &checkingAvailable},
		},
		{
			AccountID: fmt.Sprintf("sandbox-savings-%04d", suffix),
			Name:      "Savings Account",
			Type:      finance.AccountTypeDepository,
			Subtype:   finance.SubtypeSavings,
			Balances:  finance.Balances{Current: &savings, Available: &savingsAvailable},
		},
		{
			AccountID: fmt.Sprintf("sandbox-credit-%04d", suffix),
			Name:      "Credit Card",
			Type:      finance.AccountTypeCredit,
			Subtype:   finance.SubtypeCreditCard,
			Balances:  finance.Balances{Current: &used, Available: &available, Limit: &limit},
		},
	}
	checkingID := accounts[0].AccountID

	monthlyIncome := roundCents(3000 + rng.Float64()*5500)

	var transactions []finance.Transaction
	count := 12 + rng.Intn(14)
	for i := 0; i < count; i++ {
		vendor := sandboxVendors[rng.Intn(len(sandboxVendors))]
		amount := roundCents(vendor.Min + rng.Float64()*(vendor.Max-vendor.Min))
		daysAgo := 1 + rng.Intn(days)
		transactions = append(transactions, finance.Transaction{
			TransactionID: fmt.Sprintf("sandbox-tx-%04d-%d", suffix, i),
			AccountID:     checkingID,
			Amount:        amount,
			Date:          now.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			Name:          vendor.Name,
			MerchantName:  vendor.Name,
			Category:      vendor.Category,
		})
	}
	// Two paychecks over the trailing month, categorized as deposits.
	for i := 0; i < 2; i++ {
		transactions = append(transactions, finance.Transaction{
			TransactionID: fmt.Sprintf("sandbox-deposit-%04d-%d", suffix, i),
			AccountID:     checkingID,
			Amount:        -roundCents(monthlyIncome / 2),
			Date:          now.AddDate(0, 0, -(3 + 14*i)).Format("2006-01-02"),
			Name:          "ACME Payroll",
			MerchantName:  "ACME Payroll",
			Category:      []string{"Transfer", "Deposit"},
		})
	}

	var holdings []finance.Holding
	var securities []finance.Security
	if rng.Float64() < 0.8 { // most sandbox users hold something
		positions := 3 + rng.Intn(3)
		perm := rng.Perm(len(sandboxTickers))
		for i := 0; i < positions; i++ {
			ticker := sandboxTickers[perm[i]]
			securityID := fmt.Sprintf("sandbox-sec-%04d-%d", suffix, i)
			quantity := 1 + rng.Float64()*99
			price := 50 + rng.Float64()*450
			value := roundCents(quantity * price)
			securities = append(securities, finance.Security{
				SecurityID:   securityID,
				TickerSymbol: ticker.Symbol,
				Name:         ticker.Name,
				Type:         ticker.Type,
			})
			holdings = append(holdings, finance.Holding{
				AccountID:        checkingID,
				SecurityID:       securityID,
				InstitutionValue: value,
				CostBasis:        roundCents(value * (0.8 + rng.Float64()*0.4)),
				Quantity:         quantity,
			})
		}
	}

	return finance.Snapshot{
		Accounts:      accounts,
		Transactions:  transactions,
		Holdings:      holdings,
		Securities:    securities,
		IncomeStreams: []finance.IncomeStream{{Name: "Primary", MonthlyIncome: monthlyIncome}},
	}, nil
}

func seedFor(token string) int64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	return int64(h.Sum64())
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
