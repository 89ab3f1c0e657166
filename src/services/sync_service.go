// src/services/sync_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/skylart2025S/VTHacks/src/datasource"
	"github.com/skylart2025S/VTHacks/src/finance"
	"github.com/skylart2025S/VTHacks/src/gamification"
	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/models"
)

// SyncService links aggregator items to users and pulls their transactions
// into local storage, awarding XP and achievements as new spending lands.
type SyncService struct {
	db           *sql.DB
	source       datasource.Source
	scoreService *ScoreService
	achievements *gamification.Engine
	windowDays   int
}

func NewSyncService(db *sql.DB, source datasource.Source, scoreService *ScoreService, windowDays int) *SyncService {
	return &SyncService{
		db:           db,
		source:       source,
		scoreService: scoreService,
		achievements: gamification.NewEngine(db),
		windowDays:   windowDays,
	}
}

// SyncResult summarizes what a transaction sync changed.
type SyncResult struct {
	NewTransactions int                  `json:"new_transactions"`
	XPEarned        int                  `json:"xp_earned"`
	Level           int                  `json:"level"`
	LeveledUp       bool                 `json:"leveled_up"`
	NewAchievements []models.Achievement `json:"new_achievements,omitempty"`
}

// CreateLinkToken asks the data source for a link token for the user.
func (s *SyncService) CreateLinkToken(ctx context.Context, userID int64) (string, error) {
	return s.source.CreateLinkToken(ctx, fmt.Sprintf("%d", userID))
}

// LinkItem exchanges a public token for permanent credentials, stores the
// resulting item and seeds its accounts. Safe to call with a token whose
// item is already linked; the existing item is returned.
func (s *SyncService) LinkItem(ctx context.Context, user *models.User, publicToken string) (*models.LinkedItem, error) {
	creds, err := s.source.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, fmt.Errorf("exchanging public token: %w", err)
	}

	existing, err := models.GetLinkedItemByItemID(s.db, creds.ItemID)
	if err == nil {
		if existing.UserID != user.ID {
			return nil, fmt.Errorf("item %s already linked to another user", creds.ItemID)
		}
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	item := &models.LinkedItem{
		UserID:          user.ID,
		ItemID:          creds.ItemID,
		AccessToken:     creds.AccessToken,
		InstitutionName: creds.InstitutionName,
	}
	if err := item.Create(s.db); err != nil {
		return nil, fmt.Errorf("storing linked item: %w", err)
	}

	snapshot, err := s.source.FetchSnapshot(ctx, item.AccessToken, s.windowDays)
	if err != nil {
		return nil, fmt.Errorf("fetching initial snapshot: %w", err)
	}
	if err := s.upsertAccounts(item, snapshot.Accounts); err != nil {
		return nil, err
	}

	s.scoreService.Invalidate(user.ID)
	logger.FromContext(ctx).Info("Item linked", "userID", user.ID, "itemID", item.ItemID, "institution", item.InstitutionName)
	return item, nil
}

// SyncTransactions pulls the trailing window of transactions for every
// linked item, persists the ones not seen before and applies XP, level and
// achievement updates in one pass.
func (s *SyncService) SyncTransactions(ctx context.Context, user *models.User) (SyncResult, error) {
	items, err := models.GetLinkedItemsForUser(s.db, user.ID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("loading linked items: %w", err)
	}

	levelBefore := user.Level
	result := SyncResult{Level: user.Level}
	for i := range items {
		item := &items[i]
		snapshot, err := s.source.FetchSnapshot(ctx, item.AccessToken, s.windowDays)
		if err != nil {
			return SyncResult{}, fmt.Errorf("fetching snapshot for item %s: %w", item.ItemID, err)
		}
		if err := s.upsertAccounts(item, snapshot.Accounts); err != nil {
			return SyncResult{}, err
		}

		added, xp, err := s.ingestTransactions(user, snapshot.Transactions)
		if err != nil {
			return SyncResult{}, err
		}
		result.NewTransactions += added
		result.XPEarned += xp

		if err := item.TouchLastSync(s.db); err != nil {
			return SyncResult{}, err
		}
	}

	if result.NewTransactions > 0 {
		user.Level = gamification.LevelFromXP(user.XP)
		if err := user.UpdateGamification(s.db); err != nil {
			return SyncResult{}, fmt.Errorf("updating user progress: %w", err)
		}
		s.scoreService.Invalidate(user.ID)
	}

	earned, err := s.achievements.CheckAndAward(user)
	if err != nil {
		return SyncResult{}, err
	}
	result.NewAchievements = earned
	result.Level = user.Level
	result.LeveledUp = user.Level > levelBefore

	logger.FromContext(ctx).Info("Transactions synced",
		"userID", user.ID, "new", result.NewTransactions, "xpEarned", result.XPEarned, "level", result.Level)
	return result, nil
}

// ingestTransactions stores unseen transactions and accumulates the user's
// XP and spending totals in memory. The caller persists the user afterwards.
func (s *SyncService) ingestTransactions(user *models.User, transactions []finance.Transaction) (int, int, error) {
	var added, xpTotal int
	for _, tx := range transactions {
		exists, err := models.TransactionExists(s.db, tx.TransactionID)
		if err != nil {
			return added, xpTotal, err
		}
		if exists {
			continue
		}

		account, err := models.GetAccountByExternalID(s.db, tx.AccountID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return added, xpTotal, err
		}

		date, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			date = time.Now()
		}

		xp := gamification.XPFromTransaction(tx.Amount, tx.Category)
		row := models.Transaction{
			UserID:        user.ID,
			AccountID:     account.ID,
			TransactionID: tx.TransactionID,
			Amount:        tx.Amount,
			Date:          date,
			Name:          tx.Name,
			MerchantName:  tx.MerchantName,
			Category:      tx.Category,
			XPEarned:      xp,
		}
		if err := row.Create(s.db); err != nil {
			return added, xpTotal, fmt.Errorf("storing transaction %s: %w", tx.TransactionID, err)
		}

		if tx.Amount > 0 {
			user.TotalSpent += tx.Amount
		} else {
			user.TotalEarned += -tx.Amount
		}
		user.XP += xp
		xpTotal += xp
		added++
	}
	return added, xpTotal, nil
}

func (s *SyncService) upsertAccounts(item *models.LinkedItem, accounts []finance.Account) error {
	for _, acct := range accounts {
		row := models.Account{
			LinkedItemID:     item.ID,
			AccountID:        acct.AccountID,
			Name:             acct.Name,
			Type:             acct.Type,
			Subtype:          acct.Subtype,
			AvailableBalance: acct.Balances.Available,
			CreditLimit:      acct.Balances.Limit,
		}
		if acct.Balances.Current != nil {
			row.CurrentBalance = *acct.Balances.Current
		}
		if err := row.UpsertBalances(s.db); err != nil {
			return fmt.Errorf("upserting account %s: %w", acct.AccountID, err)
		}
	}
	return nil
}
