// src/services/score_service.go
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/skylart2025S/VTHacks/src/datasource"
	"github.com/skylart2025S/VTHacks/src/finance"
	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/models"
)

// Default go-cache settings for the score report cache, referenced from main.
const (
	DefaultCacheExpiration = 5 * time.Minute
	CacheCleanupInterval   = 10 * time.Minute
)

// ScoreService assembles financial snapshots for a user and runs the
// scoring engine over them. Computed breakdowns are cached per user and
// invalidated when new data is synced.
type ScoreService struct {
	db         *sql.DB
	source     datasource.Source
	cache      *cache.Cache
	windowDays int
}

func NewScoreService(db *sql.DB, source datasource.Source, reportCache *cache.Cache, windowDays int) *ScoreService {
	return &ScoreService{
		db:         db,
		source:     source,
		cache:      reportCache,
		windowDays: windowDays,
	}
}

// BuildSnapshot merges the snapshots of all the user's linked items into
// one immutable input for the scoring engine. A user with no linked items
// gets an empty snapshot, which the engine degrades gracefully on.
func (s *ScoreService) BuildSnapshot(ctx context.Context, userID int64) (finance.Snapshot, error) {
	items, err := models.GetLinkedItemsForUser(s.db, userID)
	if err != nil {
		return finance.Snapshot{}, fmt.Errorf("loading linked items: %w", err)
	}

	var merged finance.Snapshot
	for _, item := range items {
		part, err := s.source.FetchSnapshot(ctx, item.AccessToken, s.windowDays)
		if err != nil {
			return finance.Snapshot{}, fmt.Errorf("fetching snapshot for item %s: %w", item.ItemID, err)
		}
		merged.Accounts = append(merged.Accounts, part.Accounts...)
		merged.Transactions = append(merged.Transactions, part.Transactions...)
		merged.Holdings = append(merged.Holdings, part.Holdings...)
		merged.Securities = append(merged.Securities, part.Securities...)
		merged.IncomeStreams = append(merged.IncomeStreams, part.IncomeStreams...)
	}
	return merged, nil
}

// GetScore returns the user's score breakdown, from cache when fresh.
func (s *ScoreService) GetScore(ctx context.Context, userID int64) (finance.ScoreBreakdown, error) {
	key := scoreCacheKey(userID)
	if cached, found := s.cache.Get(key); found {
		if breakdown, ok := cached.(finance.ScoreBreakdown); ok {
			return breakdown, nil
		}
	}

	snapshot, err := s.BuildSnapshot(ctx, userID)
	if err != nil {
		return finance.ScoreBreakdown{}, err
	}

	breakdown, err := finance.ComputeScore(snapshot)
	if err != nil {
		return finance.ScoreBreakdown{}, fmt.Errorf("score calculation failed: %w", err)
	}

	s.cache.SetDefault(key, breakdown)
	logger.FromContext(ctx).Debug("Score computed", "userID", userID, "score", breakdown.Score)
	return breakdown, nil
}

// GetReport returns the formatted textual report for the user's breakdown.
func (s *ScoreService) GetReport(ctx context.Context, userID int64) (string, error) {
	breakdown, err := s.GetScore(ctx, userID)
	if err != nil {
		return "", err
	}
	return finance.FormatReport(breakdown), nil
}

// Invalidate drops the user's cached breakdown, forcing a recompute on the
// next request. Called after transaction syncs and new links.
func (s *ScoreService) Invalidate(userID int64) {
	s.cache.Delete(scoreCacheKey(userID))
}

func scoreCacheKey(userID int64) string {
	return fmt.Sprintf("score:%d", userID)
}
