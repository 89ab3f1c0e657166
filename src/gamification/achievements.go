// src/gamification/achievements.go
package gamification

import (
	"database/sql"
	"fmt"

	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/models"
)

// Engine evaluates achievement conditions against a user's stored progress
// and awards any newly earned ones, including their XP rewards.
type Engine struct {
	db *sql.DB
}

func NewEngine(db *sql.DB) *Engine {
	return &Engine{db: db}
}

// CheckAndAward scans all active achievements for the user and awards the
// ones whose condition is now met. The user's XP/level are updated in place
// and persisted. Returns the freshly earned achievements.
func (e *Engine) CheckAndAward(user *models.User) ([]models.Achievement, error) {
	achievements, err := models.GetActiveAchievements(e.db)
	if err != nil {
		return nil, fmt.Errorf("loading achievements: %w", err)
	}

	var earned []models.Achievement
	for _, achievement := range achievements {
		has, err := models.UserHasAchievement(e.db, user.ID, achievement.ID)
		if err != nil {
			return nil, err
		}
		if has {
			continue
		}

		met, err := e.conditionMet(user, achievement)
		if err != nil {
			return nil, err
		}
		if !met {
			continue
		}

		ua := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: achievement.ID,
			XPAwarded:     achievement.XPReward,
		}
		if err := ua.Create(e.db); err != nil {
			return nil, fmt.Errorf("awarding achievement %q: %w", achievement.Name, err)
		}

		user.XP += achievement.XPReward
		user.Level = LevelFromXP(user.XP)
		earned = append(earned, achievement)

		logger.L.Info("Achievement earned", "userID", user.ID, "achievement", achievement.Name, "xpReward", achievement.XPReward)
	}

	if len(earned) > 0 {
		if err := user.UpdateGamification(e.db); err != nil {
			return nil, err
		}
	}
	return earned, nil
}

func (e *Engine) conditionMet(user *models.User, a models.Achievement) (bool, error) {
	switch a.ConditionType {
	case models.ConditionXP:
		return float64(user.XP) >= a.ConditionValue, nil
	case models.ConditionLevel:
		return float64(user.Level) >= a.ConditionValue, nil
	case models.ConditionSpending:
		return user.TotalSpent >= a.ConditionValue, nil
	case models.ConditionTransactions:
		count, err := models.CountTransactionsForUser(e.db, user.ID)
		if err != nil {
			return false, err
		}
		return float64(count) >= a.ConditionValue, nil
	case models.ConditionCategoryTransactions:
		count, err := models.CountTransactionsByCategory(e.db, user.ID, "food")
		if err != nil {
			return false, err
		}
		return float64(count) >= a.ConditionValue, nil
	default:
		logger.L.Warn("Unknown achievement condition type", "type", a.ConditionType, "achievement", a.Name)
		return false, nil
	}
}
