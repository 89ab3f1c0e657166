// src/models/achievement.go
package models

import (
	"database/sql"
	"time"
)

// Achievement condition types, matching the seeded rows in db/migrations.
const (
	ConditionXP                   = "xp"
	ConditionLevel                = "level"
	ConditionSpending             = "spending"
	ConditionTransactions         = "transactions"
	ConditionCategoryTransactions = "category_transactions"
)

type Achievement struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Icon           string  `json:"icon,omitempty"`
	ConditionType  string  `json:"condition_type"`
	ConditionValue float64 `json:"condition_value"`
	XPReward       int     `json:"xp_reward"`
	IsActive       bool    `json:"is_active"`
}

func GetActiveAchievements(db *sql.DB) ([]Achievement, error) {
	rows, err := db.Query(`
	SELECT id, name, description, icon, condition_type, condition_value, xp_reward, is_active
	FROM achievements WHERE is_active = 1 ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []Achievement
	for rows.Next() {
		var a Achievement
		var icon sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &icon,
			&a.ConditionType, &a.ConditionValue, &a.XPReward, &a.IsActive); err != nil {
			return nil, err
		}
		a.Icon = icon.String
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

type UserAchievement struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"user_id"`
	AchievementID int64       `json:"achievement_id"`
	XPAwarded     int         `json:"xp_awarded"`
	EarnedAt      time.Time   `json:"earned_at"`
	Achievement   Achievement `json:"achievement"`
}

func (ua *UserAchievement) Create(db *sql.DB) error {
	ua.EarnedAt = time.Now()
	res, err := db.Exec(`
	INSERT INTO user_achievements (user_id, achievement_id, xp_awarded, earned_at)
	VALUES (?, ?, ?, ?)`,
		ua.UserID, ua.AchievementID, ua.XPAwarded, ua.EarnedAt)
	if err != nil {
		return err
	}
	ua.ID, err = res.LastInsertId()
	return err
}

func UserHasAchievement(db *sql.DB, userID, achievementID int64) (bool, error) {
	var count int
	err := db.QueryRow(`
	SELECT COUNT(1) FROM user_achievements WHERE user_id = ? AND achievement_id = ?`,
		userID, achievementID).Scan(&count)
	return count > 0, err
}

func GetUserAchievements(db *sql.DB, userID int64) ([]UserAchievement, error) {
	rows, err := db.Query(`
	SELECT ua.id, ua.user_id, ua.achievement_id, ua.xp_awarded, ua.earned_at,
	       a.id, a.name, a.description, a.icon, a.condition_type, a.condition_value, a.xp_reward, a.is_active
	FROM user_achievements ua
	JOIN achievements a ON a.id = ua.achievement_id
	WHERE ua.user_id = ?
	ORDER BY ua.earned_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var earned []UserAchievement
	for rows.Next() {
		var ua UserAchievement
		var icon sql.NullString
		if err := rows.Scan(&ua.ID, &ua.UserID, &ua.AchievementID, &ua.XPAwarded, &ua.EarnedAt,
			&ua.Achievement.ID, &ua.Achievement.Name, &ua.Achievement.Description, &icon,
			&ua.Achievement.ConditionType, &ua.Achievement.ConditionValue,
			&ua.Achievement.XPReward, &ua.Achievement.IsActive); err != nil {
			return nil, err
		}
		ua.Achievement.Icon = icon.String
		earned = append(earned, ua)
	}
	return earned, rows.Err()
}
