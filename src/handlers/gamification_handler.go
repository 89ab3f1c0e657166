// src/handlers/gamification_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/skylart2025S/VTHacks/src/database"
	"github.com/skylart2025S/VTHacks/src/gamification"
	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/models"
)

const defaultLeaderboardLimit = 10

// GamificationHandler serves the user's progress, achievements and the
// leaderboard.
type GamificationHandler struct{}

func NewGamificationHandler() *GamificationHandler {
	return &GamificationHandler{}
}

func (h *GamificationHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	xpIntoLevel := user.XP % 100
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"user":             user,
		"level":            gamification.LevelFromXP(user.XP),
		"xp_into_level":    xpIntoLevel,
		"xp_to_next_level": 100 - xpIntoLevel,
	})
}

func (h *GamificationHandler) GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := models.GetLeaderboard(database.DB, limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load leaderboard", "error", err)
		sendJSONError(w, "Failed to load leaderboard", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": entries})
}

func (h *GamificationHandler) GetAchievementsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	earned, err := models.GetUserAchievements(database.DB, user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load user achievements", "error", err)
		sendJSONError(w, "Failed to load achievements", http.StatusInternalServerError)
		return
	}
	all, err := models.GetActiveAchievements(database.DB)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load achievements", "error", err)
		sendJSONError(w, "Failed to load achievements", http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"earned":    earned,
		"available": all,
	})
}
