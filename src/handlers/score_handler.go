// src/handlers/score_handler.go
package handlers

import (
	"net/http"

	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/services"
)

// ScoreHandler serves the wellness score and its textual report.
type ScoreHandler struct {
	scoreService *services.ScoreService
}

func NewScoreHandler(scoreService *services.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

func (h *ScoreHandler) GetScoreHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	breakdown, err := h.scoreService.GetScore(r.Context(), user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Score computation failed", "error", err)
		sendJSONError(w, "Failed to compute score", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, breakdown)
}

func (h *ScoreHandler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	report, err := h.scoreService.GetReport(r.Context(), user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Report generation failed", "error", err)
		sendJSONError(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}
