// src/handlers/advisor_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/skylart2025S/VTHacks/src/agent"
	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/security/validation"
	"github.com/skylart2025S/VTHacks/src/services"
)

// AdvisorHandler runs the AI advisor over the user's current snapshot. The
// advisor is optional; when not configured the endpoint reports that.
type AdvisorHandler struct {
	advisor      *agent.Advisor
	scoreService *services.ScoreService
}

func NewAdvisorHandler(advisor *agent.Advisor, scoreService *services.ScoreService) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, scoreService: scoreService}
}

func (h *AdvisorHandler) AdviceHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	if h.advisor == nil {
		sendJSONError(w, "Advisor is not configured", http.StatusServiceUnavailable)
		return
	}

	// An empty body is fine; the advisor falls back to a general analysis.
	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		body.Question = ""
	}
	body.Question = validation.SanitizeText(body.Question)
	if err := validation.ValidateStringMaxLength(body.Question, validation.MaxQuestionLength, "Question"); err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	snapshot, err := h.scoreService.BuildSnapshot(r.Context(), user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Snapshot assembly failed for advice", "error", err)
		sendJSONError(w, "Failed to load financial data", http.StatusInternalServerError)
		return
	}

	advice, err := h.advisor.Advise(r.Context(), snapshot, body.Question)
	if err != nil {
		logger.FromContext(r.Context()).Error("Advisor failed", "error", err)
		if errors.Is(err, agent.ErrAdvisorUnavailable) {
			sendJSONError(w, "Advisor is temporarily unavailable", http.StatusBadGateway)
			return
		}
		sendJSONError(w, "Failed to generate advice", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, advice)
}
