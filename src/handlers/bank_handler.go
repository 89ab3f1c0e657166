// src/handlers/bank_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/skylart2025S/VTHacks/src/config"
	"github.com/skylart2025S/VTHacks/src/database"
	"github.com/skylart2025S/VTHacks/src/logger"
	"github.com/skylart2025S/VTHacks/src/models"
	"github.com/skylart2025S/VTHacks/src/services"
)

// BankHandler exposes linking, account and transaction endpoints backed by
// the data aggregator.
type BankHandler struct {
	syncService *services.SyncService
	categorizer *services.Categorizer
}

func NewBankHandler(syncService *services.SyncService) *BankHandler {
	return &BankHandler{
		syncService: syncService,
		categorizer: services.NewCategorizer(),
	}
}

func (h *BankHandler) CreateLinkTokenHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	token, err := h.syncService.CreateLinkToken(r.Context(), user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to create link token", "error", err)
		sendJSONError(w, "Failed to create link token", http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"link_token": token})
}

func (h *BankHandler) ExchangePublicTokenHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body struct {
		PublicToken string `json:"public_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.PublicToken == "" {
		sendJSONError(w, "public_token is required", http.StatusBadRequest)
		return
	}

	item, err := h.syncService.LinkItem(r.Context(), user, body.PublicToken)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to link item", "error", err)
		sendJSONError(w, "Failed to link bank account", http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"item_id":          item.ItemID,
		"institution_name": item.InstitutionName,
	})
}

func (h *BankHandler) GetAccountsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	accounts, err := models.GetAccountsForUser(database.DB, user.ID)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load accounts", "error", err)
		sendJSONError(w, "Failed to load accounts", http.StatusInternalServerError)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"accounts": accounts})
}

func (h *BankHandler) SyncTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	result, err := h.syncService.SyncTransactions(r.Context(), user)
	if err != nil {
		logger.FromContext(r.Context()).Error("Transaction sync failed", "error", err)
		sendJSONError(w, "Failed to sync transactions", http.StatusBadGateway)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// transactionView augments a stored transaction with its display category.
type transactionView struct {
	models.Transaction
	DisplayCategory string `json:"display_category"`
}

func (h *BankHandler) GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	since := time.Now().AddDate(0, 0, -config.Cfg.TransactionWindowDays)
	transactions, err := models.GetTransactionsForUser(database.DB, user.ID, since)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load transactions", "error", err)
		sendJSONError(w, "Failed to load transactions", http.StatusInternalServerError)
		return
	}

	views := make([]transactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, transactionView{
			Transaction:     tx,
			DisplayCategory: h.categorizer.Categorize(tx.MerchantName),
		})
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"transactions": views})
}

func (h *BankHandler) SpendingByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	since := time.Now().AddDate(0, 0, -config.Cfg.TransactionWindowDays)
	transactions, err := models.GetTransactionsForUser(database.DB, user.ID, since)
	if err != nil {
		logger.FromContext(r.Context()).Error("Failed to load transactions", "error", err)
		sendJSONError(w, "Failed to load transactions", http.StatusInternalServerError)
		return
	}

	totals := make(map[string]float64)
	for _, tx := range transactions {
		if tx.Amount <= 0 {
			continue // inflows are not spending
		}
		totals[h.categorizer.Categorize(tx.MerchantName)] += tx.Amount
	}

	// Stable response shape: every known category appears, spent or not.
	summary := make([]map[string]interface{}, 0)
	for _, category := range h.categorizer.Categories() {
		summary = append(summary, map[string]interface{}{
			"category": category,
			"total":    totals[category],
		})
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"spending": summary})
}
