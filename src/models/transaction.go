// src/models/transaction.go
package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/skylart2025S/VTHacks/src/finance"
)

type Transaction struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	AccountID     int64     `json:"account_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Name          string    `json:"name,omitempty"`
	MerchantName  string    `json:"merchant_name,omitempty"`
	Category      []string  `json:"category"`
	XPEarned      int       `json:"xp_earned"`
	CreatedAt     time.Time `json:"created_at"`
}

func (t *Transaction) Create(db *sql.DB) error {
	t.CreatedAt = time.Now()
	categoryJSON, err := json.Marshal(t.Category)
	if err != nil {
		return err
	}
	res, err := db.Exec(`
	INSERT INTO transactions (user_id, account_id, transaction_id, amount, date, name,
	                          merchant_name, category, xp_earned, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.AccountID, t.TransactionID, t.Amount, t.Date, t.Name,
		t.MerchantName, string(categoryJSON), t.XPEarned, t.CreatedAt)
	if err != nil {
		return err
	}
	t.ID, err = res.LastInsertId()
	return err
}

func TransactionExists(db *sql.DB, transactionID string) (bool, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(1) FROM transactions WHERE transaction_id = ?`, transactionID).Scan(&count)
	return count > 0, err
}

func GetTransactionsForUser(db *sql.DB, userID int64, since time.Time) ([]Transaction, error) {
	rows, err := db.Query(`
	SELECT t.id, t.user_id, t.account_id, t.transaction_id, t.amount, t.date,
	       t.name, t.merchant_name, t.category, t.xp_earned, t.created_at
	FROM transactions t
	WHERE t.user_id = ? AND t.date >= ?
	ORDER BY t.date DESC, t.id DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []Transaction
	for rows.Next() {
		var tx Transaction
		var name, merchant sql.NullString
		var categoryJSON string
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &tx.TransactionID,
			&tx.Amount, &tx.Date, &name, &merchant, &categoryJSON, &tx.XPEarned, &tx.CreatedAt); err != nil {
			return nil, err
		}
		tx.Name = name.String
		tx.MerchantName = merchant.String
		if err := json.Unmarshal([]byte(categoryJSON), &tx.Category); err != nil {
			tx.Category = nil
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

func CountTransactionsForUser(db *sql.DB, userID int64) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(1) FROM transactions WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// CountTransactionsByCategory counts a user's transactions whose category
// JSON contains the given fragment (case-insensitive).
func CountTransactionsByCategory(db *sql.DB, userID int64, fragment string) (int, error) {
	var count int
	err := db.QueryRow(`
	SELECT COUNT(1) FROM transactions
	WHERE user_id = ? AND LOWER(category) LIKE '%' || LOWER(?) || '%'`, userID, fragment).Scan(&count)
	return count, err
}

// ToSnapshotTransaction converts a stored row into the scoring engine's record shape.
func (t Transaction) ToSnapshotTransaction(externalAccountID string) finance.Transaction {
	return finance.Transaction{
		TransactionID: t.TransactionID,
		AccountID:     externalAccountID,
		Amount:        t.Amount,
		Date:          t.Date.Format("2006-01-02"),
		Name:          t.Name,
		MerchantName:  t.MerchantName,
		Category:      t.Category,
	}
}
