// src/models/account.go
package models

import (
	"database/sql"
	"time"

	"github.com/skylart2025S/VTHacks/src/finance"
)

type Account struct {
	ID               int64     `json:"id"`
	LinkedItemID     int64     `json:"linked_item_id"`
	AccountID        string    `json:"account_id"`
	Name             string    `json:"name,omitempty"`
	OfficialName     string    `json:"official_name,omitempty"`
	Type             string    `json:"type"`
	Subtype          string    `json:"subtype,omitempty"`
	CurrentBalance   float64   `json:"current_balance"`
	AvailableBalance *float64  `json:"available_balance,omitempty"`
	CreditLimit      *float64  `json:"credit_limit,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

func (a *Account) Create(db *sql.DB) error {
	a.CreatedAt = time.Now()
	res, err := db.Exec(`
	INSERT INTO accounts (linked_item_id, account_id, name, official_name, type, subtype,
	                      current_balance, available_balance, credit_limit, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.LinkedItemID, a.AccountID, a.Name, a.OfficialName, a.Type, a.Subtype,
		a.CurrentBalance, a.AvailableBalance, a.CreditLimit, a.CreatedAt)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	return err
}

// UpsertBalances refreshes balances on re-sync without duplicating rows.
func (a *Account) UpsertBalances(db *sql.DB) error {
	res, err := db.Exec(`
	UPDATE accounts SET current_balance = ?, available_balance = ?, credit_limit = ?
	WHERE account_id = ?`,
		a.CurrentBalance, a.AvailableBalance, a.CreditLimit, a.AccountID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return a.Create(db)
	}
	return nil
}

func GetAccountByExternalID(db *sql.DB, accountID string) (*Account, error) {
	return scanAccount(db.QueryRow(accountSelect+` WHERE account_id = ?`, accountID))
}

func GetAccountsForUser(db *sql.DB, userID int64) ([]Account, error) {
	rows, err := db.Query(accountSelect+`
	WHERE linked_item_id IN (SELECT id FROM linked_items WHERE user_id = ?)
	ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccountRows(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

const accountSelect = `
	SELECT id, linked_item_id, account_id, name, official_name, type, subtype,
	       current_balance, available_balance, credit_limit, created_at
	FROM accounts`

func scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	var name, officialName, subtype sql.NullString
	var available, limit sql.NullFloat64
	err := row.Scan(&a.ID, &a.LinkedItemID, &a.AccountID, &name, &officialName,
		&a.Type, &subtype, &a.CurrentBalance, &available, &limit, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	applyAccountNulls(&a, name, officialName, subtype, available, limit)
	return &a, nil
}

func scanAccountRows(rows *sql.Rows) (*Account, error) {
	var a Account
	var name, officialName, subtype sql.NullString
	var available, limit sql.NullFloat64
	err := rows.Scan(&a.ID, &a.LinkedItemID, &a.AccountID, &name, &officialName,
		&a.Type, &subtype, &a.CurrentBalance, &available, &limit, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	applyAccountNulls(&a, name, officialName, subtype, available, limit)
	return &a, nil
}

func applyAccountNulls(a *Account, name, officialName, subtype sql.NullString, available, limit sql.NullFloat64) {
	a.Name = name.String
	a.OfficialName = officialName.String
	a.Subtype = subtype.String
	if available.Valid {
		v := available.Float64
		a.AvailableBalance = &v
	}
	if limit.Valid {
		v := limit.Float64
		a.CreditLimit = &v
	}
}

// ToSnapshotAccount converts a stored row into the scoring engine's record shape.
func (a Account) ToSnapshotAccount() finance.Account {
	current := a.CurrentBalance
	return finance.Account{
		AccountID: a.AccountID,
		Name:      a.Name,
		Type:      a.Type,
		Subtype:   a.Subtype,
		Balances: finance.Balances{
			Current:   &current,
			Available: a.AvailableBalance,
			Limit:     a.CreditLimit,
		},
	}
}
