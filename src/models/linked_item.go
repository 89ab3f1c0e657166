// src/models/linked_item.go
package models

import (
	"database/sql"
	"time"
)

// LinkedItem is one connection to an institution at the data aggregator.
// Access tokens live here, not in a process global; every lookup goes
// through the database handle passed in.
type LinkedItem struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ItemID          string    `json:"item_id"`
	AccessToken     string    `json:"-"`
	InstitutionName string    `json:"institution_name,omitempty"`
	LastSync        NullTime  `json:"last_sync"`
	CreatedAt       time.Time `json:"created_at"`
}

func (li *LinkedItem) Create(db *sql.DB) error {
	li.CreatedAt = time.Now()
	res, err := db.Exec(`
	INSERT INTO linked_items (user_id, item_id, access_token, institution_name, created_at)
	VALUES (?, ?, ?, ?, ?)`,
		li.UserID, li.ItemID, li.AccessToken, li.InstitutionName, li.CreatedAt)
	if err != nil {
		return err
	}
	li.ID, err = res.LastInsertId()
	return err
}

func GetLinkedItemByItemID(db *sql.DB, itemID string) (*LinkedItem, error) {
	return scanLinkedItem(db.QueryRow(`
	SELECT id, user_id, item_id, access_token, institution_name, last_sync, created_at
	FROM linked_items WHERE item_id = ?`, itemID))
}

func GetLinkedItemsForUser(db *sql.DB, userID int64) ([]LinkedItem, error) {
	rows, err := db.Query(`
	SELECT id, user_id, item_id, access_token, institution_name, last_sync, created_at
	FROM linked_items WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LinkedItem
	for rows.Next() {
		var li LinkedItem
		var institution sql.NullString
		var lastSync sql.NullTime
		if err := rows.Scan(&li.ID, &li.UserID, &li.ItemID, &li.AccessToken,
			&institution, &lastSync, &li.CreatedAt); err != nil {
			return nil, err
		}
		li.InstitutionName = institution.String
		li.LastSync = NullTime(lastSync)
		items = append(items, li)
	}
	return items, rows.Err()
}

func (li *LinkedItem) TouchLastSync(db *sql.DB) error {
	now := time.Now()
	li.LastSync = NullTime{Time: now, Valid: true}
	_, err := db.Exec(`UPDATE linked_items SET last_sync = ? WHERE id = ?`, now, li.ID)
	return err
}

func scanLinkedItem(row *sql.Row) (*LinkedItem, error) {
	var li LinkedItem
	var institution sql.NullString
	var lastSync sql.NullTime
	err := row.Scan(&li.ID, &li.UserID, &li.ItemID, &li.AccessToken,
		&institution, &lastSync, &li.CreatedAt)
	if err != nil {
		return nil, err
	}
	li.InstitutionName = institution.String
	li.LastSync = NullTime(lastSync)
	return &li, nil
}
