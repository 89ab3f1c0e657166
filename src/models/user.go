// src/models/user.go
package models

import (
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	XP          int       `json:"xp"`
	Level       int       `json:"level"`
	TotalSpent  float64   `json:"total_spent"`
	TotalEarned float64   `json:"total_earned"`
	IsAdmin     bool      `json:"is_admin"`
	LastLoginAt NullTime  `json:"last_login_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NullTime is an alias for sql.NullTime with null-aware JSON marshalling.
type NullTime sql.NullTime

func (nt NullTime) MarshalJSON() ([]byte, error) {
	if !nt.Valid {
		return []byte("null"), nil
	}
	return nt.Time.MarshalJSON()
}

func (u *User) HashPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

func (u *User) CreateUser(db *sql.DB) error {
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Level == 0 {
		u.Level = 1
	}

	query := `
	INSERT INTO users (username, email, password, xp, level, total_spent, total_earned, is_admin, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	res, err := stmt.Exec(
		u.Username,
		u.Email,
		u.Password,
		u.XP,
		u.Level,
		u.TotalSpent,
		u.TotalEarned,
		u.IsAdmin,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var user User
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.Password,
		&user.XP, &user.Level, &user.TotalSpent, &user.TotalEarned,
		&user.IsAdmin, &lastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	user.LastLoginAt = NullTime(lastLoginAt)
	return &user, nil
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	query := `
	SELECT id, username, email, password, xp, level, total_spent, total_earned,
	       is_admin, last_login_at, created_at, updated_at
	FROM users
	WHERE id = ?`
	return scanUser(db.QueryRow(query, id))
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	query := `
	SELECT id, username, email, password, xp, level, total_spent, total_earned,
	       is_admin, last_login_at, created_at, updated_at
	FROM users
	WHERE username = ?`
	return scanUser(db.QueryRow(query, username))
}

// UpdateGamification persists the XP/level/spending counters after a sync.
func (u *User) UpdateGamification(db *sql.DB) error {
	u.UpdatedAt = time.Now()
	_, err := db.Exec(`
	UPDATE users SET xp = ?, level = ?, total_spent = ?, total_earned = ?, updated_at = ?
	WHERE id = ?`,
		u.XP, u.Level, u.TotalSpent, u.TotalEarned, u.UpdatedAt, u.ID)
	return err
}

func (u *User) TouchLastLogin(db *sql.DB) error {
	now := time.Now()
	u.LastLoginAt = NullTime{Time: now, Valid: true}
	_, err := db.Exec(`UPDATE users SET last_login_at = ?, updated_at = ? WHERE id = ?`, now, now, u.ID)
	return err
}

// Leaderboard returns the top users ordered by XP.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
}

func GetLeaderboard(db *sql.DB, limit int) ([]LeaderboardEntry, error) {
	rows, err := db.Query(`
	SELECT id, username, xp, level FROM users ORDER BY xp DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.XP, &e.Level); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
