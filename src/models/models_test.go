package models

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTestDB opens a throwaway sqlite database with the real schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(on)"
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "db", "migrations", "000001_init_schema.up.sql"))
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)
	return db
}

func newTestUser(t *testing.T, db *sql.DB, username string) *User {
	t.Helper()
	user := &User{Username: username, Email: username + "@example.com"}
	require.NoError(t, user.HashPassword("hunter22"))
	require.NoError(t, user.CreateUser(db))
	return user
}

func newTestItem(t *testing.T, db *sql.DB, userID int64) *LinkedItem {
	t.Helper()
	item := &LinkedItem{
		UserID:          userID,
		ItemID:          "item-test-1",
		AccessToken:     "access-test-1",
		InstitutionName: "First Platypus Bank",
	}
	require.NoError(t, item.Create(db))
	return item
}
