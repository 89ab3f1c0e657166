package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "alice")

	session := &Session{
		UserID:       user.ID,
		Token:        "tok-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	require.NoError(t, session.Create(db))

	byToken, err := GetSessionByToken(db, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byToken.UserID)

	byRefresh, err := GetSessionByRefreshToken(db, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, session.ID, byRefresh.ID)

	require.NoError(t, DeleteSessionByRefreshToken(db, "refresh-1"))
	_, err = GetSessionByToken(db, "tok-1")
	assert.Error(t, err)
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db, "bob")

	expired := &Session{UserID: user.ID, Token: "old", RefreshToken: "old-r", ExpiresAt: time.Now().Add(-time.Hour)}
	live := &Session{UserID: user.ID, Token: "new", RefreshToken: "new-r", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, expired.Create(db))
	require.NoError(t, live.Create(db))

	require.NoError(t, DeleteExpiredSessions(db))

	_, err := GetSessionByToken(db, "old")
	assert.Error(t, err)
	_, err = GetSessionByToken(db, "new")
	assert.NoError(t, err)
}
