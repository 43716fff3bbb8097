package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"xnova-server/db"
	"xnova-server/models/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBookingSessionDAO_SaveGetDelete(t *testing.T) {
	// Setup
	dao := NewRedisBookingSessionDAO(db.NewMockRedisClient(context.Background()))
	session := &booking.Session{
		SessionID: "abc",
		VenueID:   "1",
		Selection: booking.Selection{Date: "2026-10-15", Time: "09:00"},
		CreatedAt: generatedAt,
		UpdatedAt: generatedAt,
	}

	// Act
	require.NoError(t, dao.SaveSession(session, 30*time.Minute))
	got, err := dao.GetSession("abc")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, session.Selection, got.Selection)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))

	require.NoError(t, dao.DeleteSession("abc"))
	_, err = dao.GetSession("abc")
	assert.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestRedisBookingSessionDAO_Expires(t *testing.T) {
	now := generatedAt
	client := db.NewMockRedisClient(context.Background()).WithClock(func() time.Time { return now })
	dao := NewRedisBookingSessionDAO(client)

	require.NoError(t, dao.SaveSession(&booking.Session{SessionID: "abc", VenueID: "1"}, 30*time.Minute))
	now = now.Add(45 * time.Minute)

	_, err := dao.GetSession("abc")

	assert.True(t, errors.Is(err, ErrSessionNotFound))
}
