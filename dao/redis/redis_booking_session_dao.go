package redis

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"xnova-server/db"
	"xnova-server/models/booking"
)

const BOOKING_SESSION_KEY_FORMAT_V1 = "booking_session_v1:%s"

var ErrSessionNotFound = errors.New("booking session not found")

// RedisBookingSessionDAO keeps wizard sessions as JSON with a TTL, so an
// abandoned wizard disappears on its own.
type RedisBookingSessionDAO struct {
	client db.RedisClient
}

func NewRedisBookingSessionDAO(client db.RedisClient) *RedisBookingSessionDAO {
	return &RedisBookingSessionDAO{client: client}
}

// SaveSession writes the session and restarts its TTL.
func (dao *RedisBookingSessionDAO) SaveSession(s *booking.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", s.SessionID, err)
	}
	key := fmt.Sprintf(BOOKING_SESSION_KEY_FORMAT_V1, s.SessionID)
	if err := dao.client.SetWithTTL(key, string(data), ttl); err != nil {
		return fmt.Errorf("failed to set session in redis: %w", err)
	}
	return nil
}

func (dao *RedisBookingSessionDAO) GetSession(sessionID string) (*booking.Session, error) {
	key := fmt.Sprintf(BOOKING_SESSION_KEY_FORMAT_V1, sessionID)
	str, err := dao.client.Get(key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, fmt.Errorf("failed to get session from redis: %w", err)
	}
	var s booking.Session
	if err := json.Unmarshal([]byte(str), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session JSON: %w", err)
	}
	return &s, nil
}

func (dao *RedisBookingSessionDAO) DeleteSession(sessionID string) error {
	key := fmt.Sprintf(BOOKING_SESSION_KEY_FORMAT_V1, sessionID)
	if err := dao.client.Del(key); err != nil {
		return fmt.Errorf("failed to delete session key %s: %w", key, err)
	}
	return nil
}
