package redis

import (
    "encoding/json"
    "errors"
    "fmt"

    "xnova-server/db"
    "xnova-server/models/match"
)

// The open match list is small and replaced as a whole, so it lives under a
// single key.
const MATCHES_KEY_V1 = "matches_v1"

var ErrMatchesNotFound = errors.New("matches not loaded")

// RedisMatchDAO stores the open match list in Redis.
type RedisMatchDAO struct {
    client db.RedisClient
}

func NewRedisMatchDAO(client db.RedisClient) *RedisMatchDAO {
    return &RedisMatchDAO{client: client}
}

// SaveMatches replaces the stored list.
func (dao *RedisMatchDAO) SaveMatches(matches []match.Match) error {
    data, err := json.Marshal(matches)
    if err != nil {
        return fmt.Errorf("failed to marshal matches: %w", err)
    }
    if err := dao.client.Set(MATCHES_KEY_V1, string(data)); err != nil {
        return fmt.Errorf("failed to set matches: %w", err)
    }
    return nil
}

// GetMatches returns the stored list in seed order.
func (dao *RedisMatchDAO) GetMatches() ([]match.Match, error) {
    str, err := dao.client.Get(MATCHES_KEY_V1)
    if err != nil {
        if errors.Is(err, db.ErrKeyNotFound) {
            return nil, ErrMatchesNotFound
        }
        return nil, fmt.Errorf("failed to get matches: %w", err)
    }
    var matches []match.Match
    if err := json.Unmarshal([]byte(str), &matches); err != nil {
        return nil, fmt.Errorf("failed to unmarshal matches: %w", err)
    }
    return matches, nil
}
