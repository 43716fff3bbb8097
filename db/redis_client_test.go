package db_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"xnova-server/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test the Set and Get methods against every client that can run without a server.
func TestRedisClient_SetAndGet(t *testing.T) {
	tests := []struct {
		name   string
		client db.RedisClient
	}{
		{"MockRedisClient", db.NewMockRedisClient(context.Background())},
		// A GeoRedisClient against a live server belongs in an integration suite.
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Act
			require.NoError(t, test.client.Set("test-key", "test-value"))
			retrieved, err := test.client.Get("test-key")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "test-value", retrieved)

			_, err = test.client.Get("missing")
			assert.True(t, errors.Is(err, db.ErrKeyNotFound))
		})
	}
}

func TestMockRedisClient_TTL(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	client := db.NewMockRedisClient(context.Background()).WithClock(func() time.Time { return now })

	require.NoError(t, client.SetWithTTL("session:1", "{}", 30*time.Minute))

	_, err := client.Get("session:1")
	require.NoError(t, err)

	now = now.Add(31 * time.Minute)
	_, err = client.Get("session:1")
	assert.True(t, errors.Is(err, db.ErrKeyNotFound))

	keys, err := client.Keys("session:*")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMockRedisClient_SetClearsTTL(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	client := db.NewMockRedisClient(context.Background()).WithClock(func() time.Time { return now })

	require.NoError(t, client.SetWithTTL("k", "v1", time.Minute))
	require.NoError(t, client.Set("k", "v2"))
	now = now.Add(time.Hour)

	val, err := client.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", val)
}

func TestMockRedisClient_KeysAndDel(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	require.NoError(t, client.Set("venues_geo_place_v1:2", "{}"))
	require.NoError(t, client.Set("venues_geo_place_v1:1", "{}"))
	require.NoError(t, client.Set("booking_session_v1:abc", "{}"))

	keys, err := client.Keys("venues_geo_place_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"venues_geo_place_v1:1", "venues_geo_place_v1:2"}, keys)

	require.NoError(t, client.Del("venues_geo_place_v1:1"))
	keys, err = client.Keys("venues_geo_place_v1:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"venues_geo_place_v1:2"}, keys)

	// deleting a missing key is not an error
	assert.NoError(t, client.Del("nope"))
}

// Test AddLocationWithJSON and GetLocationsWithinRadius for MockRedisClient
func TestRedisClient_AddLocationWithJSONAndGetLocationsWithinRadius(t *testing.T) {
	client := db.NewMockRedisClient(context.Background())
	ctx := context.Background()

	// District 1 and District 7 of Ho Chi Minh City, roughly 6 km apart, and Hanoi.
	require.NoError(t, client.AddLocationWithJSON(ctx, "venues", "q7", 10.7295, 106.7219, map[string]string{"id": "q7"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "venues", "q1", 10.7769, 106.7009, map[string]string{"id": "q1"}))
	require.NoError(t, client.AddLocationWithJSON(ctx, "venues", "hn", 21.0278, 105.8342, map[string]string{"id": "hn"}))

	tests := []struct {
		name   string
		radius float64
		want   []string
	}{
		{"only the closest", 1, []string{"q1"}},
		{"city wide, nearest first", 10, []string{"q1", "q7"}},
		{"country wide", 2000, []string{"q1", "q7", "hn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := client.GetLocationsWithinRadius("venues", 10.7769, 106.7009, tt.radius)
			require.NoError(t, err)

			var ids []string
			for _, r := range results {
				var v map[string]string
				require.NoError(t, json.Unmarshal([]byte(r), &v))
				ids = append(ids, v["id"])
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	none, err := client.GetLocationsWithinRadius("unknown", 0, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRedisClient_Ping(t *testing.T) {
	assert.NoError(t, db.NewMockRedisClient(context.Background()).Ping())
}
