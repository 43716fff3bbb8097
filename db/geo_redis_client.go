package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const scanBatchSize = 100

// GeoRedisClient struct holds the Redis client and context
type GeoRedisClient struct {
	client *redis.Client
	ctx    context.Context
	log    logrus.FieldLogger
}

// NewGeoRedisClient wraps a go-redis client. Call Ping to verify the connection.
func NewGeoRedisClient(ctx context.Context, client *redis.Client, log logrus.FieldLogger) *GeoRedisClient {
	return &GeoRedisClient{
		client: client,
		ctx:    ctx,
		log:    log.WithField("component", "GeoRedisClient"),
	}
}

// Set sets a key-value pair in Redis
func (r *GeoRedisClient) Set(key, value string) error {
	return r.client.Set(r.ctx, key, value, 0).Err()
}

// SetWithTTL sets a key that Redis expires after ttl.
func (r *GeoRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	return r.client.Set(r.ctx, key, value, ttl).Err()
}

// Get retrieves the value for a given key from Redis
func (r *GeoRedisClient) Get(key string) (string, error) {
	val, err := r.client.Get(r.ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return val, err
}

// AddLocationWithJSON stores geolocation along with associated JSON data.
func (r *GeoRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	// GEOADD and SET go in one transaction so readers never see a member without data.
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.GeoAdd(ctx, geoKey, &redis.GeoLocation{
			Name:      memberKey,
			Latitude:  lat,
			Longitude: lon,
		})
		pipe.Set(ctx, memberKey, jsonData, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add geolocation for %s: %w", memberKey, err)
	}

	r.log.Debugf("Added geolocation and JSON for member: %s", memberKey)
	return nil
}

// GetLocationsWithinRadius returns the JSON data of every member within radius
// kilometres, nearest first.
func (r *GeoRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	ctx := r.ctx
	results, err := r.client.GeoRadius(ctx, key, lon, lat, &redis.GeoRadiusQuery{
		Radius: radius,
		Unit:   "km",
		Sort:   "ASC",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby locations: %w", err)
	}

	var objects []string
	for _, loc := range results {
		data, err := r.client.Get(ctx, loc.Name).Result()
		if err != nil {
			r.log.Warnf("Skipping member %s due to error: %v", loc.Name, err)
			continue
		}
		objects = append(objects, data)
	}

	return objects, nil
}

// Keys walks the keyspace with SCAN instead of blocking the server with KEYS.
func (r *GeoRedisClient) Keys(pattern string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := r.client.Scan(r.ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys %q: %w", pattern, err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}

func (r *GeoRedisClient) Del(key string) error {
	return r.client.Del(r.ctx, key).Err()
}

func (r *GeoRedisClient) GetContext() context.Context {
	return r.ctx
}

func (r *GeoRedisClient) Ping() error {
	_, err := r.client.Ping(r.ctx).Result()
	return err
}
