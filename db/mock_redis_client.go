package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"path"
	"sort"
	"sync"
	"time"
)

const earthRadiusKm = 6371.0

// MockRedisClient is an in-memory RedisClient. It backs local runs without a
// Redis server and every DAO test.
type MockRedisClient struct {
	data    map[string]string            // Key-value store
	expiry  map[string]time.Time         // Keys with a TTL
	geoData map[string]map[string]GeoLoc // Geolocation data
	mu      sync.RWMutex
	context context.Context
	now     func() time.Time
}

// GeoLoc represents a geolocation with latitude and longitude.
type GeoLoc struct {
	Latitude  float64
	Longitude float64
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]string),
		expiry:  make(map[string]time.Time),
		geoData: make(map[string]map[string]GeoLoc),
		context: ctx,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for TTL expiry.
func (m *MockRedisClient) WithClock(now func() time.Time) *MockRedisClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
	return m
}

// Set stores a key-value pair with no expiry.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	delete(m.expiry, key)
	return nil
}

// SetWithTTL stores a key-value pair that disappears after ttl.
func (m *MockRedisClient) SetWithTTL(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.expiry[key] = m.now().Add(ttl)
	return nil
}

// Get retrieves a value for a given key.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists || m.expired(key) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return value, nil
}

// expired must be called with the lock held.
func (m *MockRedisClient) expired(key string) bool {
	at, ok := m.expiry[key]
	return ok && !m.now().Before(at)
}

// AddLocationWithJSON adds geolocation with JSON data.
func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]GeoLoc)
	}
	m.geoData[geoKey][memberKey] = GeoLoc{Latitude: lat, Longitude: lon}
	m.data[memberKey] = string(jsonData)
	delete(m.expiry, memberKey)
	return nil
}

// GetLocationsWithinRadius returns the JSON data of members within radius
// kilometres (great-circle distance), nearest first.
func (m *MockRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	geoMembers, exists := m.geoData[key]
	if !exists {
		return nil, nil
	}

	type hit struct {
		member string
		dist   float64
	}
	var hits []hit
	for member, loc := range geoMembers {
		d := haversineKm(lat, lon, loc.Latitude, loc.Longitude)
		if d <= radius {
			hits = append(hits, hit{member: member, dist: d})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].member < hits[j].member
		}
		return hits[i].dist < hits[j].dist
	})

	var results []string
	for _, h := range hits {
		if data, exists := m.data[h.member]; exists && !m.expired(h.member) {
			results = append(results, data)
		}
	}
	return results, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLon := (lon2 - lon1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

func (m *MockRedisClient) Ping() error {
	return nil
}

// Keys returns live keys matching a glob pattern, sorted.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if m.expired(k) {
			continue
		}
		ok, err := path.Match(pattern, k)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Del removes a key. Like Redis, a deleted member's geo entry stays behind.
func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.expiry, key)
	delete(m.geoData, key)
	return nil
}
