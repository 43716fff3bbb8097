package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"xnova-server/db"
	"xnova-server/models/venue"
	"xnova-server/util"
)

var generatedAt = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func testVenues() []venue.Venue {
	return []venue.Venue{
		{VenueID: "2", VenueName: "Sân Bóng Đá Mini Phú Mỹ Hưng", VenueLat: 10.7295, VenueLon: 106.7219, BasePrice: 350000},
		{VenueID: "1", VenueName: "Sân Cầu Lông Premium Quận 1", VenueLat: 10.7769, VenueLon: 106.7009, BasePrice: 200000},
	}
}

func TestRedisVenueDAO_UpsertVenue_Success(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisVenueDAO(mockClient, util.NopLogger())

	testVenue := testVenues()[1]

	// Act
	err := dao.UpsertVenue("v1", testVenue)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Verify data stored in mock Redis
	storedValue, err := mockClient.Get("venues_geo_place_v1:v1:1")
	if err != nil {
		t.Fatalf("Expected data to be stored, got error: %v", err)
	}

	var storedVenue venue.Venue
	if err := json.Unmarshal([]byte(storedValue), &storedVenue); err != nil {
		t.Fatalf("Failed to unmarshal stored venue data: %v", err)
	}
	if storedVenue.VenueName != testVenue.VenueName {
		t.Errorf("Expected VenueName %s, got %s", testVenue.VenueName, storedVenue.VenueName)
	}
}

func TestRedisVenueDAO_GetCatalog_KeepsOrder(t *testing.T) {
	// Setup
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()), util.NopLogger())
	if err := dao.SaveCatalog("v1", testVenues(), generatedAt); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}

	// Act
	venues, err := dao.GetCatalog()

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(venues) != 2 || venues[0].VenueID != "2" || venues[1].VenueID != "1" {
		t.Errorf("Expected venues in seed order [2 1], got %+v", venues)
	}
}

func TestRedisVenueDAO_GetCatalog_NotLoaded(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()), util.NopLogger())

	_, err := dao.GetCatalog()

	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("Expected ErrCatalogNotFound, got %v", err)
	}
}

func TestRedisVenueDAO_GetVenue(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()), util.NopLogger())
	_ = dao.SaveCatalog("v1", testVenues(), generatedAt)

	v, err := dao.GetVenue("1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if v.BasePrice != 200000 {
		t.Errorf("Expected base price 200000, got %d", v.BasePrice)
	}

	_, err = dao.GetVenue("42")
	if !errors.Is(err, ErrVenueNotFound) {
		t.Errorf("Expected ErrVenueNotFound, got %v", err)
	}
}

func TestRedisVenueDAO_SaveCatalog_SwapsAndPrunes(t *testing.T) {
	// Setup
	mockClient := db.NewMockRedisClient(context.Background())
	dao := NewRedisVenueDAO(mockClient, util.NopLogger())

	first := testVenues()
	second := testVenues()
	second[0].BasePrice = 400000
	third := testVenues()[:1]

	// Act
	for i, snapshot := range []struct {
		version string
		venues  []venue.Venue
	}{{"v1", first}, {"v2", second}, {"v3", third}} {
		if err := dao.SaveCatalog(snapshot.version, snapshot.venues, generatedAt.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("SaveCatalog %s failed: %v", snapshot.version, err)
		}
	}

	// Assert
	index, err := dao.GetCatalogIndex()
	if err != nil {
		t.Fatalf("GetCatalogIndex failed: %v", err)
	}
	if index.Version != "v3" || index.PreviousVersion != "v2" {
		t.Errorf("Expected v3 after v2, got %+v", index)
	}

	old, _ := mockClient.Keys("venues_geo_place_v1:v1:*")
	if len(old) != 0 {
		t.Errorf("Expected v1 to be pruned, found %v", old)
	}
	kept, _ := mockClient.Keys("venues_geo_place_v1:v2:*")
	if len(kept) != 2 {
		t.Errorf("Expected v2 to be kept for in-flight readers, found %v", kept)
	}

	venues, _ := dao.GetCatalog()
	if len(venues) != 1 {
		t.Errorf("Expected 1 venue in v3, got %d", len(venues))
	}
}

// swappingClient runs onVenueRead before the first venue read, standing in
// for refreshes that finish while a reader is between index and venues.
type swappingClient struct {
	*db.MockRedisClient
	onVenueRead func()
}

func (c *swappingClient) Get(key string) (string, error) {
	if c.onVenueRead != nil && strings.HasPrefix(key, "venues_geo_place_v1:") {
		hook := c.onVenueRead
		c.onVenueRead = nil
		hook()
	}
	return c.MockRedisClient.Get(key)
}

func TestRedisVenueDAO_GetCatalog_RetriesAfterPrune(t *testing.T) {
	// Setup
	client := &swappingClient{MockRedisClient: db.NewMockRedisClient(context.Background())}
	dao := NewRedisVenueDAO(client, util.NopLogger())
	if err := dao.SaveCatalog("v1", testVenues(), generatedAt); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	updated := testVenues()
	updated[0].BasePrice = 400000
	client.onVenueRead = func() {
		// two refreshes: v1 is pruned when v3 lands
		for _, version := range []string{"v2", "v3"} {
			if err := dao.SaveCatalog(version, updated, generatedAt); err != nil {
				t.Fatalf("SaveCatalog %s failed: %v", version, err)
			}
		}
	}

	// Act
	venues, err := dao.GetCatalog()

	// Assert
	if err != nil {
		t.Fatalf("Expected the read to be retried, got %v", err)
	}
	if len(venues) != 2 || venues[0].BasePrice != 400000 {
		t.Errorf("Expected venues of v3, got %+v", venues)
	}
}

func TestRedisVenueDAO_GetCatalog_IncompleteSnapshot(t *testing.T) {
	// Setup
	client := db.NewMockRedisClient(context.Background())
	dao := NewRedisVenueDAO(client, util.NopLogger())
	if err := dao.SaveCatalog("v1", testVenues(), generatedAt); err != nil {
		t.Fatalf("SaveCatalog failed: %v", err)
	}
	if err := client.Del("venues_geo_place_v1:v1:1"); err != nil {
		t.Fatalf("Del failed: %v", err)
	}

	// Act
	_, err := dao.GetCatalog()

	// Assert
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Errorf("Expected ErrCatalogNotFound, got %v", err)
	}
}

func TestRedisVenueDAO_GetNearbyVenues_Success(t *testing.T) {
	// Setup
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()), util.NopLogger())
	_ = dao.SaveCatalog("v1", testVenues(), generatedAt)

	// Act
	venues, err := dao.GetNearbyVenues(10.7769, 106.7009, 10)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("Expected 2 venues, got %d", len(venues))
	}
	if venues[0].VenueID != "1" {
		t.Errorf("Expected nearest venue first, got %s", venues[0].VenueID)
	}
}

func TestRedisVenueDAO_GetNearbyVenues_NoResults(t *testing.T) {
	dao := NewRedisVenueDAO(db.NewMockRedisClient(context.Background()), util.NopLogger())
	_ = dao.SaveCatalog("v1", testVenues(), generatedAt)

	venues, err := dao.GetNearbyVenues(21.0278, 105.8342, 5)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(venues) != 0 {
		t.Errorf("Expected no venues, got %d", len(venues))
	}
}
