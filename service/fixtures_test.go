package services

import (
	"context"
	"testing"
	"time"

	"xnova-server/dao/redis"
	"xnova-server/db"
	"xnova-server/models/venue"
	"xnova-server/util"

	"github.com/stretchr/testify/require"
)

// "today" is Thursday 2026-10-15.
var testClock = util.FixedClock{At: time.Date(2026, 10, 15, 22, 30, 0, 0, time.UTC)}

func bookableVenue() venue.Venue {
	return venue.Venue{
		VenueID: "1", VenueName: "Sân Cầu Lông Premium Quận 1", VenueLocation: "Quận 1, TP.HCM",
		VenueLat: 10.7769, VenueLon: 106.7009, VenueType: "Cầu lông", Rating: 4.8, BasePrice: 200000,
		Resources: util.DefaultResources("Cầu lông"),
		Availability: []venue.Availability{
			{Date: "2026-10-14", TimeSlots: slots("09:00")},
			{Date: "2026-10-15", TimeSlots: slots("21:00")},
			{Date: "2026-10-16", TimeSlots: []venue.TimeSlot{
				{Time: "09:00", IsAvailable: true},
				{Time: "10:00", IsAvailable: false},
				{Time: "18:00", IsAvailable: true, Price: price(260000)},
			}},
			{Date: "2026-10-17", TimeSlots: slots()},
		},
	}
}

// newTestStore saves venues as the current snapshot of an in-memory Redis.
func newTestStore(t *testing.T, venues []venue.Venue) (*db.MockRedisClient, *redis.RedisVenueDAO) {
	t.Helper()
	client := db.NewMockRedisClient(context.Background()).WithClock(testClock.Now)
	dao := redis.NewRedisVenueDAO(client, util.NopLogger())
	require.NoError(t, dao.SaveCatalog("test", venues, testClock.Now()))
	return client, dao
}
