package services

import (
	"errors"
	"fmt"

	"xnova-server/dao/redis"
	"xnova-server/metrics"
	"xnova-server/models"
	"xnova-server/models/venue"

	"github.com/sirupsen/logrus"
)

type VenueService struct {
	venueDao *redis.RedisVenueDAO
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

// NewVenueService constructs a new VenueService with Redis dependency injection.
func NewVenueService(
	venueDao *redis.RedisVenueDAO,
	m *metrics.Metrics,
	log logrus.FieldLogger) *VenueService {

	return &VenueService{
		venueDao: venueDao,
		metrics:  m,
		log:      log.WithField("component", "VenueService"),
	}
}

// Search filters the current catalogue snapshot.
func (vs *VenueService) Search(c models.FilterCriteria) ([]models.VenueMatch, error) {
	venues, err := vs.Catalog()
	if err != nil {
		return nil, err
	}
	matches := FilterVenues(venues, c)
	vs.metrics.ObserveSearch(len(matches))
	vs.log.WithFields(logrus.Fields{
		"date":    c.SelectedDate,
		"time":    c.Time.String(),
		"active":  c.ActiveCount(),
		"results": len(matches),
	}).Debug("Search completed")
	return matches, nil
}

// Catalog returns every venue of the current snapshot in catalogue order.
func (vs *VenueService) Catalog() ([]venue.Venue, error) {
	venues, err := vs.venueDao.GetCatalog()
	if err != nil {
		return nil, translateDaoError(err)
	}
	return venues, nil
}

func (vs *VenueService) GetVenue(venueId string) (*venue.Venue, error) {
	v, err := vs.venueDao.GetVenue(venueId)
	if err != nil {
		return nil, translateDaoError(err)
	}
	return v, nil
}

func (vs *VenueService) GetVenuesNearby(lat, lon, radius float64) ([]venue.Venue, error) {
	venues, err := vs.venueDao.GetNearbyVenues(lat, lon, radius)
	if err != nil {
		return nil, translateDaoError(err)
	}
	return venues, nil
}

// AvailableTimes lists every time with at least one open venue on date.
func (vs *VenueService) AvailableTimes(date string) ([]string, error) {
	venues, err := vs.Catalog()
	if err != nil {
		return nil, err
	}
	return AvailableTimes(venues, date), nil
}

func translateDaoError(err error) error {
	switch {
	case errors.Is(err, redis.ErrCatalogNotFound):
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	case errors.Is(err, redis.ErrVenueNotFound):
		return fmt.Errorf("%w: %v", ErrVenueNotFound, err)
	}
	return err
}
