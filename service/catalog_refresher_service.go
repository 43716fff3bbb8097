package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xnova-server/config"
	"xnova-server/dao/redis"
	"xnova-server/metrics"
	"xnova-server/models/venue"
	"xnova-server/util"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CatalogRefresherService rebuilds the venue catalogue from the seed file and
// swaps it in as a new snapshot, so the bookable window rolls forward daily.
type CatalogRefresherService struct {
	venueDao *redis.RedisVenueDAO
	cfg      config.CatalogConfig
	clock    util.Clock
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

// NewCatalogRefresherService constructs a new refresher with dependencies.
func NewCatalogRefresherService(
	venueDao *redis.RedisVenueDAO,
	cfg config.CatalogConfig,
	clock util.Clock,
	m *metrics.Metrics,
	log logrus.FieldLogger,
) *CatalogRefresherService {
	return &CatalogRefresherService{
		venueDao: venueDao,
		cfg:      cfg,
		clock:    clock,
		metrics:  m,
		log:      log.WithField("component", "CatalogRefresherService"),
	}
}

// RefreshCatalog loads the seed venues, builds availability for the
// configured number of days starting today and stores the result as the
// current snapshot. Dates already published in the current snapshot are
// carried over unchanged; only dates new to the window are generated.
// It returns the new snapshot version.
func (cr *CatalogRefresherService) RefreshCatalog() (string, error) {
	seedPath := config.GetResourcePath(cr.cfg.SeedFile)
	venues, err := util.ReadVenueSeedFromJSON(seedPath)
	if err != nil {
		return "", fmt.Errorf("failed to load venue seed: %w", err)
	}

	now := cr.clock.Now()
	seed := cr.cfg.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}
	gen := util.NewAvailabilityGenerator(seed, cr.cfg.Probability, util.PeakPricing{
		Start:      cr.cfg.PeakStart,
		End:        cr.cfg.PeakEnd,
		Multiplier: cr.cfg.PeakMultiplier,
	})
	dates := util.NextDays(cr.clock, cr.cfg.Days)
	published := cr.publishedAvailability()

	carried := 0
	for i := range venues {
		if len(venues[i].Resources) == 0 {
			venues[i].Resources = util.DefaultResources(venues[i].VenueType)
		}
		var n int
		venues[i].Availability, n = buildAvailability(gen, venues[i], dates, published[venues[i].VenueID])
		carried += n
	}

	version := now.UTC().Format("20060102T150405") + "-" + uuid.NewString()[:8]
	if err := cr.venueDao.SaveCatalog(version, venues, now); err != nil {
		return "", fmt.Errorf("failed to save catalog %s: %w", version, err)
	}
	cr.metrics.CatalogRefreshed(len(venues), now)

	cr.log.WithFields(logrus.Fields{
		"version": version,
		"venues":  len(venues),
		"from":    dates[0],
		"to":      dates[len(dates)-1],
		"carried": carried,
	}).Info("Catalog refreshed")
	return version, nil
}

// publishedAvailability indexes the current snapshot by venue and date. An
// unreadable snapshot is treated as empty and the window is generated afresh.
func (cr *CatalogRefresherService) publishedAvailability() map[string]map[string]venue.Availability {
	out := map[string]map[string]venue.Availability{}
	current, err := cr.venueDao.GetCatalog()
	if err != nil {
		if !errors.Is(err, redis.ErrCatalogNotFound) {
			cr.log.WithError(err).Warn("Could not read current catalog, regenerating every date")
		}
		return out
	}
	for _, v := range current {
		byDate := make(map[string]venue.Availability, len(v.Availability))
		for _, a := range v.Availability {
			byDate[a.Date] = a
		}
		out[v.VenueID] = byDate
	}
	return out
}

// buildAvailability keeps published entries for dates still in the window and
// generates the rest. It returns the entries in date order and how many were
// carried over.
func buildAvailability(
	gen *util.AvailabilityGenerator,
	v venue.Venue,
	dates []string,
	published map[string]venue.Availability,
) ([]venue.Availability, int) {
	var missing []string
	for _, d := range dates {
		if _, ok := published[d]; !ok {
			missing = append(missing, d)
		}
	}
	fresh := make(map[string]venue.Availability, len(missing))
	for _, a := range gen.Generate(v, missing) {
		fresh[a.Date] = a
	}

	out := make([]venue.Availability, 0, len(dates))
	for _, d := range dates {
		if a, ok := published[d]; ok {
			out = append(out, a)
			continue
		}
		out = append(out, fresh[d])
	}
	return out, len(dates) - len(missing)
}

// StartPeriodicJob launches the background loop at the given interval. It
// stops when ctx is cancelled.
func (cr *CatalogRefresherService) StartPeriodicJob(ctx context.Context, interval time.Duration) {
	go cr.startPeriodicJob(ctx, interval)
}

func (cr *CatalogRefresherService) startPeriodicJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			cr.log.Info("Periodic catalog refresher stopped")
			return
		case <-ticker.C:
			cr.log.Info("Running periodic catalog refresher job")
			if _, err := cr.RefreshCatalog(); err != nil {
				cr.log.WithError(err).Error("RefreshCatalog failed")
			}
		}
	}
}
