package redis

import (
    "encoding/json"
    "errors"
    "fmt"
    "time"

    "xnova-server/db"
    "xnova-server/models/venue"

    "github.com/sirupsen/logrus"
)

// Every catalogue snapshot lives under its own version so readers that hold
// an index never see venues from two different generations.
const VENUES_GEO_KEY_FORMAT_V1 = "venues_geo_v1:%s"
const VENUES_GEO_PLACE_MEMBER_FORMAT_V1 = "venues_geo_place_v1:%s:%s"
const VENUES_CATALOG_INDEX_KEY_V1 = "venues_catalog_index_v1"

var ErrCatalogNotFound = errors.New("catalog not loaded")
var ErrVenueNotFound = errors.New("venue not found")

// CatalogIndex points at the current snapshot and keeps venue order.
type CatalogIndex struct {
    Version         string    `json:"version"`
    PreviousVersion string    `json:"previous_version,omitempty"`
    VenueIDs        []string  `json:"venue_ids"`
    GeneratedAt     time.Time `json:"generated_at"`
}

// RedisVenueDAO handles venue operations using Redis.
type RedisVenueDAO struct {
    client db.RedisClient
    log    logrus.FieldLogger
}

// NewRedisVenueDAO initializes a RedisVenueDAO with the Redis client.
func NewRedisVenueDAO(client db.RedisClient, log logrus.FieldLogger) *RedisVenueDAO {
    return &RedisVenueDAO{client: client, log: log.WithField("component", "RedisVenueDAO")}
}

func geoKey(version string) string {
    return fmt.Sprintf(VENUES_GEO_KEY_FORMAT_V1, version)
}

func venueKey(version, venueID string) string {
    return fmt.Sprintf(VENUES_GEO_PLACE_MEMBER_FORMAT_V1, version, venueID)
}

// UpsertVenue stores the venue as a geolocation with the venue's JSON data
// inside the given snapshot version.
func (dao *RedisVenueDAO) UpsertVenue(version string, v venue.Venue) error {
    ctx := dao.client.GetContext()
    return dao.client.AddLocationWithJSON(ctx, geoKey(version), venueKey(version, v.VenueID), v.VenueLat, v.VenueLon, v)
}

// SaveCatalog writes a complete snapshot, then swaps the index to it. The
// snapshot before the replaced one is removed; the replaced one stays for
// readers still holding the old index.
func (dao *RedisVenueDAO) SaveCatalog(version string, venues []venue.Venue, generatedAt time.Time) error {
    ids := make([]string, 0, len(venues))
    for _, v := range venues {
        if err := dao.UpsertVenue(version, v); err != nil {
            return fmt.Errorf("failed to upsert venue %s: %w", v.VenueID, err)
        }
        ids = append(ids, v.VenueID)
    }

    previous, err := dao.GetCatalogIndex()
    if err != nil && !errors.Is(err, ErrCatalogNotFound) {
        return err
    }

    index := CatalogIndex{Version: version, VenueIDs: ids, GeneratedAt: generatedAt}
    if previous != nil && previous.Version != version {
        index.PreviousVersion = previous.Version
    }
    data, err := json.Marshal(index)
    if err != nil {
        return fmt.Errorf("failed to marshal catalog index: %w", err)
    }
    if err := dao.client.Set(VENUES_CATALOG_INDEX_KEY_V1, string(data)); err != nil {
        return fmt.Errorf("failed to set catalog index: %w", err)
    }
    dao.log.Infof("Catalog version %s saved with %d venues", version, len(ids))

    if previous != nil && previous.PreviousVersion != "" && previous.PreviousVersion != version {
        if err := dao.deleteVersion(previous.PreviousVersion); err != nil {
            dao.log.Warnf("Failed to prune catalog version %s: %v", previous.PreviousVersion, err)
        }
    }
    return nil
}

func (dao *RedisVenueDAO) deleteVersion(version string) error {
    keys, err := dao.client.Keys(venueKey(version, "*"))
    if err != nil {
        return fmt.Errorf("failed to list venues of version %s: %w", version, err)
    }
    for _, k := range keys {
        if err := dao.client.Del(k); err != nil {
            return fmt.Errorf("failed to delete %s: %w", k, err)
        }
    }
    if err := dao.client.Del(geoKey(version)); err != nil {
        return fmt.Errorf("failed to delete geo index of version %s: %w", version, err)
    }
    dao.log.Infof("Pruned catalog version %s (%d venues)", version, len(keys))
    return nil
}

// GetCatalogIndex reads the pointer to the current snapshot.
func (dao *RedisVenueDAO) GetCatalogIndex() (*CatalogIndex, error) {
    str, err := dao.client.Get(VENUES_CATALOG_INDEX_KEY_V1)
    if err != nil {
        if errors.Is(err, db.ErrKeyNotFound) {
            return nil, ErrCatalogNotFound
        }
        return nil, fmt.Errorf("failed to get catalog index: %w", err)
    }
    var index CatalogIndex
    if err := json.Unmarshal([]byte(str), &index); err != nil {
        return nil, fmt.Errorf("failed to unmarshal catalog index: %w", err)
    }
    return &index, nil
}

// GetCatalog returns every venue of the current snapshot in catalogue order.
// When the snapshot is pruned mid-read by newer refreshes, the read is retried
// once against the latest index.
func (dao *RedisVenueDAO) GetCatalog() ([]venue.Venue, error) {
    index, err := dao.GetCatalogIndex()
    if err != nil {
        return nil, err
    }
    venues, err := dao.readCatalog(index)
    if !errors.Is(err, ErrVenueNotFound) {
        return venues, err
    }

    latest, ierr := dao.GetCatalogIndex()
    if ierr != nil {
        return nil, ierr
    }
    if latest.Version != index.Version {
        dao.log.Debugf("Catalog version %s replaced by %s while reading, retrying", index.Version, latest.Version)
        venues, err = dao.readCatalog(latest)
        if !errors.Is(err, ErrVenueNotFound) {
            return venues, err
        }
    }
    return nil, fmt.Errorf("%w: snapshot %s is incomplete: %v", ErrCatalogNotFound, latest.Version, err)
}

func (dao *RedisVenueDAO) readCatalog(index *CatalogIndex) ([]venue.Venue, error) {
    venues := make([]venue.Venue, 0, len(index.VenueIDs))
    for _, id := range index.VenueIDs {
        v, err := dao.getVenue(index.Version, id)
        if err != nil {
            return nil, err
        }
        venues = append(venues, *v)
    }
    return venues, nil
}

// GetVenue reads one venue from the current snapshot.
func (dao *RedisVenueDAO) GetVenue(venueID string) (*venue.Venue, error) {
    index, err := dao.GetCatalogIndex()
    if err != nil {
        return nil, err
    }
    return dao.getVenue(index.Version, venueID)
}

func (dao *RedisVenueDAO) getVenue(version, venueID string) (*venue.Venue, error) {
    str, err := dao.client.Get(venueKey(version, venueID))
    if err != nil {
        if errors.Is(err, db.ErrKeyNotFound) {
            return nil, fmt.Errorf("%w: %s", ErrVenueNotFound, venueID)
        }
        return nil, fmt.Errorf("failed to get venue %s: %w", venueID, err)
    }
    var v venue.Venue
    if err := json.Unmarshal([]byte(str), &v); err != nil {
        return nil, fmt.Errorf("failed to unmarshal venue %s: %w", venueID, err)
    }
    return &v, nil
}

// GetNearbyVenues retrieves venues of the current snapshot within radius km.
func (dao *RedisVenueDAO) GetNearbyVenues(lat, lon float64, radius float64) ([]venue.Venue, error) {
    index, err := dao.GetCatalogIndex()
    if err != nil {
        return nil, err
    }
    venuesJSON, err := dao.client.GetLocationsWithinRadius(geoKey(index.Version), lat, lon, radius)
    if err != nil {
        return nil, fmt.Errorf("failed to get venues: %w", err)
    }

    venues := make([]venue.Venue, len(venuesJSON))
    for i, venueJSON := range venuesJSON {
        if err := json.Unmarshal([]byte(venueJSON), &venues[i]); err != nil {
            return nil, fmt.Errorf("failed to unmarshal venue JSON: %w", err)
        }
    }
    dao.log.Debugf("Found %d venues within %.1f km of (%f, %f)", len(venues), radius, lat, lon)
    return venues, nil
}
