package util

import (
    "encoding/json"
    "fmt"
    "os"

    "xnova-server/models/venue"
)

// ReadVenueSeedFromJSON loads the seed catalogue from JSON on disk. Seed venues
// carry no availability; it is generated at startup.
func ReadVenueSeedFromJSON(filePath string) ([]venue.Venue, error) {
    data, err := os.ReadFile(filePath)
    if err != nil {
        return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
    }
    var venues []venue.Venue
    if err := json.Unmarshal(data, &venues); err != nil {
        return nil, fmt.Errorf("failed to unmarshal venue seed: %w", err)
    }
    if err := validateSeed(venues); err != nil {
        return nil, fmt.Errorf("invalid venue seed %q: %w", filePath, err)
    }
    return venues, nil
}

// ReadVenueFromJSON loads a single Venue from JSON on disk.
func ReadVenueFromJSON(filePath string) (*venue.Venue, error) {
    data, err := os.ReadFile(filePath)
    if err != nil {
        return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
    }
    var v venue.Venue
    if err := json.Unmarshal(data, &v); err != nil {
        return nil, fmt.Errorf("failed to unmarshal Venue: %w", err)
    }
    return &v, nil
}

func validateSeed(venues []venue.Venue) error {
    seen := make(map[string]struct{}, len(venues))
    for _, v := range venues {
        if v.VenueID == "" {
            return fmt.Errorf("venue %q has no id", v.VenueName)
        }
        if _, dup := seen[v.VenueID]; dup {
            return fmt.Errorf("duplicate venue id %s", v.VenueID)
        }
        seen[v.VenueID] = struct{}{}
        if v.BasePrice <= 0 {
            return fmt.Errorf("venue %s has non-positive base price %d", v.VenueID, v.BasePrice)
        }
        if v.Rating < 0 || v.Rating > 5 {
            return fmt.Errorf("venue %s has rating %.1f outside [0, 5]", v.VenueID, v.Rating)
        }
    }
    return nil
}
