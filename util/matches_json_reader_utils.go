package util

import (
	"encoding/json"
	"fmt"
	"os"

	"xnova-server/models/match"
)

// ReadMatchSeedFromJSON loads the open match list from JSON on disk.
func ReadMatchSeedFromJSON(filePath string) ([]match.Match, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var matches []match.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match seed: %w", err)
	}
	if err := validateMatchSeed(matches); err != nil {
		return nil, fmt.Errorf("invalid match seed %q: %w", filePath, err)
	}
	return matches, nil
}

func validateMatchSeed(matches []match.Match) error {
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if m.MatchID == "" {
			return fmt.Errorf("match %q has no id", m.Title)
		}
		if _, dup := seen[m.MatchID]; dup {
			return fmt.Errorf("duplicate match id %s", m.MatchID)
		}
		seen[m.MatchID] = struct{}{}
		if !m.SkillLevel.Valid() {
			return fmt.Errorf("match %s has unknown skill level %q", m.MatchID, m.SkillLevel)
		}
		if m.MaxPlayers <= 0 || m.CurrentPlayers < 0 || m.CurrentPlayers > m.MaxPlayers {
			return fmt.Errorf("match %s has %d of %d players", m.MatchID, m.CurrentPlayers, m.MaxPlayers)
		}
		if m.DayOffset < 0 {
			return fmt.Errorf("match %s has negative day offset %d", m.MatchID, m.DayOffset)
		}
		if m.Price < 0 {
			return fmt.Errorf("match %s has negative price %d", m.MatchID, m.Price)
		}
	}
	return nil
}
