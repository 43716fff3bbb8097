package services

import (
	"errors"
	"fmt"

	"xnova-server/config"
	"xnova-server/dao/redis"
	"xnova-server/models/match"
	"xnova-server/util"

	"github.com/sirupsen/logrus"
)

// MatchService serves the open match list for the player-matching page.
type MatchService struct {
	matchDao *redis.RedisMatchDAO
	clock    util.Clock
	seedFile string
	log      logrus.FieldLogger
}

func NewMatchService(matchDao *redis.RedisMatchDAO, clock util.Clock, seedFile string, log logrus.FieldLogger) *MatchService {
	return &MatchService{
		matchDao: matchDao,
		clock:    clock,
		seedFile: seedFile,
		log:      log.WithField("component", "MatchService"),
	}
}

// LoadMatches reads the match seed and stores it. It returns how many
// matches were loaded.
func (ms *MatchService) LoadMatches() (int, error) {
	matches, err := util.ReadMatchSeedFromJSON(config.GetResourcePath(ms.seedFile))
	if err != nil {
		return 0, fmt.Errorf("failed to load match seed: %w", err)
	}
	if err := ms.matchDao.SaveMatches(matches); err != nil {
		return 0, err
	}
	ms.log.Infof("Loaded %d open matches", len(matches))
	return len(matches), nil
}

// Search returns the matches passing f with their dates resolved against
// today.
func (ms *MatchService) Search(f match.Filter) ([]match.Match, error) {
	matches, err := ms.matchDao.GetMatches()
	if err != nil {
		if errors.Is(err, redis.ErrMatchesNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrMatchesUnavailable, err)
		}
		return nil, err
	}
	for i := range matches {
		if matches[i].Date == "" {
			matches[i].Date = util.NextDays(ms.clock, matches[i].DayOffset+1)[matches[i].DayOffset]
		}
		matches[i].DayOffset = 0
	}

	out := FilterMatches(matches, f)
	ms.log.WithFields(logrus.Fields{
		"search":  f.Search,
		"skill":   f.Skill,
		"results": len(out),
	}).Debug("Match search completed")
	return out, nil
}
