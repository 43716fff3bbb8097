package match

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	SEARCH_QUERY_ARG = "search"
	SKILL_QUERY_ARG  = "skill"

	// SKILL_ALL is the skill value that leaves the level unfiltered.
	SKILL_ALL = "all"
)

var ErrInvalidSkill = errors.New("invalid skill level")

// Filter narrows the open match list. Empty fields are inactive.
type Filter struct {
	Search string     `json:"search,omitempty"`
	Skill  SkillLevel `json:"skill,omitempty"`
}

// FilterFromValues decodes a Filter from query args.
func FilterFromValues(q url.Values) (Filter, error) {
	f := Filter{Search: strings.TrimSpace(q.Get(SEARCH_QUERY_ARG))}

	skill := strings.ToLower(strings.TrimSpace(q.Get(SKILL_QUERY_ARG)))
	if skill == "" || skill == SKILL_ALL {
		return f, nil
	}
	if !SkillLevel(skill).Valid() {
		return Filter{}, fmt.Errorf("%w: %s=%q", ErrInvalidSkill, SKILL_QUERY_ARG, skill)
	}
	f.Skill = SkillLevel(skill)
	return f, nil
}

// Matches applies the search term to title and location, case-insensitively,
// and requires the exact skill level when one is set.
func (f Filter) Matches(m Match) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(m.Title), term) &&
			!strings.Contains(strings.ToLower(m.Location), term) {
			return false
		}
	}
	return f.Skill == "" || m.SkillLevel == f.Skill
}
