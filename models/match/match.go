package match

// SkillLevel is the level a match is organised for.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// Valid reports whether s is one of the known levels.
func (s SkillLevel) Valid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

// LabelKey is the translation key of the level's display name.
func (s SkillLevel) LabelKey() string {
	return "matching." + string(s)
}

type Organizer struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Match is an open game looking for players. Seed matches carry DayOffset
// instead of Date; the date is resolved against today when they are read.
type Match struct {
	MatchID        string     `json:"match_id"`
	Title          string     `json:"title"`
	Location       string     `json:"location"`
	StartTime      string     `json:"start_time"`
	EndTime        string     `json:"end_time"`
	Date           string     `json:"date,omitempty"`
	DayOffset      int        `json:"day_offset,omitempty"`
	CurrentPlayers int        `json:"current_players"`
	MaxPlayers     int        `json:"max_players"`
	SkillLevel     SkillLevel `json:"skill_level"`
	Price          int64      `json:"price"`
	Organizer      Organizer  `json:"organizer"`
}

func (m Match) SpotsLeft() int {
	if m.CurrentPlayers >= m.MaxPlayers {
		return 0
	}
	return m.MaxPlayers - m.CurrentPlayers
}
