package handlers

import (
	"net/http"

	"xnova-server/models/match"
	"xnova-server/util"

	"github.com/sirupsen/logrus"
)

// MatchFinder searches open matches.
type MatchFinder interface {
	Search(f match.Filter) ([]match.Match, error)
}

// MatchCard is one open match as the player-matching page shows it.
type MatchCard struct {
	match.Match
	DisplayDate string `json:"display_date"`
	SkillLabel  string `json:"skill_label"`
	SpotsLeft   int    `json:"spots_left"`
}

type MatchesResponse struct {
	Title   string       `json:"title"`
	Filter  match.Filter `json:"filter"`
	Count   int          `json:"count"`
	Empty   bool         `json:"empty"`
	Message string       `json:"message,omitempty"`
	Results []MatchCard  `json:"results"`
}

type MatchHandler struct {
	matches MatchFinder
	clock   util.Clock
	log     logrus.FieldLogger
}

func NewMatchHandler(matches MatchFinder, clock util.Clock, log logrus.FieldLogger) *MatchHandler {
	return &MatchHandler{
		matches: matches,
		clock:   clock,
		log:     log.WithField("component", "MatchHandler"),
	}
}

// SearchMatches handles GET /v1/matches
func (h *MatchHandler) SearchMatches(w http.ResponseWriter, r *http.Request) {
	// 1) Parse query args
	f, err := match.FilterFromValues(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tr := translatorFor(r)

	// 2) Load and filter
	matches, err := h.matches.Search(f)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	// 3) Transform into cards
	resp := MatchesResponse{
		Title:   tr.T("matching.availableMatches"),
		Filter:  f,
		Count:   len(matches),
		Empty:   len(matches) == 0,
		Results: make([]MatchCard, 0, len(matches)),
	}
	if resp.Empty {
		resp.Message = tr.T("matching.empty")
	}
	for _, m := range matches {
		card := MatchCard{Match: m, SkillLabel: tr.T(m.SkillLevel.LabelKey()), SpotsLeft: m.SpotsLeft(), DisplayDate: m.Date}
		if label, err := util.FormatDisplayDate(h.clock, tr, m.Date); err == nil {
			card.DisplayDate = label
		}
		resp.Results = append(resp.Results, card)
	}

	// 4) Write JSON
	writeJSON(w, h.log, http.StatusOK, resp)
}
