package services

import "xnova-server/models/match"

// FilterMatches keeps the matches passing f, in their original order. The
// result is never nil.
func FilterMatches(matches []match.Match, f match.Filter) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	return out
}
