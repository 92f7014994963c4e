package melds

import "github.com/vctt94/scala40/pkg/cards"

// OpeningResult is the outcome of validating a set of candidate melds as a
// player's opening move.
type OpeningResult struct {
	Valid       bool
	Points      int
	FailedIndex int    // index into the candidate slice that failed, if any
	Reason      Reason // only set when a specific candidate failed validation
}

// ValidateOpening checks a player's opening candidate melds: every meld
// must individually validate, and their combined point total must reach
// threshold (spec.md §4.2's default 40, configurable per game).
func ValidateOpening(candidates [][]cards.Card, threshold int) OpeningResult {
	if len(candidates) == 0 {
		return OpeningResult{Reason: ReasonTooShort}
	}
	total := 0
	for i, cs := range candidates {
		r := Validate(cs)
		if !r.Valid {
			return OpeningResult{FailedIndex: i, Reason: r.Reason}
		}
		total += r.Points
	}
	if total < threshold {
		return OpeningResult{Points: total}
	}
	return OpeningResult{Valid: true, Points: total}
}
