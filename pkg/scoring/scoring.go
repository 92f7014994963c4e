// Package scoring implements hand-end and match-end scoring (C3): the
// closer scores zero, everyone else is charged the point value of the
// cards left in hand, cumulative scores accumulate across hands, and a
// player crossing the elimination threshold drops out of the match.
package scoring

import (
	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
)

// PlayerHand is the minimal view scoring needs of one player at hand end.
type PlayerHand struct {
	PlayerID        string
	Hand            []cards.Card
	CumulativeScore int
	Eliminated      bool
}

// HandResult records, for the structured hand_end event, each player's
// point delta for the hand that just closed and their running cumulative
// score afterward.
type HandResult struct {
	CloserID         string
	Deltas           map[string]int
	CumulativeScores map[string]int
	Eliminated       []string
	MatchFinished    bool
	WinnerID         string
}

// ScoreHand applies §4.3's hand-end rule: closerID scores 0; every other
// player in hands is charged the §4.2 point value of every card still in
// their hand. hands must include every player still seated, closer
// included. eliminationThreshold is the cumulative score at or above which
// a player is marked eliminated (default 101, configurable to 201).
func ScoreHand(hands []PlayerHand, closerID string, eliminationThreshold int) HandResult {
	result := HandResult{
		CloserID:         closerID,
		Deltas:           make(map[string]int, len(hands)),
		CumulativeScores: make(map[string]int, len(hands)),
	}

	for _, ph := range hands {
		delta := 0
		if ph.PlayerID != closerID {
			delta = handValue(ph.Hand)
		}
		result.Deltas[ph.PlayerID] = delta
		cumulative := ph.CumulativeScore + delta
		result.CumulativeScores[ph.PlayerID] = cumulative
		if cumulative >= eliminationThreshold {
			result.Eliminated = append(result.Eliminated, ph.PlayerID)
		}
	}

	remaining := remainingPlayers(hands, result)
	if len(remaining) == 1 {
		result.MatchFinished = true
		result.WinnerID = remaining[0]
	}
	return result
}

// handValue sums each card's §4.2 point value, using the ace's high value
// (11) since a stray hand card carries no sequence position to make it low.
func handValue(hand []cards.Card) int {
	total := 0
	for _, c := range hand {
		total += melds.Points(c, false)
	}
	return total
}

func remainingPlayers(hands []PlayerHand, result HandResult) []string {
	eliminatedNow := make(map[string]bool, len(result.Eliminated))
	for _, id := range result.Eliminated {
		eliminatedNow[id] = true
	}
	var remaining []string
	for _, ph := range hands {
		if ph.Eliminated || eliminatedNow[ph.PlayerID] {
			continue
		}
		remaining = append(remaining, ph.PlayerID)
	}
	return remaining
}
