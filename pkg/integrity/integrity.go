// Package integrity implements the post-mutation consistency checker (C5):
// a pure function over a snapshot of game state that reports every
// invariant violation it finds, rather than stopping at the first one.
// It defines its own Snapshot type instead of importing pkg/engine so the
// dependency runs one way only: pkg/engine calls into pkg/integrity, never
// the reverse.
package integrity

import (
	"fmt"
	"sort"

	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
)

// Snapshot is the minimal read-only view of a game state the checker needs.
type Snapshot struct {
	Hands              map[string][]cards.Card
	TableMelds         []melds.TableMeld
	Stock              []cards.Card
	Discard            []cards.Card
	CurrentPlayerID    string
	EliminatedPlayers  map[string]bool
	Phase              string // AWAIT_DRAW, AWAIT_PLAY, AWAIT_DISCARD, TURN_END
	HasDrawnThisTurn   bool
}

// Violation is one specific invariant breach, tagged with a stable code so
// tests and simulation logs can assert on it without string matching.
type Violation struct {
	Code    string
	Message string
}

const (
	CodeCardCountMismatch = "cardCountMismatch"
	CodeMultisetMismatch  = "multisetMismatch"
	CodeInvalidMeld       = "invalidMeld"
	CodeEliminatedActing  = "eliminatedPlayerActing"
	CodePhaseInconsistent = "phaseInconsistent"
)

// Check runs every invariant from spec.md §4.5 against s and returns every
// violation found; an empty slice means s is fully consistent.
func Check(s Snapshot) []Violation {
	var violations []Violation

	all := allCards(s)
	if len(all) != 108 {
		violations = append(violations, Violation{
			Code:    CodeCardCountMismatch,
			Message: fmt.Sprintf("expected 108 cards in play, found %d", len(all)),
		})
	} else if !matchesCanonicalMultiset(all) {
		violations = append(violations, Violation{
			Code:    CodeMultisetMismatch,
			Message: "card multiset does not match the canonical 108-card deck",
		})
	}

	for i, m := range s.TableMelds {
		var r melds.Result
		switch m.Kind {
		case melds.Sequence:
			r = melds.ValidateSequence(m.Cards)
		case melds.Combination:
			r = melds.ValidateCombination(m.Cards)
		default:
			r = melds.Result{Reason: melds.ReasonUnknownCard}
		}
		if !r.Valid {
			violations = append(violations, Violation{
				Code:    CodeInvalidMeld,
				Message: fmt.Sprintf("table meld %d (owner %s) is invalid: %s", i, m.Owner, r.Reason),
			})
		}
	}

	if s.EliminatedPlayers[s.CurrentPlayerID] {
		violations = append(violations, Violation{
			Code:    CodeEliminatedActing,
			Message: fmt.Sprintf("current player %s is eliminated", s.CurrentPlayerID),
		})
	}

	if !phaseConsistent(s) {
		violations = append(violations, Violation{
			Code:    CodePhaseInconsistent,
			Message: fmt.Sprintf("phase %s inconsistent with hasDrawnThisTurn=%v", s.Phase, s.HasDrawnThisTurn),
		})
	}

	return violations
}

func allCards(s Snapshot) []cards.Card {
	var all []cards.Card
	for _, h := range s.Hands {
		all = append(all, h...)
	}
	for _, m := range s.TableMelds {
		all = append(all, m.Cards...)
	}
	all = append(all, s.Stock...)
	all = append(all, s.Discard...)
	return all
}

// matchesCanonicalMultiset compares all against the canonical 108-card
// multiset, order-independent.
func matchesCanonicalMultiset(all []cards.Card) bool {
	want := cards.CanonicalMultiset()
	if len(all) != len(want) {
		return false
	}
	got := make([]cards.Card, len(all))
	copy(got, all)
	sort.Slice(got, func(i, j int) bool { return cardLess(got[i], got[j]) })
	sort.Slice(want, func(i, j int) bool { return cardLess(want[i], want[j]) })
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func cardLess(a, b cards.Card) bool {
	if a.Suit != b.Suit {
		return a.Suit < b.Suit
	}
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.DeckIndex < b.DeckIndex
}

// phaseConsistent checks that AWAIT_DRAW implies no draw has happened yet
// this turn, and AWAIT_PLAY/AWAIT_DISCARD/TURN_END imply one has.
func phaseConsistent(s Snapshot) bool {
	switch s.Phase {
	case "AWAIT_DRAW":
		return !s.HasDrawnThisTurn
	case "AWAIT_PLAY", "AWAIT_DISCARD", "TURN_END":
		return s.HasDrawnThisTurn
	default:
		return false
	}
}
