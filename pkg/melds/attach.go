package melds

import "github.com/vctt94/scala40/pkg/cards"

// ValidateAttach checks whether card c may attach to table meld m: adding c
// to m's cards (in some run position for a sequence, in the common-rank
// slot for a combination) must yield another valid meld of the same kind,
// without exceeding the at-most-one-joker constraint.
func ValidateAttach(m TableMeld, c cards.Card) Result {
	candidate := make([]cards.Card, len(m.Cards)+1)
	copy(candidate, m.Cards)
	candidate[len(m.Cards)] = c

	switch m.Kind {
	case Sequence:
		return ValidateSequence(candidate)
	case Combination:
		return ValidateCombination(candidate)
	default:
		return Result{Reason: ReasonUnknownCard}
	}
}

// Attach returns the new card list for m with c attached, assuming
// ValidateAttach(m, c) already reported Valid. For a sequence the returned
// order is re-normalized to ascending run order so later substitutions can
// rely on positional ordering.
func Attach(m TableMeld, c cards.Card) []cards.Card {
	candidate := make([]cards.Card, len(m.Cards)+1)
	copy(candidate, m.Cards)
	candidate[len(m.Cards)] = c
	if m.Kind == Sequence {
		return NormalizeSequence(candidate)
	}
	return candidate
}
