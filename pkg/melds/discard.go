package melds

import "github.com/vctt94/scala40/pkg/cards"

// DiscardDenial enumerates why a candidate discard was rejected.
type DiscardDenial string

const (
	DiscardAllowed         DiscardDenial = ""
	DiscardIsPickedUpCard  DiscardDenial = "DiscardIsPickedUpCard"
	DiscardAttachesToTable DiscardDenial = "DiscardAttachesToTable"
	CannotCloseFirstRound  DiscardDenial = "CannotCloseFirstRound"
)

// DiscardContext carries everything the discard-legality check (spec.md
// §4.2) needs, gathered by the caller from turn and table state.
type DiscardContext struct {
	Card                 cards.Card
	RemainingHandSize     int  // hand size after removing Card
	PickedFromDiscard     *cards.Card
	HeldDuplicateOfPicked bool // player holds another card identical to *PickedFromDiscard
	DeclareDuplicate      bool
	TableMelds            []TableMeld
	NonEliminatedPlayers  int
	FirstRoundComplete    bool
}

// ValidateDiscard applies spec.md §4.2's discard legality in order: the
// picked-up-card restriction, the attach-to-table restriction (3+ players),
// and the first-round closure restriction.
func ValidateDiscard(ctx DiscardContext) DiscardDenial {
	closes := ctx.RemainingHandSize == 0

	if ctx.PickedFromDiscard != nil && sameCard(ctx.Card, *ctx.PickedFromDiscard) {
		if !(ctx.DeclareDuplicate && ctx.HeldDuplicateOfPicked) {
			return DiscardIsPickedUpCard
		}
	}

	if ctx.NonEliminatedPlayers >= 3 && !closes {
		for _, m := range ctx.TableMelds {
			if ValidateAttach(m, ctx.Card).Valid {
				return DiscardAttachesToTable
			}
		}
	}

	if closes && !ctx.FirstRoundComplete {
		return CannotCloseFirstRound
	}

	return DiscardAllowed
}

// sameCard compares full card identity, deck index included: the
// picked-up-card restriction applies to the physical card drawn, and a
// held duplicate of it (same suit and rank, other deck index) is handled
// through HeldDuplicateOfPicked and DeclareDuplicate.
func sameCard(a, b cards.Card) bool {
	return a == b
}
