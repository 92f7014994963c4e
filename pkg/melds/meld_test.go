package melds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/scala40/pkg/cards"
)

func c(s cards.Suit, r cards.Rank) cards.Card {
	return cards.Card{Suit: s, Rank: r}
}

func joker() cards.Card {
	return cards.Card{Suit: cards.NoSuit, Rank: cards.JokerRank}
}

func TestValidateSequence_AceLow(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, cards.Ace), c(cards.Spades, 2), c(cards.Spades, 3)}
	r := ValidateSequence(cs)
	require.True(t, r.Valid)
	assert.Equal(t, 1+2+3, r.Points)
}

func TestValidateSequence_AceHigh(t *testing.T) {
	cs := []cards.Card{c(cards.Hearts, cards.Queen), c(cards.Hearts, cards.King), c(cards.Hearts, cards.Ace)}
	r := ValidateSequence(cs)
	require.True(t, r.Valid)
	assert.Equal(t, 10+10+11, r.Points)
}

func TestValidateSequence_WrapRejected(t *testing.T) {
	cs := []cards.Card{c(cards.Clubs, cards.King), c(cards.Clubs, cards.Ace), c(cards.Clubs, 2)}
	r := ValidateSequence(cs)
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonWrap, r.Reason)
}

func TestValidateSequence_MixedSuits(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, 4), c(cards.Hearts, 5), c(cards.Spades, 6)}
	r := ValidateSequence(cs)
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonMixedSuitsInSequence, r.Reason)
}

func TestValidateSequence_TooShort(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, 4), c(cards.Spades, 5)}
	r := ValidateSequence(cs)
	assert.Equal(t, ReasonTooShort, r.Reason)
}

func TestValidateSequence_MultipleJokers(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, 4), joker(), joker(), c(cards.Spades, 7)}
	r := ValidateSequence(cs)
	assert.Equal(t, ReasonMultipleJokers, r.Reason)
}

func TestValidateSequence_WithJokerFillingGap(t *testing.T) {
	cs := []cards.Card{c(cards.Diamonds, 5), joker(), c(cards.Diamonds, 7)}
	r := ValidateSequence(cs)
	require.True(t, r.Valid)
	assert.Equal(t, 5+6+7, r.Points)
}

func TestValidateCombination_Valid(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, 7), c(cards.Hearts, 7), c(cards.Diamonds, 7)}
	r := ValidateCombination(cs)
	require.True(t, r.Valid)
	assert.Equal(t, 21, r.Points)
}

func TestValidateCombination_WithJoker(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, 7), c(cards.Hearts, 7), joker()}
	r := ValidateCombination(cs)
	require.True(t, r.Valid)
	assert.Equal(t, 7+7+7, r.Points)
}

func TestValidateCombination_SameSuitRejected(t *testing.T) {
	cs := []cards.Card{c(cards.Spades, 7), c(cards.Spades, 7), c(cards.Hearts, 7)}
	r := ValidateCombination(cs)
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonSameSuitInCombination, r.Reason)
}

func TestValidateCombination_OnlyJokers(t *testing.T) {
	cs := []cards.Card{joker(), joker()}
	r := ValidateCombination(cs)
	assert.Equal(t, ReasonTooShort, r.Reason) // length 2 fails length check first
}

func TestValidateCombination_AllJokersAtLength3(t *testing.T) {
	cs := []cards.Card{joker(), joker(), joker()}
	r := ValidateCombination(cs)
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonMultipleJokers, r.Reason) // two jokers rejected before the all-joker check
}

func TestValidateOpening_ExactlyThreshold(t *testing.T) {
	melds := [][]cards.Card{
		{c(cards.Spades, cards.Ace), c(cards.Spades, 2), c(cards.Spades, 3), c(cards.Spades, 4)},
		{c(cards.Hearts, 10), c(cards.Diamonds, 10), c(cards.Clubs, 10)},
	}
	r := ValidateOpening(melds, 40)
	require.True(t, r.Valid)
	assert.Equal(t, 40, r.Points)
}

func TestValidateOpening_BelowThreshold(t *testing.T) {
	melds := [][]cards.Card{
		{c(cards.Hearts, 11), c(cards.Hearts, 12), c(cards.Hearts, 13)},
	}
	r := ValidateOpening(melds, 40)
	assert.False(t, r.Valid)
	assert.Equal(t, 30, r.Points)
}

func TestValidateOpening_OneIllegalMeldFails(t *testing.T) {
	melds := [][]cards.Card{
		{c(cards.Spades, 4), c(cards.Hearts, 5)},
	}
	r := ValidateOpening(melds, 40)
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonTooShort, r.Reason)
	assert.Equal(t, 0, r.FailedIndex)
}

func TestValidateAttach_ExtendsSequence(t *testing.T) {
	m := TableMeld{Kind: Sequence, Cards: []cards.Card{c(cards.Spades, cards.Ace), c(cards.Spades, 2), c(cards.Spades, 3)}}
	r := ValidateAttach(m, c(cards.Spades, 4))
	require.True(t, r.Valid)

	newCards := Attach(m, c(cards.Spades, 4))
	require.Len(t, newCards, 4)
	assert.Equal(t, cards.Rank(4), newCards[3].Rank)
}

func TestValidateAttach_RejectsSecondJoker(t *testing.T) {
	m := TableMeld{Kind: Sequence, Cards: []cards.Card{c(cards.Hearts, 5), joker(), c(cards.Hearts, 7)}}
	r := ValidateAttach(m, joker())
	assert.False(t, r.Valid)
	assert.Equal(t, ReasonMultipleJokers, r.Reason)
}

func TestRequiredCard_Sequence(t *testing.T) {
	m := TableMeld{Kind: Sequence, Cards: []cards.Card{c(cards.Hearts, 5), joker(), c(cards.Hearts, 7)}}
	required, ok := RequiredCard(m)
	require.True(t, ok)
	assert.Equal(t, c(cards.Hearts, 6), required)
}

func TestSubstitute_Sequence(t *testing.T) {
	m := TableMeld{Kind: Sequence, Cards: []cards.Card{c(cards.Hearts, 5), joker(), c(cards.Hearts, 7)}}
	held := c(cards.Hearts, 6)
	newCards, removed, ok := Substitute(m, held)
	require.True(t, ok)
	assert.True(t, removed.IsJoker())
	assert.Equal(t, []cards.Card{c(cards.Hearts, 5), c(cards.Hearts, 6), c(cards.Hearts, 7)}, newCards)
}

func TestRequiredCard_Combination(t *testing.T) {
	m := TableMeld{Kind: Combination, Cards: []cards.Card{c(cards.Spades, 7), c(cards.Hearts, 7), joker()}}
	required, ok := RequiredCard(m)
	require.True(t, ok)
	assert.Equal(t, cards.Rank(7), required.Rank)
	assert.NotEqual(t, cards.Spades, required.Suit)
	assert.NotEqual(t, cards.Hearts, required.Suit)
}

func TestValidateDiscard_PickedUpCardRejected(t *testing.T) {
	picked := c(cards.Clubs, 9)
	ctx := DiscardContext{
		Card:               picked,
		RemainingHandSize:  3,
		PickedFromDiscard:  &picked,
		FirstRoundComplete: true,
	}
	assert.Equal(t, DiscardIsPickedUpCard, ValidateDiscard(ctx))
}

func TestValidateDiscard_PickedUpCardAllowedWithDeclaredDuplicate(t *testing.T) {
	picked := c(cards.Clubs, 9)
	ctx := DiscardContext{
		Card:                  picked,
		RemainingHandSize:     3,
		PickedFromDiscard:     &picked,
		DeclareDuplicate:      true,
		HeldDuplicateOfPicked: true,
		FirstRoundComplete:    true,
	}
	assert.Equal(t, DiscardAllowed, ValidateDiscard(ctx))
}

func TestValidateDiscard_AttachesToTableRejectedAtThreePlayers(t *testing.T) {
	ctx := DiscardContext{
		Card:               c(cards.Hearts, 7),
		RemainingHandSize:  2,
		TableMelds:         []TableMeld{{Kind: Sequence, Cards: []cards.Card{c(cards.Hearts, 4), c(cards.Hearts, 5), c(cards.Hearts, 6)}}},
		NonEliminatedPlayers: 3,
		FirstRoundComplete:   true,
	}
	assert.Equal(t, DiscardAttachesToTable, ValidateDiscard(ctx))
}

func TestValidateDiscard_AttachAllowedWhenClosing(t *testing.T) {
	ctx := DiscardContext{
		Card:                 c(cards.Hearts, 7),
		RemainingHandSize:    0,
		TableMelds:           []TableMeld{{Kind: Sequence, Cards: []cards.Card{c(cards.Hearts, 4), c(cards.Hearts, 5), c(cards.Hearts, 6)}}},
		NonEliminatedPlayers: 3,
		FirstRoundComplete:   true,
	}
	assert.Equal(t, DiscardAllowed, ValidateDiscard(ctx))
}

func TestValidateDiscard_CannotCloseFirstRound(t *testing.T) {
	ctx := DiscardContext{
		Card:               c(cards.Hearts, 7),
		RemainingHandSize:  0,
		FirstRoundComplete: false,
	}
	assert.Equal(t, CannotCloseFirstRound, ValidateDiscard(ctx))
}
