package integrity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
)

func freshSnapshot() Snapshot {
	all := cards.CanonicalMultiset()
	return Snapshot{
		Hands:             map[string][]cards.Card{"A": all[:13], "B": all[13:26]},
		Stock:             all[26:],
		Discard:           nil,
		CurrentPlayerID:   "A",
		EliminatedPlayers: map[string]bool{},
		Phase:             "AWAIT_DRAW",
		HasDrawnThisTurn:  false,
	}
}

func TestCheck_CleanStateHasNoViolations(t *testing.T) {
	assert.Empty(t, Check(freshSnapshot()))
}

func TestCheck_CardCountMismatch(t *testing.T) {
	s := freshSnapshot()
	s.Stock = s.Stock[:len(s.Stock)-1] // drop one card
	violations := Check(s)
	require.NotEmpty(t, violations)
	assert.Equal(t, CodeCardCountMismatch, violations[0].Code)
}

func TestCheck_MultisetMismatch(t *testing.T) {
	s := freshSnapshot()
	// Swap one stock card for a duplicate of a card already in a hand.
	s.Stock[0] = s.Hands["A"][0]
	violations := Check(s)
	require.NotEmpty(t, violations)
	assert.Equal(t, CodeMultisetMismatch, violations[0].Code)
}

func TestCheck_InvalidTableMeld(t *testing.T) {
	s := freshSnapshot()
	// Move the first two stock cards into a bogus two-card "sequence"; the
	// overall multiset is unaffected since the cards just change bucket.
	moved := append([]cards.Card{}, s.Stock[:2]...)
	s.Stock = s.Stock[2:]
	s.TableMelds = []melds.TableMeld{{Kind: melds.Sequence, Cards: moved}}

	violations := Check(s)
	var found bool
	for _, v := range violations {
		if v.Code == CodeInvalidMeld {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheck_EliminatedPlayerActing(t *testing.T) {
	s := freshSnapshot()
	s.EliminatedPlayers["A"] = true
	violations := Check(s)
	var found bool
	for _, v := range violations {
		if v.Code == CodeEliminatedActing {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheck_PhaseInconsistent(t *testing.T) {
	s := freshSnapshot()
	s.Phase = "AWAIT_PLAY"
	s.HasDrawnThisTurn = false
	violations := Check(s)
	var found bool
	for _, v := range violations {
		if v.Code == CodePhaseInconsistent {
			found = true
		}
	}
	assert.True(t, found)
}
