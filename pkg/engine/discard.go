package engine

import (
	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
	"github.com/vctt94/scala40/pkg/scoring"
)

// discard implements the discard(card) action: AWAIT_PLAY → AWAIT_DISCARD
// → TURN_END, collapsed into a single commit since no other action is
// possible in between. Enforces the picked-up-card obligation, the pending
// joker constraint, and spec.md §4.2's discard legality, then runs closure
// detection and turn advancement.
func (g *GameState) discard(playerID string, card cards.Card, declareDuplicate bool) ([]Event, *EngineError) {
	p := g.player(playerID)
	if !handContains(p.Hand, card) {
		return nil, newErr(ErrNoCards, "card not in hand")
	}

	if g.Scratch.PendingJoker != nil {
		return nil, newErr(ErrJokerMustBeUsed, "withdrawn joker must be used this turn")
	}

	if picked := g.Scratch.PickedFromDiscard; picked != nil && card != *picked && handContains(p.Hand, *picked) {
		return nil, newErr(ErrPickedCardMustBePlayed, "picked-up card must be played before discarding a different card")
	}

	remaining := removeCards(p.Hand, []cards.Card{card})
	ctx := melds.DiscardContext{
		Card:                  card,
		RemainingHandSize:     len(remaining),
		PickedFromDiscard:     g.Scratch.PickedFromDiscard,
		HeldDuplicateOfPicked: g.Scratch.PickedFromDiscard != nil && hasDuplicateOf(remaining, *g.Scratch.PickedFromDiscard),
		DeclareDuplicate:      declareDuplicate,
		TableMelds:            g.Melds,
		NonEliminatedPlayers:  g.nonEliminatedCount(),
		FirstRoundComplete:    g.FirstRoundComplete,
	}
	if denial := melds.ValidateDiscard(ctx); denial != melds.DiscardAllowed {
		return nil, discardDenialErr(denial)
	}

	p.Hand = remaining
	g.Discard = append(g.Discard, card)

	events := []Event{newEvent(EventDiscard, g.ID, playerID, map[string]interface{}{
		"card": card.String(),
	})}

	closes := len(p.Hand) == 0 && g.FirstRoundComplete
	g.Scratch = TurnScratch{}

	if closes {
		closeEvents, err := g.closeHand(playerID)
		if err != nil {
			return nil, err
		}
		events = append(events, closeEvents...)
		return events, nil
	}

	g.advanceTurn()
	return events, nil
}

func discardDenialErr(d melds.DiscardDenial) *EngineError {
	switch d {
	case melds.DiscardIsPickedUpCard:
		return newErr(ErrDiscardIsPickedUpCard, "")
	case melds.DiscardAttachesToTable:
		return newErr(ErrDiscardAttachesToTable, "")
	case melds.CannotCloseFirstRound:
		return newErr(ErrCannotCloseFirstRound, "")
	default:
		return newErr(ErrNoCards, "discard rejected")
	}
}

func hasDuplicateOf(hand []cards.Card, card cards.Card) bool {
	for _, h := range hand {
		if h.Suit == card.Suit && h.Rank == card.Rank && h != card {
			return true
		}
	}
	return false
}

// closeHand runs scoring (§4.3), sets match status, and either starts the
// next hand (hand_end) or ends the match (finished).
func (g *GameState) closeHand(closerID string) ([]Event, *EngineError) {
	hands := make([]scoring.PlayerHand, len(g.Players))
	for i, p := range g.Players {
		hands[i] = scoring.PlayerHand{
			PlayerID:        p.ID,
			Hand:            p.Hand,
			CumulativeScore: p.Score,
			Eliminated:      p.Eliminated,
		}
	}
	result := scoring.ScoreHand(hands, closerID, g.Settings.EliminationScore)

	for i := range g.Players {
		p := &g.Players[i]
		p.Score = result.CumulativeScores[p.ID]
		if contains(result.Eliminated, p.ID) {
			p.Eliminated = true
		}
	}

	events := []Event{newEvent(EventClosure, g.ID, closerID, nil)}
	for _, id := range result.Eliminated {
		events = append(events, newEvent(EventElimination, g.ID, id, nil))
	}
	events = append(events, newEvent(EventHandEnd, g.ID, closerID, map[string]interface{}{
		"deltas": result.Deltas,
	}))

	if result.MatchFinished {
		g.Status = StatusFinished
		g.WinnerID = result.WinnerID
		events = append(events, newEvent(EventMatchEnd, g.ID, result.WinnerID, nil))
		return events, nil
	}

	g.Status = StatusHandEnd
	if err := g.startNextHand(); err != nil {
		return nil, newErr(ErrCorruptState, err.Error())
	}
	events = append(events, newEvent(EventHandStart, g.ID, "", map[string]interface{}{
		"handNumber": g.HandNumber,
		"dealer":     g.DealerUserID,
	}))
	return events, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// advanceTurn implements TURN_END without closure: advance to the next
// non-eliminated seat; a round completes when play returns to the seat
// that led it off (recorded in RoundLeadPlayer at hand start), not merely
// when the seat index decreases, since the dealer need not sit at index 0.
func (g *GameState) advanceTurn() {
	idx := g.playerIndex(g.CurrentPlayer)
	next := nextNonEliminatedSeat(g.Players, idx)
	nextID := g.Players[next].ID
	if nextID == g.RoundLeadPlayer {
		g.FirstRoundComplete = true
		g.RoundNumber++
	}
	g.CurrentPlayer = nextID
	g.Phase = PhaseAwaitDraw
	g.Scratch = TurnScratch{}
}

func nextNonEliminatedSeat(players []PlayerState, from int) int {
	n := len(players)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if !players[idx].Eliminated {
			return idx
		}
	}
	return from
}
