package engine

import (
	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
)

const openingThreshold = 40

// open implements the open(meldList) action: legal only if hasOpened is
// false; on success removes the involved cards from hand, appends the
// melds to the table, and sets hasOpened = true. On failure no state
// changes (spec.md §4.4).
func (g *GameState) open(playerID string, candidates [][]cards.Card) ([]Event, *EngineError) {
	p := g.player(playerID)
	if p.HasOpened {
		return nil, newErr(ErrNotOpened, "already opened")
	}

	for _, cs := range candidates {
		if err := ensureHandContains(p.Hand, cs); err != nil {
			return nil, err
		}
	}

	results := make([]melds.Result, len(candidates))
	total := 0
	for i, cs := range candidates {
		r := melds.Validate(cs)
		if !r.Valid {
			return nil, illegalMeldErr(r.Reason)
		}
		results[i] = r
		total += r.Points
	}
	if total < openingThreshold {
		return nil, openingBelowThresholdErr(total)
	}

	for i, cs := range candidates {
		p.Hand = removeCards(p.Hand, cs)
		ordered := cs
		if results[i].Kind == melds.Sequence {
			ordered = melds.NormalizeSequence(cs)
		}
		g.Melds = append(g.Melds, TableMeld{Kind: results[i].Kind, Cards: append([]cards.Card{}, ordered...), Owner: playerID})
	}
	p.HasOpened = true

	events := []Event{newEvent(EventOpen, g.ID, playerID, map[string]interface{}{
		"points": total,
	})}
	return events, nil
}

// layMeld implements layDownMeld(meld): legal only if hasOpened is true.
func (g *GameState) layMeld(playerID string, cs []cards.Card) ([]Event, *EngineError) {
	p := g.player(playerID)
	if !p.HasOpened {
		return nil, newErr(ErrNotOpened, "must open before laying additional melds")
	}
	if err := ensureHandContains(p.Hand, cs); err != nil {
		return nil, err
	}
	r := melds.Validate(cs)
	if !r.Valid {
		return nil, illegalMeldErr(r.Reason)
	}

	p.Hand = removeCards(p.Hand, cs)
	ordered := cs
	if r.Kind == melds.Sequence {
		ordered = melds.NormalizeSequence(cs)
	}
	g.Melds = append(g.Melds, TableMeld{Kind: r.Kind, Cards: append([]cards.Card{}, ordered...), Owner: playerID})

	events := []Event{newEvent(EventLayMeld, g.ID, playerID, map[string]interface{}{
		"points": r.Points,
	})}
	return events, nil
}

// attachCard implements attachCard(handCardRef, meldRef): legal only if
// hasOpened is true; validates per attach legality, moves the card from
// hand to the target meld.
func (g *GameState) attachCard(playerID string, card cards.Card, meldIdx int) ([]Event, *EngineError) {
	p := g.player(playerID)
	if !p.HasOpened {
		return nil, newErr(ErrNotOpened, "must open before attaching")
	}
	if meldIdx < 0 || meldIdx >= len(g.Melds) {
		return nil, newErr(ErrNotFound, "no such table meld")
	}
	if !handContains(p.Hand, card) {
		return nil, newErr(ErrNoCards, "card not in hand")
	}

	target := g.Melds[meldIdx]
	r := melds.ValidateAttach(target, card)
	if !r.Valid {
		return nil, illegalMeldErr(r.Reason)
	}

	p.Hand = removeCards(p.Hand, []cards.Card{card})
	g.Melds[meldIdx].Cards = melds.Attach(target, card)

	events := []Event{newEvent(EventAttach, g.ID, playerID, map[string]interface{}{
		"meldIndex": meldIdx,
	})}
	return events, nil
}

// substituteJoker implements substituteJoker(meldRef, handCardRef): the
// player must already have opened, hold the exact card the joker's
// position requires, and removing the joker for that card must still
// yield a valid meld. The withdrawn joker becomes the turn's pending
// joker, which must be consumed before TURN_END.
func (g *GameState) substituteJoker(playerID string, meldIdx int, held cards.Card) ([]Event, *EngineError) {
	p := g.player(playerID)
	if !p.HasOpened {
		return nil, newErr(ErrNotOpened, "must open before substituting a joker")
	}
	if meldIdx < 0 || meldIdx >= len(g.Melds) {
		return nil, newErr(ErrNotFound, "no such table meld")
	}
	if !handContains(p.Hand, held) {
		return nil, newErr(ErrNoCards, "card not in hand")
	}

	target := g.Melds[meldIdx]
	required, ok := RequiredCard(target)
	if !ok || required.Suit != held.Suit || required.Rank != held.Rank {
		return nil, newErr(ErrIllegalMeld, "held card does not match the joker's position")
	}

	newCards, removedJoker, ok := melds.Substitute(target, held)
	if !ok {
		return nil, newErr(ErrIllegalMeld, "substitution failed")
	}

	p.Hand = removeCards(p.Hand, []cards.Card{held})
	g.Melds[meldIdx].Cards = newCards
	g.Scratch.PendingJoker = &removedJoker
	g.Scratch.PendingJokerMeldIdx = meldIdx

	events := []Event{newEvent(EventSubstituteJoker, g.ID, playerID, map[string]interface{}{
		"meldIndex": meldIdx,
	})}
	return events, nil
}

// RequiredCard re-exports melds.RequiredCard for engine callers.
func RequiredCard(m TableMeld) (cards.Card, bool) {
	return melds.RequiredCard(m)
}

func ensureHandContains(hand []cards.Card, want []cards.Card) *EngineError {
	for _, c := range want {
		if !handContains(hand, c) {
			return newErr(ErrNoCards, "candidate meld uses a card not in hand")
		}
	}
	return nil
}

func handContains(hand []cards.Card, c cards.Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// removeCards returns hand with exactly one occurrence of each card in cs
// removed (by value equality, including deck index).
func removeCards(hand []cards.Card, cs []cards.Card) []cards.Card {
	out := append([]cards.Card{}, hand...)
	for _, c := range cs {
		for i, h := range out {
			if h == c {
				out = append(out[:i], out[i+1:]...)
				break
			}
		}
	}
	return out
}
