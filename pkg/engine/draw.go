package engine

import "github.com/vctt94/scala40/pkg/cards"

// drawStock implements AWAIT_DRAW → AWAIT_PLAY on drawFromStock: always
// legal if the stock is non-empty; if empty, reshuffles the discard pile
// (minus its top) into a fresh stock first (spec.md §4.1), preserving I1.
func (g *GameState) drawStock(playerID string, src cards.Source) ([]Event, *EngineError) {
	var events []Event

	if len(g.Stock) == 0 {
		if len(g.Discard) == 0 {
			return nil, newErr(ErrStockEmpty, "stock and discard both empty")
		}
		reshuffled, top, ok := reshuffleDiscardIntoStock(g.Discard, src)
		if !ok {
			return nil, newErr(ErrStockEmpty, "nothing to reshuffle")
		}
		g.Stock = reshuffled
		g.Discard = []cards.Card{top}
		events = append(events, newEvent(EventReshuffle, g.ID, playerID, map[string]interface{}{
			"newStockSize": len(g.Stock),
		}))
	}

	deck := cards.NewDeckFromCards(g.Stock)
	drawn, ok := deck.Draw()
	if !ok {
		return nil, newErr(ErrStockEmpty, "stock exhausted")
	}
	g.Stock = deck.Cards()

	p := g.player(playerID)
	p.Hand = append(p.Hand, drawn)
	g.Scratch.DrawOccurred = true
	g.Phase = PhaseAwaitPlay

	events = append(events, newEvent(EventDraw, g.ID, playerID, map[string]interface{}{
		"source": "stock",
	}))
	return events, nil
}

// reshuffleDiscardIntoStock shuffles every discard card except the current
// top into a new stock, leaving that single card as the new discard's sole
// entry (the caller replaces g.Discard with just that card).
func reshuffleDiscardIntoStock(discard []cards.Card, src cards.Source) (newStock []cards.Card, top cards.Card, ok bool) {
	pile := cards.NewPile(discard)
	t, hasTop := pile.Top()
	if !hasTop {
		return nil, cards.Card{}, false
	}
	rest := pile.PopAllButTop()
	deck := cards.NewDeckFromCards(rest)
	deck.Shuffle(src)
	return deck.Cards(), t, true
}

// drawDiscard implements AWAIT_DRAW → AWAIT_PLAY on drawFromDiscard: legal
// only if the player has already opened, or the openWithDiscard variant is
// on. The open action does not check that an unopened player's opening
// uses the drawn card; the card is only held to the discard-time
// picked-up-card rules through Scratch.PickedFromDiscard.
func (g *GameState) drawDiscard(playerID string) ([]Event, *EngineError) {
	p := g.player(playerID)
	if !p.HasOpened && !g.Settings.OpenWithDiscard {
		return nil, newErr(ErrNotOpened, "must have opened to draw from discard")
	}
	if len(g.Discard) == 0 {
		return nil, newErr(ErrNoCards, "discard pile empty")
	}

	pile := cards.NewPile(g.Discard)
	drawn, ok := pile.Pop()
	if !ok {
		return nil, newErr(ErrNoCards, "discard pile empty")
	}
	g.Discard = pile.Cards()

	p.Hand = append(p.Hand, drawn)
	g.Scratch.DrawOccurred = true
	g.Scratch.PickedFromDiscard = &drawn
	g.Phase = PhaseAwaitPlay

	events := []Event{newEvent(EventDraw, g.ID, playerID, map[string]interface{}{
		"source": "discard",
	})}
	return events, nil
}
