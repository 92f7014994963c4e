package engine

import (
	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
)

// autoPlay implements the deterministic baseline from spec.md §4.4's
// "Timeouts / auto-play": draw from stock, then discard the highest-value
// card that satisfies discard legality; if none exists, discard the
// smallest-value card and record a warning event. Used both by an external
// inactivity timer and by the simulate CLI's AI driver.
func (g *GameState) autoPlay(playerID string) ([]Event, *EngineError) {
	drawEvents, err := g.drawStock(playerID, g.rngSource())
	if err != nil {
		return nil, err
	}

	p := g.player(playerID)
	best := -1
	bestPoints := -1
	for i, c := range p.Hand {
		remaining := removeCards(p.Hand, []cards.Card{c})
		ctx := melds.DiscardContext{
			Card:                 c,
			RemainingHandSize:    len(remaining),
			PickedFromDiscard:    g.Scratch.PickedFromDiscard,
			TableMelds:           g.Melds,
			NonEliminatedPlayers: g.nonEliminatedCount(),
			FirstRoundComplete:   g.FirstRoundComplete,
		}
		if melds.ValidateDiscard(ctx) != melds.DiscardAllowed {
			continue
		}
		pts := melds.Points(c, false)
		if pts > bestPoints {
			bestPoints = pts
			best = i
		}
	}

	var warn []Event
	if best == -1 {
		// No legal discard at all (every card is refused by discard
		// legality): fall back to the smallest-value card and flag it.
		smallest := 0
		smallestPoints := melds.Points(p.Hand[0], false)
		for i, c := range p.Hand {
			pts := melds.Points(c, false)
			if pts < smallestPoints {
				smallestPoints = pts
				smallest = i
			}
		}
		best = smallest
		warn = []Event{newEvent(EventInvalidAction, g.ID, playerID, map[string]interface{}{
			"warning": "no legal discard found during auto-play; forcing smallest-value card",
		})}
		// g.discard would refuse this card again, so the forced discard is
		// committed here directly.
		forced := p.Hand[best]
		p.Hand = removeCards(p.Hand, []cards.Card{forced})
		g.Discard = append(g.Discard, forced)
		events := append(append(drawEvents, warn...), newEvent(EventDiscard, g.ID, playerID, map[string]interface{}{
			"card": forced.String(),
		}))
		g.advanceTurn()
		return events, nil
	}

	discardEvents, derr := g.discard(playerID, p.Hand[best], false)
	if derr != nil {
		return nil, derr
	}

	events := append(append(drawEvents, warn...), discardEvents...)
	return events, nil
}
