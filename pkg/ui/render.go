package ui

import (
	"fmt"
	"strings"

	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/engine"
)

// renderHand renders a player's hand as an indexed row of card boxes,
// grounded on the teacher's renderCard/RenderPlayerHand helpers
// (pkg/ui/render.go), adapted to show the index each command refers a card
// by instead of a poker hole-card pair.
func renderHand(hand []cards.Card) string {
	cells := make([]string, len(hand))
	for i, c := range hand {
		cells[i] = fmt.Sprintf("%d:%s", i, cardStyleFor(c).Render(c.String()))
	}
	return strings.Join(cells, " ")
}

func cardStyleFor(c cards.Card) interface {
	Render(...string) string
} {
	switch {
	case c.IsJoker():
		return jokerCardStyle
	case c.Suit == cards.Hearts || c.Suit == cards.Diamonds:
		return redCardStyle
	default:
		return cardStyle
	}
}

// renderTable renders the table melds, stock size, and discard top.
func renderTable(g *engine.GameState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("stock: %d cards   discard top: %s\n", len(g.Stock), discardTopLabel(g)))
	if len(g.Melds) == 0 {
		b.WriteString("table: (empty)\n")
		return b.String()
	}
	b.WriteString("table melds:\n")
	for i, meld := range g.Melds {
		cardStrs := make([]string, len(meld.Cards))
		for j, c := range meld.Cards {
			cardStrs[j] = c.String()
		}
		b.WriteString(meldStyle.Render(fmt.Sprintf("%d [%s, owner %s]: %s", i, meld.Kind, meld.Owner, strings.Join(cardStrs, " "))))
		b.WriteString("\n")
	}
	return b.String()
}

func discardTopLabel(g *engine.GameState) string {
	if len(g.Discard) == 0 {
		return "(empty)"
	}
	return g.Discard[len(g.Discard)-1].String()
}

// renderPlayers renders every seat's public info, highlighting the current
// player the way the teacher's currentPlayerStyle/yourPlayerStyle
// distinguish the acting seat from the rest of the table.
func renderPlayers(g *engine.GameState) string {
	view := g.GetPublicView()
	var rows []string
	for _, p := range view.Players {
		row := fmt.Sprintf("%s  cards:%d  opened:%v  score:%d", p.ID, p.HandSize, p.HasOpened, p.Score)
		if p.Eliminated {
			row += "  (eliminated)"
		}
		style := playerBoxStyle
		if p.ID == view.CurrentPlayer {
			style = currentPlayerStyle
		}
		rows = append(rows, style.Render(row))
	}
	return strings.Join(rows, "\n")
}
