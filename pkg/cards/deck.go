package cards

import "fmt"

// Source is the minimal randomness contract the deck needs; it is
// satisfied by pkg/rng's Deterministic and Secure sources (C8). Kept local
// to this package (rather than importing pkg/rng) so pkg/cards has no
// dependency on the RNG package — only a shuffle-capable function value.
type Source interface {
	ShuffleInPlace(n int, swap func(i, j int))
}

// Deck is an ordered sequence of cards; the head is the next card to draw.
type Deck struct {
	cards []Card
}

// NewDeck builds the canonical 108-card deck and shuffles it with src.
func NewDeck(src Source) *Deck {
	d := &Deck{cards: CanonicalMultiset()}
	d.Shuffle(src)
	return d
}

// NewDeckFromCards restores a deck from a persisted card sequence, without
// reshuffling — used by the state codec (C9) when importing a game.
func NewDeckFromCards(cs []Card) *Deck {
	out := make([]Card, len(cs))
	copy(out, cs)
	return &Deck{cards: out}
}

// Shuffle randomizes the deck in place using Fisher-Yates via src.
func (d *Deck) Shuffle(src Source) {
	src.ShuffleInPlace(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw pops and returns the top card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, top first, for persistence.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Pile is an ordered, append/pop pile such as the discard pile: only its
// top (the last-appended card) is ever inspected per invariant I5.
type Pile struct {
	cards []Card
}

// NewPile builds a pile from a bottom-to-top ordered sequence.
func NewPile(cs []Card) *Pile {
	out := make([]Card, len(cs))
	copy(out, cs)
	return &Pile{cards: out}
}

// Push places a card on top of the pile.
func (p *Pile) Push(c Card) {
	p.cards = append(p.cards, c)
}

// Top returns the visible top card without removing it.
func (p *Pile) Top() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	return p.cards[len(p.cards)-1], true
}

// Pop removes and returns the top card.
func (p *Pile) Pop() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	c := p.cards[len(p.cards)-1]
	p.cards = p.cards[:len(p.cards)-1]
	return c, true
}

// PopAllButTop removes and returns every card except the current top, in
// their existing bottom-to-top order; used by the stock-exhaustion
// reshuffle (§4.1), which shuffles everything except the visible top
// discard back into a fresh stock.
func (p *Pile) PopAllButTop() []Card {
	if len(p.cards) <= 1 {
		return nil
	}
	rest := p.cards[:len(p.cards)-1]
	out := make([]Card, len(rest))
	copy(out, rest)
	p.cards = p.cards[len(p.cards)-1:]
	return out
}

// Size returns the number of cards in the pile.
func (p *Pile) Size() int {
	return len(p.cards)
}

// Cards returns a copy of the pile, bottom to top.
func (p *Pile) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Deal distributes 13 cards to each of numPlayers seats, one card at a time
// in seating order, then pops one further card as the initial discard pile
// top; the remainder becomes the stock. Fails if numPlayers is not 2, 3 or 4.
func Deal(stock *Deck, numPlayers int) (hands [][]Card, discard *Pile, err error) {
	if numPlayers < 2 || numPlayers > 4 {
		return nil, nil, fmt.Errorf("cards: deal requires 2-4 players, got %d", numPlayers)
	}
	hands = make([][]Card, numPlayers)
	for i := range hands {
		hands[i] = make([]Card, 0, 13)
	}
	for round := 0; round < 13; round++ {
		for seat := 0; seat < numPlayers; seat++ {
			c, ok := stock.Draw()
			if !ok {
				return nil, nil, fmt.Errorf("cards: stock exhausted during deal")
			}
			hands[seat] = append(hands[seat], c)
		}
	}
	top, ok := stock.Draw()
	if !ok {
		return nil, nil, fmt.Errorf("cards: stock exhausted dealing initial discard")
	}
	discard = NewPile([]Card{top})
	return hands, discard, nil
}
