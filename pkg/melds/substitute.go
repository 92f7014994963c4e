package melds

import "github.com/vctt94/scala40/pkg/cards"

// RequiredCard returns the card (suit and rank; deck-index left zero) that
// the joker in table meld m stands for, so the caller can compare it with
// the card the player holds for a joker substitution. ok is false when m
// holds no joker or more than one. For a combination it returns the first
// suit, in Suits order, that the meld does not already use.
func RequiredCard(m TableMeld) (required cards.Card, ok bool) {
	jokerCount := 0
	jokerPos := -1
	for i, c := range m.Cards {
		if c.IsJoker() {
			jokerCount++
			jokerPos = i
		}
	}
	if jokerCount != 1 {
		return cards.Card{}, false
	}

	switch m.Kind {
	case Combination:
		return requiredForCombination(m.Cards, jokerPos)
	case Sequence:
		return requiredForSequence(m.Cards, jokerPos)
	default:
		return cards.Card{}, false
	}
}

func requiredForCombination(cs []cards.Card, jokerPos int) (cards.Card, bool) {
	var rank cards.Rank
	rankSet := false
	used := map[cards.Suit]bool{}
	for _, c := range cs {
		if c.IsJoker() {
			continue
		}
		if !rankSet {
			rank = c.Rank
			rankSet = true
		}
		used[c.Suit] = true
	}
	if !rankSet {
		return cards.Card{}, false
	}
	for _, s := range cards.Suits {
		if !used[s] {
			return cards.Card{Suit: s, Rank: rank}, true
		}
	}
	return cards.Card{}, false
}

func requiredForSequence(cs []cards.Card, jokerPos int) (cards.Card, bool) {
	var suit cards.Suit
	for _, c := range cs {
		if !c.IsJoker() {
			suit = c.Suit
			break
		}
	}
	for _, aceHigh := range []bool{false, true} {
		values, ok := sequenceValues(cs, aceHigh)
		if !ok {
			continue
		}
		v := values[jokerPos]
		rank := cards.Rank(v)
		if v == 14 {
			rank = cards.Ace
		}
		return cards.Card{Suit: suit, Rank: rank}, true
	}
	return cards.Card{}, false
}

// sequenceValues computes each slot's run value (1..14) for cs, assuming cs
// is already in ascending run order with at most one joker, whose value is
// inferred from its neighbors.
func sequenceValues(cs []cards.Card, aceHigh bool) ([]int, bool) {
	values := make([]int, len(cs))
	jokerIdx := -1
	for i, c := range cs {
		if c.IsJoker() {
			jokerIdx = i
			continue
		}
		v := int(c.Rank)
		if c.Rank == cards.Ace && aceHigh {
			v = 14
		}
		values[i] = v
	}
	if jokerIdx == -1 {
		return values, true
	}
	switch {
	case jokerIdx > 0:
		values[jokerIdx] = values[jokerIdx-1] + 1
	case jokerIdx < len(cs)-1:
		values[jokerIdx] = values[jokerIdx+1] - 1
	default:
		return nil, false
	}
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return nil, false
		}
	}
	if values[0] < 1 || values[len(values)-1] > 14 {
		return nil, false
	}
	return values, true
}

// Substitute replaces the joker in m with held, returning the new card
// list and the joker that was withdrawn. Callers must first confirm
// RequiredCard(m) equals held (suit and rank; deck-index ignored).
func Substitute(m TableMeld, held cards.Card) (newCards []cards.Card, removedJoker cards.Card, ok bool) {
	jokerPos := -1
	for i, c := range m.Cards {
		if c.IsJoker() {
			jokerPos = i
			break
		}
	}
	if jokerPos == -1 {
		return nil, cards.Card{}, false
	}
	out := make([]cards.Card, len(m.Cards))
	copy(out, m.Cards)
	removed := out[jokerPos]
	out[jokerPos] = held
	return out, removed, true
}
