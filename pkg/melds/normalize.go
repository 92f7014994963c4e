package melds

import (
	"sort"

	"github.com/vctt94/scala40/pkg/cards"
)

// NormalizeSequence reorders a validated sequence candidate into ascending
// run order, with any joker placed in the run slot it fills. Callers must
// only invoke this on candidates that ValidateSequence already accepted.
func NormalizeSequence(cs []cards.Card) []cards.Card {
	for _, aceHigh := range []bool{false, true} {
		if order, ok := runOrder(cs, aceHigh); ok {
			return order
		}
	}
	// Unreachable for a validated sequence; fall back to input order.
	out := make([]cards.Card, len(cs))
	copy(out, cs)
	return out
}

// runOrder lays cs out in ascending run order under the given ace
// placement, returning the ordered slice and whether the placement fits.
func runOrder(cs []cards.Card, aceHigh bool) ([]cards.Card, bool) {
	type placed struct {
		card  cards.Card
		value int
	}
	nonJokers := make([]placed, 0, len(cs))
	var jokers []cards.Card
	for _, c := range cs {
		if c.IsJoker() {
			jokers = append(jokers, c)
			continue
		}
		v := int(c.Rank)
		if c.Rank == cards.Ace && aceHigh {
			v = 14
		}
		nonJokers = append(nonJokers, placed{card: c, value: v})
	}
	if len(nonJokers) == 0 {
		return nil, false
	}
	sort.Slice(nonJokers, func(i, j int) bool { return nonJokers[i].value < nonJokers[j].value })
	for i := 1; i < len(nonJokers); i++ {
		if nonJokers[i].value == nonJokers[i-1].value {
			return nil, false
		}
	}
	lo, hi := nonJokers[0].value, nonJokers[len(nonJokers)-1].value
	total := len(cs)
	span := hi - lo + 1
	if span > total {
		return nil, false
	}
	missing := total - span
	if missing > len(jokers) {
		return nil, false
	}
	loExt, hiExt := 0, 0
	for e := 0; e < missing; e++ {
		if hi+hiExt+1 <= 14 {
			hiExt++
		} else if lo-loExt-1 >= 1 {
			loExt++
		} else {
			return nil, false
		}
	}
	finalLo, finalHi := lo-loExt, hi+hiExt
	if finalHi-finalLo+1 != total || finalLo < 1 || finalHi > 14 {
		return nil, false
	}

	byValue := make(map[int]cards.Card, len(nonJokers))
	for _, p := range nonJokers {
		byValue[p.value] = p.card
	}
	out := make([]cards.Card, 0, total)
	jokerIdx := 0
	for v := finalLo; v <= finalHi; v++ {
		if c, ok := byValue[v]; ok {
			out = append(out, c)
		} else {
			if jokerIdx >= len(jokers) {
				return nil, false
			}
			out = append(out, jokers[jokerIdx])
			jokerIdx++
		}
	}
	return out, true
}
