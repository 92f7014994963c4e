// Package melds implements the Scala 40 meld validator (C2): sequence and
// combination validity, opening threshold, attach/substitute legality, and
// discard legality. Every validation function is pure and returns an
// explicit rejection reason so callers can surface a stable error code
// (spec.md §7's IllegalMeld{code}).
package melds

import (
	"sort"

	"github.com/vctt94/scala40/pkg/cards"
)

// Kind distinguishes the two meld shapes a table can hold.
type Kind string

const (
	Sequence    Kind = "sequence"
	Combination Kind = "combination"
)

// Reason is the closed set of rejection codes from spec.md §7's
// IllegalMeld{code} enumeration.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonTooShort              Reason = "tooShort"
	ReasonTooLong               Reason = "tooLong"
	ReasonMultipleJokers        Reason = "multipleJokers"
	ReasonMixedSuitsInSequence  Reason = "mixedSuitsInSequence"
	ReasonSameSuitInCombination Reason = "sameSuitInCombination"
	ReasonNonConsecutive        Reason = "nonConsecutive"
	ReasonWrap                  Reason = "wrap"
	ReasonOnlyJokers            Reason = "onlyJokers"
	ReasonUnknownCard           Reason = "unknownCard"
)

// Result is the outcome of validating a meld candidate.
type Result struct {
	Valid  bool
	Kind   Kind
	Points int
	Reason Reason
}

// Points returns a card's point value per spec.md §4.2's table. lowAce
// selects the ace's value when it is not otherwise fixed by sequence
// position (true = 1, false = 11); for combinations and standalone
// accounting the ace counts high (11).
func Points(c cards.Card, lowAce bool) int {
	switch {
	case c.IsJoker():
		return 25
	case c.Rank == cards.Ace:
		if lowAce {
			return 1
		}
		return 11
	case c.Rank >= 2 && c.Rank <= 10:
		return int(c.Rank)
	default: // Jack, Queen, King
		return 10
	}
}

// ValidateSequence checks whether cs forms a valid Scala 40 sequence: 3-14
// same-suit cards, at most one joker, strictly increasing and consecutive,
// with the ace playable low (A,2,3,...) or high (...,Q,K,A) but never
// wrapping (K,A,2 is rejected).
func ValidateSequence(cs []cards.Card) Result {
	if len(cs) < 3 {
		return Result{Kind: Sequence, Reason: ReasonTooShort}
	}
	if len(cs) > 14 {
		return Result{Kind: Sequence, Reason: ReasonTooLong}
	}

	jokers := 0
	var suit cards.Suit
	suitSet := false
	for _, c := range cs {
		if c.IsJoker() {
			jokers++
			continue
		}
		if !suitSet {
			suit = c.Suit
			suitSet = true
		} else if c.Suit != suit {
			return Result{Kind: Sequence, Reason: ReasonMixedSuitsInSequence}
		}
	}
	if jokers > 1 {
		return Result{Kind: Sequence, Reason: ReasonMultipleJokers}
	}
	if jokers == len(cs) {
		return Result{Kind: Sequence, Reason: ReasonOnlyJokers}
	}

	// Try both ace placements (low=1, high=11-equivalent meaning "after
	// queen/king") and accept if either yields a consecutive, non-wrapping
	// run once the joker (if any) is slotted as a placeholder.
	if ok, points := fitsRun(cs, jokers, false); ok {
		return Result{Valid: true, Kind: Sequence, Points: points}
	}
	if ok, points := fitsRun(cs, jokers, true); ok {
		return Result{Valid: true, Kind: Sequence, Points: points}
	}
	return Result{Kind: Sequence, Reason: classifySequenceFailure(cs)}
}

// fitsRun attempts to lay cs out as a consecutive run with the ace treated
// as low (rank 1, run values 1..13) or high (rank 14, run values 2..14,
// i.e. "...,Q,K,A"). It returns whether a valid, non-wrapping, at-most-one-
// joker run results, and the total point value under that placement.
func fitsRun(cs []cards.Card, jokers int, aceHigh bool) (bool, int) {
	type placed struct {
		card  cards.Card
		value int // run-local rank: 1..13, or 14 for a high ace
	}
	nonJokers := make([]placed, 0, len(cs))
	for _, c := range cs {
		if c.IsJoker() {
			continue
		}
		v := int(c.Rank)
		if c.Rank == cards.Ace && aceHigh {
			v = 14
		}
		nonJokers = append(nonJokers, placed{card: c, value: v})
	}
	sort.Slice(nonJokers, func(i, j int) bool { return nonJokers[i].value < nonJokers[j].value })

	for i := 1; i < len(nonJokers); i++ {
		if nonJokers[i].value == nonJokers[i-1].value {
			return false, 0 // duplicate rank: never a valid run regardless of jokers
		}
	}

	// Required span covering all non-joker cards plus enough room for the
	// remaining cards (jokers fill exactly one gap each, or extend an end).
	lo := nonJokers[0].value
	hi := nonJokers[len(nonJokers)-1].value
	span := hi - lo + 1
	total := len(cs)
	if span > total {
		return false, 0 // too many gaps for the available jokers
	}
	// Extend downward/upward with jokers if the non-joker span is shorter
	// than the full meld length; jokers must fill the remaining length
	// exactly (no slack) since every position in a sequence is occupied.
	missing := total - span
	if missing > jokers {
		return false, 0
	}
	// missing positions must be added beyond [lo,hi] (internal gaps within
	// [lo,hi] are covered by the remaining jokers without any extension);
	// place them by preferring to extend upward first, low second, never
	// wrapping past ace-low 1 or ace-high 14.
	loExt, hiExt := 0, 0
	for e := 0; e < missing; e++ {
		if hi+hiExt+1 <= 14 {
			hiExt++
		} else if lo-loExt-1 >= 1 {
			loExt++
		} else {
			return false, 0 // no room to extend without wrapping
		}
	}
	finalLo := lo - loExt
	finalHi := hi + hiExt
	if finalHi-finalLo+1 != total {
		return false, 0
	}
	if finalLo < 1 || finalHi > 14 {
		return false, 0
	}

	points := 0
	for _, p := range nonJokers {
		points += Points(p.card, !aceHigh && p.card.Rank == cards.Ace)
	}
	for v := finalLo; v <= finalHi; v++ {
		covered := false
		for _, p := range nonJokers {
			if p.value == v {
				covered = true
				break
			}
		}
		if !covered {
			// A joker fills run-value v; its point value is whatever card
			// it stands for (spec.md §4.2: "the rank it fills").
			points += jokerPointsForRunValue(v, aceHigh)
		}
	}
	return true, points
}

func jokerPointsForRunValue(v int, aceHigh bool) int {
	switch v {
	case 1:
		return 1 // low ace
	case 14:
		return 11 // high ace
	case 11, 12, 13:
		return 10
	default:
		return v
	}
}

// classifySequenceFailure produces a best-effort reason code when neither
// ace placement fits, distinguishing a genuine wrap (e.g. K,A,2) from a
// plain non-consecutive gap.
func classifySequenceFailure(cs []cards.Card) Reason {
	ranks := make([]int, 0, len(cs))
	for _, c := range cs {
		if !c.IsJoker() {
			ranks = append(ranks, int(c.Rank))
		}
	}
	sort.Ints(ranks)
	hasAce := len(ranks) > 0 && ranks[0] == int(cards.Ace)
	hasKing := false
	for _, r := range ranks {
		if r == int(cards.King) {
			hasKing = true
		}
	}
	hasLowAfterKing := false
	for _, r := range ranks {
		if hasKing && hasAce && r > 1 && r < int(cards.King) {
			hasLowAfterKing = true
		}
	}
	if hasAce && hasKing && hasLowAfterKing {
		return ReasonWrap
	}
	return ReasonNonConsecutive
}

// ValidateCombination checks whether cs forms a valid Scala 40 combination:
// 3 or 4 same-rank cards of distinct suits, at most one joker, not composed
// solely of jokers.
func ValidateCombination(cs []cards.Card) Result {
	if len(cs) < 3 {
		return Result{Kind: Combination, Reason: ReasonTooShort}
	}
	if len(cs) > 4 {
		return Result{Kind: Combination, Reason: ReasonTooLong}
	}

	jokers := 0
	var rank cards.Rank
	rankSet := false
	seenSuits := map[cards.Suit]bool{}
	for _, c := range cs {
		if c.IsJoker() {
			jokers++
			continue
		}
		if !rankSet {
			rank = c.Rank
			rankSet = true
		} else if c.Rank != rank {
			return Result{Kind: Combination, Reason: ReasonNonConsecutive}
		}
		if seenSuits[c.Suit] {
			return Result{Kind: Combination, Reason: ReasonSameSuitInCombination}
		}
		seenSuits[c.Suit] = true
	}
	if jokers > 1 {
		return Result{Kind: Combination, Reason: ReasonMultipleJokers}
	}
	if !rankSet {
		return Result{Kind: Combination, Reason: ReasonOnlyJokers}
	}

	points := 0
	for _, c := range cs {
		if c.IsJoker() {
			points += Points(cards.Card{Rank: rank}, false)
		} else {
			points += Points(c, false)
		}
	}
	return Result{Valid: true, Kind: Combination, Points: points}
}

// Validate dispatches to ValidateSequence or ValidateCombination based on
// candidate length and shape: a 3-4 card candidate whose non-joker cards
// all share a rank is tried as a combination first, then everything is
// tried as a sequence; an invalid candidate of at most 4 cards reports the
// combination reason, a longer one the sequence reason.
func Validate(cs []cards.Card) Result {
	if looksLikeCombination(cs) {
		if r := ValidateCombination(cs); r.Valid {
			return r
		}
	}
	if r := ValidateSequence(cs); r.Valid {
		return r
	}
	if len(cs) <= 4 {
		return ValidateCombination(cs)
	}
	return ValidateSequence(cs)
}

// Describe reports whether candidate reads as a sequence or a combination
// shape, without fully validating it. It is a display helper with no caller
// in this repository; the CLI prints each table meld's stored Kind.
func Describe(candidate []cards.Card) (Kind, bool) {
	if len(candidate) == 0 {
		return "", false
	}
	if looksLikeCombination(candidate) {
		return Combination, true
	}
	return Sequence, true
}

func looksLikeCombination(cs []cards.Card) bool {
	if len(cs) < 3 || len(cs) > 4 {
		return false
	}
	var rank cards.Rank
	rankSet := false
	for _, c := range cs {
		if c.IsJoker() {
			continue
		}
		if !rankSet {
			rank = c.Rank
			rankSet = true
		} else if c.Rank != rank {
			return false
		}
	}
	return rankSet
}
