package engine

import "github.com/vctt94/scala40/pkg/rng"

// rngSource derives a deterministic RNG source from the game's stored seed
// and a per-reshuffle counter, so the same game history always reshuffles
// the same way (spec.md §5: "RNG seeds used for in-hand reshuffles are
// derived from a per-game seed stored in the game document"), and bumps
// the counter so a second reshuffle within the same hand does not repeat
// the first one's permutation.
func (g *GameState) rngSource() *countedSource {
	return &countedSource{g: g}
}

// countedSource wraps rng.Deterministic, advancing g.ReshuffleCount each
// time it is actually used to shuffle, so the derived seed does not repeat
// within a hand. startHand resets the counter, so every hand's reshuffles
// draw on the same sequence of seeds.
type countedSource struct {
	g *GameState
}

func (c *countedSource) ShuffleInPlace(n int, swap func(i, j int)) {
	seed := c.g.Seed + c.g.ReshuffleCount
	c.g.ReshuffleCount++
	rng.Deterministic(seed).ShuffleInPlace(n, swap)
}
