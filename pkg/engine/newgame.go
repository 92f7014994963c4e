package engine

import (
	"fmt"

	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/rng"
)

// NewGame constructs a fresh game document and deals the first hand
// (spec.md §4.1's Deal, §4.4's per-hand setup). The dealer is the first
// seat in cfg.PlayerIDs; the seat after the dealer acts first.
func NewGame(cfg GameConfig) (*GameState, error) {
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	g := &GameState{
		ID:       cfg.GameID,
		Settings: cfg.Settings,
		Seed:     cfg.Seed,
		Status:   StatusPlaying,
	}
	for _, id := range cfg.PlayerIDs {
		g.Players = append(g.Players, PlayerState{ID: id})
	}
	g.DealerUserID = cfg.PlayerIDs[0]
	g.HandNumber = 0

	if err := g.startHand(); err != nil {
		return nil, err
	}
	return g, nil
}

// startHand deals a fresh 108-card shuffle, resets per-hand player state,
// and sets the turn to the seat after the dealer. Deterministic given
// g.Seed and g.HandNumber, so replaying the same game history from the
// same seed reproduces the same deals (P7).
func (g *GameState) startHand() error {
	g.HandNumber++
	handSeed := g.Seed + int64(g.HandNumber)*1_000_003
	src := rng.Deterministic(handSeed)

	stock := cards.NewDeck(src)
	numPlayers := len(g.Players)
	hands, discard, err := cards.Deal(stock, numPlayers)
	if err != nil {
		return fmt.Errorf("engine: deal failed: %w", err)
	}

	for i := range g.Players {
		g.Players[i].Hand = hands[i]
		g.Players[i].HasOpened = false
	}
	g.Stock = stock.Cards()
	g.Discard = discard.Cards()
	g.Melds = nil
	g.RoundNumber = 1
	g.FirstRoundComplete = false
	g.ReshuffleCount = 0
	g.Scratch = TurnScratch{}
	g.Status = StatusPlaying

	dealerIdx := g.playerIndex(g.DealerUserID)
	firstActor := nextNonEliminatedSeat(g.Players, dealerIdx)
	g.CurrentPlayer = g.Players[firstActor].ID
	g.RoundLeadPlayer = g.CurrentPlayer
	g.Phase = PhaseAwaitDraw

	return nil
}

// startNextHand rotates the dealer to the next seat and deals a new hand;
// called after a hand_end when the match has not finished.
func (g *GameState) startNextHand() error {
	dealerIdx := g.playerIndex(g.DealerUserID)
	nextDealer := nextNonEliminatedSeat(g.Players, dealerIdx)
	g.DealerUserID = g.Players[nextDealer].ID
	return g.startHand()
}
