package engine

import (
	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/integrity"
)

// PlayerPublicInfo is what every player in a game can see about a peer.
type PlayerPublicInfo struct {
	ID         string `json:"id"`
	HandSize   int    `json:"handSize"`
	HasOpened  bool   `json:"hasOpened"`
	Score      int    `json:"score"`
	Eliminated bool   `json:"eliminated"`
}

// PublicView is the visibility split's shared view: everything every
// player in the game may see (spec.md §6).
type PublicView struct {
	GameID             string             `json:"gameId"`
	Players            []PlayerPublicInfo `json:"players"`
	DiscardTop         *cards.Card        `json:"discardTop,omitempty"`
	StockSize          int                `json:"stockSize"`
	Melds              []TableMeld        `json:"melds"`
	CurrentPlayer      string             `json:"currentPlayer"`
	Phase              TurnPhase          `json:"phase"`
	HandNumber         int                `json:"handNumber"`
	RoundNumber        int                `json:"roundNumber"`
	FirstRoundComplete bool               `json:"firstRoundComplete"`
	Status             MatchStatus        `json:"status"`
	WinnerID           string             `json:"winnerId,omitempty"`
}

// PrivateView is visible only to the requesting player: their own hand.
type PrivateView struct {
	PlayerID string       `json:"playerId"`
	Hand     []cards.Card `json:"hand"`
}

// GetPublicView deep-copies g into a read view that cannot be mutated
// through the returned struct, grounded on the teacher's
// GameStateSnapshot/GetStateSnapshot deep-copy pattern (pkg/poker/game.go).
func (g *GameState) GetPublicView() PublicView {
	players := make([]PlayerPublicInfo, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerPublicInfo{
			ID:         p.ID,
			HandSize:   len(p.Hand),
			HasOpened:  p.HasOpened,
			Score:      p.Score,
			Eliminated: p.Eliminated,
		}
	}
	melds := make([]TableMeld, len(g.Melds))
	for i, m := range g.Melds {
		melds[i] = m.Clone()
	}
	var top *cards.Card
	if len(g.Discard) > 0 {
		t := g.Discard[len(g.Discard)-1]
		top = &t
	}
	return PublicView{
		GameID:             g.ID,
		Players:            players,
		DiscardTop:         top,
		StockSize:          len(g.Stock),
		Melds:              melds,
		CurrentPlayer:      g.CurrentPlayer,
		Phase:              g.Phase,
		HandNumber:         g.HandNumber,
		RoundNumber:        g.RoundNumber,
		FirstRoundComplete: g.FirstRoundComplete,
		Status:             g.Status,
		WinnerID:           g.WinnerID,
	}
}

// IntegritySnapshot projects g into the read-only view pkg/integrity (C5)
// checks, keeping the engine -> integrity dependency one-directional.
func (g *GameState) IntegritySnapshot() integrity.Snapshot {
	hands := make(map[string][]cards.Card, len(g.Players))
	eliminated := make(map[string]bool, len(g.Players))
	for _, p := range g.Players {
		hands[p.ID] = p.Hand
		eliminated[p.ID] = p.Eliminated
	}
	return integrity.Snapshot{
		Hands:             hands,
		TableMelds:        g.Melds,
		Stock:             g.Stock,
		Discard:           g.Discard,
		CurrentPlayerID:   g.CurrentPlayer,
		EliminatedPlayers: eliminated,
		Phase:             string(g.Phase),
		HasDrawnThisTurn:  g.Scratch.DrawOccurred,
	}
}

// GetPrivateView returns playerID's own hand, deep-copied.
func (g *GameState) GetPrivateView(playerID string) PrivateView {
	p := g.player(playerID)
	if p == nil {
		return PrivateView{PlayerID: playerID}
	}
	hand := make([]cards.Card, len(p.Hand))
	copy(hand, p.Hand)
	return PrivateView{PlayerID: playerID, Hand: hand}
}
