// Package engine implements the Scala 40 turn state machine and action
// dispatcher (C4): the rules engine that decides, for every player action,
// whether it is legal, what the resulting game state is, and when a hand
// or match ends.
package engine

import (
	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/melds"
)

// TurnPhase is one state of the per-turn state machine (spec.md §4.4).
type TurnPhase string

const (
	PhaseAwaitDraw    TurnPhase = "AWAIT_DRAW"
	PhaseAwaitPlay    TurnPhase = "AWAIT_PLAY"
	PhaseAwaitDiscard TurnPhase = "AWAIT_DISCARD"
	PhaseTurnEnd      TurnPhase = "TURN_END"
)

// MatchStatus is the lifecycle stage of a game document.
type MatchStatus string

const (
	StatusPlaying  MatchStatus = "playing"
	StatusHandEnd  MatchStatus = "hand_end"
	StatusFinished MatchStatus = "finished"
)

// TableMeld aliases the meld validator's table-meld shape so engine callers
// never need to import pkg/melds directly for this type.
type TableMeld = melds.TableMeld

// GameSettings holds the per-game configuration flags from spec.md §6.
type GameSettings struct {
	EliminationScore    int  `json:"eliminationScore"`
	OpenWithDiscard      bool `json:"openWithDiscard"`
	CloseInHandBonus     bool `json:"closeInHandBonus"`
	OpeningWithoutJoker  bool `json:"openingWithoutJoker"`
}

// DefaultSettings returns the configuration flags at their spec.md §6
// defaults.
func DefaultSettings() GameSettings {
	return GameSettings{
		EliminationScore:   101,
		OpenWithDiscard:     false,
		CloseInHandBonus:    false,
		OpeningWithoutJoker: false,
	}
}

// PlayerState is one player's persisted state within a game document.
type PlayerState struct {
	ID         string       `json:"id"`
	Hand       []cards.Card `json:"hand"`
	HasOpened  bool         `json:"hasOpened"`
	Score      int          `json:"score"`
	Eliminated bool         `json:"eliminated"`
}

// TurnScratch is the small per-turn working area attached to the current
// turn (spec.md §3's "per-turn scratch"): the picked-up discard card that
// must be used, a withdrawn joker pending resolution, and fields for a
// snapshot of hand/table state at turn start. The engine never fills
// SnapshotHand or SnapshotMelds.
type TurnScratch struct {
	PickedFromDiscard   *cards.Card   `json:"pickedFromDiscard,omitempty"`
	PendingJoker        *cards.Card   `json:"pendingJoker,omitempty"`
	PendingJokerMeldIdx int           `json:"pendingJokerMeldIdx,omitempty"`
	SnapshotHand        []cards.Card  `json:"snapshotHand,omitempty"`
	SnapshotMelds       []TableMeld   `json:"snapshotMelds,omitempty"`
	DrawOccurred        bool          `json:"drawOccurred"`
}

// GameState is the full persisted document for one game (spec.md §3).
type GameState struct {
	ID                 string        `json:"id"`
	Players            []PlayerState `json:"players"`
	Stock              []cards.Card  `json:"stock"`
	Discard            []cards.Card  `json:"discard"`
	Melds              []TableMeld   `json:"melds"`
	CurrentPlayer      string        `json:"currentPlayer"`
	RoundLeadPlayer    string        `json:"roundLeadPlayer"`
	Phase              TurnPhase     `json:"phase"`
	RoundNumber        int           `json:"roundNumber"`
	FirstRoundComplete bool          `json:"firstRoundComplete"`
	DealerUserID       string        `json:"dealerUserId"`
	HandNumber         int           `json:"handNumber"`
	Status             MatchStatus   `json:"status"`
	Settings           GameSettings  `json:"settings"`
	Version            int64         `json:"version"`
	Seed               int64         `json:"seed"`
	ReshuffleCount     int64         `json:"reshuffleCount"`
	WinnerID           string        `json:"winnerId,omitempty"`

	LastAppliedNonce  string            `json:"lastAppliedNonce,omitempty"`
	LastAppliedResult *ActionResponse   `json:"lastAppliedResult,omitempty"`

	Scratch TurnScratch `json:"scratch"`

	Corrupt bool `json:"corrupt,omitempty"`
}

// playerIndex returns the index of the player with id, or -1.
func (g *GameState) playerIndex(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// player returns a pointer to the player with id, or nil.
func (g *GameState) player(id string) *PlayerState {
	i := g.playerIndex(id)
	if i < 0 {
		return nil
	}
	return &g.Players[i]
}

// nonEliminatedCount returns how many players are still in the match.
func (g *GameState) nonEliminatedCount() int {
	n := 0
	for _, p := range g.Players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}
