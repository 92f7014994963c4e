package engine

import (
	"time"

	"github.com/vctt94/scala40/pkg/cards"
)

// ActionKind is one of the eight action types the engine boundary accepts
// (spec.md §6).
type ActionKind string

const (
	ActionDrawStock       ActionKind = "draw_stock"
	ActionDrawDiscard     ActionKind = "draw_discard"
	ActionOpen            ActionKind = "open"
	ActionLayMeld         ActionKind = "lay_meld"
	ActionAttach          ActionKind = "attach"
	ActionSubstituteJoker ActionKind = "substitute_joker"
	ActionDiscard         ActionKind = "discard"
	ActionAutoPlay        ActionKind = "auto_play"
)

// ActionPayload carries the action-specific fields (spec.md §6): meld
// definitions as lists of card references.
type ActionPayload struct {
	Melds     [][]cards.Card `json:"melds,omitempty"`
	Card      *cards.Card    `json:"card,omitempty"`
	MeldIndex int            `json:"meldIndex"`
	HeldCard  *cards.Card    `json:"heldCard,omitempty"`
}

// ActionRequest is the engine boundary request (spec.md §6).
type ActionRequest struct {
	GameID           string
	PlayerID         string
	Nonce            string
	Action           ActionKind
	Payload          ActionPayload
	DeclareDuplicate bool
	Deadline         *time.Time
}

// ActionResponse is the engine boundary response (spec.md §6).
type ActionResponse struct {
	OK          bool        `json:"ok"`
	NewPhase    TurnPhase   `json:"newPhase,omitempty"`
	PublicView  PublicView  `json:"publicView,omitempty"`
	PrivateView PrivateView `json:"privateView,omitempty"`
	Events      []Event     `json:"events,omitempty"`
	Error       *EngineError `json:"error,omitempty"`
}

// applyPure validates and applies req against g in place, returning the
// structured events committed. On any validation failure g is left
// unmutated and the error is returned. This is the pure rule-engine core;
// ApplyAction (apply.go) wraps it with repository I/O, retry, and
// idempotency.
func (g *GameState) applyPure(req ActionRequest) ([]Event, *EngineError) {
	if g.Corrupt {
		return nil, newErr(ErrCorruptState, "game flagged corrupt, no further mutations accepted")
	}
	if g.Status != StatusPlaying {
		return nil, newErr(ErrWrongPhase, "match is not in progress")
	}
	if req.Action != ActionAutoPlay && g.CurrentPlayer != req.PlayerID {
		return nil, newErr(ErrNotYourTurn, "")
	}
	if g.player(req.PlayerID) == nil {
		return nil, newErr(ErrNotFound, "player not in game")
	}

	switch g.Phase {
	case PhaseAwaitDraw:
		return g.applyDrawPhase(req)
	case PhaseAwaitPlay:
		return g.applyPlayPhase(req)
	default:
		return nil, newErr(ErrWrongPhase, string(g.Phase))
	}
}

func (g *GameState) applyDrawPhase(req ActionRequest) ([]Event, *EngineError) {
	switch req.Action {
	case ActionDrawStock:
		return g.drawStock(req.PlayerID, g.rngSource())
	case ActionDrawDiscard:
		return g.drawDiscard(req.PlayerID)
	case ActionAutoPlay:
		return g.autoPlay(req.PlayerID)
	default:
		return nil, newErr(ErrWrongPhase, "expected a draw action")
	}
}

func (g *GameState) applyPlayPhase(req ActionRequest) ([]Event, *EngineError) {
	switch req.Action {
	case ActionOpen:
		return g.open(req.PlayerID, req.Payload.Melds)
	case ActionLayMeld:
		if len(req.Payload.Melds) != 1 {
			return nil, newErr(ErrIllegalMeld, "lay_meld expects exactly one meld")
		}
		return g.layMeld(req.PlayerID, req.Payload.Melds[0])
	case ActionAttach:
		if req.Payload.Card == nil {
			return nil, newErr(ErrNoCards, "attach requires a card")
		}
		return g.attachCard(req.PlayerID, *req.Payload.Card, req.Payload.MeldIndex)
	case ActionSubstituteJoker:
		if req.Payload.HeldCard == nil {
			return nil, newErr(ErrNoCards, "substitute_joker requires a held card")
		}
		return g.substituteJoker(req.PlayerID, req.Payload.MeldIndex, *req.Payload.HeldCard)
	case ActionDiscard:
		if req.Payload.Card == nil {
			return nil, newErr(ErrNoCards, "discard requires a card")
		}
		return g.discard(req.PlayerID, *req.Payload.Card, req.DeclareDuplicate)
	default:
		return nil, newErr(ErrWrongPhase, "expected a play or discard action")
	}
}
