package engine

import (
	"fmt"

	"github.com/vctt94/scala40/pkg/melds"
)

// ErrorKind is the closed set of stable error kinds from spec.md §7.
type ErrorKind string

const (
	ErrNotYourTurn           ErrorKind = "NotYourTurn"
	ErrWrongPhase            ErrorKind = "WrongPhase"
	ErrIllegalMeld           ErrorKind = "IllegalMeld"
	ErrOpeningBelowThreshold ErrorKind = "OpeningBelowThreshold"
	ErrNotOpened             ErrorKind = "NotOpened"
	ErrJokerMustBeUsed       ErrorKind = "JokerMustBeUsed"
	ErrPickedCardMustBePlayed ErrorKind = "PickedCardMustBePlayed"
	ErrDiscardAttachesToTable ErrorKind = "DiscardAttachesToTable"
	ErrDiscardIsPickedUpCard  ErrorKind = "DiscardIsPickedUpCard"
	ErrCannotCloseFirstRound  ErrorKind = "CannotCloseFirstRound"
	ErrNoCards               ErrorKind = "NoCards"
	ErrStockEmpty            ErrorKind = "StockEmpty"
	ErrVersionConflict       ErrorKind = "VersionConflict"
	ErrStaleState            ErrorKind = "StaleState"
	ErrCorruptState          ErrorKind = "CorruptState"
	ErrNotFound              ErrorKind = "NotFound"
	ErrUnavailable           ErrorKind = "Unavailable"
)

// EngineError is the typed error every rejected action returns: a kind plus
// a human-readable detail and, for IllegalMeld/OpeningBelowThreshold, a
// structured payload (the meld reason code or the opening point total).
type EngineError struct {
	Kind         ErrorKind
	Detail       string
	MeldReason   melds.Reason
	OpeningPoints int
}

func (e *EngineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return string(e.Kind)
}

func newErr(kind ErrorKind, detail string) *EngineError {
	return &EngineError{Kind: kind, Detail: detail}
}

func illegalMeldErr(reason melds.Reason) *EngineError {
	return &EngineError{Kind: ErrIllegalMeld, Detail: string(reason), MeldReason: reason}
}

func openingBelowThresholdErr(points int) *EngineError {
	return &EngineError{Kind: ErrOpeningBelowThreshold, Detail: fmt.Sprintf("%d points", points), OpeningPoints: points}
}
