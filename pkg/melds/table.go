package melds

import "github.com/vctt94/scala40/pkg/cards"

// TableMeld is a meld already committed to the table. Sequence cards are
// stored in ascending run order (the order the engine normalizes them into
// when the meld is laid down or attached to); combination card order is
// not meaningful. Owner is the player id that first laid the meld down —
// display only, since any opened player may attach to it.
type TableMeld struct {
	Kind  Kind         `json:"kind"`
	Cards []cards.Card `json:"cards"`
	Owner string       `json:"owner"`
}

// Clone returns a deep copy of m, safe to mutate independently.
func (m TableMeld) Clone() TableMeld {
	cs := make([]cards.Card, len(m.Cards))
	copy(cs, m.Cards)
	return TableMeld{Kind: m.Kind, Cards: cs, Owner: m.Owner}
}
