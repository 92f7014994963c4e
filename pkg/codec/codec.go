// Package codec implements the state codec (C9): exporting a game document
// into a stable, self-describing form and reconstructing it on import, with
// an integrity pass gating the reconstruction. Grounded on the teacher's
// JSON marshal conventions for cards/hands (pkg/poker/deck.go's
// CardJSON/MarshalJSON) and its JSON-in-a-column persistence fields
// (pkg/server/internal/db/db.go), generalized here to a top-level document
// instead of a DB column.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/vctt94/scala40/pkg/engine"
	"github.com/vctt94/scala40/pkg/integrity"
)

// SchemaVersion is bumped whenever Document's shape changes in a
// backward-incompatible way. ImportState rejects any other value.
const SchemaVersion = 1

// ErrCorruptState is returned by ImportState when the integrity checker
// (C5) finds any violation in the reconstructed game.
type ErrCorruptState struct {
	Violations []integrity.Violation
}

func (e *ErrCorruptState) Error() string {
	return fmt.Sprintf("codec: corrupt state, %d integrity violation(s)", len(e.Violations))
}

// ErrSchemaVersion is returned by ImportState when the document's schema
// version is not one this codec understands.
type ErrSchemaVersion struct {
	Got, Want int
}

func (e *ErrSchemaVersion) Error() string {
	return fmt.Sprintf("codec: schema version %d unsupported, want %d", e.Got, e.Want)
}

// Document is the self-describing export of a game state: a schema version
// tag plus every field of spec.md §3, reusing engine.GameState directly
// since its JSON struct tags already describe the whole document.
type Document struct {
	SchemaVersion int              `json:"schemaVersion"`
	Game          engine.GameState `json:"game"`
}

// ExportState produces a Document for g, stamped with the current schema
// version.
func ExportState(g *engine.GameState) Document {
	return Document{SchemaVersion: SchemaVersion, Game: *g}
}

// Marshal renders doc as indented JSON, the file form that the CLI's
// inspect command reads back through Unmarshal.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// ImportState validates doc's schema version, reconstructs the game, and
// runs it through pkg/integrity (C5) before returning — spec.md §4.9:
// "fails with CorruptState if any violation is found."
func ImportState(doc Document) (*engine.GameState, error) {
	if doc.SchemaVersion != SchemaVersion {
		return nil, &ErrSchemaVersion{Got: doc.SchemaVersion, Want: SchemaVersion}
	}
	g := doc.Game
	if violations := integrity.Check(g.IntegritySnapshot()); len(violations) > 0 {
		return nil, &ErrCorruptState{Violations: violations}
	}
	return &g, nil
}

// Unmarshal parses raw JSON into a Document, then runs ImportState.
func Unmarshal(raw []byte) (*engine.GameState, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("codec: invalid document: %w", err)
	}
	return ImportState(doc)
}
