package codec

import (
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/scala40/pkg/engine"
)

func newTestGame(t *testing.T) *engine.GameState {
	t.Helper()
	g, err := engine.NewGame(engine.GameConfig{
		GameID:    "g1",
		PlayerIDs: []string{"a", "b"},
		Seed:      7,
		Log:       slog.Disabled,
	})
	require.NoError(t, err)
	return g
}

// TestExportImportRoundTrip covers P6: exportState . importState = identity
// on valid documents.
func TestExportImportRoundTrip(t *testing.T) {
	g := newTestGame(t)
	doc := ExportState(g)

	raw, err := Marshal(doc)
	require.NoError(t, err)

	got, err := Unmarshal(raw)
	require.NoError(t, err)
	require.Equal(t, *g, *got)
}

func TestImportRejectsWrongSchemaVersion(t *testing.T) {
	g := newTestGame(t)
	doc := ExportState(g)
	doc.SchemaVersion = 99

	_, err := ImportState(doc)
	var schemaErr *ErrSchemaVersion
	require.ErrorAs(t, err, &schemaErr)
}

func TestImportRejectsCorruptState(t *testing.T) {
	g := newTestGame(t)
	doc := ExportState(g)
	// Drop a card from the first player's hand: breaks the 108-card
	// conservation invariant (I1).
	doc.Game.Players[0].Hand = doc.Game.Players[0].Hand[1:]

	_, err := ImportState(doc)
	var corruptErr *ErrCorruptState
	require.ErrorAs(t, err, &corruptErr)
	require.NotEmpty(t, corruptErr.Violations)
}
