package lobby

import (
	"context"
	"testing"

	"github.com/decred/slog"
	"github.com/stretchr/testify/require"

	"github.com/vctt94/scala40/pkg/engine"
	"github.com/vctt94/scala40/pkg/repository"
	"github.com/vctt94/scala40/pkg/rng"
)

func testManager() *Manager {
	repo := repository.NewMemoryRepository[Lobby]()
	return NewManager(repo, rng.Deterministic(1), slog.Disabled)
}

func TestCreateJoinReadyStart(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	l, err := m.Create(ctx, "alice", "chat1", engine.GameSettings{})
	require.NoError(t, err)
	require.Len(t, l.Code, 6)
	require.Equal(t, StatusWaiting, l.Status)

	_, err = m.Join(ctx, l.Code, "bob")
	require.NoError(t, err)

	_, err = m.Join(ctx, l.Code, "alice")
	require.ErrorIs(t, err, ErrAlreadyJoined)

	_, _, err = m.Start(ctx, l.Code, "alice", 42, slog.Disabled)
	require.ErrorIs(t, err, ErrNotAllReady)

	_, err = m.ToggleReady(ctx, l.Code, "alice")
	require.NoError(t, err)
	_, err = m.ToggleReady(ctx, l.Code, "bob")
	require.NoError(t, err)

	_, _, err = m.Start(ctx, l.Code, "bob", 42, slog.Disabled)
	require.ErrorIs(t, err, ErrNotHost)

	l, game, err := m.Start(ctx, l.Code, "alice", 42, slog.Disabled)
	require.NoError(t, err)
	require.Equal(t, StatusInGame, l.Status)
	require.NotNil(t, game)
	require.Len(t, game.Players, 2)
}

func TestJoinRejectsFullClosedInGame(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	l, err := m.Create(ctx, "a", "chat", engine.GameSettings{})
	require.NoError(t, err)
	_, err = m.Join(ctx, l.Code, "b")
	require.NoError(t, err)
	_, err = m.Join(ctx, l.Code, "c")
	require.NoError(t, err)
	_, err = m.Join(ctx, l.Code, "d")
	require.NoError(t, err)

	_, err = m.Join(ctx, l.Code, "e")
	require.ErrorIs(t, err, ErrFull)

	// A lobby closes once its last player leaves.
	closed, err := m.Create(ctx, "x", "chat", engine.GameSettings{})
	require.NoError(t, err)
	_, err = m.Leave(ctx, closed.Code, "x")
	require.NoError(t, err)
	_, err = m.Join(ctx, closed.Code, "y")
	require.ErrorIs(t, err, ErrClosed)

	// A started lobby has handed off to a game.
	started, err := m.Create(ctx, "p", "chat", engine.GameSettings{})
	require.NoError(t, err)
	_, err = m.Join(ctx, started.Code, "q")
	require.NoError(t, err)
	_, err = m.ToggleReady(ctx, started.Code, "p")
	require.NoError(t, err)
	_, err = m.ToggleReady(ctx, started.Code, "q")
	require.NoError(t, err)
	_, _, err = m.Start(ctx, started.Code, "p", 1, slog.Disabled)
	require.NoError(t, err)
	_, err = m.Join(ctx, started.Code, "r")
	require.ErrorIs(t, err, ErrInGame)
}

func TestHostTransferOnLeave(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	l, err := m.Create(ctx, "host", "chat", engine.GameSettings{})
	require.NoError(t, err)
	_, err = m.Join(ctx, l.Code, "second")
	require.NoError(t, err)

	l, err = m.Leave(ctx, l.Code, "host")
	require.NoError(t, err)
	require.Equal(t, "second", l.HostID)

	l, err = m.Leave(ctx, l.Code, "second")
	require.NoError(t, err)
	require.Equal(t, StatusClosed, l.Status)
}

func TestStartRequiresMinPlayers(t *testing.T) {
	ctx := context.Background()
	m := testManager()

	l, err := m.Create(ctx, "solo", "chat", engine.GameSettings{})
	require.NoError(t, err)
	_, err = m.ToggleReady(ctx, l.Code, "solo")
	require.NoError(t, err)

	_, _, err = m.Start(ctx, l.Code, "solo", 1, slog.Disabled)
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
}
