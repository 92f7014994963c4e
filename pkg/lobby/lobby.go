// Package lobby implements the lobby lifecycle (C6): lobby-code rendezvous,
// join/ready/start, and handoff to the turn engine's NewGame. Grounded on
// the teacher's CreateTable/JoinTable/LeaveTable/SetPlayerReady handlers
// (pkg/server/lobby.go) and the host-transfer/ready-check logic in
// pkg/poker/table.go's Table, adapted from an in-process s.mu-guarded map
// of live tables to a repository-backed document with optimistic
// concurrency, matching C7's contract instead of a long-lived server's
// in-memory registry.
package lobby

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decred/slog"

	"github.com/vctt94/scala40/pkg/engine"
	"github.com/vctt94/scala40/pkg/repository"
	"github.com/vctt94/scala40/pkg/rng"
)

// Status is the lifecycle stage of a lobby document.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusStarting Status = "starting"
	StatusInGame   Status = "in_game"
	StatusClosed   Status = "closed"
)

// Entry is one seated player within a lobby.
type Entry struct {
	PlayerID string `json:"playerId"`
	Ready    bool   `json:"ready"`
}

// Lobby is the persisted document for one lobby (spec.md §4.6), keyed by
// its six-character Code.
type Lobby struct {
	Code      string              `json:"code"`
	HostID    string              `json:"hostId"`
	Players   []Entry             `json:"players"`
	Status    Status              `json:"status"`
	ChatID    string              `json:"chatId"`
	Settings  engine.GameSettings `json:"settings"`
	CreatedAt time.Time           `json:"createdAt"`
	TTL       time.Duration       `json:"ttl"`
	GameID    string              `json:"gameId,omitempty"`
}

const (
	minPlayers = 2
	maxPlayers = 4

	// DefaultTTL matches the teacher's AutoStartDelay-style "don't linger
	// forever" defaulting pattern in TableConfig.
	DefaultTTL = 2 * time.Hour
)

var (
	// ErrClosed is returned by Join/Start against a closed lobby.
	ErrClosed = errors.New("lobby: closed")
	// ErrFull is returned by Join once the lobby already seats maxPlayers.
	ErrFull = errors.New("lobby: full")
	// ErrInGame is returned by Join once the lobby has already handed off
	// to a running game.
	ErrInGame = errors.New("lobby: already in game")
	// ErrNotHost is returned by Start when the caller is not the host.
	ErrNotHost = errors.New("lobby: caller is not host")
	// ErrNotEnoughPlayers is returned by Start with fewer than minPlayers seated.
	ErrNotEnoughPlayers = errors.New("lobby: need at least 2 players")
	// ErrNotAllReady is returned by Start while any seated player is unready.
	ErrNotAllReady = errors.New("lobby: not all players ready")
	// ErrAlreadyJoined is returned by Join for a player already seated.
	ErrAlreadyJoined = errors.New("lobby: player already joined")
	// ErrNotSeated is returned by Leave/ToggleReady for a player not in the lobby.
	ErrNotSeated = errors.New("lobby: player not seated")
)

// Manager coordinates lobby documents through a Repository, the way
// engine.ApplyAction coordinates game documents (C4 and C6 share the same
// optimistic-concurrency discipline from C7).
type Manager struct {
	repo repository.Repository[Lobby]
	rng  rng.Source
	log  slog.Logger
}

// NewManager constructs a lobby Manager. rngSrc should be rng.Secure() in
// production and a rng.Deterministic seed in tests, matching C8's split.
func NewManager(repo repository.Repository[Lobby], rngSrc rng.Source, log slog.Logger) *Manager {
	return &Manager{repo: repo, rng: rngSrc, log: log}
}

// Create makes a new lobby hosted by host, seats the host, and persists it
// under a freshly generated unambiguous lobby code (spec.md §4.6), retrying
// on the astronomically unlikely event of a code collision.
func (m *Manager) Create(ctx context.Context, host, chatID string, settings engine.GameSettings) (*Lobby, error) {
	if settings == (engine.GameSettings{}) {
		settings = engine.DefaultSettings()
	}
	for attempt := 0; attempt < 5; attempt++ {
		code := rng.NewLobbyCode(m.rng)
		l := &Lobby{
			Code:      code,
			HostID:    host,
			Players:   []Entry{{PlayerID: host, Ready: false}},
			Status:    StatusWaiting,
			ChatID:    chatID,
			Settings:  settings,
			CreatedAt: time.Now(),
			TTL:       DefaultTTL,
		}
		_, err := m.repo.Put(ctx, code, *l, repository.NewDocument)
		if err == nil {
			m.log.Debugf("lobby %s created by %s", code, host)
			return l, nil
		}
		if !errors.Is(err, repository.ErrAlreadyExists) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("lobby: exhausted code generation attempts")
}

// Join seats player into the lobby identified by code.
func (m *Manager) Join(ctx context.Context, code, player string) (*Lobby, error) {
	return m.mutate(ctx, code, func(l *Lobby) error {
		if l.Status == StatusClosed {
			return ErrClosed
		}
		if l.Status == StatusInGame || l.Status == StatusStarting {
			return ErrInGame
		}
		for _, e := range l.Players {
			if e.PlayerID == player {
				return ErrAlreadyJoined
			}
		}
		if len(l.Players) >= maxPlayers {
			return ErrFull
		}
		l.Players = append(l.Players, Entry{PlayerID: player})
		return nil
	})
}

// Leave removes player from the lobby. If the host leaves, the host role
// transfers to the next seat (seating order); if the lobby becomes empty it
// closes, mirroring the teacher's Table host-transfer-or-teardown path.
func (m *Manager) Leave(ctx context.Context, code, player string) (*Lobby, error) {
	return m.mutate(ctx, code, func(l *Lobby) error {
		idx := -1
		for i, e := range l.Players {
			if e.PlayerID == player {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotSeated
		}
		l.Players = append(l.Players[:idx], l.Players[idx+1:]...)
		if len(l.Players) == 0 {
			l.Status = StatusClosed
			return nil
		}
		if l.HostID == player {
			l.HostID = l.Players[0].PlayerID
		}
		return nil
	})
}

// ToggleReady flips player's ready flag.
func (m *Manager) ToggleReady(ctx context.Context, code, player string) (*Lobby, error) {
	return m.mutate(ctx, code, func(l *Lobby) error {
		for i := range l.Players {
			if l.Players[i].PlayerID == player {
				l.Players[i].Ready = !l.Players[i].Ready
				return nil
			}
		}
		return ErrNotSeated
	})
}

// Start transitions the lobby to in_game and hands off to engine.NewGame
// (spec.md §4.6: "transitions to in_game and returns the new game id
// produced by C4's createGame"). seed should be a fresh crypto-derived seed
// in production (rng.Secure().UniformInt-based) and a fixed seed in tests.
func (m *Manager) Start(ctx context.Context, code, host string, seed int64, log slog.Logger) (*Lobby, *engine.GameState, error) {
	var game *engine.GameState
	l, err := m.mutate(ctx, code, func(l *Lobby) error {
		if l.Status == StatusClosed {
			return ErrClosed
		}
		if l.HostID != host {
			return ErrNotHost
		}
		if len(l.Players) < minPlayers {
			return ErrNotEnoughPlayers
		}
		for _, e := range l.Players {
			if !e.Ready {
				return ErrNotAllReady
			}
		}
		ids := make([]string, len(l.Players))
		for i, e := range l.Players {
			ids[i] = e.PlayerID
		}
		g, err := engine.NewGame(engine.GameConfig{
			GameID:    "game_" + l.Code,
			PlayerIDs: ids,
			Seed:      seed,
			Settings:  l.Settings,
			Log:       log,
		})
		if err != nil {
			return err
		}
		game = g
		l.Status = StatusInGame
		l.GameID = g.ID
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return l, game, nil
}

// mutate implements the read -> validate -> write-with-expected-version
// flow from C7/§4.7, shared by every lobby operation.
func (m *Manager) mutate(ctx context.Context, code string, fn func(*Lobby) error) (*Lobby, error) {
	l, version, err := m.repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := fn(&l); err != nil {
		return nil, err
	}
	if _, err := m.repo.Put(ctx, code, l, version); err != nil {
		return nil, err
	}
	return &l, nil
}
