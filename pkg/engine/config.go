package engine

import (
	"fmt"

	"github.com/decred/slog"
)

// GameConfig holds construction-time configuration for a new game,
// following the teacher's GameConfig (pkg/poker/game.go): zero-value
// defaulting for optional fields, a required logger.
type GameConfig struct {
	GameID   string
	PlayerIDs []string
	Seed     int64
	Settings GameSettings
	Log      slog.Logger
}

func (cfg *GameConfig) applyDefaults() error {
	if len(cfg.PlayerIDs) < 2 || len(cfg.PlayerIDs) > 4 {
		return fmt.Errorf("engine: games require 2-4 players, got %d", len(cfg.PlayerIDs))
	}
	if cfg.Log == nil {
		return fmt.Errorf("engine: log is required")
	}
	if cfg.Settings == (GameSettings{}) {
		cfg.Settings = DefaultSettings()
	}
	return nil
}
