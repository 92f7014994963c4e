package main

import (
	"context"
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"

	"github.com/vctt94/scala40/pkg/engine"
	"github.com/vctt94/scala40/pkg/repository"
	"github.com/vctt94/scala40/pkg/ui"
)

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	players := fs.Int("players", 2, "number of players (2-4)")
	seed := fs.Int64("seed", 1, "deterministic RNG seed")
	if err := fs.Parse(args); err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	ids := make([]string, *players)
	for i := range ids {
		ids[i] = fmt.Sprintf("player%d", i+1)
	}

	repo := repository.NewMemoryRepository[engine.GameState]()
	g, err := engine.NewGame(engine.GameConfig{
		GameID:    "local",
		PlayerIDs: ids,
		Seed:      *seed,
		Log:       slog.Disabled,
	})
	if err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}
	if _, err := repo.Put(context.Background(), g.ID, *g, repository.NewDocument); err != nil {
		return err
	}

	model := ui.NewModel(context.Background(), repo, g.ID)
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}
