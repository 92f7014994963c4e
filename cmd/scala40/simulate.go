package main

import (
	"context"
	"flag"
	"fmt"
	"sync"

	"github.com/decred/slog"
	"github.com/pbnjay/memory"

	"github.com/vctt94/scala40/pkg/engine"
	"github.com/vctt94/scala40/pkg/repository"
)

// maxActionsPerGame bounds the AI-driver loop: the deterministic autoplay
// baseline (engine.ActionAutoPlay) never opens and always draws one card
// and discards one, so no hand ever empties and no match finishes on its
// own; every simulated game runs until this cap and is reported as
// truncated, instead of hanging the simulate command.
const maxActionsPerGame = 20000

// bytesPerWorker is a conservative estimate of one simulated game's
// working-set size, used to size the worker pool from available RAM the
// way a production deployment sizes connection pools from
// memory.FreeMemory() instead of a hardcoded worker count.
const bytesPerWorker = 4 << 20

func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	games := fs.Int("games", 10, "number of games to simulate")
	players := fs.Int("players", 2, "number of players per game (2-4)")
	seed := fs.Int64("seed", 1, "base RNG seed; game i uses seed+i")
	if err := fs.Parse(args); err != nil {
		return &exitError{code: 2, msg: err.Error()}
	}

	workers := int(memory.FreeMemory() / bytesPerWorker)
	if workers < 1 {
		workers = 1
	}
	if workers > *games {
		workers = *games
	}

	results := make([]simOutcome, *games)
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < *games; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = simulateOne(i, *players, *seed+int64(i))
		}(i)
	}
	wg.Wait()

	finished, truncated := 0, 0
	for _, r := range results {
		if r.err != nil {
			fmt.Printf("game %d: error: %v\n", r.gameIdx, r.err)
			continue
		}
		if r.hands >= maxActionsPerGame {
			truncated++
			fmt.Printf("game %d: truncated after %d actions without a match winner\n", r.gameIdx, r.hands)
			continue
		}
		finished++
		fmt.Printf("game %d: winner=%s actions=%d\n", r.gameIdx, r.winnerID, r.hands)
	}
	fmt.Printf("simulate: %d/%d games finished, %d truncated, %d worker(s)\n", finished, *games, truncated, workers)
	return nil
}

func simulateOne(idx, players int, seed int64) simOutcome {
	ids := make([]string, players)
	for i := range ids {
		ids[i] = fmt.Sprintf("ai%d", i+1)
	}
	repo := repository.NewMemoryRepository[engine.GameState]()
	g, err := engine.NewGame(engine.GameConfig{
		GameID:    fmt.Sprintf("sim-%d", idx),
		PlayerIDs: ids,
		Seed:      seed,
		Log:       slog.Disabled,
	})
	if err != nil {
		return simOutcome{gameIdx: idx, err: err}
	}
	if _, err := repo.Put(context.Background(), g.ID, *g, repository.NewDocument); err != nil {
		return simOutcome{gameIdx: idx, err: err}
	}

	ctx := context.Background()
	for action := 0; action < maxActionsPerGame; action++ {
		cur, _, err := repo.Get(ctx, g.ID)
		if err != nil {
			return simOutcome{gameIdx: idx, err: err}
		}
		if cur.Status == engine.StatusFinished {
			return simOutcome{gameIdx: idx, winnerID: cur.WinnerID, hands: action}
		}
		resp, err := engine.ApplyAction(ctx, repo, engine.ActionRequest{
			GameID:   g.ID,
			PlayerID: cur.CurrentPlayer,
			Nonce:    fmt.Sprintf("sim-%d-%d", idx, action),
			Action:   engine.ActionAutoPlay,
		})
		if err != nil {
			return simOutcome{gameIdx: idx, err: err}
		}
		if !resp.OK {
			return simOutcome{gameIdx: idx, err: resp.Error}
		}
	}
	return simOutcome{gameIdx: idx, hands: maxActionsPerGame}
}

type simOutcome struct {
	gameIdx  int
	winnerID string
	hands    int
	err      error
}
