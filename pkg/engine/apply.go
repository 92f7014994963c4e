package engine

import (
	"context"
	"errors"
	"time"

	"github.com/vctt94/scala40/pkg/repository"
)

// applyBackoff is the retry schedule for ApplyAction's optimistic-concurrency
// loop (spec.md §5: "the caller retries the read-modify-write with a short
// backoff; three retries are reasonable before surfacing StaleState").
var applyBackoff = []time.Duration{20 * time.Millisecond, 40 * time.Millisecond, 80 * time.Millisecond}

// ApplyAction is the repository-backed entry point for the engine boundary
// (spec.md §6): read the game document, replay idempotency (§4.7: a
// repeated nonce returns the cached response without re-applying), validate
// and apply req via applyPure, then write back with the expected version.
// On a version conflict from a concurrent writer, it retries against a
// fresh read up to len(applyBackoff) times before surfacing ErrStaleState.
func ApplyAction(ctx context.Context, repo repository.Repository[GameState], req ActionRequest) (*ActionResponse, error) {
	attempt := 0
	for {
		g, version, err := repo.Get(ctx, req.GameID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newErr(ErrNotFound, "game not found")
		}
		if err != nil {
			return nil, err
		}

		if req.Nonce != "" && g.LastAppliedNonce == req.Nonce && g.LastAppliedResult != nil {
			return g.LastAppliedResult, nil
		}

		events, applyErr := g.applyPure(req)
		if applyErr != nil {
			return errorResponse(applyErr), nil
		}

		resp := &ActionResponse{
			OK:          true,
			NewPhase:    g.Phase,
			PublicView:  g.GetPublicView(),
			PrivateView: g.GetPrivateView(req.PlayerID),
			Events:      events,
		}
		g.LastAppliedNonce = req.Nonce
		g.LastAppliedResult = resp

		_, putErr := repo.Put(ctx, req.GameID, g, version)
		if putErr == nil {
			return resp, nil
		}
		if !errors.Is(putErr, repository.ErrVersionConflict) {
			return nil, putErr
		}

		if attempt >= len(applyBackoff) {
			return errorResponse(newErr(ErrStaleState, "exhausted retries on version conflict")), nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(applyBackoff[attempt]):
		}
		attempt++
	}
}

func errorResponse(e *EngineError) *ActionResponse {
	return &ActionResponse{OK: false, Error: e}
}
