// Package rng implements the two randomness sources (C8) the engine needs:
// a seedable deterministic source for tests, simulation and reproducible
// debugging, and a cryptographically secure source for production shuffles
// and lobby-code generation. Both satisfy the same Source interface so the
// rest of the engine never branches on which one it was handed.
//
// The teacher (pkg/poker/deck.go) already builds its deck directly on top
// of math/rand's default generator (rand.New(rand.NewSource(seed))); this
// package promotes that same generator family to an injectable interface
// instead of a concrete *rand.Rand field.
package rng

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// Source is the randomness contract consumed by shuffles and deals.
type Source interface {
	// UniformInt returns a uniform random integer in [0, n).
	UniformInt(n int) int
	// ShuffleInPlace runs Fisher-Yates over n elements using swap.
	ShuffleInPlace(n int, swap func(i, j int))
}

// deterministic wraps math/rand's PRNG, seeded explicitly so that the same
// seed always produces the same permutation (P7).
type deterministic struct {
	r *mrand.Rand
}

// Deterministic returns a seeded, reproducible Source.
func Deterministic(seed int64) Source {
	return &deterministic{r: mrand.New(mrand.NewSource(seed))}
}

func (d *deterministic) UniformInt(n int) int {
	if n <= 0 {
		return 0
	}
	return d.r.Intn(n)
}

func (d *deterministic) ShuffleInPlace(n int, swap func(i, j int)) {
	d.r.Shuffle(n, swap)
}

// secure is a cryptographically secure Source backed by crypto/rand, used
// in production for real shuffles and for lobby-code generation.
type secure struct{}

// Secure returns the crypto/rand-backed Source.
func Secure() Source {
	return secure{}
}

func (secure) UniformInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure means the OS entropy source is broken; there
		// is no safe fallback for a production shuffle, so this indicates a
		// host-level problem rather than a recoverable game-state error.
		panic("rng: crypto/rand unavailable: " + err.Error())
	}
	return int(v.Int64())
}

func (s secure) ShuffleInPlace(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.UniformInt(i + 1)
		swap(i, j)
	}
}

// lobbyCodeAlphabet excludes the visually ambiguous 0/O and 1/I/L, per
// spec.md §4.6.
const lobbyCodeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"

// NewLobbyCode draws a 6-character code from src over the unambiguous
// alphabet. Production callers should pass Secure(); deterministic tests
// may pass a seeded Deterministic source for reproducibility.
func NewLobbyCode(src Source) string {
	buf := make([]byte, 6)
	for i := range buf {
		buf[i] = lobbyCodeAlphabet[src.UniformInt(len(lobbyCodeAlphabet))]
	}
	return string(buf)
}
