package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// NewSeed returns a cryptographically random seed. Used when the
// operator did not pin one; the chosen seed is always logged so any
// game can be replayed.
func NewSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// crypto/rand failing is unrecoverable in practice; fall back
		// to a fixed seed rather than crash pre-game.
		return 1
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// NewRand returns the game's single random source. Every probabilistic
// decision in the engine draws from this source, so a fixed seed
// reproduces the full game.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
