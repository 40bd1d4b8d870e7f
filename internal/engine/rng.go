package engine

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// RandomSource supplies uniform values in [0, 1).
//
// Level layouts and rotation perturbations draw from it; nothing else in
// the engine is random.
type RandomSource interface {
	Float64() float64
}

type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Float64()
	}
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG returns an unseeded crypto-backed source.
func DefaultRNG() RandomSource { return cryptoRNG{} }

type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a reproducible source; equal seeds yield equal games.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// NewSeed draws a fresh seed for a run whose seed should be recorded.
func NewSeed() uint64 {
	var buf [8]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.Uint64()
	}
	return binary.BigEndian.Uint64(buf[:])
}
