// Package entropy provides the injectable randomness used by computer players.
// Turn outcomes are reproducible whenever a seeded source is supplied.
package entropy

import (
	"crypto/rand"
	"io"
	"log/slog"
	"math/big"
	mrand "math/rand"
)

// Source yields uniformly distributed integers in [0, n). n must be > 0.
type Source interface {
	Intn(n int) int
}

// NewSeeded returns a deterministic source. The same seed always replays the same draws.
func NewSeeded(seed int64) Source {
	return mrand.New(mrand.NewSource(seed))
}

// Crypto draws from crypto/rand. Used when no seed is configured.
type Crypto struct {
	Reader io.Reader // nil = crypto/rand.Reader
}

// Intn returns a uniform int in [0, n). If the reader fails, the draw falls back to
// math/rand and a warning is logged.
func (c Crypto) Intn(n int) int {
	if n <= 0 {
		panic("entropy: invalid argument to Intn")
	}
	r := c.Reader
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		slog.Warn("crypto/rand read failed, using math/rand", "error", err)
		return mrand.Intn(n)
	}
	return int(v.Int64())
}

// Sequence replays a fixed list of draws, cycling when exhausted. Each value is
// reduced modulo n, so a script written for Intn(3) stays valid for any n.
type Sequence struct {
	Values []int
	pos    int
}

// Intn returns the next scripted value modulo n.
func (s *Sequence) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.pos%len(s.Values)]
	s.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}

// FromSeed picks a seeded source when seed is non-zero and crypto randomness otherwise.
func FromSeed(seed int64) Source {
	if seed == 0 {
		return Crypto{}
	}
	return NewSeeded(seed)
}
