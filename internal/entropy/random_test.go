package entropy

import (
	"errors"
	"testing"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestSeededReplays(t *testing.T) {
	a := NewSeeded(99)
	b := NewSeeded(99)
	for i := 0; i < 100; i++ {
		x, y := a.Intn(3), b.Intn(3)
		if x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
		if x < 0 || x >= 3 {
			t.Fatalf("draw %d out of range: %d", i, x)
		}
	}
}

func TestCryptoRange(t *testing.T) {
	var c Crypto
	for i := 0; i < 200; i++ {
		if v := c.Intn(5); v < 0 || v >= 5 {
			t.Fatalf("Intn(5) = %d", v)
		}
	}
}

func TestCryptoReaderFailureFallsBack(t *testing.T) {
	c := Crypto{Reader: failingReader{}}
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		v := c.Intn(3)
		if v < 0 || v >= 3 {
			t.Fatalf("Intn(3) = %d", v)
		}
		seen[v] = true
	}
	if len(seen) < 2 {
		t.Errorf("fallback draws stuck on %v", seen)
	}
}

func TestCryptoCoversRange(t *testing.T) {
	var c Crypto
	counts := make([]int, 3)
	for i := 0; i < 3000; i++ {
		counts[c.Intn(3)]++
	}
	for v, n := range counts {
		if n < 700 {
			t.Errorf("value %d drawn %d/3000 times", v, n)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	s := &Sequence{Values: []int{0, 2, 4}}
	want := []int{0, 2, 1, 0, 2, 1}
	for i, w := range want {
		if got := s.Intn(3); got != w {
			t.Errorf("draw %d = %d, want %d", i, got, w)
		}
	}

	empty := &Sequence{}
	if got := empty.Intn(3); got != 0 {
		t.Errorf("empty sequence = %d, want 0", got)
	}
}

func TestFromSeed(t *testing.T) {
	if _, ok := FromSeed(0).(Crypto); !ok {
		t.Error("FromSeed(0) should fall back to crypto randomness")
	}
	if _, ok := FromSeed(1).(Crypto); ok {
		t.Error("FromSeed(1) should be seeded")
	}
}
