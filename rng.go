package main

import (
	"fmt"

	"github.com/dgryski/go-wyhash"
	"pgregory.net/rand"
)

// Rng wraps a seeded random source. Seeding from a string means a run can
// be reproduced by pinning --seed; each category derives its own Rng so
// the sources are exclusively owned and need no locking.
type Rng struct {
	rng *rand.Rand
}

func NewRng(s string) Rng {
	return Rng{rand.New(wyhash.Hash([]byte(s), 2467825690))}
}

func (r Rng) Intn(n int) int {
	return r.rng.Intn(n)
}

// Range returns an int in [min, max).
func (r Rng) Range(min, max int) int {
	return min + r.rng.Intn(max-min)
}

func (r Rng) Choice(a []string) string {
	return a[r.rng.Intn(len(a))]
}

func (r Rng) IPv4() string {
	return fmt.Sprintf("%d.%d.%d.%d", r.Range(1, 255), r.Intn(256), r.Intn(256), r.Range(1, 255))
}
