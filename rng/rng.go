// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package rng provides the single random number source an experiment run
// threads through key shuffling and hash function construction.
// Every value handed out comes from one MT19937-64 stream, so a run is
// reproducible from its seed as long as the construction order is kept.
package rng

import (
	"math/rand"

	"github.com/seehuhn/mt19937"
)

// New returns a generator seeded with seed. The returned *rand.Rand has no lock.
func New(seed int64) *rand.Rand {
	r := rand.New(mt19937.New())
	r.Seed(seed)
	return r
}
