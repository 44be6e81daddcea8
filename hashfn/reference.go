// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package hashfn

import (
	"time"

	"leb.io/cuckoohf/jenkins3"
	"leb.io/cuckoohf/murmur3"
	"leb.io/cuckoohf/rng"
)

type Murmur3Config struct {
	// Reproducible takes both seeds from the caller's Rand.
	// The default seeds a private generator from the wall clock and leaves
	// the caller's Rand untouched, so Murmur3 runs do not repeat.
	Reproducible bool
}

// Murmur3 is MurmurHash3_x86_32 of the 4 byte key with one seed per output.
type Murmur3 struct {
	seed1, seed2 uint32
}

func NewMurmur3(cfg Murmur3Config, r Rand) *Murmur3 {
	src := r
	if !cfg.Reproducible {
		src = rng.New(time.Now().Unix())
	}
	m := &Murmur3{}
	m.seed1 = src.Uint32()
	m.seed2 = src.Uint32()
	return m
}

func (m *Murmur3) H1(x uint32) uint32  { return murmur3.Sum32Uint32(x, m.seed1) }
func (m *Murmur3) H2(x uint32) uint32  { return murmur3.Sum32Uint32(x, m.seed2) }
func (m *Murmur3) Description() string { return "Murmur3" }

// Jenkins3 is lookup3 hashword of the key with one seed per output.
type Jenkins3 struct {
	seed1, seed2 uint32
}

func NewJenkins3(r Rand) *Jenkins3 {
	j := &Jenkins3{}
	j.seed1 = r.Uint32()
	j.seed2 = r.Uint32()
	return j
}

func (j *Jenkins3) H1(x uint32) uint32  { return jenkins3.Hash32(x, j.seed1) }
func (j *Jenkins3) H2(x uint32) uint32  { return jenkins3.Hash32(x, j.seed2) }
func (j *Jenkins3) Description() string { return "Jenkins3" }

// FullyRandom ignores the key and returns a fresh draw on every call.
// It is NOT a mapping: the same key gives different slots each time, so
// lookup and delete on a table built with it are meaningless. It only
// measures the insertion cost of an idealized hash.
type FullyRandom struct {
	r Rand
}

func NewFullyRandom(r Rand) *FullyRandom {
	return &FullyRandom{r: r}
}

func (f *FullyRandom) H1(uint32) uint32    { return f.r.Uint32() }
func (f *FullyRandom) H2(uint32) uint32    { return f.r.Uint32() }
func (f *FullyRandom) Description() string { return "fully-random" }
