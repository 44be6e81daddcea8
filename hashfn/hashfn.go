// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package hashfn implements the hash function families compared by the cuckoo
// harness, from fully random oracles down to multiply-shift and tabulation.
// Every family hands out two functions, h1 and h2, one per cuckoo table.
//
// All randomness comes from the Rand passed to the constructor; nothing is
// drawn after construction except by FullyRandom, which draws on every call.
// The order of the draws is part of the contract, it is what makes a run
// reproducible from its seed.
package hashfn

import (
	"errors"
	"fmt"
)

// HashFunction is the capability every construction provides.
// H1 and H2 are total over the 32 bit domain.
type HashFunction interface {
	H1(x uint32) uint32
	H2(x uint32) uint32
	Description() string
}

// Rand is the randomness source consumed by the constructors.
// *math/rand.Rand satisfies it.
type Rand interface {
	Uint32() uint32
	Uint64() uint64
	Int63n(n int64) int64
}

// Kind names a construction.
type Kind string

const (
	KindSimpleTab8  Kind = "simp-tab-8"
	KindSimpleTab16 Kind = "simp-tab-16"
	KindMurmur3     Kind = "murmur3"
	KindPolK        Kind = "polk"
	KindPol3        Kind = "pol3"
	KindADW         Kind = "adw"
	KindADWUnfixed  Kind = "adw-unfixed"
	KindFullyRandom Kind = "fully-random"
	KindJenkins3    Kind = "jenkins3"
	KindMultShift   Kind = "multshift"
)

// Kinds lists every construction New knows about.
var Kinds = []Kind{
	KindSimpleTab8, KindSimpleTab16, KindMurmur3, KindPolK, KindPol3,
	KindADW, KindADWUnfixed, KindFullyRandom, KindJenkins3, KindMultShift,
}

// maxTableBits bounds l, the log2 size of an ADW correction table.
const maxTableBits = 28

var (
	ErrUnknownKind = errors.New("hashfn: unknown kind")
	ErrShape       = errors.New("hashfn: invalid shape parameters")
)

// Config selects a construction and its shape. Fields a kind does not use are ignored.
type Config struct {
	Kind         Kind
	K            int  // independence degree: PolK, ADWUnfixed
	C            int  // number of correction tables: ADW, ADWUnfixed
	L            int  // log2 entries per correction table: ADW, ADWUnfixed
	Reproducible bool // Murmur3: draw seeds from Rand instead of the wall clock
}

func (c Config) String() string {
	switch c.Kind {
	case KindPolK:
		return fmt.Sprintf("%s(k=%d)", c.Kind, c.K)
	case KindADW:
		return fmt.Sprintf("%s(c=%d, l=%d)", c.Kind, c.C, c.L)
	case KindADWUnfixed:
		return fmt.Sprintf("%s(k=%d, c=%d, l=%d)", c.Kind, c.K, c.C, c.L)
	}
	return string(c.Kind)
}

// Validate reports shape parameters the typed constructors would panic on.
func (c Config) Validate() error {
	switch c.Kind {
	case KindPolK:
		if c.K < 1 {
			return fmt.Errorf("%w: k=%d, want k >= 1", ErrShape, c.K)
		}
	case KindADW, KindADWUnfixed:
		if c.Kind == KindADWUnfixed && c.K < 1 {
			return fmt.Errorf("%w: k=%d, want k >= 1", ErrShape, c.K)
		}
		if c.C < 1 {
			return fmt.Errorf("%w: c=%d, want c >= 1", ErrShape, c.C)
		}
		if c.L < 1 || c.L > maxTableBits {
			return fmt.Errorf("%w: l=%d, want 1 <= l <= %d", ErrShape, c.L, maxTableBits)
		}
	case KindSimpleTab8, KindSimpleTab16, KindMurmur3, KindPol3, KindFullyRandom, KindJenkins3, KindMultShift:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	return nil
}

// New constructs the hash function described by cfg, drawing from r.
func New(cfg Config, r Rand) (HashFunction, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case KindSimpleTab8:
		return NewSimpleTab8(r), nil
	case KindSimpleTab16:
		return NewSimpleTab16(r), nil
	case KindMurmur3:
		return NewMurmur3(Murmur3Config{Reproducible: cfg.Reproducible}, r), nil
	case KindPolK:
		return NewPolK(PolKConfig{K: cfg.K}, r), nil
	case KindPol3:
		return NewPol3(r), nil
	case KindADW:
		return NewADW(ADWConfig{C: cfg.C, L: cfg.L}, r), nil
	case KindADWUnfixed:
		return NewADWUnfixed(ADWUnfixedConfig{K: cfg.K, C: cfg.C, L: cfg.L}, r), nil
	case KindFullyRandom:
		return NewFullyRandom(r), nil
	case KindJenkins3:
		return NewJenkins3(r), nil
	case KindMultShift:
		return NewMultShift(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, cfg.Kind)
}
