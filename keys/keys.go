// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

// Package keys builds the key sets the cuckoo experiments insert.
// No key set contains 0, the empty slot marker.
package keys

import (
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/binary"
)

var (
	ErrZeroKey  = errors.New("keys: key set contains 0")
	ErrBadMagic = errors.New("keys: not a key set file")
)

const magic = 0x6b657973 // "keys"

// Rand is what Shuffle draws from.
type Rand interface {
	Int63n(n int64) int64
}

// Hypercube returns i1<<24 | i2<<16 | i3<<8 | i4 for every i1..i4 in [0, l)
// in lexicographic order, leaving out 0. That is l^4 - 1 keys.
func Hypercube(l int) []uint32 {
	if l < 1 || l > 256 {
		panic(fmt.Sprintf("Hypercube: l=%d", l))
	}
	ks := make([]uint32, 0, l*l*l*l-1)
	for i1 := 0; i1 < l; i1++ {
		for i2 := 0; i2 < l; i2++ {
			for i3 := 0; i3 < l; i3++ {
				for i4 := 0; i4 < l; i4++ {
					k := uint32(i1<<24 | i2<<16 | i3<<8 | i4)
					if k == 0 {
						continue
					}
					ks = append(ks, k)
				}
			}
		}
	}
	return ks
}

// Sequential returns 1..n.
func Sequential(n int) []uint32 {
	ks := make([]uint32, n)
	for i := range ks {
		ks[i] = uint32(i + 1)
	}
	return ks
}

// Shuffle permutes ks in place, for i = 1..n-1 swapping ks[i] with ks[r.Int63n(i+1)].
func Shuffle(ks []uint32, r Rand) {
	for i := 1; i < len(ks); i++ {
		j := r.Int63n(int64(i + 1))
		ks[i], ks[j] = ks[j], ks[i]
	}
}

type file struct {
	Magic uint32
	Keys  []uint32
}

// Save writes ks to w as a key set file.
func Save(w io.Writer, ks []uint32) error {
	if err := binary.NewEncoder(w).Encode(&file{Magic: magic, Keys: ks}); err != nil {
		return fmt.Errorf("keys: save: %w", err)
	}
	return nil
}

// Load reads a key set written by Save. A set containing 0 is rejected with ErrZeroKey.
func Load(r io.Reader) ([]uint32, error) {
	var f file
	if err := binary.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("keys: load: %w", err)
	}
	if f.Magic != magic {
		return nil, ErrBadMagic
	}
	for i, k := range f.Keys {
		if k == 0 {
			return nil, fmt.Errorf("%w: index %d", ErrZeroKey, i)
		}
	}
	return f.Keys, nil
}
