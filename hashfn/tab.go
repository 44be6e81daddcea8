// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package hashfn

// SimpleTab8 is simple tabulation on four 8 bit characters.
// Each output owns one flat table, character position i lives at [i*256, i*256+256).
type SimpleTab8 struct {
	z1 []uint32
	z2 []uint32
}

// NewSimpleTab8 fills z1 then z2 with 1024 uniform 32 bit values each.
func NewSimpleTab8(r Rand) *SimpleTab8 {
	return &SimpleTab8{z1: fill(make([]uint32, 4<<8), r), z2: fill(make([]uint32, 4<<8), r)}
}

func tab8(z []uint32, x uint32) uint32 {
	return z[x&0xFF] ^ z[256+(x>>8&0xFF)] ^ z[512+(x>>16&0xFF)] ^ z[768+(x>>24)]
}

func (t *SimpleTab8) H1(x uint32) uint32  { return tab8(t.z1, x) }
func (t *SimpleTab8) H2(x uint32) uint32  { return tab8(t.z2, x) }
func (t *SimpleTab8) Description() string { return "simp-tab-8" }

// SimpleTab16 is simple tabulation on two 16 bit characters.
type SimpleTab16 struct {
	z1 []uint32
	z2 []uint32
}

// NewSimpleTab16 fills z1 then z2 with 131072 uniform 32 bit values each.
func NewSimpleTab16(r Rand) *SimpleTab16 {
	return &SimpleTab16{z1: fill(make([]uint32, 2<<16), r), z2: fill(make([]uint32, 2<<16), r)}
}

func tab16(z []uint32, x uint32) uint32 {
	return z[x&0xFFFF] ^ z[1<<16+x>>16]
}

func (t *SimpleTab16) H1(x uint32) uint32  { return tab16(t.z1, x) }
func (t *SimpleTab16) H2(x uint32) uint32  { return tab16(t.z2, x) }
func (t *SimpleTab16) Description() string { return "simp-tab-16" }

func fill(z []uint32, r Rand) []uint32 {
	for i := range z {
		z[i] = r.Uint32()
	}
	return z
}
