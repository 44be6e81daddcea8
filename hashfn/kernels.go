// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package hashfn

// MultShift32 returns the top l bits of the 32 bit product a*x (mod 2^32).
// Universal, not independent.
func MultShift32(x, l, a uint32) uint32 {
	return (a * x) >> (32 - l)
}

// MultShift64 returns the top l bits of the 64 bit product a*x (mod 2^64).
func MultShift64(x uint32, l uint, a uint64) uint64 {
	return (a * uint64(x)) >> (64 - l)
}

// MultAddShift returns the top l bits of a*x + b computed mod 2^64.
// With a and b uniform 64 bit values this is 2-independent.
func MultAddShift(x uint32, l uint, a, b uint64) uint32 {
	return uint32((a*uint64(x) + b) >> (64 - l))
}

// MultShift is a pair of 2-independent multiply-add-shift functions.
type MultShift struct {
	a1, b1 uint64
	a2, b2 uint64
}

// NewMultShift draws a1, b1, a2, b2 in that order.
func NewMultShift(r Rand) *MultShift {
	m := &MultShift{}
	m.a1, m.b1 = r.Uint64(), r.Uint64()
	m.a2, m.b2 = r.Uint64(), r.Uint64()
	return m
}

func (m *MultShift) H1(x uint32) uint32  { return MultAddShift(x, 32, m.a1, m.b1) }
func (m *MultShift) H2(x uint32) uint32  { return MultAddShift(x, 32, m.a2, m.b2) }
func (m *MultShift) Description() string { return "multshift-2wise" }
