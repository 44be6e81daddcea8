// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package hashfn

import "fmt"

type ADWConfig struct {
	C int // number of correction tables
	L int // log2 entries per correction table
}

// ADW combines a 2-independent base with c correction tables:
//
//	h(x) = base(x) + sum z[i][g_i(x)]  (mod 2^32)
//
// where g_i is multiply-shift with an odd multiplier. h1 reads tables
// 0..c-1 of z and h2 reads tables c..2c-1, both at the same g_i(x).
type ADW struct {
	c, l     int
	size     int
	g        []uint32
	z        []uint32
	f1a, f1b uint64
	f2a, f2b uint64
}

// NewADW draws c odd multipliers (rejecting even draws), then the 2*c*2^l
// table entries, then the base parameters f1a, f1b, f2a, f2b.
func NewADW(cfg ADWConfig, r Rand) *ADW {
	if cfg.C < 1 || cfg.L < 1 || cfg.L > maxTableBits {
		panic(fmt.Sprintf("NewADW: c=%d, l=%d", cfg.C, cfg.L))
	}
	a := &ADW{c: cfg.C, l: cfg.L, size: 1 << cfg.L}
	a.g = make([]uint32, a.c)
	for i := range a.g {
		for a.g[i]&1 == 0 {
			a.g[i] = r.Uint32()
		}
	}
	a.z = fill(make([]uint32, 2*a.c*a.size), r)
	a.f1a, a.f1b = r.Uint64(), r.Uint64()
	a.f2a, a.f2b = r.Uint64(), r.Uint64()
	return a
}

func (a *ADW) H1(x uint32) uint32 {
	res := MultAddShift(x, 32, a.f1a, a.f1b)
	for i, g := range a.g {
		res += a.z[i*a.size+int(MultShift32(x, uint32(a.l), g))]
	}
	return res
}

func (a *ADW) H2(x uint32) uint32 {
	res := MultAddShift(x, 32, a.f2a, a.f2b)
	for i, g := range a.g {
		res += a.z[(a.c+i)*a.size+int(MultShift32(x, uint32(a.l), g))]
	}
	return res
}

func (a *ADW) Description() string {
	return fmt.Sprintf("ADW-%d-%d", a.c, a.l)
}

type ADWUnfixedConfig struct {
	K int // independence of base and corrections
	C int
	L int
}

// ADWUnfixed is ADW with the base and every g_i replaced by a PolK(k).
// Corrections are indexed by the top l bits of g_i.H1 for both outputs.
type ADWUnfixed struct {
	k, c, l int
	size    int
	f       *PolK
	g       []*PolK
	z       []uint32
}

// NewADWUnfixed constructs the base PolK, then c correction PolKs, then
// draws the 2*c*2^l table entries.
func NewADWUnfixed(cfg ADWUnfixedConfig, r Rand) *ADWUnfixed {
	if cfg.K < 1 || cfg.C < 1 || cfg.L < 1 || cfg.L > maxTableBits {
		panic(fmt.Sprintf("NewADWUnfixed: k=%d, c=%d, l=%d", cfg.K, cfg.C, cfg.L))
	}
	a := &ADWUnfixed{k: cfg.K, c: cfg.C, l: cfg.L, size: 1 << cfg.L}
	a.f = NewPolK(PolKConfig{K: a.k}, r)
	a.g = make([]*PolK, a.c)
	for i := range a.g {
		a.g[i] = NewPolK(PolKConfig{K: a.k}, r)
	}
	a.z = fill(make([]uint32, 2*a.c*a.size), r)
	return a
}

func (a *ADWUnfixed) H1(x uint32) uint32 {
	res := a.f.H1(x)
	for i, g := range a.g {
		res += a.z[i*a.size+int(g.H1(x)>>(32-a.l))]
	}
	return res
}

func (a *ADWUnfixed) H2(x uint32) uint32 {
	res := a.f.H2(x)
	for i, g := range a.g {
		res += a.z[(a.c+i)*a.size+int(g.H1(x)>>(32-a.l))]
	}
	return res
}

func (a *ADWUnfixed) Description() string {
	return fmt.Sprintf("ADW-unfixed-%d-%d-%d", a.k, a.c, a.l)
}
