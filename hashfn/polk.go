// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package hashfn

// Mersenne prime fields used by the polynomial constructions.
const (
	Mersenne61 = 1<<61 - 1
	Mersenne48 = 1<<48 - 1
)

type PolKConfig struct {
	K int // independence degree, number of coefficients
}

// PolK is a k-independent polynomial hash over GF(2^61-1), evaluated with
// the Carter-Wegman multiply trick. One coefficient vector per output.
type PolK struct {
	k  int
	a1 []uint64
	a2 []uint64
}

// NewPolK draws a1[i], a2[i] for i = 0..k-1, each uniform in [0, 2^61-1).
func NewPolK(cfg PolKConfig, r Rand) *PolK {
	if cfg.K < 1 {
		panic("NewPolK: k < 1")
	}
	p := &PolK{k: cfg.K, a1: make([]uint64, cfg.K), a2: make([]uint64, cfg.K)}
	for i := 0; i < cfg.K; i++ {
		p.a1[i] = uint64(r.Int63n(Mersenne61))
		p.a2[i] = uint64(r.Int63n(Mersenne61))
	}
	return p
}

// cwtrick returns a value congruent to a*x + b mod 2^61-1, not fully reduced.
// a*x is split into the low 61 bits and the rest, 2^61 == 1 in the field.
func cwtrick(x uint32, a, b uint64) uint64 {
	a0 := (a & 0xFFFFFFFF) * uint64(x)
	a1 := (a >> 32) * uint64(x)
	c0 := a0 + a1<<32 // bits 0..63 of a*x
	c1 := a0>>32 + a1 // bits 32.. of a*x
	return c0&Mersenne61 + c1>>29 + b
}

// horner folds x through the coefficients, leading coefficient first.
func horner(a []uint64, x uint32) uint32 {
	h := a[0]
	for _, c := range a[1:] {
		h = cwtrick(x, h, c)
	}
	h = h&Mersenne61 + h>>61
	if h >= Mersenne61 {
		h -= Mersenne61
	}
	return uint32(h)
}

func (p *PolK) H1(x uint32) uint32 { return horner(p.a1, x) }
func (p *PolK) H2(x uint32) uint32 { return horner(p.a2, x) }
func (p *PolK) K() int             { return p.k }

func (p *PolK) Description() string { return "k-ind-cw" }

// Pol3 is the degree 3 comparison variant over 2^48-1. Products are
// computed mod 2^64 and wrap before they are reduced, so this is a weaker,
// roughly pairwise, family; it is kept as is for comparison.
type Pol3 struct {
	a1, a2 uint64
	b1, b2 uint64
	c1, c2 uint64
}

// NewPol3 draws a1, a2, b1, b2, c1, c2, each uniform in [0, 2^48-1).
func NewPol3(r Rand) *Pol3 {
	var v [6]uint64
	for i := range v {
		v[i] = uint64(r.Int63n(Mersenne48))
	}
	return &Pol3{a1: v[0], a2: v[1], b1: v[2], b2: v[3], c1: v[4], c2: v[5]}
}

func pol3(x uint32, a, b, c uint64) uint32 {
	X := uint64(x)
	return uint32(((a*X)%Mersenne48*X + b*X + c) % Mersenne48)
}

func (p *Pol3) H1(x uint32) uint32  { return pol3(x, p.a1, p.b1, p.c1) }
func (p *Pol3) H2(x uint32) uint32  { return pol3(x, p.a2, p.b2, p.c2) }
func (p *Pol3) Description() string { return "Pol3" }
