// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.
package hashfn

import (
	"math/big"
	"testing"

	"leb.io/cuckoohf/rng"
)

// hornerBig evaluates the polynomial exactly over GF(2^61-1).
func hornerBig(a []uint64, x uint32) uint32 {
	p := new(big.Int).SetUint64(Mersenne61)
	X := new(big.Int).SetUint64(uint64(x))
	h := new(big.Int).SetUint64(a[0])
	for _, c := range a[1:] {
		h.Mul(h, X)
		h.Add(h, new(big.Int).SetUint64(c))
		h.Mod(h, p)
	}
	h.Mod(h, p)
	return uint32(h.Uint64())
}

func TestPolKExactField(t *testing.T) {
	keys := []uint32{0, 1, 2, 3, 1000, 0x7fffffff, 0x80000000, 0xfffffffe, 0xffffffff}
	for _, k := range []int{1, 2, 3, 5, 20} {
		p := NewPolK(PolKConfig{K: k}, rng.New(int64(k)))
		for _, x := range keys {
			if got, want := p.H1(x), hornerBig(p.a1, x); got != want {
				t.Errorf("k=%d H1(%#x)=%#x, want %#x", k, x, got, want)
			}
			if got, want := p.H2(x), hornerBig(p.a2, x); got != want {
				t.Errorf("k=%d H2(%#x)=%#x, want %#x", k, x, got, want)
			}
		}
	}
}

func TestPolKWorstCaseCoefficients(t *testing.T) {
	// every coefficient at p-1 drives the lazy reduction hardest
	a := make([]uint64, 20)
	for i := range a {
		a[i] = Mersenne61 - 1
	}
	for _, x := range []uint32{1, 2, 0xffffffff, 0xfffffffe} {
		if got, want := horner(a, x), hornerBig(a, x); got != want {
			t.Errorf("horner(p-1..., %#x)=%#x, want %#x", x, got, want)
		}
	}
}

func TestPolKCoefficientRange(t *testing.T) {
	p := NewPolK(PolKConfig{K: 64}, rng.New(3))
	for i := range p.a1 {
		if p.a1[i] >= Mersenne61 || p.a2[i] >= Mersenne61 {
			t.Fatalf("coefficient %d outside the field: %#x %#x", i, p.a1[i], p.a2[i])
		}
	}
	if p.K() != 64 {
		t.Errorf("K()=%d", p.K())
	}
}

func TestPolKDrawOrder(t *testing.T) {
	p := NewPolK(PolKConfig{K: 3}, &seqRand{})
	want1 := []uint64{0, 2, 4}
	want2 := []uint64{1, 3, 5}
	for i := range want1 {
		if p.a1[i] != want1[i] || p.a2[i] != want2[i] {
			t.Fatalf("a1=%v a2=%v, want interleaved draws %v %v", p.a1, p.a2, want1, want2)
		}
	}
}

// chi2 of the top 8 bits of h over keys 1..n.
func chi2(h func(uint32) uint32, n int) float64 {
	var bins [256]int
	for x := 1; x <= n; x++ {
		bins[h(uint32(x))>>24]++
	}
	e := float64(n) / 256
	s := 0.0
	for _, o := range bins {
		d := float64(o) - e
		s += d * d / e
	}
	return s
}

func TestPolKUniform(t *testing.T) {
	const n = 1 << 16
	p := NewPolK(PolKConfig{K: 5}, rng.New(11))
	// 255 degrees of freedom, mean 255, sd about 22.6
	if s := chi2(p.H1, n); s > 400 {
		t.Errorf("H1 chi2=%0.1f over 256 bins", s)
	}
	if s := chi2(p.H2, n); s > 400 {
		t.Errorf("H2 chi2=%0.1f over 256 bins", s)
	}
}

func TestPolKPairwise(t *testing.T) {
	const n = 1 << 16
	p := NewPolK(PolKConfig{K: 4}, rng.New(12))
	// bit agreement between neighbouring keys and between h1 and h2,
	// expected n/2 with sd sqrt(n)/2 = 128
	for _, bit := range []uint{0, 7, 16, 31} {
		adj, cross := 0, 0
		for x := uint32(1); x <= n; x++ {
			if (p.H1(x)>>bit)&1 == (p.H1(x+1)>>bit)&1 {
				adj++
			}
			if (p.H1(x)>>bit)&1 == (p.H2(x)>>bit)&1 {
				cross++
			}
		}
		if d := adj - n/2; d > 768 || d < -768 {
			t.Errorf("bit %d: neighbours agree %d times of %d", bit, adj, n)
		}
		if d := cross - n/2; d > 768 || d < -768 {
			t.Errorf("bit %d: h1 and h2 agree %d times of %d", bit, cross, n)
		}
	}
}

func TestPol3Formula(t *testing.T) {
	p := NewPol3(rng.New(8))
	for _, v := range []uint64{p.a1, p.a2, p.b1, p.b2, p.c1, p.c2} {
		if v >= Mersenne48 {
			t.Fatalf("coefficient %#x outside [0, 2^48-1)", v)
		}
	}
	for _, x := range []uint32{1, 2, 1 << 20, 0xffffffff} {
		X := uint64(x)
		want := uint32(((p.a1*X)%Mersenne48*X + p.b1*X + p.c1) % Mersenne48)
		if got := p.H1(x); got != want {
			t.Errorf("H1(%#x)=%#x, want %#x", x, got, want)
		}
	}
}

func TestPol3DrawOrder(t *testing.T) {
	p := NewPol3(&seqRand{})
	got := []uint64{p.a1, p.a2, p.b1, p.b2, p.c1, p.c2}
	for i, v := range got {
		if v != uint64(i) {
			t.Fatalf("draw order %v, want a1 a2 b1 b2 c1 c2", got)
		}
	}
}
