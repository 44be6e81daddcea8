// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.
package hashfn

import (
	"errors"
	"testing"

	"leb.io/cuckoohf/rng"
)

// seqRand hands out 0, 1, 2, ... so draw order is visible in the result.
type seqRand struct {
	next uint64
}

func (s *seqRand) Uint32() uint32 { v := s.next; s.next++; return uint32(v) }
func (s *seqRand) Uint64() uint64 { v := s.next; s.next++; return v }
func (s *seqRand) Int63n(n int64) int64 {
	v := s.next
	s.next++
	return int64(v % uint64(n))
}

var testConfigs = []Config{
	{Kind: KindSimpleTab8},
	{Kind: KindSimpleTab16},
	{Kind: KindMurmur3, Reproducible: true},
	{Kind: KindPolK, K: 3},
	{Kind: KindPolK, K: 20},
	{Kind: KindPol3},
	{Kind: KindADW, C: 3, L: 8},
	{Kind: KindADW, C: 16, L: 4},
	{Kind: KindADWUnfixed, K: 6, C: 1, L: 8},
	{Kind: KindJenkins3},
	{Kind: KindMultShift},
}

func TestDeterminism(t *testing.T) {
	for _, cfg := range testConfigs {
		a, err := New(cfg, rng.New(1234))
		if err != nil {
			t.Fatalf("%v: %v", cfg, err)
		}
		b, _ := New(cfg, rng.New(1234))
		for x := uint32(1); x < 5000; x += 7 {
			if a.H1(x) != b.H1(x) || a.H2(x) != b.H2(x) {
				t.Errorf("%v: key %d differs between runs with the same seed", cfg, x)
				break
			}
		}
	}
}

func TestSeedChangesOutput(t *testing.T) {
	for _, cfg := range testConfigs {
		a, _ := New(cfg, rng.New(1))
		b, _ := New(cfg, rng.New(2))
		same := 0
		for x := uint32(1); x <= 100; x++ {
			if a.H1(x) == b.H1(x) {
				same++
			}
		}
		if same > 10 {
			t.Errorf("%v: %d of 100 keys hash the same under different seeds", cfg, same)
		}
	}
}

func TestH1H2Differ(t *testing.T) {
	for _, cfg := range testConfigs {
		h, _ := New(cfg, rng.New(77))
		same := 0
		for x := uint32(1); x <= 100; x++ {
			if h.H1(x) == h.H2(x) {
				same++
			}
		}
		if same > 10 {
			t.Errorf("%v: h1 and h2 agree on %d of 100 keys", cfg, same)
		}
	}
}

func TestDescriptions(t *testing.T) {
	tests := []struct {
		cfg  Config
		want string
	}{
		{Config{Kind: KindSimpleTab8}, "simp-tab-8"},
		{Config{Kind: KindSimpleTab16}, "simp-tab-16"},
		{Config{Kind: KindMurmur3}, "Murmur3"},
		{Config{Kind: KindPolK, K: 20}, "k-ind-cw"},
		{Config{Kind: KindPol3}, "Pol3"},
		{Config{Kind: KindADW, C: 3, L: 10}, "ADW-3-10"},
		{Config{Kind: KindADWUnfixed, K: 12, C: 1, L: 4}, "ADW-unfixed-12-1-4"},
		{Config{Kind: KindFullyRandom}, "fully-random"},
		{Config{Kind: KindJenkins3}, "Jenkins3"},
		{Config{Kind: KindMultShift}, "multshift-2wise"},
	}
	for _, tt := range tests {
		h, err := New(tt.cfg, rng.New(0))
		if err != nil {
			t.Fatalf("%v: %v", tt.cfg, err)
		}
		if got := h.Description(); got != tt.want {
			t.Errorf("%v: Description()=%q, want %q", tt.cfg, got, tt.want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		cfg  Config
		want error
	}{
		{Config{Kind: "sha1"}, ErrUnknownKind},
		{Config{}, ErrUnknownKind},
		{Config{Kind: KindPolK}, ErrShape},
		{Config{Kind: KindADW, C: 0, L: 4}, ErrShape},
		{Config{Kind: KindADW, C: 2, L: 0}, ErrShape},
		{Config{Kind: KindADW, C: 2, L: 29}, ErrShape},
		{Config{Kind: KindADWUnfixed, K: 2, C: 1, L: 29}, ErrShape},
		{Config{Kind: KindADWUnfixed, K: 0, C: 1, L: 4}, ErrShape},
	}
	for _, tt := range tests {
		if _, err := New(tt.cfg, rng.New(0)); !errors.Is(err, tt.want) {
			t.Errorf("New(%v): err=%v, want %v", tt.cfg, err, tt.want)
		}
	}
}

func TestConstructorsPanicOnMisuse(t *testing.T) {
	tests := map[string]func(){
		"PolK k=0":        func() { NewPolK(PolKConfig{K: 0}, rng.New(0)) },
		"ADW c=0":         func() { NewADW(ADWConfig{C: 0, L: 4}, rng.New(0)) },
		"ADWUnfixed l=0":  func() { NewADWUnfixed(ADWUnfixedConfig{K: 2, C: 1, L: 0}, rng.New(0)) },
		"ADW l=29":        func() { NewADW(ADWConfig{C: 1, L: 29}, rng.New(0)) },
		"ADWUnfixed l=29": func() { NewADWUnfixed(ADWUnfixedConfig{K: 2, C: 1, L: 29}, rng.New(0)) },
	}
	for name, f := range tests {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: no panic", name)
				}
			}()
			f()
		}()
	}
}

func TestMurmur3SeedSource(t *testing.T) {
	// the default leaves the caller's stream untouched
	r1, r2 := rng.New(5), rng.New(5)
	NewMurmur3(Murmur3Config{}, r1)
	if r1.Uint64() != r2.Uint64() {
		t.Errorf("clock seeded Murmur3 consumed the caller's randomness")
	}

	r := &seqRand{next: 10}
	m := NewMurmur3(Murmur3Config{Reproducible: true}, r)
	if m.seed1 != 10 || m.seed2 != 11 {
		t.Errorf("reproducible seeds %d, %d, want 10, 11", m.seed1, m.seed2)
	}
}

func TestFullyRandomIgnoresKey(t *testing.T) {
	r := &seqRand{}
	f := NewFullyRandom(r)
	if a, b := f.H1(42), f.H1(42); a == b {
		t.Errorf("two calls for the same key returned %d", a)
	}
	if got := f.H2(1); got != 2 {
		t.Errorf("H2 returned %d, want the next draw 2", got)
	}
}

func TestJenkins3DrawOrder(t *testing.T) {
	j := NewJenkins3(&seqRand{next: 3})
	if j.seed1 != 3 || j.seed2 != 4 {
		t.Errorf("seeds %d, %d, want 3, 4", j.seed1, j.seed2)
	}
}

func benchmarkH1(b *testing.B, cfg Config) {
	h, err := New(cfg, rng.New(1))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	var s uint32
	for i := 0; i < b.N; i++ {
		s += h.H1(uint32(i))
	}
	_ = s
}

func BenchmarkSimpleTab8(b *testing.B)  { benchmarkH1(b, Config{Kind: KindSimpleTab8}) }
func BenchmarkSimpleTab16(b *testing.B) { benchmarkH1(b, Config{Kind: KindSimpleTab16}) }
func BenchmarkMurmur3(b *testing.B)     { benchmarkH1(b, Config{Kind: KindMurmur3}) }
func BenchmarkPolK3(b *testing.B)       { benchmarkH1(b, Config{Kind: KindPolK, K: 3}) }
func BenchmarkPolK20(b *testing.B)      { benchmarkH1(b, Config{Kind: KindPolK, K: 20}) }
func BenchmarkPol3(b *testing.B)        { benchmarkH1(b, Config{Kind: KindPol3}) }
func BenchmarkADW3(b *testing.B)        { benchmarkH1(b, Config{Kind: KindADW, C: 3, L: 10}) }
func BenchmarkADW16(b *testing.B)       { benchmarkH1(b, Config{Kind: KindADW, C: 16, L: 5}) }
func BenchmarkADWUnfixed(b *testing.B) {
	benchmarkH1(b, Config{Kind: KindADWUnfixed, K: 16, C: 1, L: 10})
}
func BenchmarkJenkins3(b *testing.B)  { benchmarkH1(b, Config{Kind: KindJenkins3}) }
func BenchmarkMultShift(b *testing.B) { benchmarkH1(b, Config{Kind: KindMultShift}) }
