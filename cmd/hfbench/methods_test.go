// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package main

import (
	"testing"

	"leb.io/cuckoohf/hashfn"
	"leb.io/cuckoohf/internal/config"
	"leb.io/cuckoohf/rng"
)

const cube = 32*32*32*32 - 1

func TestLogSizes(t *testing.T) {
	tests := []struct{ n, l1, l2 int }{
		{cube, 10, 5},
		{1000, 5, 3},
		{1, 1, 1},
		{0, 1, 1},
	}
	for _, tt := range tests {
		if got := l1(tt.n); got != tt.l1 {
			t.Errorf("l1(%d)=%d, want %d", tt.n, got, tt.l1)
		}
		if got := l2(tt.n); got != tt.l2 {
			t.Errorf("l2(%d)=%d, want %d", tt.n, got, tt.l2)
		}
	}
}

func TestMethodTable(t *testing.T) {
	if len(methods) != config.MaxMethod+1 {
		t.Fatalf("%d methods, config allows %d", len(methods), config.MaxMethod+1)
	}
	want := map[int]hashfn.Config{
		0:  {Kind: hashfn.KindSimpleTab8},
		2:  {Kind: hashfn.KindMurmur3, Reproducible: true},
		3:  {Kind: hashfn.KindPolK, K: 3},
		4:  {Kind: hashfn.KindPolK, K: 20},
		5:  {Kind: hashfn.KindADW, C: 3, L: 10},
		6:  {Kind: hashfn.KindADW, C: 4, L: 5},
		8:  {Kind: hashfn.KindADW, C: 16, L: 5},
		10: {Kind: hashfn.KindADWUnfixed, K: 12, C: 1, L: 5},
		11: {Kind: hashfn.KindADWUnfixed, K: 16, C: 1, L: 10},
		12: {Kind: hashfn.KindFullyRandom},
		15: {Kind: hashfn.KindMultShift},
	}
	for m, w := range want {
		got, err := methodConfig(m, cube, m == 2)
		if err != nil {
			t.Fatal(err)
		}
		if got.Kind != w.Kind || got.K != w.K || got.C != w.C || got.L != w.L || got.Reproducible != w.Reproducible {
			t.Errorf("method %d: %+v, want %+v", m, got, w)
		}
	}
	for m := range methods {
		cfg, _ := methodConfig(m, 1000, true)
		if _, err := hashfn.New(cfg, rng.New(1)); err != nil {
			t.Errorf("method %d: %v", m, err)
		}
	}
	if _, err := methodConfig(len(methods), 10, false); err == nil {
		t.Error("method out of range accepted")
	}
}

func TestTableSize(t *testing.T) {
	if m := tableSize(cube, 1.005, false); m != 1053817 {
		t.Errorf("m=%d, want 1053817", m)
	}
	if m := tableSize(1000, 1.005, true); m != 1009 {
		t.Errorf("prime m=%d, want 1009", m)
	}
	if m := tableSize(0, 1.005, false); m != 1 {
		t.Errorf("m=%d for no keys, want 1", m)
	}
}
