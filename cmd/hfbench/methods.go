// Copyright © 2014-2017 Lawrence E. Bakst. All rights reserved.

package main

import (
	"fmt"
	"math"

	"leb.io/cuckoohf/hashfn"
	"leb.io/cuckoohf/internal/primes"
)

type method struct {
	desc string
	cfg  func(n int) hashfn.Config
}

// methods is indexed by method number. 0 through 12 keep their historical numbers.
var methods = []method{
	{"simple tabulation 8-bit char", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindSimpleTab8} }},
	{"simple tabulation 16-bit char", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindSimpleTab16} }},
	{"Murmur3", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindMurmur3} }},
	{"degree 3 polynomial", polk(3)},
	{"degree 20 polynomial", polk(20)},
	{"Z, 3 tables with sqrt(n) entries", adw(3, l1)},
	{"Z, 4 tables with n^{1/4} entries", adw(4, l2)},
	{"Z, 8 tables with sqrt(n) entries", adw(8, l1)},
	{"Z, 16 tables with n^{1/4} entries", adw(16, l2)},
	{"Z, 1 table, 6-wise independence, with sqrt(n) entries", adwUnfixed(6, l1)},
	{"Z, 1 table, 12-wise independence, with n^{1/4} entries", adwUnfixed(12, l2)},
	{"Z, 1 table, 16-wise independence, with sqrt(n) entries", adwUnfixed(16, l1)},
	{"fully random, lookups are meaningless", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindFullyRandom} }},
	{"Pol3, degree 3 over 2^48-1", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindPol3} }},
	{"Jenkins lookup3", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindJenkins3} }},
	{"2-independent multiply-add-shift", func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindMultShift} }},
}

func polk(k int) func(int) hashfn.Config {
	return func(int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindPolK, K: k} }
}

func adw(c int, l func(int) int) func(int) hashfn.Config {
	return func(n int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindADW, C: c, L: l(n)} }
}

func adwUnfixed(k int, l func(int) int) func(int) hashfn.Config {
	return func(n int) hashfn.Config { return hashfn.Config{Kind: hashfn.KindADWUnfixed, K: k, C: 1, L: l(n)} }
}

// l1 is ceil(log2(sqrt(n))), at least 1.
func l1(n int) int {
	return atLeast1(math.Ceil(math.Log2(math.Sqrt(float64(n)))))
}

// l2 is ceil(log2(n^(1/4))), at least 1.
func l2(n int) int {
	return atLeast1(math.Ceil(math.Log2(math.Pow(float64(n), 0.25))))
}

func atLeast1(f float64) int {
	if f < 1 || math.IsNaN(f) {
		return 1
	}
	return int(f)
}

// methodConfig returns the hash function configuration for method number m and n keys.
func methodConfig(m, n int, reproducible bool) (hashfn.Config, error) {
	if m < 0 || m >= len(methods) {
		return hashfn.Config{}, fmt.Errorf("method %d not supported", m)
	}
	cfg := methods[m].cfg(n)
	cfg.Reproducible = reproducible
	return cfg, nil
}

// tableSize returns m = load * n, truncated, at least 1, optionally rounded up to a prime.
func tableSize(n int, load float64, prime bool) int {
	m := int(load * float64(n))
	if m < 1 {
		m = 1
	}
	if prime {
		m = int(primes.NextPrime(uint64(m)))
	}
	return m
}
