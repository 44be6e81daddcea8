// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

// small step towards creating a package that can test data structures
package dstest

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/willf/bitset"

	. "leb.io/cuckoohf"
	"leb.io/cuckoohf/hashfn"
)

// basic data structures methods and a method to get stats
type DSTest interface {
	Insert(key Key) (ok bool)
	Lookup(key Key) bool
	Delete(key Key) (ok bool)
	StashSize() int
	GetCounter(stat string) int
	GetTableCounter(t int, stat string) int
}

var progress atomic.Int64

// Progress returns the number of keys handled by the running Fill, Verify or Delete.
// It is safe to call from a signal handler goroutine.
func Progress() int {
	return int(progress.Load())
}

// return information about what happened during a fill
type FillStats struct {
	Inserted   int     // keys placed in a table
	Stashed    int     // inserts that ended with a stashed key
	StashSize  int     // stash size after the fill
	MaxPathLen int     // longest chain of placements
	Bumps      int     // evictions
	Load       float64 // elements / size
}

func Fill(d DSTest, keys []uint32, verbose, prog bool) *FillStats {
	var fs FillStats
	progress.Store(0)
	onep := len(keys) / 100
	thresh := onep
	if prog {
		fmt.Printf("F: ")
	}
	for i, k := range keys {
		if d.Insert(Key(k)) {
			fs.Inserted++
		} else {
			fs.Stashed++
			if verbose {
				fmt.Printf("    fill: stash @ %d/%d, key=%#x, stash=%d, MaxPathLen=%d\n", i, len(keys), k, d.StashSize(), d.GetCounter("MaxPathLen"))
			}
		}
		progress.Add(1)
		if prog && i >= thresh && onep > 0 {
			if pcnt := i / onep; pcnt%10 == 0 {
				fmt.Printf("%d", pcnt/10)
			} else {
				fmt.Printf("%%")
			}
			thresh += onep
		}
	}
	if prog {
		fmt.Printf("\n")
	}
	fs.StashSize = d.StashSize()
	fs.MaxPathLen = d.GetCounter("MaxPathLen")
	fs.Bumps = d.GetCounter("bumps")
	fs.Load = float64(d.GetCounter("elements")) / float64(d.GetCounter("size"))
	if verbose {
		fmt.Printf("    fill: n=%d, stashed=%d, MaxPathLen=%d, bumps=%d, load=%0.4f, bpi=%0.2f\n",
			len(keys), fs.Stashed, fs.MaxPathLen, fs.Bumps, fs.Load, float64(fs.Bumps)/float64(len(keys)))
		for i := 0; i < 2; i++ {
			fmt.Printf("    fill: table[%d]: %d/%d=%0.4f\n", i, d.GetTableCounter(i, "elements"), d.GetTableCounter(i, "size"),
				float64(d.GetTableCounter(i, "elements"))/float64(d.GetTableCounter(i, "size")))
		}
	}
	return &fs
}

// Verify looks up every key and returns the first one that is missing.
func Verify(d DSTest, keys []uint32) (missing uint32, ok bool) {
	progress.Store(0)
	for _, k := range keys {
		if !d.Lookup(Key(k)) {
			return k, false
		}
		progress.Add(1)
	}
	return 0, true
}

// Delete removes every key and checks the structure ends up empty.
func Delete(d DSTest, keys []uint32) error {
	progress.Store(0)
	for _, k := range keys {
		if !d.Delete(Key(k)) {
			return fmt.Errorf("dstest: delete %#x: not found", k)
		}
		progress.Add(1)
	}
	if e := d.GetCounter("elements"); e != 0 {
		return fmt.Errorf("dstest: %d elements left after delete", e)
	}
	if s := d.StashSize(); s != 0 {
		return fmt.Errorf("dstest: %d keys left in the stash", s)
	}
	return nil
}

// CoverageStats is the fraction of distinct slots h1 % m and h2 % m hit by a key set.
type CoverageStats struct {
	H1, H2 float64
	Ideal  float64 // expected fraction for a fully random function, 1 - e^(-n/m)
}

// Coverage hashes keys with hf into m slots and reports how many distinct
// slots each function reaches. A function that clusters keys reaches fewer.
func Coverage(hf hashfn.HashFunction, keys []uint32, m uint32) CoverageStats {
	b1, b2 := bitset.New(uint(m)), bitset.New(uint(m))
	for _, k := range keys {
		b1.Set(uint(hf.H1(k) % m))
		b2.Set(uint(hf.H2(k) % m))
	}
	return CoverageStats{
		H1:    float64(b1.Count()) / float64(m),
		H2:    float64(b2.Count()) / float64(m),
		Ideal: 1 - math.Exp(-float64(len(keys))/float64(m)),
	}
}
