// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

// Package cuckoo implements the two table cuckoo hash used to compare hash functions.
// Keys are their own values, the key 0 marks an empty slot and is never inserted.
// An insert that cannot settle within MaxLoop displacements puts the key it
// is holding into a stash instead of looping, the final stash size is the
// figure of merit for the hash function in use.
//
// A Cuckoo is not safe for concurrent use and never grows or rehashes.
package cuckoo

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"leb.io/cuckoohf/hashfn"
)

// Key is both the key and the value stored in a slot.
type Key uint32

// EmptyKey marks an unused slot.
const EmptyKey Key = 0

// MaxLoop is the default number of placements tried by Insert before stashing.
const MaxLoop = 1000

// Counters. All public but we also have an API to access them.
type Counters struct {
	Elements   int // number of keys currently residing in the tables and stash
	Inserts    int // number of times insert has been called
	Lookups    int // number of lookups
	Deletes    int // number of times delete has been called
	Bumps      int // number of resident keys evicted from a slot
	Stashed    int // number of keys that went to the stash
	MaxPathLen int // longest chain of placements for one insert
}

// Per table stats.
type TableCounters struct {
	Size     int // slots in this table
	Elements int // number of keys currently residing in this table
	Bumps    int // number of keys evicted from this table
}

// CounterNames lists the names GetCounter accepts, in report order.
var CounterNames = []string{"inserts", "lookups", "deletes", "bumps", "stashed", "elements", "MaxPathLen"}

// Configuration info for the cuckoo hash is collected in this structure.
type Config struct {
	Tables   int    // always 2
	Buckets  int    // slots per table, m
	Capacity int    // Tables * Buckets
	MaxLoop  int    // placements tried before a key is stashed
	HashName string // description of the hash function
}

// The main data structure for cuckoo hash.
// Most fields are private but the counters are public.
type Cuckoo struct {
	t1, t2        []Key
	m             uint32
	stash         []Key
	hf            hashfn.HashFunction
	log           logr.Logger
	Config                         // config data
	Counters                       // stats
	TableCounters [2]TableCounters // per table stats
}

// New creates a cuckoo hash with two tables of m slots each that places keys with hf.
func New(m int, hf hashfn.HashFunction) *Cuckoo {
	if m <= 0 || uint64(m) > math.MaxUint32 {
		panic(fmt.Sprintf("New: table size %d", m))
	}
	if hf == nil {
		panic("New: nil hash function")
	}
	c := &Cuckoo{
		t1:  make([]Key, m),
		t2:  make([]Key, m),
		m:   uint32(m),
		hf:  hf,
		log: logr.Discard(),
	}
	c.Tables = 2
	c.Buckets = m
	c.Capacity = 2 * m
	c.MaxLoop = MaxLoop
	c.HashName = hf.Description()
	c.TableCounters[0].Size = m
	c.TableCounters[1].Size = m
	return c
}

// SetLogger sets the logger that records stash events at V(1).
func (c *Cuckoo) SetLogger(l logr.Logger) {
	c.log = l
}

// SetMaxLoop changes the number of placements tried before stashing.
func (c *Cuckoo) SetMaxLoop(n int) {
	if n < 1 {
		panic("SetMaxLoop: n < 1")
	}
	c.MaxLoop = n
}

func (c *Cuckoo) slot(t int, key Key) uint32 {
	if t == 0 {
		return c.hf.H1(uint32(key)) % c.m
	}
	return c.hf.H2(uint32(key)) % c.m
}

func (c *Cuckoo) table(t int) []Key {
	if t == 0 {
		return c.t1
	}
	return c.t2
}

// Insert places key, alternating between table 1 and table 2 and starting
// with table 1, swapping key into its slot and carrying the evicted key to
// the other table. It returns false if after MaxLoop placements a key was
// still homeless and had to be stashed. The stashed key need not be key.
// Inserting EmptyKey is undefined.
func (c *Cuckoo) Insert(key Key) (ok bool) {
	c.Inserts++
	c.Elements++
	x := key
	for i := 0; i < c.MaxLoop; i++ {
		t := i & 1
		tb := c.table(t)
		s := c.slot(t, x)
		x, tb[s] = tb[s], x
		if x == EmptyKey {
			c.TableCounters[t].Elements++
			c.pathLen(i + 1)
			return true
		}
		c.Bumps++
		c.TableCounters[t].Bumps++
	}
	c.pathLen(c.MaxLoop)
	c.stash = append(c.stash, x)
	c.Stashed++
	c.log.V(1).Info("stashed", "key", uint32(x), "inserting", uint32(key), "stashSize", len(c.stash))
	return false
}

func (c *Cuckoo) pathLen(n int) {
	if n > c.MaxPathLen {
		c.MaxPathLen = n
	}
}

// Lookup reports whether key is in its table 1 slot, its table 2 slot, or the stash.
// Apart from the Lookups counter it changes nothing.
func (c *Cuckoo) Lookup(key Key) bool {
	c.Lookups++
	if c.t1[c.slot(0, key)] == key || c.t2[c.slot(1, key)] == key {
		return true
	}
	for _, k := range c.stash {
		if k == key {
			return true
		}
	}
	return false
}

// Delete clears key from both of its slots, checking each, and removes the
// first matching stash entry. It reports whether anything was removed.
func (c *Cuckoo) Delete(key Key) (ok bool) {
	c.Deletes++
	if s := c.slot(0, key); c.t1[s] == key {
		c.t1[s] = EmptyKey
		c.TableCounters[0].Elements--
		c.Elements--
		ok = true
	}
	if s := c.slot(1, key); c.t2[s] == key {
		c.t2[s] = EmptyKey
		c.TableCounters[1].Elements--
		c.Elements--
		ok = true
	}
	for i, k := range c.stash {
		if k == key {
			c.stash = append(c.stash[:i], c.stash[i+1:]...)
			c.Elements--
			ok = true
			break
		}
	}
	return
}

// Stash returns a copy of the stashed keys in the order they were stashed.
func (c *Cuckoo) Stash() []Key {
	return append([]Key(nil), c.stash...)
}

func (c *Cuckoo) StashSize() int {
	return len(c.stash)
}

// Size returns m, the number of slots in each table.
func (c *Cuckoo) Size() int {
	return int(c.m)
}

func (c *Cuckoo) HashFunction() hashfn.HashFunction {
	return c.hf
}

// Map calls iter for every resident key, table 1 first, then table 2, then the stash.
// It stops early if iter returns true.
func (c *Cuckoo) Map(iter func(key Key) (stop bool)) {
	for _, tb := range [][]Key{c.t1, c.t2, c.stash} {
		for _, k := range tb {
			if k == EmptyKey {
				continue
			}
			if iter(k) {
				return
			}
		}
	}
}

// LoadFactor returns the fraction of table slots in use, stashed keys excluded.
func (c *Cuckoo) LoadFactor() float64 {
	return float64(c.TableCounters[0].Elements+c.TableCounters[1].Elements) / float64(c.Capacity)
}

// Get the value of a counter by name, see CounterNames.
func (c *Cuckoo) GetCounter(s string) int {
	switch s {
	case "bumps":
		return c.Bumps
	case "inserts":
		return c.Inserts
	case "lookups":
		return c.Lookups
	case "deletes":
		return c.Deletes
	case "stashed":
		return c.Stashed
	case "elements":
		return c.Elements
	case "size":
		return c.Capacity
	case "MaxPathLen":
		return c.MaxPathLen
	default:
		panic("GetCounter")
	}
}

// Get the value of some of the table counters
func (c *Cuckoo) GetTableCounter(t int, s string) int {
	if t < 0 || t >= len(c.TableCounters) {
		panic("GetTableCounter")
	}
	switch s {
	case "size":
		return c.TableCounters[t].Size
	case "elements":
		return c.TableCounters[t].Elements
	case "bumps":
		return c.TableCounters[t].Bumps
	default:
		panic("GetTableCounter")
	}
}
