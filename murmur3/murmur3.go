// © Copyright 2014 Lawrence E. Bakst All Rights Reserved
// THIS SOURCE CODE IS THE PROPRIETARY INTELLECTUAL PROPERTY AND CONFIDENTIAL
// INFORMATION OF LAWRENCE E. BAKST AND IS PROTECTED UNDER U.S. AND
// INTERNATIONAL LAW. ANY USE OF THIS SOURCE CODE WITHOUT THE
// AUTHORIZATION OF LAWRENCE E. BAKST IS STRICTLY PROHIBITED.

// Package murmur3 implements the 32 bit x86 version of MurmurHash3 with a seed.
// Output is bit for bit identical to the reference MurmurHash3_x86_32, blocks are
// always read little endian so results do not depend on the host byte order.
//
// https://en.wikipedia.org/wiki/MurmurHash
// https://github.com/spaolacci/murmur3
package murmur3

import (
	"encoding/binary"
	"hash"
	"math/bits"
)

const (
	c1 uint32 = 0xcc9e2d51
	c2 uint32 = 0x1b873593
	r1        = 15
	r2        = 13
	m  uint32 = 5
	n  uint32 = 0xe6546b64
)

// The size of an murmur3 32 bit hash in bytes.
const Size = 4

var (
	_ hash.Hash   = new(Digest)
	_ hash.Hash32 = new(Digest)
)

// Digest is a streaming murmur3 state. Data is buffered until Sum32.
type Digest struct {
	seed uint32
	tail []byte
}

// New returns a hash.Hash32 that computes the seeded 32 bit murmur3 hash.
func New(seed uint32) hash.Hash32 {
	d := &Digest{seed: seed}
	d.Reset()
	return d
}

func (d *Digest) Reset()         { d.tail = d.tail[:0] }
func (d *Digest) Size() int      { return Size }
func (d *Digest) BlockSize() int { return 1 }

func (d *Digest) Write(p []byte) (int, error) {
	d.tail = append(d.tail, p...)
	return len(p), nil
}

func (d *Digest) Sum(b []byte) []byte {
	h := d.Sum32()
	return append(b, byte(h>>24), byte(h>>16), byte(h>>8), byte(h))
}

func (d *Digest) Sum32() uint32 {
	return Sum32(d.tail, d.seed)
}

func mixk(k uint32) uint32 {
	k *= c1
	k = bits.RotateLeft32(k, r1)
	return k * c2
}

func fmix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Sum32 returns the 32 bit hash of data given the seed.
func Sum32(data []byte, seed uint32) uint32 {
	h := seed
	nblocks := len(data) / 4
	for i := 0; i < nblocks; i++ {
		h ^= mixk(binary.LittleEndian.Uint32(data[i*4:]))
		h = bits.RotateLeft32(h, r2)*m + n
	}

	tail := data[nblocks*4:]
	k := uint32(0)
	switch len(tail) {
	case 3:
		k ^= uint32(tail[2]) << 16
		fallthrough
	case 2:
		k ^= uint32(tail[1]) << 8
		fallthrough
	case 1:
		k ^= uint32(tail[0])
		h ^= mixk(k)
	}
	return fmix(h ^ uint32(len(data)))
}

// Sum32Uint32 is Sum32 of the 4 byte little endian encoding of x.
// It does not allocate and is what the cuckoo tables call per key.
func Sum32Uint32(x, seed uint32) uint32 {
	h := seed ^ mixk(x)
	h = bits.RotateLeft32(h, r2)*m + n
	return fmix(h ^ 4)
}
