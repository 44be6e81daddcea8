// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

// Package jenkins3 implements hashword from Bob Jenkins' lookup3.c.
// See http://burtleburtle.net/bob/c/lookup3.c
package jenkins3

import "math/bits"

func rot(x uint32, k int) uint32 {
	return bits.RotateLeft32(x, k)
}

func mix(a, b, c uint32) (uint32, uint32, uint32) {
	a -= c
	a ^= rot(c, 4)
	c += b
	b -= a
	b ^= rot(a, 6)
	a += c
	c -= b
	c ^= rot(b, 8)
	b += a
	a -= c
	a ^= rot(c, 16)
	c += b
	b -= a
	b ^= rot(a, 19)
	a += c
	c -= b
	c ^= rot(b, 4)
	b += a
	return a, b, c
}

func final(a, b, c uint32) (uint32, uint32, uint32) {
	c ^= b
	c -= rot(b, 14)
	a ^= c
	a -= rot(c, 11)
	b ^= a
	b -= rot(a, 25)
	c ^= b
	c -= rot(b, 16)
	a ^= c
	a -= rot(c, 4)
	b ^= a
	b -= rot(a, 14)
	c ^= b
	c -= rot(b, 24)
	return a, b, c
}

// HashWords hashes a slice of 32 bit words with seed, identical to lookup3 hashword().
func HashWords(k []uint32, seed uint32) uint32 {
	a := 0xdeadbeef + uint32(len(k))<<2 + seed
	b, c := a, a

	i := 0
	length := len(k)
	for ; length > 3; length -= 3 {
		a += k[i+0]
		b += k[i+1]
		c += k[i+2]
		a, b, c = mix(a, b, c)
		i += 3
	}

	switch length {
	case 3:
		c += k[i+2]
		fallthrough
	case 2:
		b += k[i+1]
		fallthrough
	case 1:
		a += k[i+0]
		_, _, c = final(a, b, c)
	}
	return c
}

// Hash32 is HashWords of the single word x.
func Hash32(x, seed uint32) uint32 {
	a := 0xdeadbeef + 4 + seed
	_, _, c := final(a+x, a, a)
	return c
}
