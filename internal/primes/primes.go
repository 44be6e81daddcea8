// Copyright © 2014 Lawrence E. Bakst. All rights reserved.

// Package primes finds primes for table sizes.
// Trial division by the small primes, then by a mod 30 wheel.
package primes

var pt = []uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29,
	31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173,
	179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
}

// gaps between the residues mod 30 that are prime to 30, starting at 31 == 1 mod 30
var wheel = []uint64{6, 4, 2, 4, 2, 4, 6, 2}

// IsPrime reports whether n is prime.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range pt {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	for i, k := 0, uint64(31); k <= n/k; k, i = k+wheel[i], (i+1)%len(wheel) {
		if n%k == 0 {
			return false
		}
	}
	return true
}

// NextPrime returns the smallest prime >= n.
func NextPrime(n uint64) uint64 {
	if n <= 2 {
		return 2
	}
	if n%2 == 0 {
		n++
	}
	for !IsPrime(n) {
		n += 2
	}
	return n
}
