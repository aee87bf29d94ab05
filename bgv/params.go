// Package bgv implements the Brakerski-Gentry-Vaikuntanathan leveled
// homomorphic encryption scheme over the RNS ring provided by the ring
// package. Grounded throughout on original_source's src/bgv.c and
// include/fhe_bgv.h, restructured into Go's (value, error) idiom and
// the teacher's key/ciphertext layering.
package bgv

import (
	"fmt"

	"github.com/archon-fhe/bgv/ring"
)

// Parameters fixes the ring dimension, ciphertext modulus chain and
// plaintext modulus for an instance of the scheme.
type Parameters struct {
	LogD int
	LogQ int
	LogM int
	T    uint64

	ringQ ring.RNSRing
}

// NewParameters builds the RNS ring for the given dimensions and
// validates the plaintext modulus.
func NewParameters(logD, logQ, logM int, t uint64) (Parameters, error) {
	if t < 2 {
		return Parameters{}, fmt.Errorf("bgv: plaintext modulus %d must be at least 2", t)
	}

	r, err := ring.NewRNSRing(logD, logQ, logM)
	if err != nil {
		return Parameters{}, fmt.Errorf("bgv: NewParameters: %w", err)
	}

	// spec.md section 6 requires the plaintext modulus to be smaller
	// than every RNS prime in the chain; fold MinMax across the chain
	// to find the binding (smallest) one to check against.
	moduli := r.ModuliChain()
	smallest := moduli[0]
	for _, q := range moduli[1:] {
		smallest, _ = ring.MinMax(smallest, q)
	}
	if t >= smallest {
		return Parameters{}, fmt.Errorf("bgv: plaintext modulus %d must be smaller than every RNS modulus (smallest is %d)", t, smallest)
	}

	return Parameters{LogD: logD, LogQ: logQ, LogM: logM, T: t, ringQ: r}, nil
}

// RingQ returns the RNS ring backing ciphertexts and keys.
func (p Parameters) RingQ() ring.RNSRing {
	return p.ringQ
}

// N returns the ring degree.
func (p Parameters) N() int {
	return p.ringQ.N()
}
