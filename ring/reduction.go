package ring

import (
	"math/big"
	"math/bits"
)

// MForm switches a into the Montgomery domain by computing a*2^64 mod q.
func MForm(a, q uint64, bred [2]uint64) uint64 {
	mhi, _ := bits.Mul64(a, bred[1])
	r := -(a*bred[0] + mhi) * q
	if r >= q {
		r -= q
	}
	return r
}

// InvMForm switches a out of the Montgomery domain by computing a*(1/2^64) mod q.
func InvMForm(a, q, qInv uint64) uint64 {
	r, _ := bits.Mul64(a*qInv, q)
	r = q - r
	if r >= q {
		r -= q
	}
	return r
}

// MRedParams computes qInv = q^-1 mod 2^64, the constant required by MRed,
// as the product of q^(2^i) for i in [0, 63), i.e. q^(2^63-1): an odd q
// has multiplicative order dividing 2^62 mod 2^64, so that power is its
// inverse. Grounded on original_source's
// utils/number_theory.h:inv, generalized from the Hensel-lift in
// ring/utils.go's HenselLift.
func MRedParams(q uint64) uint64 {
	qInv := uint64(1)
	x := q
	for i := 0; i < 63; i++ {
		qInv *= x
		x *= x
	}
	return qInv
}

// MRed computes x*y*(1/2^64) mod q, x and y in Montgomery form or not,
// result in the same domain the inputs were multiplied in.
func MRed(x, y, q, qInv uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)
	h, _ := bits.Mul64(alo*qInv, q)
	r := ahi - h + q
	if r >= q {
		r -= q
	}
	return r
}

// BRedParams computes the Barrett reduction constants for q: the 128-bit
// value floor(2^128/q) split into (hi, lo) 64-bit words.
func BRedParams(q uint64) [2]uint64 {
	r := new(big.Int).Lsh(big.NewInt(1), 128)
	r.Quo(r, new(big.Int).SetUint64(q))
	hi := new(big.Int).Rsh(r, 64).Uint64()
	lo := r.Uint64()
	return [2]uint64{hi, lo}
}

// BRed computes x*y mod q using Barrett reduction.
func BRed(x, y, q uint64, u [2]uint64) uint64 {
	ahi, alo := bits.Mul64(x, y)

	lhi, _ := bits.Mul64(alo, u[1])
	mhi, mlo := bits.Mul64(alo, u[0])

	s0, carry := bits.Add64(mlo, lhi, 0)
	s1 := mhi + carry

	mhi, mlo = bits.Mul64(ahi, u[1])
	_, carry = bits.Add64(mlo, s0, 0)
	lhi = mhi + carry

	s0 = ahi*u[0] + s1 + lhi

	r := alo - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// BRedAdd reduces x mod q using Barrett reduction, for x already known to
// fit in 64 bits (i.e. a sum of two residues).
func BRedAdd(x, q uint64, u [2]uint64) uint64 {
	s0, _ := bits.Mul64(x, u[0])
	r := x - s0*q
	if r >= q {
		r -= q
	}
	return r
}

// CRed reduces a mod q assuming 0 <= a < 2*q.
func CRed(a, q uint64) uint64 {
	if a >= q {
		return a - q
	}
	return a
}

// ctReduce reduces a value in [0, 2q) to [0, q) without a data-dependent
// branch: d's sign bit, spread across all 64 bits, selects whether q is
// added back in. Grounded on original_source's
// utils/const_time.h:const_time_select64, applied to the conditional
// subtraction every NTT butterfly performs.
func ctReduce(a, q uint64) uint64 {
	d := a - q
	mask := uint64(int64(d) >> 63)
	return d + (mask & q)
}
