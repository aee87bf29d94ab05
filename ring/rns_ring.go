package ring

import (
	"fmt"
	"math/big"
)

// RNSRing is the CRT product of per-modulus rings R_{q_i}, representing
// arithmetic over R_Q = Z_Q[X]/(X^N+1) for Q = prod(q_i). Grounded on
// Pro7ech-lattigo's ring/rns_ring.go, reduced to the single basis BGV
// needs (no auxiliary P basis, no rescaling machinery).
type RNSRing struct {
	rings []*Ring

	// icrt[i] = (Q/q_i) * ((Q/q_i)^-1 mod q_i), the CRT reconstruction
	// coefficient for basis element i, used by PolyToBigintCentered.
	icrt []big.Int

	modulus *big.Int
}

// NewRNSRing builds an RNS basis for a ring of degree N = 2^logD, whose
// total modulus Q has bit-length logQ, split into NTT-friendly primes
// each just below 2^logM (so numModuli = floor(logQ/logM) + 1, per
// spec.md's moduli-chain sizing formula).
func NewRNSRing(logD, logQ, logM int) (RNSRing, error) {
	n := 1 << logD
	numModuli := logQ/logM + 1

	primes, err := GenPrimes(logM, 2*n, numModuli)
	if err != nil {
		return RNSRing{}, fmt.Errorf("ring: NewRNSRing: %w", err)
	}

	rings := make([]*Ring, numModuli)
	for i, q := range primes {
		r, err := NewRing(n, q)
		if err != nil {
			return RNSRing{}, fmt.Errorf("ring: NewRNSRing: modulus %d: %w", q, err)
		}
		rings[i] = r
	}

	rr := RNSRing{rings: rings}
	rr.precomputeCRT()

	return rr, nil
}

func (r *RNSRing) precomputeCRT() {
	Q := big.NewInt(1)
	for _, ring := range r.rings {
		Q.Mul(Q, new(big.Int).SetUint64(ring.Modulus))
	}
	r.modulus = Q

	n := len(r.rings)
	r.icrt = make([]big.Int, n)

	tmp := new(big.Int)
	for i, ring := range r.rings {
		qi := new(big.Int).SetUint64(ring.Modulus)
		r.icrt[i].Quo(Q, qi)
		tmp.ModInverse(&r.icrt[i], qi)
		tmp.Mod(tmp, qi)
		r.icrt[i].Mul(&r.icrt[i], tmp)
	}
}

// N returns the ring degree.
func (r RNSRing) N() int {
	return r.rings[0].N
}

// Level returns the number of moduli minus one.
func (r RNSRing) Level() int {
	return len(r.rings) - 1
}

// ModuliChain returns the primes making up Q, in basis order.
func (r RNSRing) ModuliChain() []uint64 {
	qs := make([]uint64, len(r.rings))
	for i, ring := range r.rings {
		qs[i] = ring.Modulus
	}
	return qs
}

// AtLevel returns a view of the RNS basis truncated to level+1 moduli.
// level is clamped into [0, Level()] rather than indexing out of range.
func (r RNSRing) AtLevel(level int) RNSRing {
	level = Clamp(level, 0, r.Level())
	sub := RNSRing{rings: r.rings[:level+1]}
	sub.precomputeCRT()
	return sub
}

// Modulus returns Q = prod(q_i) as a big.Int.
func (r RNSRing) Modulus() *big.Int {
	return new(big.Int).Set(r.modulus)
}

// ModulusHalf returns floor(Q/2), the threshold used to center
// CRT-reconstructed coefficients around zero.
func (r RNSRing) ModulusHalf() *big.Int {
	return new(big.Int).Rsh(r.modulus, 1)
}

// NewRNSPoly allocates a zero polynomial over this basis.
func (r RNSRing) NewRNSPoly() *RNSPoly {
	n := r.N()
	coeffs := make([][]uint64, len(r.rings))
	for i := range coeffs {
		coeffs[i] = make([]uint64, n)
	}
	return &RNSPoly{Coeffs: coeffs, ring: r}
}
