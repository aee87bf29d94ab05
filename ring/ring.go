// Package ring implements RNS-represented polynomial arithmetic over
// R_q = Z_q[X]/(X^d+1), the ring BGV operates over, together with the
// number-theoretic transform, discrete samplers and the ChaCha20-backed
// entropy source that feeds them.
package ring

// Ring holds the NTT and modular-arithmetic context for a single prime
// modulus of the RNS basis. Grounded on Pro7ech-lattigo's ring/ring.go,
// trimmed to the fields BGV's single-basis arithmetic actually needs.
type Ring struct {
	NTT *NTTTable

	N       int
	Modulus uint64

	BRedConstant [2]uint64
	MRedConstant uint64
}

// NewRing constructs the arithmetic context for a single NTT-friendly
// prime modulus q over a ring of degree n (a power of two). q must be
// prime and congruent to 1 mod 2n for the NTT to exist.
func NewRing(n int, q uint64) (*Ring, error) {
	r := &Ring{
		N:            n,
		Modulus:      q,
		BRedConstant: BRedParams(q),
		MRedConstant: MRedParams(q),
	}

	nttTable, err := newNTTTable(n, q, r.BRedConstant, r.MRedConstant)
	if err != nil {
		return nil, err
	}
	r.NTT = nttTable

	return r, nil
}

// NewRNSPoly allocates a zero polynomial over this single modulus.
func (r *Ring) NewRNSPoly() []uint64 {
	return make([]uint64, r.N)
}
