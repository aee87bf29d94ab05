package ring

import (
	"fmt"
	"math/bits"
)

// NTTTable holds the precomputed twiddle factors for the negacyclic
// number-theoretic transform over Z_q[X]/(X^n+1). Grounded bit-for-bit
// on original_source's src/ntt.c: forward is a decimation-in-time
// Cooley-Tukey butterfly, backward a decimation-in-frequency
// Gentleman-Sande butterfly, both operating on values kept in
// Montgomery form throughout and reduced with the constant-time
// ctReduce helper rather than a branch.
type NTTTable struct {
	N       int
	Modulus uint64

	bred [2]uint64
	mred uint64

	// rootsFwd[k] holds psi^(bitReverse(k, log2 N)) in Montgomery form,
	// for k in [0, N): the full-width bit-reversed twiddle table every
	// stage of Forward indexes into at m+i. Grounded on
	// original_source's src/ring.c:82-90, which fills roots[] the same
	// way: roots[bitrev(j)] = psi^j.
	rootsFwd []uint64
	// rootsInv[k] holds psi^-(bitReverse(k, log2 N)) in Montgomery
	// form, for the backward transform.
	rootsInv []uint64

	// nInv is N^-1 mod q, in Montgomery form.
	nInv uint64
}

// newNTTTable builds the twiddle tables for degree-n negacyclic
// convolution modulo the prime q. q must satisfy q = 1 mod 2n.
func newNTTTable(n int, q uint64, bred [2]uint64, mred uint64) (*NTTTable, error) {
	if n&(n-1) != 0 {
		return nil, fmt.Errorf("ring: NTT degree %d is not a power of two", n)
	}
	if (q-1)%uint64(2*n) != 0 {
		return nil, fmt.Errorf("ring: modulus %d is not congruent to 1 mod %d", q, 2*n)
	}

	g, err := FindPrimitiveRoot(q)
	if err != nil {
		return nil, err
	}

	// psi is a primitive 2n-th root of unity: the negacyclic NTT's core
	// parameter, since X^n+1 splits completely into (X-psi^(2i+1)).
	psi := ModExp(g, (q-1)/uint64(2*n), q)
	psiInv := ModInverse(psi, q)

	rootsFwd := make([]uint64, n)
	rootsInv := make([]uint64, n)

	logN := bits.TrailingZeros(uint(n))
	for k := 0; k < n; k++ {
		br := bitReverse(uint(k), logN)
		rootsFwd[k] = MForm(ModExp(psi, uint64(br), q), q, bred)
		rootsInv[k] = MForm(ModExp(psiInv, uint64(br), q), q, bred)
	}

	return &NTTTable{
		N:        n,
		Modulus:  q,
		bred:     bred,
		mred:     mred,
		rootsFwd: rootsFwd,
		rootsInv: rootsInv,
		nInv:     MForm(ModInverse(uint64(n), q), q, bred),
	}, nil
}

func bitReverse(x uint, logN int) uint {
	var r uint
	for i := 0; i < logN; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// Forward transforms a in standard order into the NTT (evaluation)
// domain, in place. a must hold N coefficients.
func (t *NTTTable) Forward(a []uint64) {
	n := t.N
	q := t.Modulus
	mred := t.mred

	for m, half := 1, n>>1; m < n; m, half = m<<1, half>>1 {
		for i := 0; i < m; i++ {
			w := t.rootsFwd[m+i]
			j1 := 2 * i * half
			for j := j1; j < j1+half; j++ {
				u := a[j]
				v := MRed(a[j+half], w, q, mred)
				a[j] = ctReduce(u+v, q)
				a[j+half] = ctReduce(u+q-v, q)
			}
		}
	}
}

// Backward transforms a in the NTT domain back into standard order, in
// place, and scales by N^-1.
func (t *NTTTable) Backward(a []uint64) {
	n := t.N
	q := t.Modulus
	mred := t.mred

	for m, half := n>>1, 1; m >= 1; m, half = m>>1, half<<1 {
		for i := 0; i < m; i++ {
			w := t.rootsInv[m+i]
			j1 := 2 * i * half
			for j := j1; j < j1+half; j++ {
				u := a[j]
				v := a[j+half]
				a[j] = ctReduce(u+v, q)
				a[j+half] = MRed(ctReduce(u+q-v, q), w, q, mred)
			}
		}
	}

	for i := range a {
		a[i] = MRed(a[i], t.nInv, q, mred)
	}
}
