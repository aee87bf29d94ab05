package ring

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// RNSPoly is a polynomial in R_Q, stored as one coefficient vector per
// RNS modulus. IsNTT tracks which domain the coefficients are in. There
// is no Encode/Decode pair: SetCoefficientsBigint leaves its result in
// the coefficient domain, and PolyToBigintCentered panics unless the
// caller has first called Backward.
type RNSPoly struct {
	Coeffs [][]uint64
	IsNTT  bool

	ring RNSRing
}

// Ring returns the RNS basis p was allocated against.
func (p *RNSPoly) Ring() RNSRing {
	return p.ring
}

// At returns the coefficient vector for RNS modulus i.
func (p *RNSPoly) At(i int) []uint64 {
	return p.Coeffs[i]
}

// Level returns the number of RNS moduli minus one.
func (p *RNSPoly) Level() int {
	return len(p.Coeffs) - 1
}

// Zero sets every coefficient to zero.
func (p *RNSPoly) Zero() {
	for _, c := range p.Coeffs {
		for i := range c {
			c[i] = 0
		}
	}
}

// CopyNew returns an independent copy of p.
func (p *RNSPoly) CopyNew() *RNSPoly {
	c := &RNSPoly{
		Coeffs: make([][]uint64, len(p.Coeffs)),
		IsNTT:  p.IsNTT,
		ring:   p.ring,
	}
	for i := range p.Coeffs {
		c.Coeffs[i] = append([]uint64(nil), p.Coeffs[i]...)
	}
	return c
}

// Copy overwrites p's coefficients with q's.
func (p *RNSPoly) Copy(q *RNSPoly) {
	p.IsNTT = q.IsNTT
	for i := range p.Coeffs {
		copy(p.Coeffs[i], q.Coeffs[i])
	}
}

// Equal reports whether p and q hold identical coefficients in the same
// domain. The coefficients are compared by OR-accumulating their XOR
// over every position rather than stopping at the first difference.
// Grounded on original_source's src/poly.c:poly_cmp.
func (p *RNSPoly) Equal(q *RNSPoly) bool {
	if p.IsNTT != q.IsNTT || len(p.Coeffs) != len(q.Coeffs) {
		return false
	}
	var diff uint64
	for i := range p.Coeffs {
		if len(p.Coeffs[i]) != len(q.Coeffs[i]) {
			return false
		}
		for j := range p.Coeffs[i] {
			diff |= p.Coeffs[i][j] ^ q.Coeffs[i][j]
		}
	}
	return diff == 0
}

// Add computes p = a + b coefficient-wise, each residue mod its own q_i.
func (r RNSRing) Add(a, b, p *RNSPoly) {
	for i, ring := range r.rings {
		q := ring.Modulus
		ac, bc, pc := a.Coeffs[i], b.Coeffs[i], p.Coeffs[i]
		for j := range pc {
			pc[j] = CRed(ac[j]+bc[j], q)
		}
	}
	p.IsNTT = a.IsNTT || b.IsNTT
}

// Sub computes p = a - b coefficient-wise.
func (r RNSRing) Sub(a, b, p *RNSPoly) {
	for i, ring := range r.rings {
		q := ring.Modulus
		ac, bc, pc := a.Coeffs[i], b.Coeffs[i], p.Coeffs[i]
		for j := range pc {
			pc[j] = CRed(ac[j]+q-bc[j], q)
		}
	}
	p.IsNTT = a.IsNTT || b.IsNTT
}

// Neg computes p = -a coefficient-wise.
func (r RNSRing) Neg(a, p *RNSPoly) {
	for i, ring := range r.rings {
		q := ring.Modulus
		ac, pc := a.Coeffs[i], p.Coeffs[i]
		for j := range pc {
			if ac[j] == 0 {
				pc[j] = 0
			} else {
				pc[j] = q - ac[j]
			}
		}
	}
	p.IsNTT = a.IsNTT
}

// MulScalar computes p = a * s coefficient-wise, for a scalar reduced
// independently modulo each q_i.
func (r RNSRing) MulScalar(a *RNSPoly, s uint64, p *RNSPoly) {
	for i, ring := range r.rings {
		q := ring.Modulus
		si := s % q
		ac, pc := a.Coeffs[i], p.Coeffs[i]
		for j := range pc {
			pc[j] = BRed(ac[j], si, q, ring.BRedConstant)
		}
	}
	p.IsNTT = a.IsNTT
}

// MulCoeffs computes p = a * b coefficient-wise: true ring multiplication
// only once both operands are in the NTT domain.
func (r RNSRing) MulCoeffs(a, b, p *RNSPoly) {
	if !a.IsNTT || !b.IsNTT {
		panic("ring: MulCoeffs requires both operands in the NTT domain")
	}
	for i, ring := range r.rings {
		q := ring.Modulus
		ac, bc, pc := a.Coeffs[i], b.Coeffs[i], p.Coeffs[i]
		for j := range pc {
			pc[j] = BRed(ac[j], bc[j], q, ring.BRedConstant)
		}
	}
	p.IsNTT = true
}

// Forward transforms every residue of p into the NTT domain, in place.
func (r RNSRing) Forward(p *RNSPoly) {
	if p.IsNTT {
		return
	}
	for i, ring := range r.rings {
		ring.NTT.Forward(p.Coeffs[i])
	}
	p.IsNTT = true
}

// Backward transforms every residue of p back to coefficient order, in
// place.
func (r RNSRing) Backward(p *RNSPoly) {
	if !p.IsNTT {
		return
	}
	for i, ring := range r.rings {
		ring.NTT.Backward(p.Coeffs[i])
	}
	p.IsNTT = false
}

// SetCoefficientsBigint sets p's residues from a slice of N big.Int
// coefficients, reducing each one modulo every q_i.
func (r RNSRing) SetCoefficientsBigint(values []big.Int, p *RNSPoly) {
	tmp := new(big.Int)
	for i, ring := range r.rings {
		qi := new(big.Int).SetUint64(ring.Modulus)
		pc := p.Coeffs[i]
		for j := range pc {
			tmp.Mod(&values[j], qi)
			pc[j] = tmp.Uint64()
		}
	}
	p.IsNTT = false
}

// PolyToBigintCentered CRT-reconstructs p's residues into N big.Int
// coefficients, centered in (-Q/2, Q/2]. Grounded on Pro7ech-lattigo's
// ring/utils.go:PolyToBigintCentered, trimmed to the single-basis case.
func (r RNSRing) PolyToBigintCentered(p *RNSPoly, values []big.Int) {
	if p.IsNTT {
		panic("ring: PolyToBigintCentered requires coefficient domain")
	}

	Q := r.modulus
	half := r.ModulusHalf()
	tmp := new(big.Int)

	n := r.N()
	for j := 0; j < n; j++ {
		values[j].SetUint64(0)
		for i := range r.rings {
			tmp.Mul(new(big.Int).SetUint64(p.Coeffs[i][j]), &r.icrt[i])
			values[j].Add(&values[j], tmp)
		}
		values[j].Mod(&values[j], Q)
		if values[j].Cmp(half) > 0 {
			values[j].Sub(&values[j], Q)
		}
	}
}

// MarshalBinary serializes p as len(Coeffs) residue vectors of N
// little-endian uint64s each, with no length prefix: the reader is
// expected to already know N and the number of moduli from the ring it
// was constructed against.
func (p *RNSPoly) MarshalBinary() ([]byte, error) {
	n := 0
	if len(p.Coeffs) > 0 {
		n = len(p.Coeffs[0])
	}
	buf := make([]byte, len(p.Coeffs)*n*8)
	off := 0
	for _, c := range p.Coeffs {
		for _, v := range c {
			binary.LittleEndian.PutUint64(buf[off:], v)
			off += 8
		}
	}
	return buf, nil
}

// UnmarshalBinary decodes p's residues from the layout produced by
// MarshalBinary. p must already be allocated at the correct shape.
func (p *RNSPoly) UnmarshalBinary(data []byte) error {
	n := 0
	if len(p.Coeffs) > 0 {
		n = len(p.Coeffs[0])
	}
	want := len(p.Coeffs) * n * 8
	if len(data) != want {
		return fmt.Errorf("ring: UnmarshalBinary: expected %d bytes, got %d", want, len(data))
	}
	off := 0
	for _, c := range p.Coeffs {
		for i := range c {
			c[i] = binary.LittleEndian.Uint64(data[off:])
			off += 8
		}
	}
	return nil
}
