package bgv

import "github.com/archon-fhe/bgv/ring"

// Ciphertext holds Value[0] + Value[1]*s + Value[2]*s^2 + ... in the NTT
// domain. A freshly encrypted ciphertext has degree 1 (two parts);
// Evaluator.Mul raises the degree, Evaluator.Relinearize brings it back
// down. Grounded on original_source's include/fhe_bgv.h:bgv_ct_t.
type Ciphertext struct {
	Value []*ring.RNSPoly
}

// NewCiphertext allocates a zero ciphertext of the given degree (1 for
// a standard two-part ciphertext). Grounded on original_source's
// src/bgv.c:bgv_ct_init.
func NewCiphertext(params Parameters, degree int) *Ciphertext {
	r := params.RingQ()
	v := make([]*ring.RNSPoly, degree+1)
	for i := range v {
		v[i] = r.NewRNSPoly()
	}
	return &Ciphertext{Value: v}
}

// Degree returns the ciphertext's polynomial degree in the secret key
// (one less than the number of parts).
func (ct *Ciphertext) Degree() int {
	return len(ct.Value) - 1
}

// CopyNew returns an independent copy of ct.
func (ct *Ciphertext) CopyNew() *Ciphertext {
	v := make([]*ring.RNSPoly, len(ct.Value))
	for i, p := range ct.Value {
		v[i] = p.CopyNew()
	}
	return &Ciphertext{Value: v}
}

// Equal reports whether ct and other hold identical parts.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	if len(ct.Value) != len(other.Value) {
		return false
	}
	for i := range ct.Value {
		if !ct.Value[i].Equal(other.Value[i]) {
			return false
		}
	}
	return true
}
