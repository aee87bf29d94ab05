package bgv

import (
	"errors"
	"fmt"

	"github.com/archon-fhe/bgv/ring"
)

// ErrLengthMismatch is returned by Add when its two operands carry a
// different number of ciphertext parts. Zero-padding the shorter
// ciphertext was considered and rejected: padding would silently
// change which power of the secret key an operand decrypts under,
// which is a correctness hazard rather than a convenience.
var ErrLengthMismatch = errors.New("bgv: ciphertexts have different degrees")

// Evaluator carries out homomorphic operations on ciphertexts.
// Grounded on original_source's src/bgv.c:bgv_ct_add/bgv_ct_mul/bgv_ct_relin.
type Evaluator struct {
	params Parameters
	evk    *EvaluationKey
}

// NewEvaluator constructs an Evaluator for the given Parameters. evk is
// used by Mul to relinearize its degree-2 result back down to degree 1,
// mirroring bgv_ct_mul's call into bgv_ct_relin; it may be nil if the
// Evaluator will only ever be used for Add, Sub and MulScalar.
func NewEvaluator(params Parameters, evk *EvaluationKey) *Evaluator {
	return &Evaluator{params: params, evk: evk}
}

// Add homomorphically adds two ciphertexts of equal degree.
func (ev *Evaluator) Add(a, b *Ciphertext) (*Ciphertext, error) {
	if len(a.Value) != len(b.Value) {
		return nil, ErrLengthMismatch
	}

	r := ev.params.RingQ()
	out := NewCiphertext(ev.params, a.Degree())
	for i := range out.Value {
		r.Add(a.Value[i], b.Value[i], out.Value[i])
	}

	return out, nil
}

// Sub homomorphically subtracts b from a. Both must have equal degree.
func (ev *Evaluator) Sub(a, b *Ciphertext) (*Ciphertext, error) {
	if len(a.Value) != len(b.Value) {
		return nil, ErrLengthMismatch
	}

	r := ev.params.RingQ()
	out := NewCiphertext(ev.params, a.Degree())
	for i := range out.Value {
		r.Sub(a.Value[i], b.Value[i], out.Value[i])
	}

	return out, nil
}

// MulScalar homomorphically multiplies a ciphertext by a plaintext
// scalar reduced mod T.
func (ev *Evaluator) MulScalar(a *Ciphertext, scalar uint64) *Ciphertext {
	r := ev.params.RingQ()
	out := NewCiphertext(ev.params, a.Degree())
	for i := range out.Value {
		r.MulScalar(a.Value[i], scalar%ev.params.T, out.Value[i])
	}
	return out
}

// Mul computes the tensor product of two degree-1 ciphertexts and
// immediately relinearizes it, returning a degree-1 ciphertext.
// Grounded on original_source's src/bgv.c:bgv_ct_mul, which likewise
// forms the degree-2 tensor product and then calls bgv_ct_relin before
// returning rather than leaving the caller to do it. ev must have been
// constructed with a non-nil evaluation key.
func (ev *Evaluator) Mul(a, b *Ciphertext) (*Ciphertext, error) {
	if a.Degree() != 1 || b.Degree() != 1 {
		return nil, fmt.Errorf("bgv: Mul: only degree-1 ciphertexts are supported, got degrees %d and %d", a.Degree(), b.Degree())
	}
	if ev.evk == nil {
		return nil, errors.New("bgv: Mul: evaluator has no evaluation key")
	}

	r := ev.params.RingQ()

	c0 := r.NewRNSPoly()
	r.MulCoeffs(a.Value[0], b.Value[0], c0)

	t0 := r.NewRNSPoly()
	t1 := r.NewRNSPoly()
	r.MulCoeffs(a.Value[0], b.Value[1], t0)
	r.MulCoeffs(a.Value[1], b.Value[0], t1)
	c1 := r.NewRNSPoly()
	r.Add(t0, t1, c1)

	c2 := r.NewRNSPoly()
	r.MulCoeffs(a.Value[1], b.Value[1], c2)

	tensor := &Ciphertext{Value: []*ring.RNSPoly{c0, c1, c2}}
	return ev.Relinearize(tensor, ev.evk)
}

// Relinearize folds a degree-2 ciphertext's s^2 term back into a
// degree-1 ciphertext, using an evaluation key generated for s^2 -> s.
// Grounded on original_source's src/bgv.c:bgv_ct_relin.
func (ev *Evaluator) Relinearize(ct *Ciphertext, evk *EvaluationKey) (*Ciphertext, error) {
	if ct.Degree() != 2 {
		return nil, fmt.Errorf("bgv: Relinearize: expected degree-2 ciphertext, got degree %d", ct.Degree())
	}

	r := ev.params.RingQ()
	c2 := ct.Value[2]

	c0 := r.NewRNSPoly()
	r.MulCoeffs(c2, evk.B, c0)
	r.Add(c0, ct.Value[0], c0)

	c1 := r.NewRNSPoly()
	r.MulCoeffs(c2, evk.A, c1)
	r.Add(c1, ct.Value[1], c1)

	return &Ciphertext{Value: []*ring.RNSPoly{c0, c1}}, nil
}
