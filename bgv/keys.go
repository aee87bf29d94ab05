package bgv

import (
	"fmt"

	"github.com/archon-fhe/bgv/ring"
	prng "github.com/archon-fhe/bgv/ring/rand"
)

// defaultSigma is the standard deviation of the error distribution used
// for key generation and encryption noise, matching original_source's
// SIGMA constant.
const defaultSigma = 3.19

// SecretKey holds s in the NTT domain.
type SecretKey struct {
	Value *ring.RNSPoly
}

// PublicKey holds the RLWE sample (a, b) with b = -a*s + t*e.
type PublicKey struct {
	A, B *ring.RNSPoly
}

// EvaluationKey is a key-switching key from one secret s_from to
// another s_to: b + a*s_to = s_from + t*e.
type EvaluationKey struct {
	A, B *ring.RNSPoly
}

// Equal reports whether two public keys hold identical samples.
// Grounded on original_source's src/bgv.c:bgv_key_cmp.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.A.Equal(other.A) && pk.B.Equal(other.B)
}

// Equal reports whether two evaluation keys hold identical samples.
func (ek *EvaluationKey) Equal(other *EvaluationKey) bool {
	return ek.A.Equal(other.A) && ek.B.Equal(other.B)
}

// KeyGenerator samples secret keys, public keys and evaluation keys for
// a fixed set of Parameters.
type KeyGenerator struct {
	params Parameters

	source *prng.Source

	ternary  *ring.TernarySampler
	gaussian *ring.GaussianSampler
	uniform  *ring.UniformSampler
}

// NewKeyGenerator seeds a fresh ChaCha20 entropy source and builds the
// samplers key generation needs.
func NewKeyGenerator(params Parameters) (*KeyGenerator, error) {
	source, err := prng.NewSource()
	if err != nil {
		return nil, fmt.Errorf("bgv: NewKeyGenerator: %w", err)
	}

	r := params.RingQ()

	return &KeyGenerator{
		params:   params,
		source:   source,
		ternary:  ring.NewTernarySampler(source, r),
		gaussian: ring.NewGaussianSampler(source, defaultSigma, r),
		uniform:  ring.NewUniformSampler(source, r),
	}, nil
}

// GenSecretKey samples a ternary secret and leaves it in the NTT
// domain, the form every ciphertext operation expects it in.
func (kg *KeyGenerator) GenSecretKey() *SecretKey {
	r := kg.params.RingQ()

	s := r.NewRNSPoly()
	kg.ternary.Read(s)
	r.Forward(s)

	return &SecretKey{Value: s}
}

// GenPublicKey samples an RLWE encryption of zero under sk.
func (kg *KeyGenerator) GenPublicKey(sk *SecretKey) *PublicKey {
	r := kg.params.RingQ()

	a := r.NewRNSPoly()
	kg.uniform.Read(a)
	r.Forward(a)

	b := kg.rlweSample(r, a, sk.Value, nil)

	return &PublicKey{A: a, B: b}
}

// GenKeyPair samples a fresh secret key and its matching public key.
func (kg *KeyGenerator) GenKeyPair() (*SecretKey, *PublicKey) {
	sk := kg.GenSecretKey()
	pk := kg.GenPublicKey(sk)
	return sk, pk
}

// GenEvaluationKey samples a key-switching key carrying ciphertexts
// encrypted under from back to an encryption under to, used by
// Evaluator.Relinearize to fold a degree-2 ciphertext's s^2 term back
// down to a linear one. Grounded on original_source's
// src/bgv.c:bgv_ksgen.
func (kg *KeyGenerator) GenEvaluationKey(from, to *SecretKey) *EvaluationKey {
	r := kg.params.RingQ()

	a := r.NewRNSPoly()
	kg.uniform.Read(a)
	r.Forward(a)

	b := kg.rlweSample(r, a, to.Value, from.Value)

	return &EvaluationKey{A: a, B: b}
}

// rlweSample computes b = -(a*s) + t*e [+ extra], the shape shared by
// public-key and evaluation-key generation.
func (kg *KeyGenerator) rlweSample(r ring.RNSRing, a, s, extra *ring.RNSPoly) *ring.RNSPoly {
	e := r.NewRNSPoly()
	kg.gaussian.Read(e)
	r.Forward(e)
	r.MulScalar(e, kg.params.T, e)

	as := r.NewRNSPoly()
	r.MulCoeffs(a, s, as)

	b := r.NewRNSPoly()
	r.Neg(as, b)
	r.Add(b, e, b)

	if extra != nil {
		r.Add(b, extra, b)
	}

	return b
}
