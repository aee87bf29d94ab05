package bgv

import (
	"fmt"

	"github.com/archon-fhe/bgv/ring"
	prng "github.com/archon-fhe/bgv/ring/rand"
)

// Encryptor produces fresh ciphertexts under a fixed public key.
// Grounded on original_source's src/bgv.c:bgv_encrypt.
type Encryptor struct {
	params Parameters
	pk     *PublicKey

	source   *prng.Source
	ternary  *ring.TernarySampler
	gaussian *ring.GaussianSampler
}

// NewEncryptor seeds a fresh entropy source and binds it to pk.
func NewEncryptor(params Parameters, pk *PublicKey) (*Encryptor, error) {
	source, err := prng.NewSource()
	if err != nil {
		return nil, fmt.Errorf("bgv: NewEncryptor: %w", err)
	}

	r := params.RingQ()

	return &Encryptor{
		params:   params,
		pk:       pk,
		source:   source,
		ternary:  ring.NewTernarySampler(source, r),
		gaussian: ring.NewGaussianSampler(source, defaultSigma, r),
	}, nil
}

// Encrypt returns a fresh RLWE encryption of m, which must be in the
// coefficient domain: c0 = pk.B*u + t*e0 + m, c1 = pk.A*u + t*e1.
func (enc *Encryptor) Encrypt(m *ring.RNSPoly) (*Ciphertext, error) {
	if m.IsNTT {
		return nil, fmt.Errorf("bgv: Encrypt: plaintext must be in the coefficient domain")
	}

	r := enc.params.RingQ()

	u := r.NewRNSPoly()
	enc.ternary.Read(u)
	r.Forward(u)

	e0 := r.NewRNSPoly()
	enc.gaussian.Read(e0)
	r.Forward(e0)
	r.MulScalar(e0, enc.params.T, e0)

	e1 := r.NewRNSPoly()
	enc.gaussian.Read(e1)
	r.Forward(e1)
	r.MulScalar(e1, enc.params.T, e1)

	mNTT := m.CopyNew()
	r.Forward(mNTT)

	c0 := r.NewRNSPoly()
	r.MulCoeffs(enc.pk.B, u, c0)
	r.Add(c0, e0, c0)
	r.Add(c0, mNTT, c0)

	c1 := r.NewRNSPoly()
	r.MulCoeffs(enc.pk.A, u, c1)
	r.Add(c1, e1, c1)

	return &Ciphertext{Value: []*ring.RNSPoly{c0, c1}}, nil
}
