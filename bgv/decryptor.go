package bgv

import "math/big"

// Decryptor recovers the plaintext coefficients of a ciphertext under a
// fixed secret key. Grounded on original_source's
// src/bgv.c:bgv_decrypt.
type Decryptor struct {
	params Parameters
	sk     *SecretKey
}

// NewDecryptor binds sk to params for repeated decryption.
func NewDecryptor(params Parameters, sk *SecretKey) *Decryptor {
	return &Decryptor{params: params, sk: sk}
}

// Decrypt evaluates ct's parts at s by Horner's method, then
// CRT-reconstructs and reduces the result mod T to recover the
// plaintext coefficients.
func (dec *Decryptor) Decrypt(ct *Ciphertext) []uint64 {
	r := dec.params.RingQ()

	acc := ct.Value[len(ct.Value)-1].CopyNew()
	for i := len(ct.Value) - 2; i >= 0; i-- {
		r.MulCoeffs(acc, dec.sk.Value, acc)
		r.Add(acc, ct.Value[i], acc)
	}

	r.Backward(acc)

	n := r.N()
	values := make([]big.Int, n)
	r.PolyToBigintCentered(acc, values)

	t := new(big.Int).SetUint64(dec.params.T)
	tmp := new(big.Int)
	out := make([]uint64, n)
	for i := range values {
		tmp.Mod(&values[i], t)
		out[i] = tmp.Uint64()
	}

	return out
}
