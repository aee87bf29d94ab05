package bgv

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/archon-fhe/bgv/ring"
)

// MarshalBinary serializes the secret key's single polynomial.
func (sk *SecretKey) MarshalBinary() ([]byte, error) {
	return sk.Value.MarshalBinary()
}

// UnmarshalBinary restores a secret key previously allocated against
// the same ring, marking it as NTT-domain, the form GenSecretKey leaves
// it in.
func (sk *SecretKey) UnmarshalBinary(data []byte) error {
	if err := sk.Value.UnmarshalBinary(data); err != nil {
		return err
	}
	sk.Value.IsNTT = true
	return nil
}

// MarshalBinary serializes the public key as the concatenation of its
// a and b polynomials.
func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return marshalPolys(pk.A, pk.B)
}

// UnmarshalBinary restores a public key previously allocated against
// the same ring.
func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	return unmarshalPolys(data, pk.A, pk.B)
}

// MarshalBinary serializes the evaluation key as the concatenation of
// its a and b polynomials.
func (ek *EvaluationKey) MarshalBinary() ([]byte, error) {
	return marshalPolys(ek.A, ek.B)
}

// UnmarshalBinary restores an evaluation key previously allocated
// against the same ring.
func (ek *EvaluationKey) UnmarshalBinary(data []byte) error {
	return unmarshalPolys(data, ek.A, ek.B)
}

func marshalPolys(polys ...*ring.RNSPoly) ([]byte, error) {
	var out []byte
	for _, p := range polys {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// unmarshalPolys decodes consecutive polynomials from data and marks each
// as NTT-domain, the form key generation leaves key polynomials in.
func unmarshalPolys(data []byte, polys ...*ring.RNSPoly) error {
	off := 0
	for _, p := range polys {
		size := len(p.Coeffs) * len(p.Coeffs[0]) * 8
		if off+size > len(data) {
			return fmt.Errorf("bgv: unmarshalPolys: truncated input, need %d more bytes", off+size-len(data))
		}
		if err := p.UnmarshalBinary(data[off : off+size]); err != nil {
			return err
		}
		p.IsNTT = true
		off += size
	}
	return nil
}

// MarshalBinary serializes a ciphertext as a 4-byte little-endian part
// count followed by each part's polynomial encoding.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(ct.Value)))

	out := append([]byte(nil), header[:]...)
	for _, p := range ct.Value {
		b, err := p.MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}

// UnmarshalBinary restores a ciphertext from the layout produced by
// MarshalBinary, allocating its parts against params' ring and marking
// them as NTT-domain, the form ciphertexts are kept in.
func (ct *Ciphertext) UnmarshalBinary(params Parameters, data []byte) error {
	if len(data) < 4 {
		return fmt.Errorf("bgv: Ciphertext.UnmarshalBinary: truncated header")
	}

	n := binary.LittleEndian.Uint32(data[:4])
	data = data[4:]

	r := params.RingQ()
	values := make([]*ring.RNSPoly, n)
	off := 0
	for i := range values {
		values[i] = r.NewRNSPoly()
		size := len(values[i].Coeffs) * len(values[i].Coeffs[0]) * 8
		if off+size > len(data) {
			return fmt.Errorf("bgv: Ciphertext.UnmarshalBinary: truncated part %d", i)
		}
		if err := values[i].UnmarshalBinary(data[off : off+size]); err != nil {
			return err
		}
		values[i].IsNTT = true
		off += size
	}

	ct.Value = values
	return nil
}

// WriteTo writes ct's binary encoding to w.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	b, err := ct.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ReadCiphertextFrom reads a ciphertext previously written by WriteTo,
// marking its parts as NTT-domain. params must match the one the
// ciphertext was created under.
func ReadCiphertextFrom(params Parameters, r io.Reader) (*Ciphertext, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("bgv: ReadCiphertextFrom: reading header: %w", err)
	}
	n := binary.LittleEndian.Uint32(header[:])

	ringQ := params.RingQ()
	partSize := ringQ.N() * 8 * len(ringQ.ModuliChain())

	ct := &Ciphertext{Value: make([]*ring.RNSPoly, n)}
	buf := make([]byte, partSize)
	for i := range ct.Value {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("bgv: ReadCiphertextFrom: reading part %d: %w", i, err)
		}
		ct.Value[i] = ringQ.NewRNSPoly()
		if err := ct.Value[i].UnmarshalBinary(buf); err != nil {
			return nil, err
		}
		ct.Value[i].IsNTT = true
	}

	return ct, nil
}
