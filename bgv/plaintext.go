package bgv

import (
	"fmt"
	"math/big"

	"github.com/archon-fhe/bgv/ring"
)

// NewPlaintext embeds values, each taken mod T, as the coefficients of a
// fresh ring element in the coefficient domain.
func NewPlaintext(params Parameters, values []uint64) (*ring.RNSPoly, error) {
	r := params.RingQ()
	n := r.N()

	if len(values) > n {
		return nil, fmt.Errorf("bgv: NewPlaintext: %d values exceed ring degree %d", len(values), n)
	}

	coeffs := make([]big.Int, n)
	for i := range coeffs {
		if i < len(values) {
			coeffs[i].SetUint64(values[i] % params.T)
		}
	}

	p := r.NewRNSPoly()
	r.SetCoefficientsBigint(coeffs, p)

	return p, nil
}
