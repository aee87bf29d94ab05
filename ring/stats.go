package ring

import (
	"math/big"

	"github.com/archon-fhe/bgv/utils/bignum"
)

// NoiseStats CRT-reconstructs p's centered coefficients and returns
// (log2 of their standard deviation, their mean). Grounded on
// Pro7ech-lattigo's ring/rns_ring.go:RNSRing.Stats, used here to assert
// the noise growth testable properties from the canonical error and
// ciphertext-noise measurements.
func (r RNSRing) NoiseStats(p *RNSPoly) (log2StdDev, mean float64) {
	values := make([]big.Int, r.N())
	r.PolyToBigintCentered(p, values)
	stats := bignum.Stats(values, 128)
	return stats[0], stats[1]
}
