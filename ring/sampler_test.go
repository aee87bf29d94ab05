package ring

import (
	"testing"

	"github.com/stretchr/testify/require"

	prng "github.com/archon-fhe/bgv/ring/rand"
)

func TestTernarySamplerRange(t *testing.T) {
	r := newTestRing(t)
	source, err := prng.NewSource()
	require.NoError(t, err)

	s := NewTernarySampler(source, r)
	p := r.NewRNSPoly()
	s.Read(p)

	require.False(t, p.IsNTT)

	q0 := r.rings[0].Modulus
	for j := 0; j < r.N(); j++ {
		v := p.Coeffs[0][j]
		require.True(t, v == 0 || v == 1 || v == q0-1, "unexpected ternary value %d", v)
	}
}

func TestUniformSamplerInRange(t *testing.T) {
	r := newTestRing(t)
	source, err := prng.NewSource()
	require.NoError(t, err)

	s := NewUniformSampler(source, r)
	p := r.NewRNSPoly()
	s.Read(p)

	for i, ring := range r.rings {
		for _, v := range p.Coeffs[i] {
			require.Less(t, v, ring.Modulus)
		}
	}
}

func TestGaussianSamplerCentered(t *testing.T) {
	r := newTestRing(t)
	source, err := prng.NewSource()
	require.NoError(t, err)

	const sigma = 3.19
	s := NewGaussianSampler(source, sigma, r)

	var sum float64
	const trials = 2000
	for i := 0; i < trials; i++ {
		v := karneySample(source, sigma)
		sum += float64(v)
	}
	mean := sum / trials

	// A centered Gaussian's empirical mean over 2000 draws has a
	// standard error of about sigma/sqrt(2000), roughly 0.07; the check
	// only requires it to land within one sigma of zero.
	require.InDelta(t, 0, mean, sigma)

	p := r.NewRNSPoly()
	s.Read(p)
	require.False(t, p.IsNTT)
}
