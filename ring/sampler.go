package ring

import (
	"fmt"
	"math"

	prng "github.com/archon-fhe/bgv/ring/rand"
)

// Distribution identifies the probability law a Sampler draws from.
type Distribution int

const (
	Uniform Distribution = iota
	Ternary
	Gaussian
)

// Sampler fills an RNSPoly's coefficients in the coefficient (non-NTT)
// domain, one residue vector at a time.
type Sampler interface {
	Read(p *RNSPoly)
}

// UniformSampler draws coefficients uniformly over each RNS modulus.
type UniformSampler struct {
	Source *prng.Source
	ring   RNSRing
}

func NewUniformSampler(source *prng.Source, r RNSRing) *UniformSampler {
	return &UniformSampler{Source: source, ring: r}
}

func (s *UniformSampler) Read(p *RNSPoly) {
	for i, ring := range s.ring.rings {
		q := ring.Modulus
		c := p.Coeffs[i]
		for j := range c {
			// Rejection sampling against the smallest power of two
			// covering q avoids the modulo bias a plain mod would
			// introduce.
			mask := uint64(1)<<uint(bitLen(q)) - 1
			for {
				v := s.Source.Uint64() & mask
				if v < q {
					c[j] = v
					break
				}
			}
		}
	}
	p.IsNTT = false
}

func bitLen(x uint64) int {
	n := 0
	for x > 0 {
		n++
		x >>= 1
	}
	return n
}

// TernarySampler draws coefficients from {-1, 0, 1}. It deliberately
// reproduces the reference implementation's biased reduction
// (uniform32 mod 3) - 1 rather than rejection-sampling a uniform
// ternary, trading a small statistical bias for bit-for-bit
// reference compatibility. Grounded on original_source's
// src/rand/random.h ternary path.
type TernarySampler struct {
	Source *prng.Source
	ring   RNSRing
}

func NewTernarySampler(source *prng.Source, r RNSRing) *TernarySampler {
	return &TernarySampler{Source: source, ring: r}
}

func (s *TernarySampler) Read(p *RNSPoly) {
	n := s.ring.N()
	trits := make([]int8, n)
	for j := 0; j < n; j++ {
		trits[j] = int8(s.Source.Uint32()%3) - 1
	}

	for i, ring := range s.ring.rings {
		q := ring.Modulus
		c := p.Coeffs[i]
		for j, t := range trits {
			switch {
			case t < 0:
				c[j] = q - 1
			case t == 0:
				c[j] = 0
			default:
				c[j] = 1
			}
		}
	}
	p.IsNTT = false
}

// GaussianSampler draws coefficients from a discrete Gaussian of
// standard deviation Sigma, centered at zero, using Karney's exact
// sampling algorithm (arXiv:1303.6257). Grounded on original_source's
// src/rand/sample.h.
type GaussianSampler struct {
	Source *prng.Source
	Sigma  float64
	ring   RNSRing
}

func NewGaussianSampler(source *prng.Source, sigma float64, r RNSRing) *GaussianSampler {
	return &GaussianSampler{Source: source, Sigma: sigma, ring: r}
}

func (s *GaussianSampler) Read(p *RNSPoly) {
	n := s.ring.N()
	coeffs := make([]int64, n)
	for j := 0; j < n; j++ {
		coeffs[j] = karneySample(s.Source, s.Sigma)
	}

	for i, ring := range s.ring.rings {
		q := ring.Modulus
		c := p.Coeffs[i]
		for j, v := range coeffs {
			if v < 0 {
				c[j] = q - uint64(-v)%q
			} else {
				c[j] = uint64(v) % q
			}
		}
	}
	p.IsNTT = false
}

// bernoulliExpMinusHalf returns true with probability e^(-1/2), the
// constant gate Karney's algorithm uses to build a geometric variable
// out of a sequence of fair coin flips.
func bernoulliExpMinusHalf(src *prng.Source) bool {
	return src.Float64() < prng.ExpMinusHalf
}

// algorithmG draws k >= 0 with P(K=k) = (1-e^-1/2) * e^(-k/2), by
// counting consecutive successes of bernoulliExpMinusHalf.
func algorithmG(src *prng.Source) int {
	k := 0
	for bernoulliExpMinusHalf(src) {
		k++
	}
	return k
}

// karneyS draws k with the law Karney's S() produces: a geometric
// variable from algorithmG, accepted outright if k < 2, otherwise put
// through a binomial trial of up to k*(k-1) further Bernoulli(e^-1/2)
// draws and retried from scratch the moment one of those draws fails.
// Grounded on original_source's src/rand/sample.h:44-54 (S()), including
// its exact `while (z-- && bernoulli())` control flow: z is decremented
// every iteration, and the loop only stops early (without exhausting
// all z trials) when a Bernoulli draw fails.
func karneyS(src *prng.Source) int {
	for {
		k := algorithmG(src)
		if k < 2 {
			return k
		}

		z := k * (k - 1)
		for {
			cur := z
			z--
			if cur == 0 {
				break
			}
			if !bernoulliExpMinusHalf(src) {
				break
			}
		}
		if z < 0 {
			return k
		}
	}
}

// karneySample draws one integer from a discrete Gaussian of standard
// deviation sigma centered at zero, using Karney's exact accept/reject
// loop. Grounded on original_source's src/rand/sample.h:56-73
// (sample_err), with MU fixed at 0.
func karneySample(src *prng.Source, sigma float64) int64 {
	ceilSigma := uint32(math.Ceil(sigma))

	for {
		k := karneyS(src)

		s := int64(1)
		if src.Bit() == 1 {
			s = -1
		}

		kSigma := float64(k) * sigma
		i0 := math.Ceil(kSigma)
		xn0 := (i0 - kSigma) / sigma

		j := int(src.Uint32() % ceilSigma)

		x := xn0 + float64(j)/sigma
		if x >= 1 || (x == 0 && s < 0 && k == 0) {
			continue
		}

		if x != 0 {
			weight := math.Exp(-x * (float64(2*k) + x) / 2)
			if src.Float64() > weight {
				continue
			}
		}

		return s * (int64(i0) + int64(j))
	}
}

// NewSampler returns a Sampler for the named distribution.
func NewSampler(source *prng.Source, r RNSRing, dist Distribution, sigma float64) (Sampler, error) {
	switch dist {
	case Uniform:
		return NewUniformSampler(source, r), nil
	case Ternary:
		return NewTernarySampler(source, r), nil
	case Gaussian:
		return NewGaussianSampler(source, sigma, r), nil
	default:
		return nil, fmt.Errorf("ring: unknown distribution %d", dist)
	}
}
