package ring

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ModExp returns x^e mod q. x is reduced into Montgomery form internally
// when q is not a power of two, mirroring the teacher's dual-path
// exponentiation in ring/utils.go.
func ModExp(x, e, q uint64) uint64 {
	if q&(q-1) == 0 {
		return modExpPow2(x, e, q)
	}

	bred := BRedParams(q)
	mred := MRedParams(q)

	y := MForm(1, q, bred)
	x = MForm(x, q, bred)

	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			y = MRed(y, x, q, mred)
		}
		x = MRed(x, x, q, mred)
	}

	return InvMForm(y, q, mred)
}

func modExpPow2(x, e, q uint64) uint64 {
	y := uint64(1)
	for i := e; i > 0; i >>= 1 {
		if i&1 == 1 {
			y *= x
		}
		x *= x
	}
	return y & (q - 1)
}

// ModInverse returns x^-1 mod q for prime q, by Fermat's little theorem.
func ModInverse(x, q uint64) uint64 {
	if x == 0 {
		panic("ring: ModInverse of zero")
	}
	return ModExp(x, q-2, q)
}

// millerRabinWitnesses is the number of independent bases original_source's
// is_prime tests before declaring q probably prime (MR_RUNS).
const millerRabinWitnesses = 256

// IsPrime reports whether q is prime, using the Miller-Rabin primality
// test with millerRabinWitnesses random bases. Grounded on
// original_source's utils/number_theory.c:is_prime.
func IsPrime(q uint64) bool {
	if q < 2 {
		return false
	}
	for _, p := range []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31} {
		if q == p {
			return true
		}
		if q%p == 0 {
			return false
		}
	}

	d := q - 1
	r := 0
	for d&1 == 0 {
		d >>= 1
		r++
	}

	qBig := new(big.Int).SetUint64(q)

	for i := 0; i < millerRabinWitnesses; i++ {
		a, err := rand.Int(rand.Reader, new(big.Int).Sub(qBig, big.NewInt(3)))
		if err != nil {
			panic(fmt.Errorf("ring: reading randomness for primality test: %w", err))
		}
		a.Add(a, big.NewInt(2))

		if !millerRabinRound(a.Uint64(), d, r, q) {
			return false
		}
	}

	return true
}

func millerRabinRound(a, d uint64, r int, q uint64) bool {
	x := ModExp(a, d, q)
	if x == 1 || x == q-1 {
		return true
	}

	for i := 0; i < r-1; i++ {
		x = ModExp(x, 2, q)
		if x == q-1 {
			return true
		}
	}

	return false
}

// GenPrimes returns count primes of the form k*twoN+1, each just below
// 2^logBits, suitable as NTT-friendly RNS moduli for a ring whose
// degree n satisfies twoN = 2n. Grounded on original_source's
// utils/number_theory.c:gen_primes; the original's static counter that
// resumes the search across calls is replaced here with an explicit
// starting point local to this call, since a package global would make
// prime generation depend on call order.
func GenPrimes(logBits, twoN, count int) ([]uint64, error) {
	m := uint64(twoN)
	upper := uint64(1) << logBits

	if upper <= m {
		return nil, fmt.Errorf("ring: GenPrimes: 2^%d too small for modulus step %d", logBits, twoN)
	}

	k := (upper - 1) / m
	if k*m+1 > upper {
		k--
	}

	primes := make([]uint64, 0, count)
	for k > 0 && len(primes) < count {
		q := k*m + 1
		if q < upper && IsPrime(q) {
			primes = append(primes, q)
		}
		k--
	}

	if len(primes) < count {
		return nil, fmt.Errorf("ring: GenPrimes: found only %d of %d primes below 2^%d congruent to 1 mod %d", len(primes), count, logBits, twoN)
	}

	return primes, nil
}

// FindPrimitiveRoot returns a generator of the multiplicative group
// (Z/qZ)^*, for prime q. Grounded on original_source's
// utils/number_theory.c:find_proot.
func FindPrimitiveRoot(q uint64) (uint64, error) {
	phi := q - 1

	factors := primeFactors(phi)

	for g := uint64(2); g < q; g++ {
		isRoot := true
		for _, f := range factors {
			if ModExp(g, phi/f, q) == 1 {
				isRoot = false
				break
			}
		}
		if isRoot {
			return g, nil
		}
	}

	return 0, fmt.Errorf("ring: FindPrimitiveRoot: no primitive root found mod %d", q)
}

func primeFactors(n uint64) []uint64 {
	var factors []uint64
	for p := uint64(2); p*p <= n; p++ {
		if n%p == 0 {
			factors = append(factors, p)
			for n%p == 0 {
				n /= p
			}
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}
