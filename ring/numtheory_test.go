package ring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPrime(t *testing.T) {
	primes := []uint64{2, 3, 5, 7, 11, 97, 12289, 1099511627689}
	for _, p := range primes {
		require.Truef(t, IsPrime(p), "%d should be prime", p)
	}

	composites := []uint64{1, 4, 6, 8, 9, 12288, 1099511627688}
	for _, c := range composites {
		require.Falsef(t, IsPrime(c), "%d should not be prime", c)
	}
}

func TestModExp(t *testing.T) {
	require.Equal(t, uint64(1), ModExp(2, 0, testModulus))
	require.Equal(t, uint64(1024), ModExp(2, 10, testModulus))

	// Fermat's little theorem: x^(q-1) = 1 mod q for x coprime to q.
	require.Equal(t, uint64(1), ModExp(7, testModulus-1, testModulus))
}

func TestModInverse(t *testing.T) {
	for x := uint64(1); x < 50; x++ {
		inv := ModInverse(x, testModulus)
		require.Equal(t, uint64(1), BRed(x, inv, testModulus, BRedParams(testModulus)))
	}
}

func TestFindPrimitiveRoot(t *testing.T) {
	g, err := FindPrimitiveRoot(testModulus)
	require.NoError(t, err)

	// A primitive root generates the full multiplicative group: its
	// order must be exactly q-1, not a proper divisor of it.
	require.Equal(t, uint64(1), ModExp(g, testModulus-1, testModulus))
	for _, d := range primeFactors(testModulus - 1) {
		require.NotEqual(t, uint64(1), ModExp(g, (testModulus-1)/d, testModulus))
	}
}

func TestGenPrimes(t *testing.T) {
	primes, err := GenPrimes(20, 32, 3)
	require.NoError(t, err)
	require.Len(t, primes, 3)

	seen := map[uint64]bool{}
	for _, p := range primes {
		require.True(t, IsPrime(p))
		require.Equal(t, uint64(1), p%32)
		require.False(t, seen[p])
		seen[p] = true
	}
}
