package ring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNTTRoundTrip(t *testing.T) {
	const n = 64
	const q = 12289 // 12289 = 192*64 + 1, congruent to 1 mod 2n

	bred := BRedParams(q)
	mred := MRedParams(q)

	table, err := newNTTTable(n, q, bred, mred)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	original := make([]uint64, n)
	for i := range original {
		original[i] = uint64(rng.Int63n(q))
	}

	a := append([]uint64(nil), original...)
	table.Forward(a)
	table.Backward(a)

	require.Equal(t, original, a)
}

func TestNTTIsLinear(t *testing.T) {
	const n = 64
	const q = 12289

	table, err := newNTTTable(n, q, BRedParams(q), MRedParams(q))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	a := make([]uint64, n)
	b := make([]uint64, n)
	sum := make([]uint64, n)
	for i := range a {
		a[i] = uint64(rng.Int63n(q))
		b[i] = uint64(rng.Int63n(q))
		sum[i] = CRed(a[i]+b[i], q)
	}

	table.Forward(a)
	table.Forward(b)
	table.Forward(sum)

	for i := range a {
		require.Equal(t, sum[i], CRed(a[i]+b[i], q))
	}
}

// negacyclicConvolve computes a*b mod (X^n+1) in Z_q by schoolbook
// multiplication, the reference this test checks the NTT-based product
// against.
func negacyclicConvolve(a, b []uint64, q uint64) []uint64 {
	n := len(a)
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			prod := (a[i] * b[j]) % q
			k := i + j
			if k < n {
				out[k] = (out[k] + prod) % q
			} else {
				out[k-n] = (out[k-n] + q - prod) % q
			}
		}
	}
	return out
}

// TestNTTNegacyclicConvolution is the property the NTT exists for:
// pointwise multiplication in the transform domain must equal
// negacyclic ring multiplication in the coefficient domain. A broken
// twiddle table can still pass a round-trip test (it stays invertible)
// while failing this one.
func TestNTTNegacyclicConvolution(t *testing.T) {
	const n = 64
	const q = 12289

	table, err := newNTTTable(n, q, BRedParams(q), MRedParams(q))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(99))
	a := make([]uint64, n)
	b := make([]uint64, n)
	for i := range a {
		a[i] = uint64(rng.Int63n(q))
		b[i] = uint64(rng.Int63n(q))
	}

	want := negacyclicConvolve(a, b, q)

	aNTT := append([]uint64(nil), a...)
	bNTT := append([]uint64(nil), b...)
	table.Forward(aNTT)
	table.Forward(bNTT)

	bred := BRedParams(q)
	product := make([]uint64, n)
	for i := range product {
		product[i] = BRed(aNTT[i], bNTT[i], q, bred)
	}
	table.Backward(product)

	require.Equal(t, want, product)
}
