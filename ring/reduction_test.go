package ring

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const testModulus = 12289 // NTT-friendly prime: 12*1024+1

func TestMRedMatchesBigInt(t *testing.T) {
	bred := BRedParams(testModulus)
	mred := MRedParams(testModulus)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		x := uint64(rng.Int63n(testModulus))
		y := uint64(rng.Int63n(testModulus))

		xm := MForm(x, testModulus, bred)
		ym := MForm(y, testModulus, bred)

		got := InvMForm(MRed(xm, ym, testModulus, mred), testModulus, mred)

		want := new(big.Int).Mul(big.NewInt(int64(x)), big.NewInt(int64(y)))
		want.Mod(want, big.NewInt(testModulus))

		require.Equal(t, want.Uint64(), got)
	}
}

func TestBRedMatchesBigInt(t *testing.T) {
	bred := BRedParams(testModulus)

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		x := uint64(rng.Int63n(testModulus))
		y := uint64(rng.Int63n(testModulus))

		got := BRed(x, y, testModulus, bred)

		want := new(big.Int).Mul(big.NewInt(int64(x)), big.NewInt(int64(y)))
		want.Mod(want, big.NewInt(testModulus))

		require.Equal(t, want.Uint64(), got)
	}
}

func TestCRed(t *testing.T) {
	require.Equal(t, uint64(5), CRed(5, testModulus))
	require.Equal(t, uint64(0), CRed(testModulus, testModulus))
	require.Equal(t, uint64(1), CRed(testModulus+1, testModulus))
}

func TestCtReduce(t *testing.T) {
	for a := uint64(0); a < 2*testModulus; a++ {
		want := a
		if want >= testModulus {
			want -= testModulus
		}
		require.Equal(t, want, ctReduce(a, testModulus))
	}
}
