package bgv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestParameters(t *testing.T) Parameters {
	t.Helper()
	params, err := NewParameters(6, 39, 20, 257) // N=64, two ~20-bit moduli: floor(39/20)+1 = 2, small plaintext modulus
	require.NoError(t, err)
	return params
}

func TestEncryptDecryptIdentity(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	sk, pk := kg.GenKeyPair()

	enc, err := NewEncryptor(params, pk)
	require.NoError(t, err)
	dec := NewDecryptor(params, sk)

	values := make([]uint64, params.N())
	values[0], values[1], values[2] = 3, 5, 9

	pt, err := NewPlaintext(params, values)
	require.NoError(t, err)

	ct, err := enc.Encrypt(pt)
	require.NoError(t, err)

	got := dec.Decrypt(ct)
	for i, v := range values {
		require.Equalf(t, v, got[i], "coefficient %d", i)
	}
}

func TestEvaluatorAdd(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	sk, pk := kg.GenKeyPair()

	enc, err := NewEncryptor(params, pk)
	require.NoError(t, err)
	dec := NewDecryptor(params, sk)
	ev := NewEvaluator(params, nil)

	a := make([]uint64, params.N())
	b := make([]uint64, params.N())
	a[0], a[1] = 3, 5
	b[0], b[1] = 7, 11

	ptA, err := NewPlaintext(params, a)
	require.NoError(t, err)
	ptB, err := NewPlaintext(params, b)
	require.NoError(t, err)

	ctA, err := enc.Encrypt(ptA)
	require.NoError(t, err)
	ctB, err := enc.Encrypt(ptB)
	require.NoError(t, err)

	sum, err := ev.Add(ctA, ctB)
	require.NoError(t, err)

	got := dec.Decrypt(sum)
	require.Equal(t, uint64(10), got[0])
	require.Equal(t, uint64(16), got[1])
}

func TestEvaluatorAddLengthMismatch(t *testing.T) {
	params := newTestParameters(t)

	ctA := NewCiphertext(params, 1)
	ctB := NewCiphertext(params, 2)

	ev := NewEvaluator(params, nil)
	_, err := ev.Add(ctA, ctB)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestEvaluatorMulScalar(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	sk, pk := kg.GenKeyPair()

	enc, err := NewEncryptor(params, pk)
	require.NoError(t, err)
	dec := NewDecryptor(params, sk)
	ev := NewEvaluator(params, nil)

	values := make([]uint64, params.N())
	values[0] = 9

	pt, err := NewPlaintext(params, values)
	require.NoError(t, err)

	ct, err := enc.Encrypt(pt)
	require.NoError(t, err)

	product := ev.MulScalar(ct, 4)

	got := dec.Decrypt(product)
	require.Equal(t, uint64(36), got[0])
}

func TestEvaluatorMulAndRelinearize(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	sk, pk := kg.GenKeyPair()

	sk2 := &SecretKey{Value: params.RingQ().NewRNSPoly()}
	r := params.RingQ()
	r.MulCoeffs(sk.Value, sk.Value, sk2.Value)
	evk := kg.GenEvaluationKey(sk2, sk)

	enc, err := NewEncryptor(params, pk)
	require.NoError(t, err)
	dec := NewDecryptor(params, sk)
	ev := NewEvaluator(params, evk)

	a := make([]uint64, params.N())
	b := make([]uint64, params.N())
	a[0] = 6
	b[0] = 7

	ptA, err := NewPlaintext(params, a)
	require.NoError(t, err)
	ptB, err := NewPlaintext(params, b)
	require.NoError(t, err)

	ctA, err := enc.Encrypt(ptA)
	require.NoError(t, err)
	ctB, err := enc.Encrypt(ptB)
	require.NoError(t, err)

	product, err := ev.Mul(ctA, ctB)
	require.NoError(t, err)
	require.Equal(t, 1, product.Degree())

	got := dec.Decrypt(product)
	require.Equal(t, uint64(42), got[0])
}

func TestEvaluatorMulByZero(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	sk, pk := kg.GenKeyPair()

	sk2 := &SecretKey{Value: params.RingQ().NewRNSPoly()}
	r := params.RingQ()
	r.MulCoeffs(sk.Value, sk.Value, sk2.Value)
	evk := kg.GenEvaluationKey(sk2, sk)

	enc, err := NewEncryptor(params, pk)
	require.NoError(t, err)
	dec := NewDecryptor(params, sk)
	ev := NewEvaluator(params, evk)

	a := make([]uint64, params.N())
	a[0] = 123

	zero := make([]uint64, params.N())

	ptA, err := NewPlaintext(params, a)
	require.NoError(t, err)
	ptZero, err := NewPlaintext(params, zero)
	require.NoError(t, err)

	ctA, err := enc.Encrypt(ptA)
	require.NoError(t, err)
	ctZero, err := enc.Encrypt(ptZero)
	require.NoError(t, err)

	product, err := ev.Mul(ctA, ctZero)
	require.NoError(t, err)

	got := dec.Decrypt(product)
	for i, v := range got {
		require.Equalf(t, uint64(0), v, "coefficient %d", i)
	}
}

func TestSecretKeySerializationRoundTrip(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	sk, _ := kg.GenKeyPair()

	data, err := sk.MarshalBinary()
	require.NoError(t, err)

	restored := &SecretKey{Value: params.RingQ().NewRNSPoly()}
	require.NoError(t, restored.UnmarshalBinary(data))

	// cmp.Diff dispatches to RNSPoly's own Equal method (it has the
	// (*T).Equal(*T) bool shape go-cmp looks for), so this compares the
	// same way require.True(sk.Value.Equal(...)) would while printing a
	// structural diff on failure instead of a bare boolean.
	require.Empty(t, cmp.Diff(sk.Value, restored.Value))
}

func TestPublicKeySerializationRoundTrip(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	_, pk := kg.GenKeyPair()

	data, err := pk.MarshalBinary()
	require.NoError(t, err)

	r := params.RingQ()
	restored := &PublicKey{A: r.NewRNSPoly(), B: r.NewRNSPoly()}
	require.NoError(t, restored.UnmarshalBinary(data))

	require.Empty(t, cmp.Diff(pk, restored))
}

func TestCiphertextSerializationRoundTrip(t *testing.T) {
	params := newTestParameters(t)

	kg, err := NewKeyGenerator(params)
	require.NoError(t, err)
	_, pk := kg.GenKeyPair()

	enc, err := NewEncryptor(params, pk)
	require.NoError(t, err)

	values := make([]uint64, params.N())
	values[0] = 42

	pt, err := NewPlaintext(params, values)
	require.NoError(t, err)

	ct, err := enc.Encrypt(pt)
	require.NoError(t, err)

	data, err := ct.MarshalBinary()
	require.NoError(t, err)

	restored := &Ciphertext{}
	require.NoError(t, restored.UnmarshalBinary(params, data))

	require.Empty(t, cmp.Diff(ct, restored))
}
