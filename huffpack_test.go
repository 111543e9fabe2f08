package huffpack

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeInput returns a buffer in which symbol i occurs counts[i] times.
func makeInput(counts ...int) []byte {
	var out []byte
	for symbol, count := range counts {
		out = append(out, bytes.Repeat([]byte{byte(symbol)}, count)...)
	}
	return out
}

// makeSkewedInput returns n bytes drawn from a geometric-like distribution.
func makeSkewedInput(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	for i := range out {
		var b byte
		for b < 255 && rng.Intn(3) == 0 {
			b++
		}
		out[i] = 'a' + b%26
	}
	return out
}

// makeUniformInput returns n uniformly random bytes.
func makeUniformInput(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	rng.Read(out)
	return out
}

// makeFibonacciInput returns an input whose symbol counts follow the
// Fibonacci sequence, which produces the deepest possible tree.
func makeFibonacciInput(numSymbols int) []byte {
	counts := make([]int, numSymbols)
	a, b := 1, 1
	for i := range counts {
		counts[i] = a
		a, b = b, a+b
	}
	return makeInput(counts...)
}

func TestRoundTrip(t *testing.T) {
	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}

	testData := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"nil", nil},
		{"one byte", []byte{0x00}},
		{"repeated", bytes.Repeat([]byte{0xff}, 17)},
		{"two symbols", []byte("abababababbbbbba")},
		{"abracadabra", []byte("abracadabra")},
		{"all bytes", allBytes},
		{"skewed", makeSkewedInput(10000, 4)},
		{"uniform", makeUniformInput(10000, 5)},
		{"fibonacci", makeFibonacciInput(24)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			c := Compress(row.data)
			out, err := Decompress(c)
			require.NoError(t, err)
			require.True(t, bytes.Equal(row.data, out), "Decompress(Compress(x)) != x")

			raw := Encode(row.data)
			require.Equal(t, c.EncodedSize(), len(raw))
			out, err = Decode(raw)
			require.NoError(t, err)
			require.True(t, bytes.Equal(row.data, out), "Decode(Encode(x)) != x")
		})
	}
}

func TestRoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	for i := 0; i < 200; i++ {
		n := rng.Intn(512)
		alphabet := 1 + rng.Intn(256)
		data := make([]byte, n)
		for j := range data {
			data[j] = byte(rng.Intn(alphabet))
		}
		out, err := Decode(Encode(data))
		require.NoError(t, err)
		require.True(t, bytes.Equal(data, out), "round trip %d failed (n=%d, alphabet=%d)", i, n, alphabet)
	}
}

func TestCompress_Empty(t *testing.T) {
	c := Compress([]byte{})
	require.Equal(t, 0, c.AlphabetSize())
	require.Empty(t, c.Payload)
	require.Equal(t, uint64(0), c.OriginalLength)

	out, err := Decompress(c)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestCompress_SingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{0x41}, 1000)
	c := Compress(data)
	require.Equal(t, 1, c.AlphabetSize())
	require.Equal(t, SymbolCode{0x41, MakeCode(1, 0)}, c.Codes[0])
	require.Equal(t, uint64(1000), c.OriginalLength)
	require.Empty(t, c.Payload)

	out, err := Decode(Encode(data))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestCompress_Skewed(t *testing.T) {
	data := []byte("aaaaaaaaab")
	c := Compress(data)
	require.Equal(t, []SymbolCode{{'a', MakeCode(1, 1)}, {'b', MakeCode(1, 0)}}, c.Codes)
	require.Equal(t, []byte{0xff, 0x80}, c.Payload)
	require.Equal(t, uint8(2), c.LeftoverBits)
	// The packed codes beat the 10-byte input; the fixed header and code
	// table do not, so the whole container is only compared on a larger
	// input.
	require.Less(t, len(c.Payload), len(data))

	large := makeSkewedInput(10000, 7)
	require.Less(t, len(Encode(large)), len(large))
}

func TestCompress_Uniform(t *testing.T) {
	// Random bytes do not compress; the container may exceed the input.
	data := makeUniformInput(1000, 8)
	out, err := Decode(Encode(data))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestCompress_Deterministic(t *testing.T) {
	data := makeSkewedInput(5000, 9)
	require.Equal(t, Encode(data), Encode(append([]byte(nil), data...)))
}

func TestDecode_TruncatedPayload(t *testing.T) {
	inputs := [][]byte{
		[]byte("abracadabra"),
		[]byte("aaaaaaaaab"),
		makeSkewedInput(3000, 10),
		makeFibonacciInput(16),
	}
	for _, data := range inputs {
		raw := Encode(data)
		out, err := Decode(raw[:len(raw)-1])
		require.Nil(t, out)
		require.True(t, errors.Is(err, ErrMalformedStream), "expected ErrMalformedStream, got %v", err)

		var mse *MalformedStreamError
		require.True(t, errors.As(err, &mse))
	}
}

func TestDecode_TrailingPayload(t *testing.T) {
	raw := append(Encode([]byte("abracadabra")), 0x00)
	_, err := Decode(raw)
	require.True(t, errors.Is(err, ErrMalformedStream), "expected ErrMalformedStream, got %v", err)
}

func TestDecompress_Inconsistent(t *testing.T) {
	c := Compress([]byte("abracadabra"))
	c.Codes = append(c.Codes, SymbolCode{'z', c.Codes[0].Code})
	_, err := Decompress(c)
	require.True(t, errors.Is(err, ErrFormat), "expected ErrFormat, got %v", err)
}
