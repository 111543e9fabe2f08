package huffpack

import (
	"bytes"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Pack concatenates the code of every byte of data, MSB-first, and returns
// the packed bytes together with the number of meaningful bits in the final
// byte.  A leftover of 0 means the final byte is full (or there are no
// bytes).  Padding bits are zero.
//
// Every byte of data must have a code in ct.
func Pack(data []byte, ct *CodeTable) (payload []byte, leftover uint8) {
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	w := bitio.NewWriter(&buf)
	var numBits uint64
	for _, b := range data {
		hc := ct.Encode(Symbol(b))
		assert.Assertf(hc.Size != 0, "no code for symbol %d", b)
		err := w.WriteBits(hc.Bits, hc.Size)
		assert.Assertf(err == nil, "bitio.Writer.WriteBits: %v", err)
		numBits += uint64(hc.Size)
	}
	err := w.Close()
	assert.Assertf(err == nil, "bitio.Writer.Close: %v", err)

	return buf.Bytes(), uint8(numBits % 8)
}

// PayloadBits returns the number of meaningful bits in a payload of the given
// length whose final byte holds leftover meaningful bits.
func PayloadBits(payloadLen int, leftover uint8) (uint64, error) {
	if leftover > 7 {
		return 0, malformedf(0, "leftover bit count %d exceeds 7", leftover)
	}
	if leftover == 0 {
		return uint64(payloadLen) * 8, nil
	}
	if payloadLen == 0 {
		return 0, malformedf(0, "leftover bit count %d declared for an empty payload", leftover)
	}
	return uint64(payloadLen-1)*8 + uint64(leftover), nil
}

// Unpack decodes exactly count symbols from payload using d.  The payload
// must hold exactly the bits of those symbols: running out of bits before
// count symbols have been decoded, meeting a bit sequence that is not the
// prefix of any code, or finding meaningful bits after the last symbol all
// yield a *MalformedStreamError.
func Unpack(payload []byte, leftover uint8, d Decoder, count uint64) ([]byte, error) {
	totalBits, err := PayloadBits(len(payload), leftover)
	if err != nil {
		return nil, err
	}

	r := bitio.NewReader(bytes.NewReader(payload))
	out := make([]byte, 0, capacityHint(count, totalBits))

	var pos uint64
	for n := uint64(0); n < count; n++ {
		var hc Code
		for {
			symbol, minSize, _ := d.Decode(hc)
			if symbol != InvalidSymbol {
				out = append(out, byte(symbol))
				break
			}
			if minSize == 0 {
				return nil, malformedf(pos-uint64(hc.Size), "bits %s do not match any code", hc)
			}

			need := minSize - hc.Size
			if totalBits-pos < uint64(need) {
				return nil, malformedf(pos, "payload ends inside a code after %d of %d symbols", n, count)
			}
			bits, err := r.ReadBits(need)
			if err != nil {
				return nil, malformedf(pos, "reading %d bits: %v", need, err)
			}
			pos += uint64(need)
			hc = Code{Size: hc.Size + need, Bits: (hc.Bits << need) | bits}
		}
	}

	if pos != totalBits {
		return nil, malformedf(pos, "%d bits remain after the final symbol", totalBits-pos)
	}
	return out, nil
}

// capacityHint caps the preallocation at one symbol per payload bit.
func capacityHint(count uint64, totalBits uint64) int {
	if count > totalBits {
		count = totalBits
	}
	return int(count)
}
