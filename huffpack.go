package huffpack

import (
	"bytes"

	"github.com/chronos-tachyon/assert"
)

// Compress builds a Huffman code for data and packs data with it.
//
// Empty input yields a Container with no codes and no payload.  Input with a
// single distinct byte yields a Container with one 1-bit code and no
// payload; OriginalLength alone records how many times the byte repeats, so
// such input must not exceed MaxSingleSymbolLength bytes.
//
func Compress(data []byte) *Container {
	if len(data) == 0 {
		return &Container{}
	}

	ft := CountFrequencies(data)
	t, err := BuildTree(ft)
	assert.Assertf(err == nil, "BuildTree on %d bytes: %v", len(data), err)

	var ct CodeTable
	ct.Init(t)

	c := &Container{
		OriginalLength: uint64(len(data)),
		Codes:          ct.Entries(),
	}
	if !t.IsSingleSymbol() {
		c.Payload, c.LeftoverBits = Pack(data, &ct)
	}
	return c
}

// Decompress recovers the original bytes from c.  It fails with a
// *FormatError if c is internally inconsistent, or a *MalformedStreamError if
// the payload does not decode to exactly c.OriginalLength bytes.
func Decompress(c *Container) ([]byte, error) {
	d, err := c.check(0, 0)
	if err != nil {
		return nil, err
	}

	switch len(c.Codes) {
	case 0:
		return []byte{}, nil
	case 1:
		return bytes.Repeat([]byte{byte(c.Codes[0].Symbol)}, int(c.OriginalLength)), nil
	}

	return Unpack(c.Payload, c.LeftoverBits, d, c.OriginalLength)
}

// Encode compresses data and serializes the result.
func Encode(data []byte) []byte {
	raw, err := Compress(data).MarshalBinary()
	assert.Assertf(err == nil, "Container.MarshalBinary: %v", err)
	return raw
}

// Decode parses a serialized Container and decompresses it.
func Decode(raw []byte) ([]byte, error) {
	var c Container
	if err := c.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return Decompress(&c)
}
