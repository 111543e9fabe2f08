package huffpack

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	formatMagic   = "HUF"
	formatVersion = 1

	// magic + version + originalLength + alphabetSize
	headerSize = len(formatMagic) + 1 + 8 + 8
)

// MaxSingleSymbolLength is the largest OriginalLength accepted for a
// single-symbol container, whose length is not backed by any payload bits.
const MaxSingleSymbolLength = 1 << 32

// Container is the persisted form of a compressed buffer: the code table, the
// packed payload, and the metadata needed to recover exactly the original
// bytes.
type Container struct {
	// OriginalLength is the number of bytes the payload decodes to.
	OriginalLength uint64

	// Codes lists the code of every distinct input byte, in ascending
	// symbol order.
	Codes []SymbolCode

	// LeftoverBits is the number of meaningful bits in the final byte of
	// Payload, or 0 if that byte is full.
	LeftoverBits uint8

	// Payload holds the packed codes, MSB-first.  It is empty when Codes
	// has fewer than two entries.
	Payload []byte
}

// AlphabetSize returns the number of distinct symbols in the table.
func (c *Container) AlphabetSize() int {
	return len(c.Codes)
}

// EncodedSize returns the length of the MarshalBinary output.
func (c *Container) EncodedSize() int {
	n := headerSize + 1 + len(c.Payload)
	for _, entry := range c.Codes {
		n += 1 + 8 + codeByteLen(entry.Code.Size)
	}
	return n
}

// String returns a brief description of this Container.
func (c *Container) String() string {
	return fmt.Sprintf("(Huffman container: %d bytes, %d symbols, %d payload bytes, %d leftover bits)",
		c.OriginalLength, len(c.Codes), len(c.Payload), c.LeftoverBits)
}

var _ fmt.Stringer = (*Container)(nil)

// MarshalBinary serializes the Container.
func (c *Container) MarshalBinary() ([]byte, error) {
	if _, err := c.check(0, 0); err != nil {
		return nil, err
	}

	out := make([]byte, 0, c.EncodedSize())
	out = append(out, formatMagic...)
	out = append(out, formatVersion)
	out = binary.LittleEndian.AppendUint64(out, c.OriginalLength)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(c.Codes)))
	for _, entry := range c.Codes {
		hc := entry.Code
		out = append(out, byte(entry.Symbol))
		out = binary.LittleEndian.AppendUint64(out, uint64(hc.Size))

		// Left-align the code so its first bit lands in the MSB of
		// the first byte.
		var aligned [8]byte
		binary.BigEndian.PutUint64(aligned[:], hc.Bits<<(64-uint(hc.Size)))
		out = append(out, aligned[:codeByteLen(hc.Size)]...)
	}
	out = append(out, c.LeftoverBits)
	out = append(out, c.Payload...)
	return out, nil
}

// UnmarshalBinary parses a Container previously produced by MarshalBinary.
// Any structural problem is reported as a *FormatError.  Payload is a
// sub-slice of data.
func (c *Container) UnmarshalBinary(data []byte) error {
	*c = Container{}

	if len(data) < headerSize {
		return formatErrorf(len(data), "truncated header: got %d bytes, need %d", len(data), headerSize)
	}
	if string(data[:len(formatMagic)]) != formatMagic {
		return formatErrorf(0, "bad magic %q", data[:len(formatMagic)])
	}
	if v := data[len(formatMagic)]; v != formatVersion {
		return formatErrorf(len(formatMagic), "unsupported version %d", v)
	}

	pos := len(formatMagic) + 1
	originalLength := binary.LittleEndian.Uint64(data[pos:])
	pos += 8
	alphabetSize := binary.LittleEndian.Uint64(data[pos:])
	pos += 8
	if alphabetSize > uint64(NumSymbols) {
		return formatErrorf(pos-8, "alphabet size %d exceeds %d", alphabetSize, NumSymbols)
	}

	tableOffset := pos
	codes := make([]SymbolCode, 0, alphabetSize)
	for i := uint64(0); i < alphabetSize; i++ {
		if len(data)-pos < 1+8 {
			return formatErrorf(pos, "truncated code table: entry %d of %d", i, alphabetSize)
		}
		symbol := Symbol(data[pos])
		size := binary.LittleEndian.Uint64(data[pos+1:])
		if size == 0 {
			return formatErrorf(pos+1, "symbol %d has a zero-length code", symbol)
		}
		if size > MaxCodeSize {
			return formatErrorf(pos+1, "symbol %d has a %d-bit code, max %d", symbol, size, MaxCodeSize)
		}
		pos += 1 + 8

		n := codeByteLen(byte(size))
		if len(data)-pos < n {
			return formatErrorf(pos, "truncated code table: bits of entry %d of %d", i, alphabetSize)
		}
		var aligned [8]byte
		copy(aligned[:], data[pos:pos+n])
		v := binary.BigEndian.Uint64(aligned[:])
		if v<<uint(size) != 0 {
			return formatErrorf(pos, "code for symbol %d has non-zero padding", symbol)
		}
		pos += n

		hc := MakeCode(byte(size), v>>(64-uint(size)))
		codes = append(codes, SymbolCode{Symbol: symbol, Code: hc})
	}

	if len(data)-pos < 1 {
		return formatErrorf(pos, "truncated header: missing leftover bit count")
	}
	trailerOffset := pos

	*c = Container{
		OriginalLength: originalLength,
		Codes:          codes,
		LeftoverBits:   data[pos],
		Payload:        data[pos+1:],
	}
	if _, err := c.check(tableOffset, trailerOffset); err != nil {
		*c = Container{}
		return err
	}
	return nil
}

// check validates the internal consistency of the Container and returns the
// Decoder for its code table.  The offsets locate the code table and the
// leftover byte for error reporting.
func (c *Container) check(tableOffset int, trailerOffset int) (Decoder, error) {
	var d Decoder
	if len(c.Codes) > NumSymbols {
		return d, formatErrorf(tableOffset, "alphabet size %d exceeds %d", len(c.Codes), NumSymbols)
	}
	if err := d.Init(c.Codes); err != nil {
		return d, formatErrorf(tableOffset, "%v", err)
	}
	if c.LeftoverBits > 7 {
		return d, formatErrorf(trailerOffset, "leftover bit count %d exceeds 7", c.LeftoverBits)
	}
	if c.OriginalLength > math.MaxInt {
		return d, formatErrorf(tableOffset, "original length %d is too large", c.OriginalLength)
	}

	switch len(c.Codes) {
	case 0:
		if c.OriginalLength != 0 {
			return d, formatErrorf(tableOffset, "empty code table for %d bytes", c.OriginalLength)
		}
		if c.LeftoverBits != 0 || len(c.Payload) != 0 {
			return d, formatErrorf(trailerOffset, "payload present with an empty code table")
		}
	case 1:
		if c.OriginalLength == 0 {
			return d, formatErrorf(tableOffset, "single-symbol table for zero bytes")
		}
		if c.OriginalLength > MaxSingleSymbolLength {
			return d, formatErrorf(tableOffset, "single-symbol length %d exceeds %d", c.OriginalLength, uint64(MaxSingleSymbolLength))
		}
		if c.LeftoverBits != 0 || len(c.Payload) != 0 {
			return d, formatErrorf(trailerOffset, "payload present with a single-symbol table")
		}
	default:
		if c.OriginalLength == 0 {
			return d, formatErrorf(tableOffset, "%d-symbol table for zero bytes", len(c.Codes))
		}
	}
	return d, nil
}

func codeByteLen(size byte) int {
	return (int(size) + 7) / 8
}

var (
	_ encoding.BinaryMarshaler   = (*Container)(nil)
	_ encoding.BinaryUnmarshaler = (*Container)(nil)
)
