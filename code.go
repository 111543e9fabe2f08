package huffpack

import (
	"fmt"
	"strings"
)

// MaxCodeSize is the longest code, in bits, that a Code can hold.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the Size low-order bits, so Bits can be handed
	// directly to an MSB-first bit writer.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// ParseCode constructs a Code from a string of '0' and '1' characters.
func ParseCode(s string) (Code, error) {
	if len(s) > MaxCodeSize {
		return Code{}, fmt.Errorf("code %q is longer than %d bits", s, MaxCodeSize)
	}
	var hc Code
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q in code %q", s[i], s)
		}
	}
	return hc, nil
}

// Append returns this Code with one more bit on the end.
func (hc Code) Append(bit uint64) Code {
	return Code{Size: hc.Size + 1, Bits: (hc.Bits << 1) | (bit & 1)}
}

// Bit returns the i'th bit of this Code, counting from the first.
func (hc Code) Bit(i byte) uint64 {
	return (hc.Bits >> (hc.Size - 1 - i)) & 1
}

// Prefix returns the first n bits of this Code.
func (hc Code) Prefix(n byte) Code {
	if n >= hc.Size {
		return hc
	}
	return Code{Size: n, Bits: hc.Bits >> (hc.Size - n)}
}

// HasPrefix returns true iff other is a prefix of this Code.  Every Code is
// a prefix of itself.
func (hc Code) HasPrefix(other Code) bool {
	return other.Size <= hc.Size && hc.Prefix(other.Size) == other
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var buf strings.Builder
	buf.WriteByte('"')
	for i := byte(0); i < hc.Size; i++ {
		buf.WriteByte('0' + byte(hc.Bit(i)))
	}
	buf.WriteByte('"')
	return buf.String()
}

var _ fmt.Stringer = Code{}
