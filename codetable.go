package huffpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// SymbolCode pairs a Symbol with its Code.
type SymbolCode struct {
	Symbol Symbol
	Code   Code
}

// CodeTable maps each Symbol of an input to its Huffman code.
type CodeTable struct {
	codes      [NumSymbols]Code
	numSymbols int
	minSize    byte
	maxSize    byte
}

// Init initializes this CodeTable from a Huffman tree.  Each symbol's code is
// the path from the root to its leaf, with 0 for a left edge and 1 for a right
// edge.
//
// A single-symbol tree has no edges, so its symbol is assigned the 1-bit code
// "0" instead of an empty code.
//
func (ct *CodeTable) Init(t *Tree) {
	*ct = CodeTable{}

	var hasMinMax bool
	t.walk(func(symbol Symbol, path Code) {
		if path.Size == 0 {
			path = MakeCode(1, 0)
		}
		assert.Assertf(path.Size <= MaxCodeSize, "code for symbol %d is %d bits, max %d", symbol, path.Size, MaxCodeSize)

		ct.codes[symbol] = path
		ct.numSymbols++

		size := path.Size
		if !hasMinMax {
			hasMinMax = true
			ct.minSize = size
			ct.maxSize = size
		} else if ct.minSize > size {
			ct.minSize = size
		} else if ct.maxSize < size {
			ct.maxSize = size
		}
	})
}

// Encode returns the Code for symbol.  The zero Code is returned for a symbol
// that is not in the table.
func (ct *CodeTable) Encode(symbol Symbol) Code {
	return ct.codes[symbol]
}

// Len returns the number of symbols in the table.
func (ct *CodeTable) Len() int {
	return ct.numSymbols
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// Entries lists the table in ascending symbol order.  This list can be
// transmitted to another party and used by Decoder to invert the code on the
// receiving end.
func (ct *CodeTable) Entries() []SymbolCode {
	out := make([]SymbolCode, 0, ct.numSymbols)
	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		if hc := ct.codes[symbol]; hc.Size != 0 {
			out = append(out, SymbolCode{symbol, hc})
		}
	}
	return out
}

// Decoder returns the inverse of this table.
func (ct *CodeTable) Decoder() Decoder {
	var d Decoder
	err := d.Init(ct.Entries())
	assert.Assertf(err == nil, "CodeTable produced an undecodable code: %v", err)
	return d
}

// EncodedBits returns the number of payload bits needed to encode an input
// with the given frequencies.
func (ct *CodeTable) EncodedBits(ft FrequencyTable) uint64 {
	var sum uint64
	for _, symbol := range ft.Symbols() {
		sum += ft.Count(symbol) * uint64(ct.codes[symbol].Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the CodeTable to the
// given writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, entry := range ct.Entries() {
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", entry.Symbol, entry.Code)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
