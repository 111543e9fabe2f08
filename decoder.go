package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// Decoder inverts a prefix-free code.  It matches codes incrementally: a
// caller accumulates bits one or more at a time and asks the Decoder whether
// the bits seen so far name a symbol, and if not, how many more are needed.
type Decoder struct {
	table   map[Code]decoderData
	entries []SymbolCode
	minSize byte
	maxSize byte
}

// Init initializes this Decoder from a list of (Symbol, Code) pairs, such as
// the one returned by CodeTable.Entries.
//
// Not all inputs are valid.  In particular, this method rejects symbols out
// of range or listed twice, codes that are empty or longer than MaxCodeSize,
// and code sets that are not prefix-free.  An empty list is permitted and
// produces a Decoder that matches nothing.
//
func (d *Decoder) Init(entries []SymbolCode) error {
	*d = Decoder{}
	if len(entries) == 0 {
		return nil
	}

	var seen [NumSymbols]bool
	var minSize, maxSize byte
	for index, entry := range entries {
		symbol, hc := entry.Symbol, entry.Code
		if symbol < 0 || symbol > MaxSymbol {
			return fmt.Errorf("invalid symbol %d", symbol)
		}
		if seen[symbol] {
			return fmt.Errorf("symbol %d listed more than once", symbol)
		}
		seen[symbol] = true

		if hc.Size == 0 {
			return fmt.Errorf("symbol %d has a zero-length code", symbol)
		}
		if hc.Size > MaxCodeSize {
			return fmt.Errorf("invalid bit length for symbol %d: got %d, max %d", symbol, hc.Size, MaxCodeSize)
		}
		if hc.Size < MaxCodeSize && (hc.Bits>>hc.Size) != 0 {
			return fmt.Errorf("code for symbol %d has bits set beyond its length", symbol)
		}

		if index == 0 {
			minSize = hc.Size
			maxSize = hc.Size
		} else if minSize > hc.Size {
			minSize = hc.Size
		} else if maxSize < hc.Size {
			maxSize = hc.Size
		}
	}

	// len(table) is at most one slot per prefix of every code.
	numTableSlots := len(entries) * int(maxSize)
	if numTableSlots > 4096 {
		numTableSlots = 4096
	}

	table := make(map[Code]decoderData, numTableSlots)
	for _, entry := range entries {
		if err := fillTable(table, entry.Symbol, entry.Code); err != nil {
			return err
		}
	}

	*d = Decoder{
		table:   table,
		entries: make([]SymbolCode, len(entries)),
		minSize: minSize,
		maxSize: maxSize,
	}
	copy(d.entries, entries)
	return nil
}

// Decode attempts to decode a sequence of bits into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize
// == hc.Size.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and at
// least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails because hc is not the prefix of any code, symbol ==
// InvalidSymbol and minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// Len returns the number of symbols in the code.
func (d Decoder) Len() int {
	return len(d.entries)
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() byte {
	return d.maxSize
}

// Entries returns a copy of the list used to initialize this Decoder.
func (d Decoder) Entries() []SymbolCode {
	out := make([]SymbolCode, len(d.entries))
	copy(out, d.entries)
	return out
}

// String returns a brief description of this Decoder.
func (d Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", len(d.entries), d.minSize, d.maxSize)
}

var _ fmt.Stringer = Decoder{}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) error {
	// Every proper prefix of hc must be unclaimed or an interior path, and
	// hc itself must not already be a code or the prefix of one.

	if _, found := table[hc]; found {
		return fmt.Errorf("code %s for symbol %d is not prefix-free", hc, symbol)
	}
	for n := byte(1); n < hc.Size; n++ {
		if dd, found := table[hc.Prefix(n)]; found && dd.symbol != InvalidSymbol {
			return fmt.Errorf("code %s for symbol %d extends the code of symbol %d", hc, symbol, dd.symbol)
		}
	}

	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		sibling := Code{Size: hc.Size, Bits: hc.Bits ^ 1}

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxa" to "...xxx".

		hc = Code{Size: hc.Size - 1, Bits: hc.Bits >> 1}

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
	return nil
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
