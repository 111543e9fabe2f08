package huffpack

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable holds the number of occurrences of each Symbol in an input
// buffer.  The zero value is an empty table.
type FrequencyTable struct {
	counts [NumSymbols]uint64
	total  uint64
}

// CountFrequencies tallies every byte of data.
func CountFrequencies(data []byte) FrequencyTable {
	var ft FrequencyTable
	for _, b := range data {
		ft.counts[b]++
	}
	ft.total = uint64(len(data))
	return ft
}

// Count returns the number of occurrences of symbol.
func (ft FrequencyTable) Count(symbol Symbol) uint64 {
	if symbol < 0 || symbol > MaxSymbol {
		return 0
	}
	return ft.counts[symbol]
}

// Total returns the sum of all counts, i.e. the length of the input.
func (ft FrequencyTable) Total() uint64 {
	return ft.total
}

// Distinct returns the number of symbols with a non-zero count.
func (ft FrequencyTable) Distinct() int {
	var n int
	for _, count := range ft.counts {
		if count != 0 {
			n++
		}
	}
	return n
}

// Symbols lists the symbols with a non-zero count, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.Distinct())
	for symbol := Symbol(0); symbol <= MaxSymbol; symbol++ {
		if ft.counts[symbol] != 0 {
			out = append(out, symbol)
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the FrequencyTable to
// the given writer.
func (ft FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%d) = %d\n", symbol, ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
