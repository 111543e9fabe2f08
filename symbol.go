package huffpack

// Symbol represents one byte of input.  Negative symbols are not valid.
type Symbol int16

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(255)

// NumSymbols is the size of the byte alphabet.
const NumSymbols = int(MaxSymbol) + 1

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)
