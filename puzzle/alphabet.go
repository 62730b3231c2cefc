package puzzle

/*

Symbols and alphabets

*/

// A Symbol is the content of one grid cell.  Every usable symbol
// is a single ASCII character, so Symbol is a byte.
type Symbol byte

// Empty marks a cell with no symbol in it.  It is never a member
// of any alphabet.
const Empty Symbol = '#'

// An Alphabet is the ordered set of symbols usable in a grid of
// one box size: the first size-squared entries of the shared
// symbol table.  Alphabets are read-only views of that table.
type Alphabet []Symbol

// Bounds on the box size.  The lower bound is the smallest size
// with any freedom of choice; the upper bound matches the range
// the generation algorithm is known to handle.
const (
	MinBoxSize = 2
	MaxBoxSize = 7
)

// availableSymbols is the full ordered symbol table: digits, then
// uppercase letters, then lowercase letters, then three extras.
// The order is fixed because an alphabet is a prefix of it.
var availableSymbols = []Symbol(
	"123456789" +
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyz" +
		"?&!")

// alphabetForSize returns the alphabet for a grid of the given box
// size, or an invalid-size Error when the size is out of bounds.
func alphabetForSize(size int) (Alphabet, error) {
	if size < MinBoxSize || size > MaxBoxSize {
		return nil, sizeError(size)
	}
	return Alphabet(availableSymbols[:size*size]), nil
}

// Contains reports whether the symbol is a member of the alphabet.
func (a Alphabet) Contains(sym Symbol) bool {
	for _, member := range a {
		if member == sym {
			return true
		}
	}
	return false
}

// String returns the alphabet's symbols as one string.
func (a Alphabet) String() string {
	bytes := make([]byte, len(a))
	for i, sym := range a {
		bytes[i] = byte(sym)
	}
	return string(bytes)
}

// ParseSymbol converts a user-supplied token into a Symbol.  The
// token must be exactly one character; membership in a particular
// grid's alphabet is checked at placement time, not here.
func ParseSymbol(token string) (Symbol, error) {
	if len(token) != 1 {
		return 0, tokenError(token)
	}
	return Symbol(token[0]), nil
}
