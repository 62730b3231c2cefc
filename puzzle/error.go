package puzzle

import (
	"fmt"
)

/*

Errors

*/

// An Error describes a problem with a grid or a requested
// operation.  It can produce an error message in English, but it
// mainly exists so callers can dispatch on what went wrong without
// parsing message strings.  It tells the caller "this input failed
// this way" and provides supplemental details about the input.
//
// Every Error is JSON-serializable so it can be stored or returned
// to remote clients along with the grids it refers to.
type Error struct {
	Kind      ErrorKind      `json:"kind"`
	Attribute ErrorAttribute `json:"attribute,omitempty"`
	Values    ErrorData      `json:"values,omitempty"`
	Message   string         `json:"message,omitempty"` // custom message
}

// The ErrorKind is the way the operation failed.  Every failure an
// operation can report is one of these kinds; none of them are
// used for ordinary control flow.
type ErrorKind int

// Constants for the various error kinds.
const (
	UnknownKind ErrorKind = iota
	OutOfRangeKind
	InvalidCharacterKind
	NotASingleCharacterKind
	InvalidSizeKind
	IllegalMoveKind
	MaxKind
)

// An ErrorAttribute names the input that has a problem.
type ErrorAttribute int

// Constants for the various attribute codes.
const (
	UnknownAttribute ErrorAttribute = iota
	RowAttribute
	ColumnAttribute
	BoxRowAttribute
	BoxColumnAttribute
	SymbolAttribute
	BoxSizeAttribute
	CellsAttribute
	AmountAttribute
	MaxAttribute
)

// The ErrorData provides details about the input that failed (such
// as the supplied value) as well as the predicate it failed (such
// as the allowed bounds).
//
// Every item in an ErrorData is required to be JSON-serializable.
// Sadly, there is no good way to express this condition in a way
// the compiler can check, so we rely on the error constructors
// below to "do the right thing".
type ErrorData []interface{}

// attributeNames are the human-readable forms of the attribute
// codes, used when verbalizing an Error.
var attributeNames = []string{
	"<unknown attribute>",
	"Row",
	"Column",
	"Box row",
	"Box column",
	"Symbol",
	"Box size",
	"Cells",
	"Amount",
}

// Return an error string from an Error.  If the Error has a
// pre-canned message, this will use it, otherwise it will produce
// an appropriate (English, non-localized) message.
func (e Error) Error() string {
	if len(e.Message) > 0 {
		return e.Message
	}
	values := e.Values
	nextVal := func() interface{} {
		if len(values) == 0 {
			return "<unknown>"
		}
		val := values[0]
		values = values[1:]
		return val
	}
	attr := "<unknown attribute>"
	if e.Attribute > UnknownAttribute && e.Attribute < MaxAttribute {
		attr = attributeNames[e.Attribute]
	}
	switch e.Kind {
	case OutOfRangeKind:
		return fmt.Sprintf("Out of range: %s (%v): must be between %v and %v",
			attr, nextVal(), nextVal(), nextVal())
	case InvalidCharacterKind:
		return fmt.Sprintf("Invalid character: %v is not in the grid's alphabet (%v)",
			nextVal(), nextVal())
	case NotASingleCharacterKind:
		return fmt.Sprintf("Not a single character: got %q", nextVal())
	case InvalidSizeKind:
		return fmt.Sprintf("Invalid size: box size must be between %v and %v, got %v",
			MinBoxSize, MaxBoxSize, nextVal())
	case IllegalMoveKind:
		return fmt.Sprintf("Illegal move: %v at column %v, row %v "+
			"duplicates a symbol in its row, column, or box",
			nextVal(), nextVal(), nextVal())
	default:
		return fmt.Sprintf("Unknown error: supplemental data is %v", values)
	}
}

/*

Error constructors, so the operations all report failures the same
way.

*/

// rangeError returns an Error that describes an out-of-range
// coordinate or count.
func rangeError(attr ErrorAttribute, val, min, max int) Error {
	return Error{
		Kind:      OutOfRangeKind,
		Attribute: attr,
		Values:    ErrorData{val, min, max},
	}
}

// symbolError returns an Error for a symbol that isn't in the
// grid's alphabet.
func symbolError(sym Symbol, alphabet Alphabet) Error {
	return Error{
		Kind:      InvalidCharacterKind,
		Attribute: SymbolAttribute,
		Values:    ErrorData{string(byte(sym)), alphabet.String()},
	}
}

// tokenError returns an Error for a symbol token that isn't
// exactly one character.
func tokenError(token string) Error {
	return Error{
		Kind:      NotASingleCharacterKind,
		Attribute: SymbolAttribute,
		Values:    ErrorData{token},
	}
}

// sizeError returns an Error for a box size outside the allowed
// bounds.
func sizeError(size int) Error {
	return Error{
		Kind:      InvalidSizeKind,
		Attribute: BoxSizeAttribute,
		Values:    ErrorData{size},
	}
}

// moveError returns an Error for a checked write that would
// duplicate a symbol in the target cell's row, column, or box.
func moveError(sym Symbol, col, row int) Error {
	return Error{
		Kind:      IllegalMoveKind,
		Attribute: SymbolAttribute,
		Values:    ErrorData{string(byte(sym)), col, row},
	}
}
