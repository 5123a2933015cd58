package dsl

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrParse wraps a lexical or grammar mismatch from the
	// combinator engine.
	ErrParse = errors.NewKind("parse: %s")

	// ErrDataNotInScope is returned when a value references an
	// identifier with no data directive in lexical scope.
	ErrDataNotInScope = errors.NewKind("data not in scope: %q at %s")

	// ErrUnknownPredicate is returned for an unrecognized comparison
	// operator.
	ErrUnknownPredicate = errors.NewKind("unknown predicate: %q")

	// ErrUnknownPredicateGrouping is returned for an unrecognized
	// group operator.
	ErrUnknownPredicateGrouping = errors.NewKind("unknown predicate grouping: %q")

	// ErrMysterious flags states the grammar should make unreachable.
	ErrMysterious = errors.NewKind("something bad happened: %s")
)

// window is how many bytes of offending input a syntax error shows.
const window = 24

// enrichSyntaxError rewraps a participle error with the byte offset and
// a short slice of the input around it.
func enrichSyntaxError(input string, err error) error {
	perr, ok := err.(participle.Error)
	if !ok {
		return ErrParse.New(err.Error())
	}
	pos := perr.Position()
	end := pos.Offset + window
	if end > len(input) {
		end = len(input)
	}
	start := pos.Offset
	if start > len(input) {
		start = len(input)
	}
	return ErrParse.New(fmt.Sprintf("%s at offset %d near %q", perr.Message(), pos.Offset, input[start:end]))
}
