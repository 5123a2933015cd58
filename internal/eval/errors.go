package eval

import errors "gopkg.in/src-d/go-errors.v1"

var (
	// ErrFunctionNotFound is returned for a call to an unregistered
	// built-in.
	ErrFunctionNotFound = errors.NewKind("function not found: %s")

	// ErrFunctionArg is returned when the arguments of a call do not
	// fit the built-in's shape.
	ErrFunctionArg = errors.NewKind("function argument: %s")

	// ErrFunctionFail is returned when a built-in fails at runtime.
	ErrFunctionFail = errors.NewKind("function failed: %s")

	// ErrResolve flags a value that cannot be reduced to a literal.
	ErrResolve = errors.NewKind("resolve: %s")

	// ErrConversion is returned when a literal is not of the kind an
	// operation needs, including ordering between incomparable kinds.
	ErrConversion = errors.NewKind("conversion failed")
)
