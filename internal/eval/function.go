package eval

import (
	"fmt"
	"strings"

	"github.com/maproom/mafe/internal/ast"
)

// Function is a built-in callable over resolved literals.
type Function interface {
	Call(args []ast.Literal) (ast.Literal, error)
}

// Lookup finds a built-in by name.
func Lookup(name string) (Function, error) {
	switch name {
	case "rgb":
		return rgbFunc{}, nil
	case "concat":
		return concatFunc{}, nil
	default:
		return nil, ErrFunctionNotFound.New(name)
	}
}

// rgbFunc formats three integer components as a #RRGGBB color string.
type rgbFunc struct{}

func (rgbFunc) Call(args []ast.Literal) (ast.Literal, error) {
	if len(args) != 3 {
		return ast.Literal{}, ErrFunctionArg.New(fmt.Sprintf("rgb wants 3 arguments, got %d", len(args)))
	}
	var c [3]int64
	for i, arg := range args {
		n, ok := arg.AsInt()
		if !ok {
			return ast.Literal{}, ErrConversion.New()
		}
		c[i] = n
	}
	return ast.String(fmt.Sprintf("#%02X%02X%02X", c[0], c[1], c[2])), nil
}

// concatFunc joins the display representations of its arguments.
type concatFunc struct{}

func (concatFunc) Call(args []ast.Literal) (ast.Literal, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(arg.String())
	}
	return ast.String(b.String()), nil
}
