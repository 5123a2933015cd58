package eval

import (
	"github.com/paulmach/orb/geojson"

	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/source"
)

// Resolve reduces a value to a literal against a feature context.
// Literals are themselves; function calls resolve their arguments then
// invoke the built-in; data bindings either recurse into their inline
// value or read the feature attribute through the source.
func Resolve(src source.Source, f *geojson.Feature, v ast.Value) (ast.Literal, error) {
	switch v.Kind {
	case ast.LitValue:
		return v.Lit, nil
	case ast.FnValue:
		fn, err := Lookup(v.Fn.Name)
		if err != nil {
			return ast.Literal{}, err
		}
		args := make([]ast.Literal, len(v.Fn.Args))
		for i, arg := range v.Fn.Args {
			lit, err := Resolve(src, f, arg)
			if err != nil {
				return ast.Literal{}, err
			}
			args[i] = lit
		}
		return fn.Call(args)
	case ast.DataValue:
		ctor := v.Data.Constructor
		switch ctor.Kind {
		case ast.ValConstructor:
			return Resolve(src, f, *ctor.Val)
		case ast.SelectConstructor:
			return src.Select(*ctor.Select, f)
		default:
			return ast.Literal{}, ErrResolve.New("unknown constructor for " + v.Data.Ident)
		}
	default:
		return ast.Literal{}, ErrResolve.New("unknown value kind")
	}
}

// ResolveFloat resolves a value and requires a number, promoted to
// float.
func ResolveFloat(src source.Source, f *geojson.Feature, v ast.Value) (float64, error) {
	lit, err := Resolve(src, f, v)
	if err != nil {
		return 0, err
	}
	n, ok := lit.AsFloat()
	if !ok {
		return 0, ErrConversion.New()
	}
	return n, nil
}

// ResolveString resolves a value and requires a string literal.
func ResolveString(src source.Source, f *geojson.Feature, v ast.Value) (string, error) {
	lit, err := Resolve(src, f, v)
	if err != nil {
		return "", err
	}
	s, ok := lit.AsString()
	if !ok {
		return "", ErrConversion.New()
	}
	return s, nil
}
