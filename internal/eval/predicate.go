package eval

import (
	"github.com/paulmach/orb/geojson"

	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/source"
)

// Predicate evaluates one comparison. Equality across literal kinds is
// false, not an error; ordering across kinds fails with a conversion
// error.
func Predicate(src source.Source, f *geojson.Feature, p ast.Predicate) (bool, error) {
	left, err := Resolve(src, f, p.Left)
	if err != nil {
		return false, err
	}
	right, err := Resolve(src, f, p.Right)
	if err != nil {
		return false, err
	}

	switch p.Op {
	case ast.Equal:
		return left.Equal(right), nil
	case ast.NotEqual:
		return !left.Equal(right), nil
	}

	ord, ok := left.Cmp(right)
	if !ok {
		return false, ErrConversion.New()
	}
	switch p.Op {
	case ast.Greater:
		return ord > 0, nil
	case ast.GreaterOrEqual:
		return ord >= 0, nil
	case ast.Lesser:
		return ord < 0, nil
	case ast.LesserOrEqual:
		return ord <= 0, nil
	default:
		return false, ErrResolve.New("unknown predicate operator")
	}
}

// PredGroup evaluates a predicate tree. The empty group is false. AND
// and OR short-circuit: an attribute miss on the right side cannot fail
// a conjunction already decided by its left side.
func PredGroup(src source.Source, f *geojson.Feature, g ast.PredGroup) (bool, error) {
	switch g.Kind {
	case ast.EmptyGroup:
		return false, nil
	case ast.PredGroupPred:
		return Predicate(src, f, *g.Pred)
	case ast.AndGroup:
		left, err := PredGroup(src, f, *g.Left)
		if err != nil || !left {
			return false, err
		}
		return PredGroup(src, f, *g.Right)
	case ast.OrGroup:
		left, err := PredGroup(src, f, *g.Left)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return PredGroup(src, f, *g.Right)
	default:
		return false, ErrResolve.New("unknown predicate group")
	}
}
