package source

import (
	"fmt"
	"iter"
	"math"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cast"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/proj"
)

var (
	// ErrSourceInit is returned when a driver cannot be constructed.
	ErrSourceInit = errors.NewKind("source init: %s")

	// ErrNotAFeatureCollection is returned when a GeoJSON input is
	// valid JSON but not a feature collection.
	ErrNotAFeatureCollection = errors.NewKind("not a feature collection: %s")

	// ErrSelect is returned when a feature attribute is missing or its
	// runtime type does not match the declared datatype.
	ErrSelect = errors.NewKind("select: %s")
)

// Source is the uniform surface every driver exposes: an ordered
// feature sequence, a projection into the target CRS, and typed
// attribute selection.
type Source interface {
	// Iterate yields the source's features in iteration order.
	Iterate() iter.Seq[*geojson.Feature]

	// Projection maps coordinates from the source CRS to the target
	// CRS.
	Projection() proj.Projection

	// Select reads a feature attribute as a typed literal.
	Select(sel ast.Select, f *geojson.Feature) (ast.Literal, error)
}

// New builds the driver a source directive names. A missing SRID
// defaults per driver; a fractional SRID is an init error.
func New(spec ast.Source, targetSRID int64) (Source, error) {
	srid, err := sridOf(spec)
	if err != nil {
		return nil, err
	}
	switch spec.Driver {
	case ast.GeojsonDriver:
		return NewGeoJSON(spec.Path, srid, targetSRID)
	case ast.ShapefileDriver:
		return NewShapefile(spec.Path, srid, targetSRID)
	case ast.PostgisDriver:
		return NewPostgis(spec.Path, srid, targetSRID)
	default:
		return nil, ErrSourceInit.New(fmt.Sprintf("unknown driver %v", spec.Driver))
	}
}

// sridOf validates the optional SRID of a source directive. Zero means
// "use the driver default".
func sridOf(spec ast.Source) (int64, error) {
	if spec.SRID == nil {
		return 0, nil
	}
	n, ok := spec.SRID.AsInt()
	if !ok {
		return 0, ErrSourceInit.New(fmt.Sprintf("srid should be an integer, got the float %v", spec.SRID))
	}
	return n, nil
}

// attrs implements Select over GeoJSON-style feature properties; every
// driver embeds it.
type attrs struct{}

func (attrs) Select(sel ast.Select, f *geojson.Feature) (ast.Literal, error) {
	return Select(sel, f)
}

// Select reads a feature attribute as a typed literal, verifying the
// declared datatype against the runtime kind. Nil is a wildcard.
func Select(sel ast.Select, f *geojson.Feature) (ast.Literal, error) {
	if f == nil || f.Properties == nil {
		return ast.Literal{}, ErrSelect.New("missing properties")
	}
	raw, ok := f.Properties[sel.Selector]
	if !ok {
		return ast.Literal{}, ErrSelect.New("no property " + sel.Selector)
	}
	lit, ok := PropertyLiteral(raw)
	if !ok {
		return ast.Literal{}, ErrSelect.New(fmt.Sprintf("failed to convert property %s (%T)", sel.Selector, raw))
	}
	if !sel.Datatype.Matches(lit.Kind) {
		return ast.Literal{}, ErrSelect.New(fmt.Sprintf("property %s is %v, declared %v", sel.Selector, lit.Kind, sel.Datatype))
	}
	return lit, nil
}

// PropertyLiteral converts a JSON-ish property value to a literal. A
// float with no fractional part becomes an integer, matching how
// integer attributes round-trip through JSON decoding.
func PropertyLiteral(v any) (ast.Literal, bool) {
	switch t := v.(type) {
	case nil:
		return ast.Nil(), true
	case bool:
		return ast.Boolean(t), true
	case string:
		return ast.String(t), true
	case float64:
		if math.Trunc(t) == t && !math.IsInf(t, 0) {
			return ast.IntegerLit(int64(t)), true
		}
		return ast.FloatLit(t), true
	case float32:
		return PropertyLiteral(float64(t))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToInt64E(t)
		if err != nil {
			return ast.Literal{}, false
		}
		return ast.IntegerLit(n), true
	default:
		return ast.Literal{}, false
	}
}
