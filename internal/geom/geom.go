package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/maproom/mafe/internal/proj"
)

// ErrGeometry is returned for geometries a command cannot anchor on:
// nil, empty, or an unsupported variant.
var ErrGeometry = errors.NewKind("geometry: %s")

// Centroid returns the anchor point of a geometry: a point is its own
// centroid, lines and polygons use the algebraic centroid, empty
// geometries are an error.
func Centroid(g orb.Geometry) (orb.Point, error) {
	if g == nil {
		return orb.Point{}, ErrGeometry.New("no geometry")
	}
	switch t := g.(type) {
	case orb.Point:
		return t, nil
	case orb.MultiPoint:
		if len(t) == 0 {
			return orb.Point{}, ErrGeometry.New("empty multipoint")
		}
	case orb.LineString:
		if len(t) == 0 {
			return orb.Point{}, ErrGeometry.New("empty linestring")
		}
	case orb.MultiLineString:
		if len(t) == 0 {
			return orb.Point{}, ErrGeometry.New("empty multilinestring")
		}
	case orb.Ring:
		if len(t) == 0 {
			return orb.Point{}, ErrGeometry.New("empty ring")
		}
	case orb.Polygon:
		if len(t) == 0 {
			return orb.Point{}, ErrGeometry.New("empty polygon")
		}
	case orb.MultiPolygon:
		if len(t) == 0 {
			return orb.Point{}, ErrGeometry.New("empty multipolygon")
		}
	case orb.Bound:
		return t.Center(), nil
	default:
		return orb.Point{}, ErrGeometry.New("unsupported geometry " + g.GeoJSONType())
	}
	center, _ := planar.CentroidArea(g)
	return center, nil
}

// Project applies a projection to every coordinate of a geometry,
// returning a new geometry of the same shape.
func Project(g orb.Geometry, p proj.Projection) orb.Geometry {
	if g == nil {
		return nil
	}
	switch t := g.(type) {
	case orb.Point:
		return p(t)
	case orb.MultiPoint:
		out := make(orb.MultiPoint, len(t))
		for i, pt := range t {
			out[i] = p(pt)
		}
		return out
	case orb.LineString:
		out := make(orb.LineString, len(t))
		for i, pt := range t {
			out[i] = p(pt)
		}
		return out
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(t))
		for i, ls := range t {
			out[i] = Project(ls, p).(orb.LineString)
		}
		return out
	case orb.Ring:
		out := make(orb.Ring, len(t))
		for i, pt := range t {
			out[i] = p(pt)
		}
		return out
	case orb.Polygon:
		out := make(orb.Polygon, len(t))
		for i, r := range t {
			out[i] = Project(r, p).(orb.Ring)
		}
		return out
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(t))
		for i, poly := range t {
			out[i] = Project(poly, p).(orb.Polygon)
		}
		return out
	case orb.Collection:
		out := make(orb.Collection, len(t))
		for i, sub := range t {
			out[i] = Project(sub, p)
		}
		return out
	case orb.Bound:
		return orb.Bound{Min: p(t.Min), Max: p(t.Max)}
	default:
		return g
	}
}
