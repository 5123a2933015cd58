package source

import (
	"iter"
	"strconv"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/maproom/mafe/internal/proj"
)

// shapefileDefaultSRID is assumed when a shapefile source omits its
// SRID; shapefiles carry their CRS in a sidecar file the driver does
// not read.
const shapefileDefaultSRID = 4326

// Shapefile reads shapes and DBF attributes from an ESRI shapefile,
// materialized as features at init time.
type Shapefile struct {
	attrs
	features   []*geojson.Feature
	projection proj.Projection
}

// NewShapefile opens the shapefile at path and converts every record
// whose shape shapeGeometry handles; records of other shape types are
// skipped.
func NewShapefile(path string, sourceSRID, targetSRID int64) (*Shapefile, error) {
	if sourceSRID == 0 {
		sourceSRID = shapefileDefaultSRID
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}
	defer reader.Close()

	fields := reader.Fields()
	var features []*geojson.Feature
	for reader.Next() {
		row, shape := reader.Shape()
		g := shapeGeometry(shape)
		if g == nil {
			continue
		}
		f := geojson.NewFeature(g)
		for col, field := range fields {
			name := field.String()
			f.Properties[name] = attributeValue(reader.ReadAttribute(row, col))
		}
		features = append(features, f)
	}
	if err := reader.Err(); err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	projection, err := proj.For(sourceSRID, targetSRID)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	return &Shapefile{features: features, projection: projection}, nil
}

// shapeGeometry converts a shapefile record to a geometry. Parts of a
// polyline or polygon split on the part index table.
func shapeGeometry(shape shp.Shape) orb.Geometry {
	switch s := shape.(type) {
	case *shp.Point:
		return orb.Point{s.X, s.Y}
	case *shp.PointZ:
		return orb.Point{s.X, s.Y}
	case *shp.PolyLine:
		parts := splitParts(s.Points, s.Parts)
		if len(parts) == 1 {
			return lineString(parts[0])
		}
		out := make(orb.MultiLineString, len(parts))
		for i, p := range parts {
			out[i] = lineString(p)
		}
		return out
	case *shp.Polygon:
		parts := splitParts(s.Points, s.Parts)
		poly := make(orb.Polygon, len(parts))
		for i, p := range parts {
			poly[i] = orb.Ring(lineString(p))
		}
		return poly
	default:
		return nil
	}
}

func splitParts(points []shp.Point, parts []int32) [][]shp.Point {
	if len(parts) <= 1 {
		return [][]shp.Point{points}
	}
	out := make([][]shp.Point, 0, len(parts))
	for i, start := range parts {
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		out = append(out, points[start:end])
	}
	return out
}

func lineString(points []shp.Point) orb.LineString {
	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = orb.Point{p.X, p.Y}
	}
	return ls
}

// attributeValue narrows a DBF attribute string to a typed property,
// so select datatype checks behave as they do for GeoJSON sources.
func attributeValue(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return float64(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// Iterate yields the shapefile's records in file order.
func (s *Shapefile) Iterate() iter.Seq[*geojson.Feature] {
	return func(yield func(*geojson.Feature) bool) {
		for _, f := range s.features {
			if !yield(f) {
				return
			}
		}
	}
}

func (s *Shapefile) Projection() proj.Projection {
	return s.projection
}
