package proj

import (
	"math"

	"github.com/paulmach/orb"
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrUnsupported is returned when no transform is known for a CRS
// pair.
var ErrUnsupported = errors.NewKind("no projection from srid %d to srid %d")

const earthRadius = 6378137.0

// Projection maps a coordinate from a source CRS to a target CRS.
type Projection func(orb.Point) orb.Point

// For returns the projection between two SRIDs. Identity when they are
// equal; EPSG:4326 and EPSG:3857 convert through the spherical-mercator
// formulas; any other pair is unsupported.
func For(sourceSRID, targetSRID int64) (Projection, error) {
	switch {
	case sourceSRID == targetSRID:
		return identity, nil
	case sourceSRID == 4326 && targetSRID == 3857:
		return lonLatToMercator, nil
	case sourceSRID == 3857 && targetSRID == 4326:
		return mercatorToLonLat, nil
	default:
		return nil, ErrUnsupported.New(sourceSRID, targetSRID)
	}
}

func identity(p orb.Point) orb.Point {
	return p
}

func lonLatToMercator(p orb.Point) orb.Point {
	x := earthRadius * p[0] * math.Pi / 180
	lat := p[1]
	if lat > 89.9 {
		lat = 89.9
	} else if lat < -89.9 {
		lat = -89.9
	}
	y := earthRadius * math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))
	return orb.Point{x, y}
}

func mercatorToLonLat(p orb.Point) orb.Point {
	lon := p[0] / earthRadius * 180 / math.Pi
	lat := (2*math.Atan(math.Exp(p[1]/earthRadius)) - math.Pi/2) * 180 / math.Pi
	return orb.Point{lon, lat}
}
