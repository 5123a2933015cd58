package source

import (
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShapeGeometry_Point(t *testing.T) {
	g := shapeGeometry(&shp.Point{X: 3, Y: 4})
	assert.Equal(t, orb.Point{3, 4}, g)
}

func TestShapeGeometry_SinglePartPolyLine(t *testing.T) {
	line := &shp.PolyLine{
		Parts:  []int32{0},
		Points: []shp.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}},
	}
	g := shapeGeometry(line)
	ls, ok := g.(orb.LineString)
	require.True(t, ok, "expected a linestring, got %T", g)
	assert.Len(t, ls, 3)
	assert.Equal(t, orb.Point{2, 0}, ls[2])
}

func TestShapeGeometry_MultiPartPolygon(t *testing.T) {
	poly := &shp.Polygon{
		Parts: []int32{0, 4},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 0},
			{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}, {X: 1, Y: 1},
		},
	}
	g := shapeGeometry(poly)
	p, ok := g.(orb.Polygon)
	require.True(t, ok, "expected a polygon, got %T", g)
	require.Len(t, p, 2)
	assert.Len(t, p[0], 4)
	assert.Len(t, p[1], 4)
	assert.Equal(t, orb.Point{1, 1}, p[1][0])
}

func TestAttributeValue_Narrowing(t *testing.T) {
	assert.Nil(t, attributeValue("   "))
	assert.Equal(t, float64(12), attributeValue("12"))
	assert.Equal(t, 7.5, attributeValue("7.5"))
	assert.Equal(t, true, attributeValue("true"))
	assert.Equal(t, "bench", attributeValue("bench"))
}
