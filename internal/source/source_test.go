package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maproom/mafe/internal/ast"
)

const benchCollection = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [1.0, 2.0]},
      "properties": {"amenity": "bench", "height": 12, "public": true}
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [3.0, 4.0]},
      "properties": {"amenity": "chair", "height": 7.5, "note": null}
    }
  ]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func collect(t *testing.T, src Source) []*geojson.Feature {
	t.Helper()
	var out []*geojson.Feature
	for f := range src.Iterate() {
		out = append(out, f)
	}
	return out
}

func TestGeoJSON_IterationOrder(t *testing.T) {
	path := writeTemp(t, "fc.json", benchCollection)
	src, err := NewGeoJSON(path, 0, 4326)
	require.NoError(t, err)

	var kinds []string
	for _, f := range collect(t, src) {
		kinds = append(kinds, f.Properties.MustString("amenity"))
	}
	assert.Equal(t, []string{"bench", "chair"}, kinds)
}

func TestGeoJSON_DefaultSridIs4326(t *testing.T) {
	path := writeTemp(t, "fc.json", benchCollection)
	src, err := NewGeoJSON(path, 0, 3857)
	require.NoError(t, err)

	// 4326 -> 3857 is not the identity: the projection must move a
	// non-origin point.
	p := src.Projection()(orb.Point{10, 10})
	assert.NotEqual(t, orb.Point{10, 10}, p)
}

func TestGeoJSON_NotAFeatureCollection(t *testing.T) {
	path := writeTemp(t, "geom.json", `{"type": "Point", "coordinates": [0, 0]}`)
	_, err := NewGeoJSON(path, 0, 4326)
	require.Error(t, err)
	assert.True(t, ErrNotAFeatureCollection.Is(err))
}

func TestGeoJSON_MalformedJSON(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"type": `)
	_, err := NewGeoJSON(path, 0, 4326)
	require.Error(t, err)
	assert.True(t, ErrSourceInit.Is(err))
}

func TestGeoJSON_MissingFile(t *testing.T) {
	_, err := NewGeoJSON(filepath.Join(t.TempDir(), "absent.json"), 0, 4326)
	require.Error(t, err)
	assert.True(t, ErrSourceInit.Is(err))
}

func TestSelect_TypedRead(t *testing.T) {
	path := writeTemp(t, "fc.json", benchCollection)
	src, err := NewGeoJSON(path, 0, 4326)
	require.NoError(t, err)
	bench := collect(t, src)[0]

	lit, err := src.Select(ast.Select{Selector: "amenity", Datatype: ast.StringType}, bench)
	require.NoError(t, err)
	assert.Equal(t, ast.String("bench"), lit)

	lit, err = src.Select(ast.Select{Selector: "height", Datatype: ast.NumberType}, bench)
	require.NoError(t, err)
	assert.Equal(t, ast.IntegerLit(12), lit)

	lit, err = src.Select(ast.Select{Selector: "public", Datatype: ast.BooleanType}, bench)
	require.NoError(t, err)
	assert.Equal(t, ast.Boolean(true), lit)
}

func TestSelect_TypeMismatch(t *testing.T) {
	path := writeTemp(t, "fc.json", benchCollection)
	src, err := NewGeoJSON(path, 0, 4326)
	require.NoError(t, err)
	bench := collect(t, src)[0]

	_, err = src.Select(ast.Select{Selector: "amenity", Datatype: ast.NumberType}, bench)
	require.Error(t, err)
	assert.True(t, ErrSelect.Is(err))
}

func TestSelect_NilIsWildcard(t *testing.T) {
	path := writeTemp(t, "fc.json", benchCollection)
	src, err := NewGeoJSON(path, 0, 4326)
	require.NoError(t, err)
	chair := collect(t, src)[1]

	lit, err := src.Select(ast.Select{Selector: "note", Datatype: ast.StringType}, chair)
	require.NoError(t, err)
	assert.Equal(t, ast.Nil(), lit)

	lit, err = src.Select(ast.Select{Selector: "note", Datatype: ast.NumberType}, chair)
	require.NoError(t, err)
	assert.Equal(t, ast.Nil(), lit)
}

func TestSelect_MissingPropertyAndProperties(t *testing.T) {
	f := geojson.NewFeature(orb.Point{0, 0})
	f.Properties["amenity"] = "bench"

	_, err := Select(ast.Select{Selector: "absent", Datatype: ast.StringType}, f)
	require.Error(t, err)
	assert.True(t, ErrSelect.Is(err))

	f.Properties = nil
	_, err = Select(ast.Select{Selector: "amenity", Datatype: ast.StringType}, f)
	require.Error(t, err)
	assert.True(t, ErrSelect.Is(err))
}

func TestPropertyLiteral_NumberNarrowing(t *testing.T) {
	lit, ok := PropertyLiteral(12.0)
	require.True(t, ok)
	assert.Equal(t, ast.IntegerLit(12), lit)

	lit, ok = PropertyLiteral(7.5)
	require.True(t, ok)
	assert.Equal(t, ast.FloatLit(7.5), lit)

	lit, ok = PropertyLiteral(int64(3))
	require.True(t, ok)
	assert.Equal(t, ast.IntegerLit(3), lit)

	_, ok = PropertyLiteral([]any{1, 2})
	assert.False(t, ok)
}

func TestNew_FractionalSridFails(t *testing.T) {
	path := writeTemp(t, "fc.json", benchCollection)
	srid := ast.Float(4326.5)
	_, err := New(ast.Source{Driver: ast.GeojsonDriver, Path: path, SRID: &srid}, 3857)
	require.Error(t, err)
	assert.True(t, ErrSourceInit.Is(err))
}

func TestPostgis_PathWantsTable(t *testing.T) {
	_, err := NewPostgis("host=localhost dbname=gis", 0, 3857)
	require.Error(t, err)
	assert.True(t, ErrSourceInit.Is(err))
}
