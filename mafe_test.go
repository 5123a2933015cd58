package mafe

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	fc := filepath.Join(dir, "fc.json")
	require.NoError(t, os.WriteFile(fc, []byte(`{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [2.0, 2.0]},
      "properties": {"amenity": "bench"}
    }
  ]
}`), 0o644))

	mapFile := filepath.Join(dir, "benches.map")
	require.NoError(t, os.WriteFile(mapFile, []byte(fmt.Sprintf(`map
srid 4326
extent 0 0 10 10
data red rgb(255, 30, 0)

layer
source geojson %q 4326
data kind select "amenity" string
sym kind = "bench" -> circle 2 -> fill red -> label kind
`, fc)), 0o644))

	ops, err := RunFile(mapFile)
	require.NoError(t, err)
	require.NotEmpty(t, ops)

	// circle 2: start, move, 20 lines, close; then fill and label.
	assert.Len(t, ops, 25)
	assert.Equal(t, "#FF1E00", ops[23].Color)
	assert.Equal(t, "bench", ops[24].Text)

	// The op stream survives JSON.
	data, err := MarshalOpsJSON(ops)
	require.NoError(t, err)
	decoded, err := UnmarshalOpsJSON(data)
	require.NoError(t, err)
	assert.Equal(t, ops, decoded)

	// Framed and rendered onto a canvas.
	spec, err := ParseFile(mapFile)
	require.NoError(t, err)
	extent, ok := spec.Map.Extent()
	require.True(t, ok)

	framed := Frame(*extent, 200, 200, ops)
	img := RenderImage(framed, 200, 200)
	bounds := img.Bounds()
	assert.Equal(t, 200, bounds.Dx())
	assert.Equal(t, 200, bounds.Dy())
}

func TestRunFile_ParseErrorSurfaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.map")
	require.NoError(t, os.WriteFile(path, []byte("map\nsrid nope\n"), 0o644))

	_, err := RunFile(path)
	assert.Error(t, err)
}
