package source

import (
	"encoding/json"
	"iter"
	"os"

	"github.com/paulmach/orb/geojson"

	"github.com/maproom/mafe/internal/proj"
)

// geojsonDefaultSRID is assumed when a geojson source omits its SRID,
// per RFC 7946.
const geojsonDefaultSRID = 4326

// GeoJSON reads a whole feature collection from a file at init time.
type GeoJSON struct {
	attrs
	fc         *geojson.FeatureCollection
	projection proj.Projection
}

// NewGeoJSON loads the feature collection at path. sourceSRID zero
// defaults to 4326.
func NewGeoJSON(path string, sourceSRID, targetSRID int64) (*GeoJSON, error) {
	if sourceSRID == 0 {
		sourceSRID = geojsonDefaultSRID
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	// Distinguish malformed JSON from well-formed JSON of the wrong
	// shape: the latter is a feature-collection error.
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}
	if probe.Type != "FeatureCollection" {
		return nil, ErrNotAFeatureCollection.New(path)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	projection, err := proj.For(sourceSRID, targetSRID)
	if err != nil {
		return nil, ErrSourceInit.New(err.Error())
	}

	return &GeoJSON{fc: fc, projection: projection}, nil
}

// Iterate yields the collection's features in file order.
func (g *GeoJSON) Iterate() iter.Seq[*geojson.Feature] {
	return func(yield func(*geojson.Feature) bool) {
		for _, f := range g.fc.Features {
			if !yield(f) {
				return
			}
		}
	}
}

func (g *GeoJSON) Projection() proj.Projection {
	return g.projection
}
