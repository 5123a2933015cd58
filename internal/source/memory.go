package source

import (
	"iter"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/maproom/mafe/internal/proj"
)

// Memory is an in-memory source, used by tests and embedders that
// already hold their features.
type Memory struct {
	attrs
	Features []*geojson.Feature
	Proj     proj.Projection
}

// NewMemory wraps a feature slice with an identity projection.
func NewMemory(features ...*geojson.Feature) *Memory {
	return &Memory{Features: features, Proj: func(p orb.Point) orb.Point { return p }}
}

// Iterate yields the features in slice order.
func (m *Memory) Iterate() iter.Seq[*geojson.Feature] {
	return func(yield func(*geojson.Feature) bool) {
		for _, f := range m.Features {
			if !yield(f) {
				return
			}
		}
	}
}

func (m *Memory) Projection() proj.Projection {
	return m.Proj
}
