package pipeline

import (
	log "github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/geom"
	"github.com/maproom/mafe/internal/op"
	"github.com/maproom/mafe/internal/source"
	"github.com/maproom/mafe/internal/sym"
)

var (
	// ErrMissingSrid is returned when the map block declares no srid.
	ErrMissingSrid = errors.NewKind("map block has no srid directive")

	// ErrMissingExtent is returned when the map block declares no
	// extent.
	ErrMissingExtent = errors.NewKind("map block has no extent directive")

	// ErrMissingSource is returned when a layer declares no source.
	ErrMissingSource = errors.NewKind("layer %d has no source directive")

	// ErrDuplicateSource is returned when a layer declares more than
	// one source.
	ErrDuplicateSource = errors.NewKind("layer %d has %d source directives, wants one")
)

// RunMap compiles a parsed spec into the final op stream: layers in
// declaration order, each contributing its ops in full before the
// next.
//
// The extent is validated as present but not consumed here; only the
// outer view transform reads it.
func RunMap(spec *ast.MapSpec) (op.List, error) {
	srid, ok := spec.Map.Srid()
	if !ok {
		return nil, ErrMissingSrid.New()
	}
	if _, ok := spec.Map.Extent(); !ok {
		return nil, ErrMissingExtent.New()
	}

	var ops op.List
	for i, layer := range spec.Layers {
		layerOps, err := RunLayer(i, layer, srid)
		if err != nil {
			return nil, err
		}
		ops = append(ops, layerOps...)
	}
	return ops, nil
}

// RunLayer compiles one layer: it builds the layer's source, then walks
// features in iteration order and sym rules in declaration order.
// Failures scoped to a (feature, sym) pair drop that pair's ops and
// carry on; anything wider aborts the layer.
func RunLayer(index int, layer ast.LayerBlock, targetSRID int64) (op.List, error) {
	specs := layer.Sources()
	switch {
	case len(specs) == 0:
		return nil, ErrMissingSource.New(index)
	case len(specs) > 1:
		return nil, ErrDuplicateSource.New(index, len(specs))
	}

	src, err := source.New(*specs[0], targetSRID)
	if err != nil {
		return nil, err
	}

	syms := layer.Syms()
	projection := src.Projection()
	logger := log.WithField("layer", index)

	var ops op.List
	features, skipped := 0, 0
	for f := range src.Iterate() {
		features++
		if f == nil || f.Geometry == nil {
			skipped++
			continue
		}
		projected := geom.Project(f.Geometry, projection)
		for _, s := range syms {
			symOps, err := sym.Exec(s, src, f, projected)
			if err != nil {
				// Scoped to this feature and this sym: drop its ops,
				// keep going.
				logger.WithError(err).Debug("sym dropped for feature")
				skipped++
				continue
			}
			ops = append(ops, symOps...)
		}
	}

	logger.WithFields(log.Fields{
		"features": features,
		"skipped":  skipped,
		"ops":      len(ops),
	}).Debug("layer done")

	return ops, nil
}
