// Package mafe compiles a declarative map-styling specification into an
// ordered stream of 2D drawing operations.
package mafe

import (
	"encoding/json"
	"image"
	"io"

	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/dsl"
	"github.com/maproom/mafe/internal/label"
	"github.com/maproom/mafe/internal/op"
	"github.com/maproom/mafe/internal/pipeline"
	"github.com/maproom/mafe/internal/render"
)

type (
	MapSpec = ast.MapSpec
	Extent  = ast.Extent
	Op      = op.Op
	OpList  = op.List
	Point   = op.Point
)

// Parse reads a map specification.
func Parse(r io.Reader) (*MapSpec, error) {
	return dsl.Parse(r)
}

// ParseString parses a map specification held in memory.
func ParseString(input string) (*MapSpec, error) {
	return dsl.ParseString(input)
}

// ParseFile parses the map specification at path.
func ParseFile(path string) (*MapSpec, error) {
	return dsl.ParseFile(path)
}

// Run compiles a parsed specification into its op stream.
func Run(spec *MapSpec) (OpList, error) {
	return pipeline.RunMap(spec)
}

// RunFile parses and compiles the specification at path.
func RunFile(path string) (OpList, error) {
	spec, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Run(spec)
}

// PlaceLabels nudges overlapping label ops apart; seed fixes the
// optimization walk.
func PlaceLabels(ops OpList, seed int64) OpList {
	return label.DefaultPlacer(seed).Place(ops)
}

// Frame wraps ops in the view transform for a width x height canvas
// showing extent.
func Frame(extent Extent, width, height float64, ops OpList) OpList {
	return render.Frame(extent, width, height, ops)
}

// RenderImage draws framed ops onto a fresh canvas.
func RenderImage(ops OpList, width, height int) image.Image {
	return render.PNG(ops, width, height)
}

// MarshalOpsJSON serializes an op stream as tagged records.
func MarshalOpsJSON(ops OpList) ([]byte, error) {
	return json.Marshal(ops)
}

// UnmarshalOpsJSON decodes an op stream serialized by MarshalOpsJSON.
func UnmarshalOpsJSON(data []byte) (OpList, error) {
	var ops OpList
	if err := json.Unmarshal(data, &ops); err != nil {
		return nil, err
	}
	return ops, nil
}
