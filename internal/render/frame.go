package render

import (
	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/op"
)

// Frame wraps a compiled op list in a view transform so target-CRS
// coordinates land in a width x height pixel canvas: uniform scale to
// fit the extent, y flipped so north is up.
func Frame(extent ast.Extent, width, height float64, ops op.List) op.List {
	m := ViewMatrix(extent, width, height)
	framed := make(op.List, 0, len(ops)+3)
	framed = append(framed, op.Save(), op.Transform(m))
	framed = append(framed, ops...)
	framed = append(framed, op.Restore())
	return framed
}

// ViewMatrix maps the extent onto the canvas.
func ViewMatrix(extent ast.Extent, width, height float64) op.Mat2x3 {
	minx := extent.MinX.AsFloat()
	miny := extent.MinY.AsFloat()
	maxx := extent.MaxX.AsFloat()
	maxy := extent.MaxY.AsFloat()

	dx := maxx - minx
	dy := maxy - miny
	if dx <= 0 || dy <= 0 {
		return op.Identity()
	}

	scale := width / dx
	if s := height / dy; s < scale {
		scale = s
	}

	return op.Mat2x3{scale, 0, 0, -scale, -minx * scale, maxy * scale}
}
