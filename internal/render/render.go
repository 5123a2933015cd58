package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/maproom/mafe/internal/op"
)

// Renderer interprets an op stream onto a gg context. Path segments
// accumulate until a fill or stroke realizes them; Start resets the
// path; fill and stroke keep the path alive so both can apply to the
// same shape. Transform ops compose into a current matrix applied to
// every coordinate before it reaches the context, and Save/Restore
// stack that matrix.
type Renderer struct {
	dc    *gg.Context
	cur   op.Mat2x3
	stack []op.Mat2x3
}

// New wraps a context with an identity transform.
func New(dc *gg.Context) *Renderer {
	return &Renderer{dc: dc, cur: op.Identity()}
}

// Render draws the whole op list.
func (r *Renderer) Render(ops op.List) {
	for _, o := range ops {
		r.render(o)
	}
}

func (r *Renderer) render(o op.Op) {
	switch o.Kind {
	case op.StartKind:
		r.dc.ClearPath()
	case op.MoveKind:
		p := r.cur.Apply(o.P)
		r.dc.MoveTo(p.X, p.Y)
	case op.LineKind:
		p := r.cur.Apply(o.P)
		r.dc.LineTo(p.X, p.Y)
	case op.CubicKind:
		c1 := r.cur.Apply(o.C1)
		c2 := r.cur.Apply(o.C2)
		end := r.cur.Apply(o.End)
		r.dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
	case op.CloseKind:
		r.dc.ClosePath()
	case op.FillKind:
		r.dc.SetHexColor(o.Color)
		r.dc.FillPreserve()
	case op.StrokeKind:
		r.dc.SetHexColor(o.Color)
		r.dc.SetLineWidth(o.Size)
		r.dc.StrokePreserve()
	case op.TextKind:
		p := r.cur.Apply(o.P)
		r.dc.SetHexColor(o.Color)
		r.dc.DrawString(o.Text, p.X, p.Y)
	case op.FontKind:
		// Best effort: the default face stays when the named face is
		// not loadable.
		_ = r.dc.LoadFontFace(o.Name, o.Size)
	case op.TransformKind:
		// The new transform applies in the current coordinate system:
		// points go through it first, then the matrix so far.
		r.cur = o.Mat.Mul(r.cur)
	case op.SaveKind:
		r.stack = append(r.stack, r.cur)
	case op.RestoreKind:
		if n := len(r.stack); n > 0 {
			r.cur = r.stack[n-1]
			r.stack = r.stack[:n-1]
		}
	}
}

// PNG renders ops onto a fresh white canvas and returns the image.
func PNG(ops op.List, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	New(dc).Render(ops)
	return dc.Image()
}
