package sym

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/maproom/mafe/internal/ast"
	"github.com/maproom/mafe/internal/eval"
	"github.com/maproom/mafe/internal/geom"
	"github.com/maproom/mafe/internal/op"
	"github.com/maproom/mafe/internal/source"
)

var (
	// ErrSym is returned for a sym that cannot be executed.
	ErrSym = errors.NewKind("sym: %s")

	// ErrCommandNotFound is returned for an unrecognized command
	// variant.
	ErrCommandNotFound = errors.NewKind("command not found: %v")
)

// labelColor is the default color of label text ops.
const labelColor = "#000000"

// Input is what a command executes against: the source and feature for
// value resolution, the projected geometry, and the ops accumulated by
// the commands before it in the same consequent.
type Input struct {
	Source   source.Source
	Feature  *geojson.Feature
	Geometry orb.Geometry
	Ops      op.List
}

// Output is the op list a command hands to its successor.
type Output struct {
	Ops op.List
}

// concat returns an output extending the input's ops.
func (in Input) concat(ops ...op.Op) Output {
	out := make(op.List, 0, len(in.Ops)+len(ops))
	out = append(out, in.Ops...)
	out = append(out, ops...)
	return Output{Ops: out}
}

func (in Input) resolveFloat(v ast.Value) (float64, error) {
	return eval.ResolveFloat(in.Source, in.Feature, v)
}

func (in Input) resolveString(v ast.Value) (string, error) {
	return eval.ResolveString(in.Source, in.Feature, v)
}

// Exec runs one sym against one feature whose geometry is already
// projected. A false predicate yields no ops. Commands thread their
// output left to right; any command error discards the whole
// consequent for this feature.
func Exec(s *ast.Sym, src source.Source, f *geojson.Feature, projected orb.Geometry) (op.List, error) {
	match, err := eval.PredGroup(src, f, s.Predicate)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, nil
	}

	output := Output{}
	for _, cmd := range s.Consequent {
		input := Input{Source: src, Feature: f, Geometry: projected, Ops: output.Ops}
		output, err = ExecCommand(cmd, input)
		if err != nil {
			return nil, err
		}
	}
	return output.Ops, nil
}

// ExecCommand dispatches one command.
func ExecCommand(cmd ast.Command, in Input) (Output, error) {
	switch cmd.Kind {
	case ast.ClearCommand:
		return Output{}, nil
	case ast.DrawGeometryCommand:
		return execDraw(in)
	case ast.CircleCommand:
		return execCircle(cmd, in)
	case ast.SquareCommand:
		return execSquare(cmd, in)
	case ast.FillCommand:
		color, err := in.resolveString(cmd.Color)
		if err != nil {
			return Output{}, err
		}
		return in.concat(op.Fill(color)), nil
	case ast.StrokeCommand:
		color, err := in.resolveString(cmd.Color)
		if err != nil {
			return Output{}, err
		}
		size, err := in.resolveFloat(cmd.Size)
		if err != nil {
			return Output{}, err
		}
		return in.concat(op.Stroke(color, size)), nil
	case ast.PatternCommand:
		// A pattern is rendered as a fill whose spec is the texture
		// path.
		path, err := in.resolveString(cmd.Path)
		if err != nil {
			return Output{}, err
		}
		return in.concat(op.Fill(path)), nil
	case ast.LabelCommand:
		return execLabel(cmd, in)
	default:
		return Output{}, ErrCommandNotFound.New(cmd.Kind)
	}
}

// execCircle emits a sampled circle around the geometry's centroid:
// Start, a Move to the 0-degree point, min(360, floor(r*10)) line
// segments, Close.
func execCircle(cmd ast.Command, in Input) (Output, error) {
	center, err := geom.Centroid(in.Geometry)
	if err != nil {
		return Output{}, err
	}
	radius, err := in.resolveFloat(cmd.Radius)
	if err != nil {
		if eval.ErrConversion.Is(err) {
			return Output{}, eval.ErrFunctionArg.New("radius should be a number")
		}
		return Output{}, err
	}

	cx, cy := center[0], center[1]
	steps := int(math.Min(360, radius*10))
	ops := make(op.List, 0, steps+3)
	ops = append(ops, op.Start(), op.MoveTo(cx+radius, cy))
	for i := 1; i <= steps; i++ {
		theta := float64(i) * 2 * math.Pi / float64(steps)
		ops = append(ops, op.LineTo(cx+radius*math.Cos(theta), cy+radius*math.Sin(theta)))
	}
	ops = append(ops, op.Close())
	return in.concat(ops...), nil
}

// execSquare emits the four vertices of an axis-aligned square of side
// size centered on the centroid.
func execSquare(cmd ast.Command, in Input) (Output, error) {
	center, err := geom.Centroid(in.Geometry)
	if err != nil {
		return Output{}, err
	}
	size, err := in.resolveFloat(cmd.Size)
	if err != nil {
		return Output{}, err
	}
	cx, cy := center[0], center[1]
	half := size / 2
	return in.concat(
		op.MoveTo(cx-half, cy-half),
		op.LineTo(cx+half, cy-half),
		op.LineTo(cx+half, cy+half),
		op.LineTo(cx-half, cy+half),
		op.Close(),
	), nil
}

// execLabel anchors the resolved content at the centroid.
func execLabel(cmd ast.Command, in Input) (Output, error) {
	center, err := geom.Centroid(in.Geometry)
	if err != nil {
		return Output{}, err
	}
	lit, err := eval.Resolve(in.Source, in.Feature, cmd.Content)
	if err != nil {
		return Output{}, err
	}
	return in.concat(op.Text(lit.String(), labelColor, center[0], center[1])), nil
}

// execDraw traces the projected geometry as path segments.
func execDraw(in Input) (Output, error) {
	if in.Geometry == nil {
		return Output{}, geom.ErrGeometry.New("no geometry")
	}
	ops := append(op.List{op.Start()}, trace(in.Geometry)...)
	if len(ops) == 1 {
		return Output{}, geom.ErrGeometry.New("nothing to draw")
	}
	return in.concat(ops...), nil
}

func trace(g orb.Geometry) op.List {
	var ops op.List
	switch t := g.(type) {
	case orb.Point:
		ops = append(ops, op.MoveTo(t[0], t[1]))
	case orb.MultiPoint:
		for _, p := range t {
			ops = append(ops, op.MoveTo(p[0], p[1]))
		}
	case orb.LineString:
		ops = append(ops, traceLine(t, false)...)
	case orb.MultiLineString:
		for _, ls := range t {
			ops = append(ops, traceLine(ls, false)...)
		}
	case orb.Ring:
		ops = append(ops, traceLine(orb.LineString(t), true)...)
	case orb.Polygon:
		for _, r := range t {
			ops = append(ops, traceLine(orb.LineString(r), true)...)
		}
	case orb.MultiPolygon:
		for _, poly := range t {
			ops = append(ops, trace(poly)...)
		}
	case orb.Collection:
		for _, sub := range t {
			ops = append(ops, trace(sub)...)
		}
	case orb.Bound:
		ops = append(ops, trace(t.ToPolygon())...)
	}
	return ops
}

func traceLine(ls orb.LineString, closed bool) op.List {
	if len(ls) == 0 {
		return nil
	}
	ops := make(op.List, 0, len(ls)+1)
	ops = append(ops, op.MoveTo(ls[0][0], ls[0][1]))
	for _, p := range ls[1:] {
		ops = append(ops, op.LineTo(p[0], p[1]))
	}
	if closed {
		ops = append(ops, op.Close())
	}
	return ops
}
