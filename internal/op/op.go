package op

import (
	"fmt"
	"strings"
)

// Point is a 2D coordinate in the target reference system.
type Point struct {
	X, Y float64
}

// Mat2x3 is an affine transform in column order [a b c d e f]:
//
//	| a c e |
//	| b d f |
type Mat2x3 [6]float64

// Identity returns the identity transform.
func Identity() Mat2x3 {
	return Mat2x3{1, 0, 0, 1, 0, 0}
}

// Mul composes two transforms; the receiver applies first.
func (m Mat2x3) Mul(n Mat2x3) Mat2x3 {
	return Mat2x3{
		n[0]*m[0] + n[2]*m[1],
		n[1]*m[0] + n[3]*m[1],
		n[0]*m[2] + n[2]*m[3],
		n[1]*m[2] + n[3]*m[3],
		n[0]*m[4] + n[2]*m[5] + n[4],
		n[1]*m[4] + n[3]*m[5] + n[5],
	}
}

// Apply transforms a point.
func (m Mat2x3) Apply(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// Kind discriminates drawing operations.
type Kind int

const (
	TextKind Kind = iota
	FontKind
	FillKind
	StrokeKind
	StartKind
	MoveKind
	LineKind
	CubicKind
	CloseKind
	TransformKind
	SaveKind
	RestoreKind
)

// Op is one drawing operation. The populated fields depend on the
// kind.
type Op struct {
	Kind  Kind
	Text  string
	Color string
	Name  string
	Size  float64
	P     Point
	C1    Point
	C2    Point
	End   Point
	Mat   Mat2x3
}

// List is an ordered stream of operations.
type List []Op

func Text(text, color string, x, y float64) Op {
	return Op{Kind: TextKind, Text: text, Color: color, P: Point{X: x, Y: y}}
}

func Font(name string, size float64) Op {
	return Op{Kind: FontKind, Name: name, Size: size}
}

func Fill(color string) Op {
	return Op{Kind: FillKind, Color: color}
}

func Stroke(color string, size float64) Op {
	return Op{Kind: StrokeKind, Color: color, Size: size}
}

func Start() Op {
	return Op{Kind: StartKind}
}

func MoveTo(x, y float64) Op {
	return Op{Kind: MoveKind, P: Point{X: x, Y: y}}
}

func LineTo(x, y float64) Op {
	return Op{Kind: LineKind, P: Point{X: x, Y: y}}
}

func Cubic(c1, c2, end Point) Op {
	return Op{Kind: CubicKind, C1: c1, C2: c2, End: end}
}

func Close() Op {
	return Op{Kind: CloseKind}
}

func Transform(m Mat2x3) Op {
	return Op{Kind: TransformKind, Mat: m}
}

func Save() Op {
	return Op{Kind: SaveKind}
}

func Restore() Op {
	return Op{Kind: RestoreKind}
}

// String is the debug display form.
func (o Op) String() string {
	switch o.Kind {
	case TextKind:
		return fmt.Sprintf("[text %q %s (%g, %g)]", o.Text, o.Color, o.P.X, o.P.Y)
	case FontKind:
		return fmt.Sprintf("[font %s %g]", o.Name, o.Size)
	case FillKind:
		return fmt.Sprintf("[fill %s]", o.Color)
	case StrokeKind:
		return fmt.Sprintf("[stroke %s %g]", o.Color, o.Size)
	case StartKind:
		return "[start]"
	case MoveKind:
		return fmt.Sprintf("[move (%g, %g)]", o.P.X, o.P.Y)
	case LineKind:
		return fmt.Sprintf("[line (%g, %g)]", o.P.X, o.P.Y)
	case CubicKind:
		return fmt.Sprintf("[cubic (%g, %g) (%g, %g) (%g, %g)]",
			o.C1.X, o.C1.Y, o.C2.X, o.C2.Y, o.End.X, o.End.Y)
	case CloseKind:
		return "[close]"
	case TransformKind:
		m := o.Mat
		return fmt.Sprintf("[transform %g %g %g %g %g %g]", m[0], m[1], m[2], m[3], m[4], m[5])
	case SaveKind:
		return "[save]"
	case RestoreKind:
		return "[restore]"
	default:
		return "[unknown]"
	}
}

// String renders the whole list, one op per line.
func (l List) String() string {
	var b strings.Builder
	for i, o := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(o.String())
	}
	return b.String()
}
