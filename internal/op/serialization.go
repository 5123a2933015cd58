package op

import (
	"encoding/json"
	"fmt"
)

// Ops serialize as tagged records so an external backend can consume
// the stream without knowing the Go types.
type serializedOp struct {
	Kind  string    `json:"kind"`
	Text  string    `json:"text,omitempty"`
	Color string    `json:"color,omitempty"`
	Name  string    `json:"name,omitempty"`
	Size  float64   `json:"size,omitempty"`
	P     *Point    `json:"p,omitempty"`
	C1    *Point    `json:"c1,omitempty"`
	C2    *Point    `json:"c2,omitempty"`
	End   *Point    `json:"end,omitempty"`
	Mat   *[6]float64 `json:"mat,omitempty"`
}

var kindNames = map[Kind]string{
	TextKind:      "text",
	FontKind:      "font",
	FillKind:      "fill",
	StrokeKind:    "stroke",
	StartKind:     "start",
	MoveKind:      "move",
	LineKind:      "line",
	CubicKind:     "cubic",
	CloseKind:     "close",
	TransformKind: "transform",
	SaveKind:      "save",
	RestoreKind:   "restore",
}

var namedKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

func marshalOp(o Op) serializedOp {
	s := serializedOp{Kind: kindNames[o.Kind]}
	switch o.Kind {
	case TextKind:
		s.Text, s.Color = o.Text, o.Color
		p := o.P
		s.P = &p
	case FontKind:
		s.Name, s.Size = o.Name, o.Size
	case FillKind:
		s.Color = o.Color
	case StrokeKind:
		s.Color, s.Size = o.Color, o.Size
	case MoveKind, LineKind:
		p := o.P
		s.P = &p
	case CubicKind:
		c1, c2, end := o.C1, o.C2, o.End
		s.C1, s.C2, s.End = &c1, &c2, &end
	case TransformKind:
		m := [6]float64(o.Mat)
		s.Mat = &m
	}
	return s
}

func unmarshalOp(s serializedOp) (Op, error) {
	kind, ok := namedKinds[s.Kind]
	if !ok {
		return Op{}, fmt.Errorf("unknown op kind %q", s.Kind)
	}
	o := Op{Kind: kind, Text: s.Text, Color: s.Color, Name: s.Name, Size: s.Size}
	if s.P != nil {
		o.P = *s.P
	}
	if s.C1 != nil {
		o.C1 = *s.C1
	}
	if s.C2 != nil {
		o.C2 = *s.C2
	}
	if s.End != nil {
		o.End = *s.End
	}
	if s.Mat != nil {
		o.Mat = Mat2x3(*s.Mat)
	}
	return o, nil
}

// MarshalJSON implements json.Marshaler.
func (o Op) MarshalJSON() ([]byte, error) {
	return json.Marshal(marshalOp(o))
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Op) UnmarshalJSON(data []byte) error {
	var s serializedOp
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := unmarshalOp(s)
	if err != nil {
		return err
	}
	*o = decoded
	return nil
}
