package op

import (
	"encoding/json"
	"testing"
)

func TestOp_Display(t *testing.T) {
	cases := []struct {
		op   Op
		want string
	}{
		{MoveTo(3, 4.5), "[move (3, 4.5)]"},
		{LineTo(-1, 0), "[line (-1, 0)]"},
		{Fill("#FF1E00"), "[fill #FF1E00]"},
		{Stroke("#000000", 2), "[stroke #000000 2]"},
		{Start(), "[start]"},
		{Close(), "[close]"},
		{Save(), "[save]"},
		{Restore(), "[restore]"},
		{Transform(Mat2x3{1, 0, 0, 1, 5, 6}), "[transform 1 0 0 1 5 6]"},
	}
	for _, c := range cases {
		if got := c.op.String(); got != c.want {
			t.Errorf("expected %q, got %q", c.want, got)
		}
	}
}

func TestMat2x3_Apply(t *testing.T) {
	// Scale by 2, flip y, then translate.
	m := Mat2x3{2, 0, 0, -2, 10, 100}
	p := m.Apply(Point{X: 3, Y: 4})
	if p.X != 16 || p.Y != 92 {
		t.Errorf("unexpected point: %+v", p)
	}
}

func TestMat2x3_MulComposes(t *testing.T) {
	scale := Mat2x3{2, 0, 0, 2, 0, 0}
	translate := Mat2x3{1, 0, 0, 1, 5, 7}

	// Receiver applies first: scale then translate.
	m := scale.Mul(translate)
	p := m.Apply(Point{X: 1, Y: 1})
	if p.X != 7 || p.Y != 9 {
		t.Errorf("unexpected point: %+v", p)
	}
}

func TestList_JSONRoundTrip(t *testing.T) {
	ops := List{
		Start(),
		MoveTo(1, 2),
		LineTo(3, 4),
		Cubic(Point{1, 1}, Point{2, 2}, Point{3, 3}),
		Close(),
		Fill("#AABBCC"),
		Stroke("#112233", 1.5),
		Text("station", "#000000", 9, 9),
		Font("mono", 12),
		Save(),
		Transform(Mat2x3{1, 0, 0, -1, 0, 600}),
		Restore(),
	}

	data, err := json.Marshal(ops)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded List
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded) != len(ops) {
		t.Fatalf("expected %d ops, got %d", len(ops), len(decoded))
	}
	for i := range ops {
		if decoded[i] != ops[i] {
			t.Errorf("op %d: expected %v, got %v", i, ops[i], decoded[i])
		}
	}
}

func TestOp_UnmarshalUnknownKind(t *testing.T) {
	var o Op
	if err := json.Unmarshal([]byte(`{"kind":"blit"}`), &o); err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}
