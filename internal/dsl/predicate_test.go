package dsl

import (
	"testing"

	"github.com/maproom/mafe/internal/ast"
)

// parsePred parses a spec whose single sym carries the predicate under
// test, with a, b and c bound at map scope.
func parsePred(t *testing.T, pred string) ast.PredGroup {
	t.Helper()
	spec, err := ParseString(`map
srid 3857
extent 0 0 10 10
data a 1
data b 2
data c 3

layer
source geojson "fc.json"
sym ` + pred + ` -> clear
`)
	if err != nil {
		t.Fatalf("ParseString failed for %q: %v", pred, err)
	}
	return spec.Layers[0].Syms()[0].Predicate
}

func TestPredicate_Single(t *testing.T) {
	g := parsePred(t, `a = 1`)
	if g.Kind != ast.PredGroupPred {
		t.Fatalf("expected a degenerate group, got %v", g.Kind)
	}
	if g.Pred.Op != ast.Equal {
		t.Errorf("expected =, got %v", g.Pred.Op)
	}
}

func TestPredicate_Operators(t *testing.T) {
	cases := []struct {
		text string
		want ast.PredOp
	}{
		{"a = 1", ast.Equal},
		{"a != 1", ast.NotEqual},
		{"a > 1", ast.Greater},
		{"a >= 1", ast.GreaterOrEqual},
		{"a < 1", ast.Lesser},
		{"a <= 1", ast.LesserOrEqual},
	}
	for _, c := range cases {
		g := parsePred(t, c.text)
		if g.Kind != ast.PredGroupPred || g.Pred.Op != c.want {
			t.Errorf("%q: expected op %v, got %+v", c.text, c.want, g)
		}
	}
}

func TestPredicate_LeftAssociativeMixedOperators(t *testing.T) {
	// Equal precedence, textual order: ((a & b) | c).
	g := parsePred(t, `a = 1 & b = 2 | c = 3`)
	if g.Kind != ast.OrGroup {
		t.Fatalf("expected or at the top, got %v", g.Kind)
	}
	if g.Left.Kind != ast.AndGroup {
		t.Errorf("expected and on the left, got %v", g.Left.Kind)
	}
	if g.Right.Kind != ast.PredGroupPred {
		t.Errorf("expected a predicate on the right, got %v", g.Right.Kind)
	}
}

func TestPredicate_ParenthesesGroup(t *testing.T) {
	// ((a | b) & c): the parentheses force or below and.
	g := parsePred(t, `( a = "bench" | a = "chair" ) & b >= 12`)
	if g.Kind != ast.AndGroup {
		t.Fatalf("expected and at the top, got %v", g.Kind)
	}
	if g.Left.Kind != ast.OrGroup {
		t.Errorf("expected or inside the parentheses, got %v", g.Left.Kind)
	}
	if g.Right.Kind != ast.PredGroupPred {
		t.Errorf("expected a predicate on the right, got %v", g.Right.Kind)
	}
}

func TestPredicate_ExplicitParensMatchFlatReading(t *testing.T) {
	flat := parsePred(t, `a = 1 & b = 2 | c = 3`)
	explicit := parsePred(t, `( a = 1 & b = 2 ) | c = 3`)
	if flat.Kind != explicit.Kind || flat.Left.Kind != explicit.Left.Kind {
		t.Errorf("flat and parenthesized readings diverge: %v vs %v", flat.Kind, explicit.Kind)
	}
}

func TestPredicate_DeepNesting(t *testing.T) {
	g := parsePred(t, `( ( a = 1 & ( b = 2 | c = 3 ) ) )`)
	if g.Kind != ast.AndGroup {
		t.Fatalf("expected and at the top, got %v", g.Kind)
	}
	if g.Right.Kind != ast.OrGroup {
		t.Errorf("expected or on the right, got %v", g.Right.Kind)
	}
}
