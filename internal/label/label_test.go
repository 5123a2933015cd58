package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maproom/mafe/internal/op"
)

func stacked() op.List {
	// Three labels on the same anchor, plus path ops that must pass
	// through untouched.
	return op.List{
		op.MoveTo(0, 0),
		op.Text("alpha", "#000000", 100, 100),
		op.Text("beta", "#000000", 100, 100),
		op.Text("gamma", "#000000", 100, 100),
		op.Close(),
	}
}

func TestPlace_ReducesOverlap(t *testing.T) {
	ops := stacked()
	placer := DefaultPlacer(1)

	before := energy(collect(ops))
	require.Greater(t, before, 0.0)

	placed := placer.Place(ops)
	after := energy(collect(placed))
	assert.Less(t, after, before)
}

func TestPlace_Deterministic(t *testing.T) {
	placer := DefaultPlacer(7)
	first := placer.Place(stacked())
	second := placer.Place(stacked())
	assert.Equal(t, first, second)
}

func TestPlace_KeepsNonTextOps(t *testing.T) {
	placed := DefaultPlacer(1).Place(stacked())
	require.Len(t, placed, 5)
	assert.Equal(t, op.MoveTo(0, 0), placed[0])
	assert.Equal(t, op.Close(), placed[4])
	for _, o := range placed[1:4] {
		assert.Equal(t, op.TextKind, o.Kind)
	}
}

func TestPlace_UntouchedBelowTwoLabels(t *testing.T) {
	ops := op.List{op.Text("solo", "#000000", 5, 5)}
	assert.Equal(t, ops, DefaultPlacer(1).Place(ops))
}

func TestPlace_DoesNotMutateInput(t *testing.T) {
	ops := stacked()
	DefaultPlacer(1).Place(ops)
	assert.Equal(t, stacked(), ops)
}
