// Package label is an optional post-pass that nudges label text ops
// apart. Each text op gets a candidate box estimated from its content;
// a simulated annealing walk over per-label displacements minimizes the
// total pairwise overlap, and the winning displacements are written
// back into the op list.
package label

import (
	"math"
	"math/rand"

	"github.com/maproom/mafe/internal/op"
)

// Glyph metrics used to estimate a label's box; the renderer's default
// face is close enough for collision purposes.
const (
	glyphWidth  = 7.0
	lineHeight  = 13.0
)

// rect is an axis-aligned box.
type rect struct {
	minx, miny, maxx, maxy float64
}

func (r rect) shifted(dx, dy float64) rect {
	return rect{r.minx + dx, r.miny + dy, r.maxx + dx, r.maxy + dy}
}

// overlap is the intersection area of two boxes.
func overlap(a, b rect) float64 {
	w := math.Min(a.maxx, b.maxx) - math.Max(a.minx, b.minx)
	h := math.Min(a.maxy, b.maxy) - math.Max(a.miny, b.miny)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// item is one placeable label: its op index, its box at the anchor, and
// its current displacement.
type item struct {
	index  int
	box    rect
	dx, dy float64
}

// Placer runs the annealing walk. The zero value is unusable; use
// DefaultPlacer or set every field.
type Placer struct {
	// Seed fixes the random walk, keeping output deterministic for a
	// fixed input.
	Seed int64

	// Iterations bounds the walk length.
	Iterations int

	// MaxShift is the largest displacement tried on either axis.
	MaxShift float64

	// Temperature is the initial acceptance temperature; it decays
	// geometrically to near zero over the run.
	Temperature float64
}

// DefaultPlacer returns a configuration that behaves well for map-size
// label counts.
func DefaultPlacer(seed int64) Placer {
	return Placer{
		Seed:        seed,
		Iterations:  2000,
		MaxShift:    3 * lineHeight,
		Temperature: 10 * lineHeight,
	}
}

// Place returns a copy of ops with text ops moved to reduce overlap.
// Lists with fewer than two labels come back unchanged.
func (p Placer) Place(ops op.List) op.List {
	items := collect(ops)
	if len(items) < 2 {
		return ops
	}

	rng := rand.New(rand.NewSource(p.Seed))
	temp := p.Temperature
	cooling := math.Pow(1e-3, 1/float64(p.Iterations))

	current := energy(items)
	for i := 0; i < p.Iterations && current > 0; i++ {
		k := rng.Intn(len(items))
		prevDx, prevDy := items[k].dx, items[k].dy
		items[k].dx = (rng.Float64()*2 - 1) * p.MaxShift
		items[k].dy = (rng.Float64()*2 - 1) * p.MaxShift

		next := energy(items)
		if next > current && rng.Float64() >= math.Exp((current-next)/temp) {
			items[k].dx, items[k].dy = prevDx, prevDy
		} else {
			current = next
		}
		temp *= cooling
	}

	out := make(op.List, len(ops))
	copy(out, ops)
	for _, it := range items {
		o := out[it.index]
		o.P.X += it.dx
		o.P.Y += it.dy
		out[it.index] = o
	}
	return out
}

// collect builds placeable items from the text ops of a list.
func collect(ops op.List) []item {
	var items []item
	for i, o := range ops {
		if o.Kind != op.TextKind {
			continue
		}
		w := float64(len(o.Text)) * glyphWidth
		items = append(items, item{
			index: i,
			box: rect{
				minx: o.P.X,
				miny: o.P.Y - lineHeight,
				maxx: o.P.X + w,
				maxy: o.P.Y,
			},
		})
	}
	return items
}

// energy is the total pairwise overlap under the current
// displacements.
func energy(items []item) float64 {
	var sum float64
	for i := 0; i < len(items); i++ {
		a := items[i].box.shifted(items[i].dx, items[i].dy)
		for j := i + 1; j < len(items); j++ {
			b := items[j].box.shifted(items[j].dx, items[j].dy)
			sum += overlap(a, b)
		}
	}
	return sum
}
