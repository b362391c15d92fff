package engine

import (
	"fmt"
	"testing"

	"github.com/pillboard/pillboard/internal/shape"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("shape_%d", n)
	}
}

func TestSplitVertical(t *testing.T) {
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100, Color: "hsl(10, 70%, 60%)", CornerRadius: 20}}

	out := Split(in, 150, 140, DefaultRules(), sequentialIDs())

	if len(out) != 2 {
		t.Fatalf("got %d shapes, want 2: %+v", len(out), out)
	}
	top, bottom := out[0], out[1]
	if top.X != 100 || top.Y != 100 || top.Width != 100 || top.Height != 40 {
		t.Errorf("top = %+v, want {100 100 100 40}", top)
	}
	if bottom.X != 100 || bottom.Y != 140 || bottom.Width != 100 || bottom.Height != 60 {
		t.Errorf("bottom = %+v, want {100 140 100 60}", bottom)
	}
	if top.Height+bottom.Height != in[0].Height {
		t.Errorf("heights do not partition the parent")
	}
	for _, c := range out {
		if c.Color != in[0].Color || c.CornerRadius != in[0].CornerRadius {
			t.Errorf("child %q lost display attributes: %+v", c.ID, c)
		}
		if c.ID == "shape_p" {
			t.Errorf("child kept the parent id")
		}
	}
	if top.ID == bottom.ID {
		t.Errorf("children share id %q", top.ID)
	}
}

func TestSplitVerticalUndersizedNudgesUp(t *testing.T) {
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100}}

	// topH = 10 < 20: nudge upward, keep size.
	out := Split(in, 150, 110, DefaultRules(), sequentialIDs())

	if len(out) != 1 {
		t.Fatalf("got %d shapes, want 1", len(out))
	}
	got := out[0]
	if got.X != 100 || got.Y != 90 || got.Width != 100 || got.Height != 100 {
		t.Errorf("nudged = %+v, want {100 90 100 100}", got)
	}
	if got.ID != "shape_p" {
		t.Errorf("nudge must keep the id, got %q", got.ID)
	}
}

func TestSplitVerticalUndersizedNudgesDown(t *testing.T) {
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100}}

	// botH = 10 < 20: nudge downward.
	out := Split(in, 150, 190, DefaultRules(), sequentialIDs())

	if len(out) != 1 || out[0].Y != 110 {
		t.Fatalf("got %+v, want single shape at y=110", out)
	}
}

func TestSplitHorizontal(t *testing.T) {
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100, Color: "c"}}

	// sy outside the vertical span, sx strictly inside: left/right split.
	out := Split(in, 130, 50, DefaultRules(), sequentialIDs())

	if len(out) != 2 {
		t.Fatalf("got %d shapes, want 2: %+v", len(out), out)
	}
	left, right := out[0], out[1]
	if left.X != 100 || left.Width != 30 || left.Y != 100 || left.Height != 100 {
		t.Errorf("left = %+v, want {100 100 30 100}", left)
	}
	if right.X != 130 || right.Width != 70 || right.Y != 100 || right.Height != 100 {
		t.Errorf("right = %+v, want {130 100 70 100}", right)
	}
}

func TestSplitHorizontalUndersizedNudges(t *testing.T) {
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100}}

	out := Split(in, 110, 50, DefaultRules(), sequentialIDs()) // leftW = 10
	if len(out) != 1 || out[0].X != 90 {
		t.Fatalf("got %+v, want single shape nudged to x=90", out)
	}

	out = Split(in, 190, 50, DefaultRules(), sequentialIDs()) // rightW = 10
	if len(out) != 1 || out[0].X != 110 {
		t.Fatalf("got %+v, want single shape nudged to x=110", out)
	}
}

func TestSplitVerticalWinsOverHorizontal(t *testing.T) {
	// The point is strictly inside both spans. Vertical resolves first and
	// short-circuits: exactly one topological change, never four pieces.
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100}}

	out := Split(in, 150, 150, DefaultRules(), sequentialIDs())

	if len(out) != 2 {
		t.Fatalf("got %d shapes, want 2 (top/bottom only)", len(out))
	}
	if out[0].Width != 100 || out[1].Width != 100 {
		t.Errorf("widths changed, horizontal split leaked in: %+v", out)
	}
}

func TestSplitLineOnEdgeDoesNothing(t *testing.T) {
	in := []shape.Shape{{ID: "shape_p", X: 100, Y: 100, Width: 100, Height: 100}}

	for _, pt := range [][2]float64{
		{50, 100},  // on top edge
		{50, 200},  // on bottom edge
		{100, 50},  // on left edge
		{200, 50},  // on right edge
		{300, 300}, // far outside
	} {
		out := Split(in, pt[0], pt[1], DefaultRules(), sequentialIDs())
		if len(out) != 1 || out[0] != in[0] {
			t.Errorf("split at (%v, %v) changed the shape: %+v", pt[0], pt[1], out)
		}
	}
}

func TestSplitPreservesOrderOfUnaffected(t *testing.T) {
	in := []shape.Shape{
		{ID: "shape_a", X: 0, Y: 0, Width: 50, Height: 50},
		{ID: "shape_b", X: 100, Y: 100, Width: 100, Height: 100},
		{ID: "shape_c", X: 300, Y: 0, Width: 50, Height: 50},
	}

	// Crosses shape_b vertically only; a and c untouched. The horizontal
	// crosshair line at y=150 misses a and c, and x=150 misses them too.
	out := Split(in, 150, 150, DefaultRules(), sequentialIDs())

	if len(out) != 4 {
		t.Fatalf("got %d shapes, want 4", len(out))
	}
	if out[0] != in[0] {
		t.Errorf("shape_a changed: %+v", out[0])
	}
	if out[3] != in[2] {
		t.Errorf("shape_c changed or moved: %+v", out[3])
	}
	if out[1].Y != 100 || out[2].Y != 150 {
		t.Errorf("pair not in top/bottom order: %+v %+v", out[1], out[2])
	}
}

func TestSplitCrosshairReachesShapesAwayFromClick(t *testing.T) {
	// The crosshair extends across the whole canvas: the horizontal line
	// through the click splits a shape far to the left of the cursor.
	in := []shape.Shape{{ID: "shape_p", X: 0, Y: 100, Width: 100, Height: 100}}

	out := Split(in, 500, 150, DefaultRules(), sequentialIDs())
	if len(out) != 2 {
		t.Fatalf("expected the horizontal line to split a distant shape, got %+v", out)
	}
}
