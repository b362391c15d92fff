package engine

import "github.com/pillboard/pillboard/internal/shape"

// Split partitions every shape the crosshair through (sx, sy) passes through
// and returns the resulting collection. Unaffected shapes pass through
// unchanged, field for field, in their original order; each split pair takes
// its parent's place in top/bottom or left/right order.
//
// A shape is resolved at most once per pass: the vertical test runs first and
// short-circuits the horizontal one, so a click through both axes of a shape
// yields two pieces, never four. Children inherit the parent's color and
// corner radius and get fresh ids from newID.
func Split(shapes []shape.Shape, sx, sy float64, rules Rules, newID func() string) []shape.Shape {
	out := make([]shape.Shape, 0, len(shapes))

	for _, p := range shapes {
		// Vertical split: the horizontal crosshair line crosses the
		// shape's interior. A line exactly on an edge never splits.
		if sy > p.Y && sy < p.Y+p.Height {
			topH := sy - p.Y
			botH := p.Height - topH
			if topH < rules.MinSplitSize || botH < rules.MinSplitSize {
				// Too small to split: nudge away from the line as
				// visual feedback, toward the undersized side.
				nudged := p
				if topH < rules.MinSplitSize {
					nudged.Y -= rules.NudgeDistance
				} else {
					nudged.Y += rules.NudgeDistance
				}
				out = append(out, nudged)
				continue
			}
			top, bottom := p, p
			top.ID = newID()
			top.Height = topH
			bottom.ID = newID()
			bottom.Y = sy
			bottom.Height = botH
			out = append(out, top, bottom)
			continue
		}

		// Horizontal split, only reached if the vertical test did not
		// resolve the shape.
		if sx > p.X && sx < p.X+p.Width {
			leftW := sx - p.X
			rightW := p.Width - leftW
			if leftW < rules.MinSplitSize || rightW < rules.MinSplitSize {
				nudged := p
				if leftW < rules.MinSplitSize {
					nudged.X -= rules.NudgeDistance
				} else {
					nudged.X += rules.NudgeDistance
				}
				out = append(out, nudged)
				continue
			}
			left, right := p, p
			left.ID = newID()
			left.Width = leftW
			right.ID = newID()
			right.X = sx
			right.Width = rightW
			out = append(out, left, right)
			continue
		}

		out = append(out, p)
	}

	return out
}
