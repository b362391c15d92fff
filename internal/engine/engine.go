package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/pillboard/pillboard/internal/geom"
	"github.com/pillboard/pillboard/internal/shape"
	"github.com/pillboard/pillboard/internal/typeid"
)

// PrimaryButton is the button value of a primary (left) pointer down.
const PrimaryButton = 0

// Crosshair is the split-target indicator tracking the cursor. It is rebuilt
// on every move and carries no shape state.
type Crosshair struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Visible bool    `json:"visible"`
}

// Snapshot is the read-only state handed to renderers after each event:
// the ordered shape collection, the in-progress draft (nil unless a draw
// gesture is active), and the crosshair.
type Snapshot struct {
	Shapes    []shape.Shape `json:"shapes"`
	Draft     *shape.Shape  `json:"draft,omitempty"`
	Crosshair Crosshair     `json:"crosshair"`
}

// gesture is the tagged union of non-idle interaction states. A nil gesture
// means idle.
type gesture interface {
	kind() string
}

// drawing is an active draw gesture: the anchor corner and the uncommitted
// draft shape. The draft never enters the store.
type drawing struct {
	anchor geom.Pt
	draft  shape.Shape
}

func (*drawing) kind() string { return "drawing" }

// dragging is an active drag: which shape, and the down point's offset from
// its top-left corner so the shape does not jump under the cursor.
type dragging struct {
	shapeID string
	offset  geom.Pt
	moved   bool
}

func (*dragging) kind() string { return "dragging" }

// Engine is the interaction state machine for one board. It consumes raw
// pointer events in arrival order and mutates the shape store accordingly.
// It is single-writer and processes each event to completion; callers must
// not deliver events concurrently.
type Engine struct {
	rules     Rules
	store     *shape.Store
	gesture   gesture
	crosshair Crosshair

	// suppressClick eats the synthetic click a pointing device emits right
	// after the pointer-up that ended a draw or drag.
	suppressClick bool

	newID    func() string
	newColor func() string
}

func New(rules Rules) *Engine {
	return &Engine{
		rules:    rules,
		store:    shape.NewStore(),
		newID:    typeid.NewShapeID,
		newColor: randomColor,
	}
}

// PointerDown opens a gesture. target optionally names the shape the down
// event originated on; when empty the engine hit-tests, which resolves to
// the topmost shape under the cursor exactly as a host event target would.
func (e *Engine) PointerDown(x, y float64, button int, target string) {
	if e.gesture != nil {
		// A gesture is already open (e.g. a second button pressed
		// mid-drag). Events stay strictly ordered, so just ignore it.
		return
	}

	if target == "" {
		target = e.store.HitTest(x, y)
	}

	if target != "" {
		s, ok := e.store.Get(target)
		if !ok || !s.Contains(x, y) {
			// Stale target from the host; nothing to grab.
			return
		}
		e.gesture = &dragging{
			shapeID: s.ID,
			offset:  geom.Pt{X: x - s.X, Y: y - s.Y},
		}
		return
	}

	if button != PrimaryButton {
		return
	}
	e.gesture = &drawing{
		anchor: geom.Pt{X: x, Y: y},
		draft: shape.Shape{
			X:            x,
			Y:            y,
			Color:        e.newColor(),
			CornerRadius: e.rules.CornerRadius,
		},
	}
}

// PointerMove updates the crosshair unconditionally and advances whichever
// gesture is open.
func (e *Engine) PointerMove(x, y float64) {
	e.crosshair = Crosshair{X: x, Y: y, Visible: true}

	switch g := e.gesture.(type) {
	case *drawing:
		r := geom.Normalize(g.anchor.X, g.anchor.Y, x, y)
		g.draft.X, g.draft.Y = r.X, r.Y
		g.draft.Width, g.draft.Height = r.Width, r.Height
	case *dragging:
		e.store.SetPosition(g.shapeID, x-g.offset.X, y-g.offset.Y)
		g.moved = true
	}
}

// PointerUp closes the open gesture. A draw commits its rect only when both
// dimensions meet MinDrawSize; undersized drafts are discarded silently. A
// drag needs no commit step, the store already holds the live position.
//
// The following click is suppressed only when the gesture visibly did
// something. A stationary down/up pair is a plain click and must still reach
// the split engine, otherwise splitting would be unreachable.
func (e *Engine) PointerUp(x, y float64) {
	switch g := e.gesture.(type) {
	case *drawing:
		r := geom.Normalize(g.anchor.X, g.anchor.Y, x, y)
		if r.Width >= e.rules.MinDrawSize && r.Height >= e.rules.MinDrawSize {
			e.store.Append(shape.Shape{
				ID:           e.newID(),
				X:            r.X,
				Y:            r.Y,
				Width:        r.Width,
				Height:       r.Height,
				Color:        g.draft.Color,
				CornerRadius: e.rules.CornerRadius,
			})
		}
		e.suppressClick = !r.IsEmpty()
	case *dragging:
		e.suppressClick = g.moved
	default:
		return
	}
	e.gesture = nil
}

// Click runs the split engine at the click point and replaces the store
// contents with the result, unless the click is the tail of a gesture that
// just ended. Reports whether the collection changed.
func (e *Engine) Click(x, y float64) bool {
	if e.suppressClick {
		e.suppressClick = false
		return false
	}
	if e.gesture != nil {
		// Mid-gesture clicks should not arrive from a well-behaved
		// host; never split under an open gesture.
		return false
	}

	before := e.store.Shapes()
	after := Split(before, x, y, e.rules, e.newID)
	if shapesEqual(before, after) {
		return false
	}
	e.store.ReplaceAll(after)
	return true
}

// PointerLeave hides the crosshair. It does not cancel an open gesture; a
// draw or drag resumes if the pointer re-enters before releasing.
func (e *Engine) PointerLeave() {
	e.crosshair.Visible = false
}

// CancelGesture aborts an open draw or drag without committing anything.
// Hosts call it when the client driving the gesture goes away before
// pointer-up, so a missed release cannot hold a gesture open forever.
func (e *Engine) CancelGesture() {
	e.gesture = nil
	e.suppressClick = false
}

// Snapshot returns the renderer-facing view of the current state.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Shapes:    e.store.Shapes(),
		Crosshair: e.crosshair,
	}
	if g, ok := e.gesture.(*drawing); ok {
		draft := g.draft
		snap.Draft = &draft
	}
	return snap
}

// State names the current interaction state for logging.
func (e *Engine) State() string {
	if e.gesture == nil {
		return "idle"
	}
	return e.gesture.kind()
}

// HitTest returns the id of the topmost shape containing the point, or "".
func (e *Engine) HitTest(x, y float64) string {
	return e.store.HitTest(x, y)
}

// Shapes returns the ordered shape collection.
func (e *Engine) Shapes() []shape.Shape {
	return e.store.Shapes()
}

func shapesEqual(a, b []shape.Shape) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// randomColor picks a display color for a fresh draft. The engine treats
// colors as opaque strings; hsl keeps them readable in logs.
func randomColor() string {
	return fmt.Sprintf("hsl(%d, 70%%, 60%%)", rand.IntN(360))
}
