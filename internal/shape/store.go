package shape

import "fmt"

// Store is the authoritative ordered collection of shapes on a board.
// It starts empty; shapes enter via Append (a committed draw gesture) and
// leave only by being replaced through ReplaceAll (split pair or nudged
// translate). Order is meaningful: the renderer paints back to front.
//
// The store is not safe for concurrent use. The board event loop is the
// single writer.
type Store struct {
	shapes []Shape
	index  map[string]int // id -> position in shapes
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Append commits a new shape at the end of the paint order.
func (st *Store) Append(s Shape) {
	st.check(s)
	if _, dup := st.index[s.ID]; dup {
		panic(fmt.Sprintf("shape: duplicate id %q appended to store", s.ID))
	}
	st.index[s.ID] = len(st.shapes)
	st.shapes = append(st.shapes, s)
}

// ReplaceAll swaps the entire collection, preserving the given order.
// Used by the split engine, whose output replaces the input wholesale.
func (st *Store) ReplaceAll(shapes []Shape) {
	index := make(map[string]int, len(shapes))
	for i, s := range shapes {
		st.check(s)
		if _, dup := index[s.ID]; dup {
			panic(fmt.Sprintf("shape: duplicate id %q in replacement set", s.ID))
		}
		index[s.ID] = i
	}
	st.shapes = append(st.shapes[:0:0], shapes...)
	st.index = index
}

// SetPosition moves a shape without touching its size. Reports whether the
// id was present.
func (st *Store) SetPosition(id string, x, y float64) bool {
	i, ok := st.index[id]
	if !ok {
		return false
	}
	st.shapes[i].X = x
	st.shapes[i].Y = y
	return true
}

// Get returns the shape with the given id.
func (st *Store) Get(id string) (Shape, bool) {
	i, ok := st.index[id]
	if !ok {
		return Shape{}, false
	}
	return st.shapes[i], true
}

// Shapes returns a defensive copy of the collection in paint order.
func (st *Store) Shapes() []Shape {
	out := make([]Shape, len(st.shapes))
	copy(out, st.shapes)
	return out
}

func (st *Store) Len() int { return len(st.shapes) }

// HitTest returns the id of the topmost shape containing the point, or "".
// Later shapes paint on top, so the scan runs back to front.
func (st *Store) HitTest(x, y float64) string {
	for i := len(st.shapes) - 1; i >= 0; i-- {
		if st.shapes[i].Contains(x, y) {
			return st.shapes[i].ID
		}
	}
	return ""
}

// check panics on invariant violations. These can only arise from an engine
// bug, never from user input, so failing loudly beats corrupting the board.
func (st *Store) check(s Shape) {
	if s.ID == "" {
		panic("shape: empty id committed to store")
	}
	if s.Width < 0 || s.Height < 0 {
		panic(fmt.Sprintf("shape: negative extent %vx%v for %q", s.Width, s.Height, s.ID))
	}
}
