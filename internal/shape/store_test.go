package shape

import "testing"

func TestStoreAppendAndOrder(t *testing.T) {
	st := NewStore()
	st.Append(Shape{ID: "shape_a", X: 0, Y: 0, Width: 50, Height: 50})
	st.Append(Shape{ID: "shape_b", X: 10, Y: 10, Width: 50, Height: 50})

	got := st.Shapes()
	if len(got) != 2 || got[0].ID != "shape_a" || got[1].ID != "shape_b" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestStoreAppendDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate id")
		}
	}()
	st := NewStore()
	st.Append(Shape{ID: "shape_a", Width: 1, Height: 1})
	st.Append(Shape{ID: "shape_a", Width: 1, Height: 1})
}

func TestStoreNegativeExtentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on negative width")
		}
	}()
	st := NewStore()
	st.Append(Shape{ID: "shape_a", Width: -1, Height: 1})
}

func TestStoreSetPosition(t *testing.T) {
	st := NewStore()
	st.Append(Shape{ID: "shape_a", X: 5, Y: 5, Width: 50, Height: 60})

	if !st.SetPosition("shape_a", 100, 200) {
		t.Fatalf("SetPosition should find shape_a")
	}
	s, _ := st.Get("shape_a")
	if s.X != 100 || s.Y != 200 {
		t.Errorf("position = (%v, %v), want (100, 200)", s.X, s.Y)
	}
	if s.Width != 50 || s.Height != 60 {
		t.Errorf("size changed by SetPosition: %vx%v", s.Width, s.Height)
	}
	if st.SetPosition("shape_missing", 0, 0) {
		t.Errorf("SetPosition should report missing id")
	}
}

func TestStoreReplaceAll(t *testing.T) {
	st := NewStore()
	st.Append(Shape{ID: "shape_a", Width: 50, Height: 50})

	st.ReplaceAll([]Shape{
		{ID: "shape_b", Width: 50, Height: 25},
		{ID: "shape_c", Y: 25, Width: 50, Height: 25},
	})

	if st.Len() != 2 {
		t.Fatalf("Len = %d, want 2", st.Len())
	}
	if _, ok := st.Get("shape_a"); ok {
		t.Errorf("shape_a should be gone after replacement")
	}
	if _, ok := st.Get("shape_c"); !ok {
		t.Errorf("shape_c missing after replacement")
	}
}

func TestStoreShapesIsACopy(t *testing.T) {
	st := NewStore()
	st.Append(Shape{ID: "shape_a", X: 1, Width: 10, Height: 10})

	snap := st.Shapes()
	snap[0].X = 999

	s, _ := st.Get("shape_a")
	if s.X != 1 {
		t.Fatalf("mutating a snapshot leaked into the store")
	}
}

func TestStoreHitTestTopmost(t *testing.T) {
	st := NewStore()
	st.Append(Shape{ID: "shape_under", X: 0, Y: 0, Width: 100, Height: 100})
	st.Append(Shape{ID: "shape_over", X: 50, Y: 50, Width: 100, Height: 100})

	if got := st.HitTest(75, 75); got != "shape_over" {
		t.Errorf("overlap hit = %q, want shape_over (painted last)", got)
	}
	if got := st.HitTest(10, 10); got != "shape_under" {
		t.Errorf("hit = %q, want shape_under", got)
	}
	if got := st.HitTest(300, 300); got != "" {
		t.Errorf("miss hit = %q, want empty", got)
	}
}
