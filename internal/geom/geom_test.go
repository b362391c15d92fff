package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 100, Height: 100}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 150, 150, true},
		{"top-left corner", 100, 100, true},
		{"bottom-right corner", 200, 200, true},
		{"on left edge", 100, 150, true},
		{"just outside left", 99.999, 150, false},
		{"just outside bottom", 150, 200.001, false},
		{"far away", 0, 0, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: Contains(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           Rect
	}{
		{"top-left to bottom-right", 10, 10, 45, 60, Rect{10, 10, 35, 50}},
		{"bottom-right to top-left", 45, 60, 10, 10, Rect{10, 10, 35, 50}},
		{"bottom-left to top-right", 10, 60, 45, 10, Rect{10, 10, 35, 50}},
		{"same point", 25, 25, 25, 25, Rect{25, 25, 0, 0}},
	}

	for _, tt := range tests {
		if got := Normalize(tt.x0, tt.y0, tt.x1, tt.y1); got != tt.want {
			t.Errorf("%s: Normalize = %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestRectIsEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 10}).IsEmpty() {
		t.Fatalf("zero-width rect should be empty")
	}
	if (Rect{Width: 1, Height: 1}).IsEmpty() {
		t.Fatalf("unit rect should not be empty")
	}
}
