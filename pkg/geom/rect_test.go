package geom

import "testing"

func TestRectDimensions(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if got := r.Width(); got != 30 {
		t.Errorf("Width() = %v, want 30", got)
	}
	if got := r.Height(); got != 40 {
		t.Errorf("Height() = %v, want 40", got)
	}
	if got := r.CenterX(); got != 25 {
		t.Errorf("CenterX() = %v, want 25", got)
	}
	if got := r.CenterY(); got != 40 {
		t.Errorf("CenterY() = %v, want 40", got)
	}
	if got := r.Area(); got != 1200 {
		t.Errorf("Area() = %v, want 1200", got)
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "proper overlap",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 10, 10),
			want: true,
		},
		{
			name: "disjoint",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(20, 0, 10, 10),
			want: false,
		},
		{
			name: "touching edges are not overlapping",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(10, 0, 10, 10),
			want: false,
		},
		{
			name: "touching corners are not overlapping",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(10, 10, 10, 10),
			want: false,
		},
		{
			name: "contained",
			a:    NewRect(0, 0, 100, 100),
			b:    NewRect(10, 10, 5, 5),
			want: true,
		},
		{
			name: "x overlap only",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 20, 10, 10),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() not symmetric: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 0, 10, 10)

	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("Intersect() ok = false, want true")
	}
	want := Rect{MinX: 5, MinY: 0, MaxX: 10, MaxY: 10}
	if got != want {
		t.Errorf("Intersect() = %+v, want %+v", got, want)
	}

	if _, ok := a.Intersect(NewRect(10, 0, 5, 5)); ok {
		t.Error("Intersect() of touching rects should report no area")
	}
}

func TestRectContains(t *testing.T) {
	outer := NewRect(0, 0, 100, 200)

	if !outer.Contains(NewRect(10, 10, 20, 20)) {
		t.Error("Contains() = false for interior rect")
	}
	if !outer.Contains(NewRect(0, 0, 100, 200)) {
		t.Error("Contains() = false for coincident rect")
	}
	if outer.Contains(NewRect(90, 10, 20, 20)) {
		t.Error("Contains() = true for rect crossing the right edge")
	}
	if outer.Contains(NewRect(-5, 10, 20, 20)) {
		t.Error("Contains() = true for rect crossing the left edge")
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(10, 20, 5, 5).Translate(-10, 30)
	want := Rect{MinX: 0, MinY: 50, MaxX: 5, MaxY: 55}
	if r != want {
		t.Errorf("Translate() = %+v, want %+v", r, want)
	}
}
