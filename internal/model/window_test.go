package model

import "testing"

func TestDisplayLocation(t *testing.T) {
	primary := Size{Width: 1440, Height: 900}
	tests := []struct {
		name   string
		bounds Rect
		want   string
	}{
		{"inside", Rect{X: 100, Y: 100, Width: 800, Height: 600}, LocationPrimary},
		{"exact fit", Rect{X: 0, Y: 0, Width: 1440, Height: 900}, LocationPrimary},
		{"left display", Rect{X: -1200, Y: 0, Width: 800, Height: 600}, LocationSecondaryLeft},
		{"right display", Rect{X: 1500, Y: 0, Width: 800, Height: 600}, LocationSecondaryRight},
		{"straddles right edge", Rect{X: 1000, Y: 0, Width: 800, Height: 600}, LocationSecondaryRight},
		{"above", Rect{X: 0, Y: -700, Width: 800, Height: 600}, LocationSecondaryTop},
		{"below", Rect{X: 0, Y: 950, Width: 800, Height: 600}, LocationSecondaryBottom},
	}
	for _, tt := range tests {
		got := DisplayLocation(tt.bounds, primary)
		if got != tt.want {
			t.Errorf("%s: DisplayLocation(%v) = %q, want %q", tt.name, tt.bounds, got, tt.want)
		}
	}
}

func TestWithPrimaryFlag(t *testing.T) {
	primary := Size{Width: 1920, Height: 1080}
	w := WindowRecord{ID: 1, Bounds: Rect{X: 10, Y: 10, Width: 100, Height: 100}}.WithPrimaryFlag(primary)
	if !w.OnPrimaryDisplay {
		t.Error("window inside primary display should be flagged on-primary")
	}
	w.Bounds.X = -500
	w = w.WithPrimaryFlag(primary)
	if w.OnPrimaryDisplay {
		t.Error("window left of primary display should not be flagged on-primary")
	}
}

func TestSubject_MapKey(t *testing.T) {
	m := map[Subject]int{FullScreen(): 1, Window(5): 2}
	if m[Window(5)] != 2 || m[FullScreen()] != 1 {
		t.Errorf("subjects should be usable as map keys: %v", m)
	}
	if Window(5).String() != "window:5" || FullScreen().String() != "screen" {
		t.Errorf("unexpected subject strings: %s %s", Window(5), FullScreen())
	}
}
