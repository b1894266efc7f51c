package model

import "fmt"

// Size is a width/height pair in a single coordinate space.
type Size struct {
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Empty reports whether either axis is non-positive.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Point is an x/y coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Rect is a screen rectangle. Window bounds are logical and screen-absolute.
type Rect struct {
	X      int `yaml:"x"      json:"x"`
	Y      int `yaml:"y"      json:"y"`
	Width  int `yaml:"width"  json:"width"`
	Height int `yaml:"height" json:"height"`
}

func (r Rect) String() string {
	return fmt.Sprintf("x=%d y=%d w=%d h=%d", r.X, r.Y, r.Width, r.Height)
}

// Size returns the width/height of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Within reports whether r lies entirely inside [0,outer.Width) x [0,outer.Height).
func (r Rect) Within(outer Size) bool {
	return r.X >= 0 && r.Y >= 0 &&
		r.X+r.Width <= outer.Width &&
		r.Y+r.Height <= outer.Height
}

// DisplayGeometry describes one capture call's view of the primary display.
type DisplayGeometry struct {
	Physical    Size    `yaml:"physical"     json:"physical"`
	Logical     Size    `yaml:"logical"      json:"logical"`
	ScaleX      float64 `yaml:"scale_x"      json:"scale_x"`
	ScaleY      float64 `yaml:"scale_y"      json:"scale_y"`
	HighDensity bool    `yaml:"high_density" json:"high_density"`
}
