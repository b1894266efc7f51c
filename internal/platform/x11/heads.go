package x11

import (
	"image"

	"github.com/mj1618/desktop-pilot/internal/model"
)

// primaryRect returns the primary head in root coordinates. An empty head,
// or one that does not fit the root, falls back to the whole root.
func primaryRect(head image.Rectangle, root model.Size) model.Rect {
	r := model.Rect{X: head.Min.X, Y: head.Min.Y, Width: head.Dx(), Height: head.Dy()}
	if r.Width <= 0 || r.Height <= 0 || r.X < 0 || r.Y < 0 ||
		r.X+r.Width > root.Width || r.Y+r.Height > root.Height {
		return model.Rect{Width: root.Width, Height: root.Height}
	}
	return r
}

// toPrimary shifts root-space bounds so the primary head's origin is (0,0).
func toPrimary(r model.Rect, primary model.Rect) model.Rect {
	r.X -= primary.X
	r.Y -= primary.Y
	return r
}

// toRoot is the inverse of toPrimary for a point.
func toRoot(p model.Point, primary model.Rect) model.Point {
	return model.Point{X: p.X + primary.X, Y: p.Y + primary.Y}
}
