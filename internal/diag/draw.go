package diag

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	markerColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// ToRGBA copies any image into a new RGBA image.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func setIfInside(img *image.RGBA, x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}

// drawCrosshair draws a ring of radius r with crosshair arms through (cx, cy).
func drawCrosshair(img *image.RGBA, cx, cy, r int, c color.Color) {
	for d := -2 * r; d <= 2*r; d++ {
		setIfInside(img, cx+d, cy, c)
		setIfInside(img, cx, cy+d, c)
	}
	drawRectangle(img, cx-r, cy-r, cx+r+1, cy+r+1, c)
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	b := img.Bounds()
	x1, y1 = max(x1, b.Min.X), max(y1, b.Min.Y)
	x2, y2 = min(x2, b.Max.X), min(y2, b.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

// drawTextWithOutline draws text with its top-left near (x, y) using the
// 7x13 bitmap face and a one pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	// Dot is the baseline; Face7x13 ascent is 11.
	baseline := y + 11
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(x+dx, baseline+dy),
			}
			d.DrawString(text)
		}
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}

// labelOrigin keeps a label of n characters inside the image, preferring the
// lower right of (x, y).
func labelOrigin(b image.Rectangle, x, y, n int) (int, int) {
	w, h := n*7, 13
	lx, ly := x+8, y+8
	if lx+w > b.Max.X {
		lx = x - 8 - w
	}
	if ly+h > b.Max.Y {
		ly = y - 8 - h
	}
	return max(lx, b.Min.X), max(ly, b.Min.Y)
}
