// Package scale holds the pure functions relating physical, logical and
// AI-image coordinate spaces.
package scale

import (
	"math"

	"github.com/mj1618/desktop-pilot/internal/model"
)

const (
	// DownscaleFraction is applied per axis before capping.
	DownscaleFraction = 0.5
	// HighDensityThreshold is the physical/logical ratio above which a
	// display is treated as high-density.
	HighDensityThreshold = 1.5
)

// DefaultCap bounds every image returned to the agent.
var DefaultCap = model.Size{Width: 1280, Height: 720}

// Ratio is the physical/logical density of a display.
type Ratio struct {
	ScaleX      float64
	ScaleY      float64
	HighDensity bool
}

// HighDensityRatio computes physical/logical per axis. A zero logical axis
// yields 1 on that axis.
func HighDensityRatio(physical, logical model.Size) Ratio {
	r := Ratio{ScaleX: 1, ScaleY: 1}
	if logical.Width > 0 {
		r.ScaleX = float64(physical.Width) / float64(logical.Width)
	}
	if logical.Height > 0 {
		r.ScaleY = float64(physical.Height) / float64(logical.Height)
	}
	r.HighDensity = r.ScaleX > HighDensityThreshold || r.ScaleY > HighDensityThreshold
	return r
}

// Geometry builds a DisplayGeometry from the two sizes.
func Geometry(physical, logical model.Size) model.DisplayGeometry {
	r := HighDensityRatio(physical, logical)
	return model.DisplayGeometry{
		Physical:    physical,
		Logical:     logical,
		ScaleX:      r.ScaleX,
		ScaleY:      r.ScaleY,
		HighDensity: r.HighDensity,
	}
}

// TargetDownscaleSize returns min(round(current*fraction), cap) per axis,
// never larger than current. A zero cap axis is uncapped. The bool reports
// whether the target is smaller than current on some axis.
func TargetDownscaleSize(current, limit model.Size, fraction float64) (model.Size, bool) {
	target := model.Size{
		Width:  downscaleAxis(current.Width, limit.Width, fraction),
		Height: downscaleAxis(current.Height, limit.Height, fraction),
	}
	return target, target.Width < current.Width || target.Height < current.Height
}

func downscaleAxis(cur, limit int, fraction float64) int {
	v := int(math.Round(float64(cur) * fraction))
	if limit > 0 && v > limit {
		v = limit
	}
	if v > cur {
		v = cur
	}
	if v < 1 {
		v = 1
	}
	return v
}

// FitWithin scales current uniformly to fit inside box. It never upscales,
// and each axis is at least 1.
func FitWithin(current, box model.Size) model.Size {
	if current.Empty() || box.Empty() {
		return current
	}
	f := math.Min(float64(box.Width)/float64(current.Width), float64(box.Height)/float64(current.Height))
	if f >= 1 {
		return current
	}
	return model.Size{
		Width:  max(1, int(math.Round(float64(current.Width)*f))),
		Height: max(1, int(math.Round(float64(current.Height)*f))),
	}
}

// ResizeTarget is the final size for an extracted image: the downscale
// target fitted with preserved aspect. The bool is false when no resize is
// needed.
func ResizeTarget(current, limit model.Size, fraction float64) (model.Size, bool) {
	target, shrink := TargetDownscaleSize(current, limit, fraction)
	if !shrink {
		return current, false
	}
	fit := FitWithin(current, target)
	return fit, fit != current
}

// AIToLogicalScale is sourceLogical/aiImage per axis. A zero AI axis yields 1.
func AIToLogicalScale(sourceLogical, aiImage model.Size) (sx, sy float64) {
	sx, sy = 1, 1
	if aiImage.Width > 0 {
		sx = float64(sourceLogical.Width) / float64(aiImage.Width)
	}
	if aiImage.Height > 0 {
		sy = float64(sourceLogical.Height) / float64(aiImage.Height)
	}
	return sx, sy
}

// ScaleRect converts a logical rectangle into physical pixels. Rectangles
// are left unscaled when the display is not high-density.
func ScaleRect(r model.Rect, ratio Ratio) model.Rect {
	if !ratio.HighDensity {
		return r
	}
	return model.Rect{
		X:      int(math.Round(float64(r.X) * ratio.ScaleX)),
		Y:      int(math.Round(float64(r.Y) * ratio.ScaleY)),
		Width:  int(math.Round(float64(r.Width) * ratio.ScaleX)),
		Height: int(math.Round(float64(r.Height) * ratio.ScaleY)),
	}
}

// AIToLogical maps an AI-image point into a logical offset from the
// capture's origin.
func AIToLogical(p model.Point, sourceLogical, aiImage model.Size) model.Point {
	sx, sy := AIToLogicalScale(sourceLogical, aiImage)
	return model.Point{
		X: int(math.Round(float64(p.X) * sx)),
		Y: int(math.Round(float64(p.Y) * sy)),
	}
}

// LogicalToAI is the inverse of AIToLogical.
func LogicalToAI(p model.Point, sourceLogical, aiImage model.Size) model.Point {
	sx, sy := AIToLogicalScale(sourceLogical, aiImage)
	return model.Point{
		X: int(math.Round(float64(p.X) / sx)),
		Y: int(math.Round(float64(p.Y) / sy)),
	}
}
