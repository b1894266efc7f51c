// Package screen captures the primary display with the kbinani/screenshot
// library.
package screen

import (
	"context"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Grabber captures a single display at physical resolution.
type Grabber struct {
	display int
}

// NewGrabber returns a grabber for display index n. Index 0 is the primary
// display.
func NewGrabber(n int) *Grabber {
	return &Grabber{display: n}
}

var _ platform.ScreenGrabber = (*Grabber)(nil)

// Grab captures the whole display.
func (g *Grabber) Grab(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n := screenshot.NumActiveDisplays(); n <= g.display {
		return nil, fmt.Errorf("display %d not active (%d active displays)", g.display, n)
	}
	img, err := screenshot.CaptureDisplay(g.display)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display %d: %w", g.display, err)
	}
	return img, nil
}

// Bounds returns the display's bounds in the capture library's coordinate
// space.
func (g *Grabber) Bounds() image.Rectangle {
	return screenshot.GetDisplayBounds(g.display)
}
