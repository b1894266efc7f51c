package platform

import (
	"context"
	"image"

	"github.com/mj1618/desktop-pilot/internal/model"
)

// ScreenGrabber captures the primary display at physical resolution.
type ScreenGrabber interface {
	Grab(ctx context.Context) (image.Image, error)
}

// ImageCodec crops, resizes, encodes and measures images.
type ImageCodec interface {
	// DecodeConfig reads the dimensions of encoded image bytes.
	DecodeConfig(data []byte) (model.Size, error)
	Crop(img image.Image, r model.Rect) (image.Image, error)
	// Resize scales img to fit inside target, preserving aspect ratio.
	// It never upscales.
	Resize(img image.Image, target model.Size) image.Image
	Encode(img image.Image, quality int) ([]byte, error)
	MimeType() string
}

// WindowDirectory enumerates and focuses top-level windows.
type WindowDirectory interface {
	// List returns every top-level window with logical, screen-absolute bounds.
	List(ctx context.Context) ([]model.WindowRecord, error)
	Focus(ctx context.Context, id int) error
	// ScreenSize returns the logical size of the primary display.
	ScreenSize(ctx context.Context) (model.Size, error)
}

// InputDriver simulates mouse and keyboard input in logical coordinates.
type InputDriver interface {
	MovePointer(ctx context.Context, x, y int) error
	Click(ctx context.Context, button MouseButton, holdMs int, double bool) error
	KeyTap(ctx context.Context, key string, modifiers []string) error
	KeyHold(ctx context.Context, key string, modifiers []string, holdMs int) error
	TypeText(ctx context.Context, text string, delayMs int) error
	PointerPosition(ctx context.Context) (model.Point, error)
}
