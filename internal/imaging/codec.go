// Package imaging crops, resizes and encodes captured screen images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"github.com/mj1618/desktop-pilot/internal/model"
)

const (
	FormatJPEG = "jpeg"
	FormatPNG  = "png"

	DefaultQuality = 60
)

// Codec implements platform.ImageCodec on top of golang.org/x/image/draw.
type Codec struct {
	format string
}

// NewCodec returns a codec for format ("jpeg" or "png").
func NewCodec(format string) (*Codec, error) {
	switch format {
	case "", FormatJPEG, "jpg":
		return &Codec{format: FormatJPEG}, nil
	case FormatPNG:
		return &Codec{format: FormatPNG}, nil
	default:
		return nil, fmt.Errorf("unsupported image format %q (expected jpeg or png)", format)
	}
}

// MimeType returns the content type of encoded output.
func (c *Codec) MimeType() string {
	if c.format == FormatPNG {
		return "image/png"
	}
	return "image/jpeg"
}

// DecodeConfig reads the pixel dimensions from encoded bytes.
func (c *Codec) DecodeConfig(data []byte) (model.Size, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return model.Size{}, fmt.Errorf("failed to decode image header: %w", err)
	}
	return model.Size{Width: cfg.Width, Height: cfg.Height}, nil
}

// Crop copies r, relative to the image's top-left, into a new image.
func (c *Codec) Crop(img image.Image, r model.Rect) (image.Image, error) {
	b := img.Bounds()
	src := model.Size{Width: b.Dx(), Height: b.Dy()}
	if r.Width <= 0 || r.Height <= 0 || !r.Within(src) {
		return nil, model.InvalidBounds("crop", r, &src)
	}
	srcRect := image.Rect(b.Min.X+r.X, b.Min.Y+r.Y, b.Min.X+r.X+r.Width, b.Min.Y+r.Y+r.Height)
	dst := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(dst, dst.Bounds(), img, srcRect.Min, draw.Src)
	return dst, nil
}

// Resize scales img to fit inside target with the aspect ratio preserved.
// Images already inside target are returned unchanged.
func (c *Codec) Resize(img image.Image, target model.Size) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if target.Empty() || (w <= target.Width && h <= target.Height) {
		return img
	}
	ratio := min(float64(target.Width)/float64(w), float64(target.Height)/float64(h))
	nw := max(1, int(float64(w)*ratio+0.5))
	nh := max(1, int(float64(h)*ratio+0.5))

	resized := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, b, draw.Over, nil)
	return resized
}

// Encode serializes img. Quality applies to JPEG only.
func (c *Codec) Encode(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if c.format == FormatPNG {
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), nil
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
