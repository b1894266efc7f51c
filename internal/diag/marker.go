// Package diag writes annotated copies of captures showing where resolved
// clicks and moves landed. It is only wired in when debugging is enabled.
package diag

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/coords"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
)

// Resolver is the decorated coordinate resolver. Inverse maps a reported
// pointer position back into the capture.
type Resolver interface {
	Resolve(ctx context.Context, subject model.Subject, aiX, aiY int) (coords.Resolution, error)
	Inverse(ctx context.Context, subject model.Subject, logical model.Point) (model.Point, error)
}

type frame struct {
	md  model.CaptureMetadata
	img image.Image
}

// Marker decorates a Resolver. It keeps the last captured image per subject
// and, after every move to a point resolved against it, writes a PNG marking
// where the system reports the pointer, mapped back into the image.
type Marker struct {
	inner Resolver
	dir   string
	codec *imaging.Codec
	now   func() time.Time

	mu     sync.Mutex
	frames map[model.Subject]frame
	seq    int
}

// NewMarker creates a marker writing into dir.
func NewMarker(inner Resolver, dir string) (*Marker, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "desktop-pilot")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create marker directory: %w", err)
	}
	codec, err := imaging.NewCodec(imaging.FormatPNG)
	if err != nil {
		return nil, err
	}
	return &Marker{
		inner:  inner,
		dir:    dir,
		codec:  codec,
		now:    time.Now,
		frames: make(map[model.Subject]frame),
	}, nil
}

// Dir returns the output directory.
func (m *Marker) Dir() string {
	return m.dir
}

// Captured records img as the current frame for md.Subject.
func (m *Marker) Captured(md model.CaptureMetadata, img image.Image) {
	m.mu.Lock()
	m.frames[md.Subject] = frame{md: md, img: img}
	m.mu.Unlock()
}

// Resolve delegates to the wrapped resolver.
func (m *Marker) Resolve(ctx context.Context, subject model.Subject, aiX, aiY int) (coords.Resolution, error) {
	return m.inner.Resolve(ctx, subject, aiX, aiY)
}

// PointerMoved annotates the frame res was computed against with the
// reported pointer position. Moves resolved against regenerated metadata
// have no frame and are skipped. Failures are logged only.
func (m *Marker) PointerMoved(ctx context.Context, subject model.Subject, res coords.Resolution, reported model.Point) {
	m.mu.Lock()
	f, ok := m.frames[subject]
	m.seq++
	seq := m.seq
	m.mu.Unlock()
	if !ok || f.md.ID != res.Metadata.ID {
		return
	}

	log := logger.FromContext(ctx)
	ai, err := m.inner.Inverse(ctx, subject, reported)
	if err != nil {
		log.Warn("could not map pointer into capture", zap.Stringer("pointer", reported), zap.Error(err))
		return
	}
	path, err := m.write(f, ai, reported, seq)
	if err != nil {
		log.Warn("could not write debug marker", zap.Error(err))
		return
	}
	log.Debug("debug marker written",
		zap.String("path", path),
		zap.Stringer("resolved", res.Point),
		zap.Stringer("pointer", reported))
}

// Annotate returns a copy of img with a marker at ai and a label naming the
// logical pointer position.
func Annotate(img image.Image, ai, logical model.Point) *image.RGBA {
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	cx, cy := b.Min.X+ai.X, b.Min.Y+ai.Y
	drawCrosshair(rgba, cx, cy, 6, markerColor)
	label := fmt.Sprintf("ai(%d,%d) -> (%d,%d)", ai.X, ai.Y, logical.X, logical.Y)
	lx, ly := labelOrigin(b, cx, cy, len(label))
	drawTextWithOutline(rgba, label, lx, ly)
	return rgba
}

func (m *Marker) write(f frame, ai, logical model.Point, seq int) (string, error) {
	data, err := m.codec.Encode(Annotate(f.img, ai, logical), 0)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s-%03d.png", subjectSlug(f.md.Subject), m.now().Format("20060102-150405"), seq)
	path := filepath.Join(m.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func subjectSlug(s model.Subject) string {
	if s.IsWindow() {
		return fmt.Sprintf("window-%d", s.WindowID)
	}
	return "screen"
}
