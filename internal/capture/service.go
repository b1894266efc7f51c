// Package capture grabs the screen or a window, scales it for the agent and
// records how the returned image maps back to logical coordinates.
package capture

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/metadata"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/scale"
)

const (
	DefaultQuality     = 60
	DefaultMaxBytes    = 300 * 1024
	DefaultSettleDelay = 500 * time.Millisecond
)

// Options tunes the capture pipeline.
type Options struct {
	Quality     int
	MaxBytes    int
	SettleDelay time.Duration
	Cap         model.Size
	Fraction    float64
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		Quality:     DefaultQuality,
		MaxBytes:    DefaultMaxBytes,
		SettleDelay: DefaultSettleDelay,
		Cap:         scale.DefaultCap,
		Fraction:    scale.DownscaleFraction,
	}
}

// ImageResult is an encoded capture ready to hand to the agent.
type ImageResult struct {
	Data     []byte                `yaml:"-" json:"-"`
	MimeType string                `yaml:"mime_type" json:"mime_type"`
	Summary  string                `yaml:"summary" json:"summary"`
	Metadata model.CaptureMetadata `yaml:"metadata" json:"metadata"`
	Geometry model.DisplayGeometry `yaml:"geometry" json:"geometry"`
	Window   *model.WindowRecord   `yaml:"window,omitempty" json:"window,omitempty"`
}

// Observer is notified with the final, pre-encode image of every capture.
type Observer interface {
	Captured(md model.CaptureMetadata, img image.Image)
}

// Service runs screen and window captures.
type Service struct {
	grabber  platform.ScreenGrabber
	codec    platform.ImageCodec
	windows  platform.WindowDirectory
	store    *metadata.Store
	opts     Options
	observer Observer
}

// NewService creates a capture service. Non-positive Quality, MaxBytes and
// Fraction take their defaults. A zero Cap axis is uncapped.
func NewService(grabber platform.ScreenGrabber, codec platform.ImageCodec, windows platform.WindowDirectory, store *metadata.Store, opts Options) *Service {
	def := DefaultOptions()
	if opts.Quality <= 0 {
		opts.Quality = def.Quality
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = def.MaxBytes
	}
	if opts.SettleDelay < 0 {
		opts.SettleDelay = 0
	}
	if opts.Fraction <= 0 || opts.Fraction > 1 {
		opts.Fraction = def.Fraction
	}
	return &Service{grabber: grabber, codec: codec, windows: windows, store: store, opts: opts}
}

// SetObserver registers o to receive every captured image.
func (s *Service) SetObserver(o Observer) {
	s.observer = o
}

// CaptureWindow focuses the window matched by q and captures its bounds.
func (s *Service) CaptureWindow(ctx context.Context, q platform.WindowQuery) (*ImageResult, error) {
	log := logger.FromContext(ctx)

	w, err := platform.LookupWindow(ctx, s.windows, q)
	if err != nil {
		return nil, err
	}
	if err := s.windows.Focus(ctx, w.ID); err != nil {
		if model.KindOf(err) != model.KindFocusFailed {
			err = &model.Error{Kind: model.KindFocusFailed, Msg: fmt.Sprintf("could not focus window %d (%q)", w.ID, w.Title), Err: err}
		}
		return nil, err
	}
	if err := platform.Sleep(ctx, s.opts.SettleDelay); err != nil {
		return nil, err
	}

	// Focusing can move a window; always crop its settled bounds.
	w, err = platform.LookupWindow(ctx, s.windows, platform.WindowQuery{ID: w.ID})
	if err != nil {
		return nil, err
	}
	logical, err := s.windows.ScreenSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("read screen size: %w", err)
	}
	if loc := model.DisplayLocation(w.Bounds, logical); loc != model.LocationPrimary {
		return nil, model.UnsupportedDisplay(w.Bounds, loc)
	}
	w = w.WithPrimaryFlag(logical)
	if w.Bounds.Width <= 0 || w.Bounds.Height <= 0 {
		return nil, model.InvalidBounds("window", w.Bounds, nil)
	}

	res, err := s.run(ctx, model.Window(w.ID), logical, w.Bounds, true)
	if err != nil {
		return nil, err
	}
	res.Window = &w
	res.Summary = fmt.Sprintf(
		"Captured window %d %q (%s): logical %s, image %s. Image coordinates map onto this window; pass windowId=%d with x/y from this image.",
		w.ID, w.Title, w.OwnerName, res.Metadata.SourceLogicalSize, res.Metadata.AIImageSize, w.ID)
	log.Info("window captured",
		zap.Int("window_id", w.ID),
		zap.Stringer("logical", res.Metadata.SourceLogicalSize),
		zap.Stringer("ai_image", res.Metadata.AIImageSize),
		zap.Int("bytes", len(res.Data)))
	return res, nil
}

// CaptureScreen captures the primary display, or region of it when given.
// Region is in logical coordinates.
func (s *Service) CaptureScreen(ctx context.Context, region *model.Rect) (*ImageResult, error) {
	log := logger.FromContext(ctx)

	logical, err := s.windows.ScreenSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("read screen size: %w", err)
	}
	area := model.Rect{Width: logical.Width, Height: logical.Height}
	cropped := false
	if region != nil {
		if region.Width <= 0 || region.Height <= 0 {
			return nil, model.InvalidBounds("region", *region, nil)
		}
		area = *region
		cropped = true
	}

	res, err := s.run(ctx, model.FullScreen(), logical, area, cropped)
	if err != nil {
		return nil, err
	}
	what := "screen"
	if cropped {
		what = fmt.Sprintf("screen region (%s)", area)
	}
	res.Summary = fmt.Sprintf(
		"Captured %s: logical %s, image %s. Image coordinates map onto the screen; omit windowId when clicking.",
		what, res.Metadata.SourceLogicalSize, res.Metadata.AIImageSize)
	log.Info("screen captured",
		zap.Bool("region", cropped),
		zap.Stringer("logical", res.Metadata.SourceLogicalSize),
		zap.Stringer("ai_image", res.Metadata.AIImageSize),
		zap.Int("bytes", len(res.Data)))
	return res, nil
}

// run grabs the display, extracts area (logical, screen-absolute), scales,
// encodes and records metadata for subject.
func (s *Service) run(ctx context.Context, subject model.Subject, logical model.Size, area model.Rect, crop bool) (*ImageResult, error) {
	log := logger.FromContext(ctx)

	img, err := s.grabber.Grab(ctx)
	if err != nil {
		return nil, fmt.Errorf("grab screen: %w", err)
	}
	b := img.Bounds()
	physical := model.Size{Width: b.Dx(), Height: b.Dy()}
	// A grab smaller than the logical screen means the directory measured
	// more than the one display the grabber captures.
	if physical.Width < logical.Width || physical.Height < logical.Height {
		return nil, model.Errorf(model.KindUnsupportedDisplay,
			"captured display is %s but the logical screen is %s; only the primary display can be captured",
			physical, logical)
	}
	ratio := scale.HighDensityRatio(physical, logical)
	geometry := scale.Geometry(physical, logical)

	extracted := img
	if crop {
		rect := scale.ScaleRect(area, ratio)
		if rect.Width <= 0 || rect.Height <= 0 || !rect.Within(physical) {
			return nil, model.InvalidBounds("extraction", rect, &physical)
		}
		extracted, err = s.codec.Crop(img, rect)
		if err != nil {
			return nil, err
		}
	}

	eb := extracted.Bounds()
	extractedSize := model.Size{Width: eb.Dx(), Height: eb.Dy()}
	if target, ok := scale.ResizeTarget(extractedSize, s.opts.Cap, s.opts.Fraction); ok {
		extracted = s.codec.Resize(extracted, target)
	}

	data, err := s.codec.Encode(extracted, s.opts.Quality)
	if err != nil {
		return nil, err
	}
	measured, err := s.codec.DecodeConfig(data)
	if err != nil {
		return nil, err
	}
	if len(data) > s.opts.MaxBytes {
		return nil, model.PayloadTooLarge(len(data), s.opts.MaxBytes)
	}

	md := model.CaptureMetadata{
		ID:                uuid.NewString(),
		Subject:           subject,
		SourceLogicalSize: area.Size(),
		AIImageSize:       measured,
		CapturedAt:        s.store.Now(),
	}
	if !subject.IsWindow() {
		md.Origin = area.Origin()
	}
	if n := s.store.Prune(); n > 0 {
		log.Debug("pruned expired capture metadata", zap.Int("count", n))
	}
	s.store.Put(md)
	if s.observer != nil {
		s.observer.Captured(md, extracted)
	}

	log.Debug("capture pipeline",
		zap.Stringer("subject", subject),
		zap.Stringer("physical", physical),
		zap.Stringer("logical_screen", logical),
		zap.Bool("high_density", ratio.HighDensity),
		zap.Stringer("extracted", extractedSize),
		zap.Stringer("ai_image", measured))

	return &ImageResult{
		Data:     data,
		MimeType: s.codec.MimeType(),
		Metadata: md,
		Geometry: geometry,
	}, nil
}
