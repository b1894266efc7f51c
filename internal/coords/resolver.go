// Package coords maps points in an agent-visible capture back to logical
// screen coordinates for input injection.
package coords

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/metadata"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/scale"
)

// Resolution is the outcome of mapping one AI-image point.
type Resolution struct {
	// Point is the screen-absolute logical point handed to the input driver.
	Point model.Point `yaml:"point" json:"point"`
	// Offset is the logical offset from the capture origin.
	Offset      model.Point           `yaml:"offset" json:"offset"`
	Metadata    model.CaptureMetadata `yaml:"metadata" json:"metadata"`
	Regenerated bool                  `yaml:"regenerated" json:"regenerated"`
	Status      string                `yaml:"status" json:"status"`
}

// Resolver turns AI-image coordinates into logical input coordinates.
type Resolver struct {
	store   *metadata.Store
	windows platform.WindowDirectory
}

// NewResolver creates a resolver reading from store.
func NewResolver(store *metadata.Store, windows platform.WindowDirectory) *Resolver {
	return &Resolver{store: store, windows: windows}
}

// Resolve maps (aiX, aiY) in the most recent capture of subject to a logical
// screen point. Missing or stale metadata is replaced by a 1:1 record built
// from the subject's current size. Window offsets always use the window's
// current bounds. Results are not clamped.
func (r *Resolver) Resolve(ctx context.Context, subject model.Subject, aiX, aiY int) (Resolution, error) {
	log := logger.FromContext(ctx)

	md, status := r.store.GetFresh(subject)
	res := Resolution{Status: status.String()}

	var current *model.WindowRecord
	if status != metadata.Fresh {
		regenerated, win, err := r.regenerate(ctx, subject)
		if err != nil {
			return Resolution{}, err
		}
		log.Debug("capture metadata regenerated",
			zap.Stringer("subject", subject),
			zap.Stringer("previous", status),
			zap.Stringer("logical_size", regenerated.SourceLogicalSize))
		md = regenerated
		current = win
		res.Regenerated = true
	}
	res.Metadata = md

	offset := scale.AIToLogical(model.Point{X: aiX, Y: aiY}, md.SourceLogicalSize, md.AIImageSize)
	res.Offset = offset

	if subject.IsWindow() {
		if current == nil {
			w, err := r.lookup(ctx, subject)
			if err != nil {
				return Resolution{}, err
			}
			current = &w
		}
		res.Point = model.Point{X: current.Bounds.X + offset.X, Y: current.Bounds.Y + offset.Y}
	} else {
		res.Point = model.Point{X: md.Origin.X + offset.X, Y: md.Origin.Y + offset.Y}
	}

	log.Debug("coordinates resolved",
		zap.Stringer("subject", subject),
		zap.Int("ai_x", aiX), zap.Int("ai_y", aiY),
		zap.Stringer("logical", res.Point),
		zap.Stringer("ai_image", md.AIImageSize),
		zap.Stringer("source", md.SourceLogicalSize))
	return res, nil
}

// regenerate synthesizes and stores 1:1 metadata for subject.
func (r *Resolver) regenerate(ctx context.Context, subject model.Subject) (model.CaptureMetadata, *model.WindowRecord, error) {
	md := model.CaptureMetadata{
		ID:          uuid.NewString(),
		Subject:     subject,
		CapturedAt:  r.store.Now(),
		Synthesized: true,
	}
	var win *model.WindowRecord
	if subject.IsWindow() {
		w, err := r.lookup(ctx, subject)
		if err != nil {
			return md, nil, err
		}
		md.SourceLogicalSize = w.Bounds.Size()
		win = &w
	} else {
		size, err := r.windows.ScreenSize(ctx)
		if err != nil {
			return md, nil, fmt.Errorf("read screen size: %w", err)
		}
		md.SourceLogicalSize = size
	}
	md.AIImageSize = md.SourceLogicalSize
	r.store.Put(md)
	return md, win, nil
}

// lookup reads the window's current record. A window that no longer exists
// loses its capture record.
func (r *Resolver) lookup(ctx context.Context, subject model.Subject) (model.WindowRecord, error) {
	w, err := platform.LookupWindow(ctx, r.windows, platform.WindowQuery{ID: subject.WindowID})
	if errors.Is(err, model.ErrWindowNotFound) {
		r.store.Delete(subject)
	}
	return w, err
}

// Inverse maps a screen-absolute logical point into the AI-image space of
// the subject's fresh capture.
func (r *Resolver) Inverse(ctx context.Context, subject model.Subject, logical model.Point) (model.Point, error) {
	md, status := r.store.GetFresh(subject)
	if status != metadata.Fresh {
		return model.Point{}, &model.Error{
			Kind: model.KindStaleMetadata,
			Msg:  fmt.Sprintf("no fresh capture for %s (%s)", subject, status),
		}
	}
	origin := md.Origin
	if subject.IsWindow() {
		w, err := platform.LookupWindow(ctx, r.windows, platform.WindowQuery{ID: subject.WindowID})
		if err != nil {
			return model.Point{}, err
		}
		origin = w.Bounds.Origin()
	}
	offset := model.Point{X: logical.X - origin.X, Y: logical.Y - origin.Y}
	return scale.LogicalToAI(offset, md.SourceLogicalSize, md.AIImageSize), nil
}
