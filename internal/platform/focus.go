package platform

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
)

// FocusStrategy is one way of bringing a window to the foreground.
type FocusStrategy struct {
	Name  string
	Focus func(ctx context.Context, w model.WindowRecord) error
}

// RunFocusStrategies tries each strategy in order and stops at the first
// success. When all fail, the returned FocusFailed error aggregates every
// strategy's error.
func RunFocusStrategies(ctx context.Context, w model.WindowRecord, strategies []FocusStrategy) error {
	log := logger.FromContext(ctx)
	var errs error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			errs = multierr.Append(errs, err)
			break
		}
		err := s.Focus(ctx, w)
		if err == nil {
			log.Debug("window focused", zap.Int("window_id", w.ID), zap.String("strategy", s.Name))
			return nil
		}
		log.Debug("focus strategy failed", zap.Int("window_id", w.ID), zap.String("strategy", s.Name), zap.Error(err))
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.Name, err))
	}
	if errs == nil {
		errs = fmt.Errorf("no focus strategies configured")
	}
	return &model.Error{
		Kind: model.KindFocusFailed,
		Msg:  fmt.Sprintf("could not focus window %d (%q)", w.ID, w.Title),
		Err:  errs,
	}
}
