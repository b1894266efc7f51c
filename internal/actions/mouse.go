package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/coords"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

func (o *Orchestrator) mouseClick(ctx context.Context, p Params) (Result, error) {
	pt, hasPoint, err := pointParams(p)
	if err != nil {
		return Result{}, err
	}
	button, err := platform.ParseMouseButton(stringParam(p, "button", "left"))
	if err != nil {
		return Result{}, invalid("%v", err)
	}
	hold, err := rangeParam(p, "pressLength", 0, 0, MaxPressLengthMs)
	if err != nil {
		return Result{}, err
	}
	double := boolParam(p, "double", false)

	windowID, err := o.optionalFocus(ctx, p)
	if err != nil {
		return Result{}, err
	}

	data := map[string]any{
		"button": button.String(),
		"double": double,
	}
	if windowID > 0 {
		data["windowId"] = windowID
	}
	if hasPoint {
		subject := subjectFor(windowID)
		res, err := o.resolver.Resolve(ctx, subject, pt.X, pt.Y)
		if err != nil {
			return Result{}, err
		}
		if err := o.moveTo(ctx, subject, res); err != nil {
			return Result{}, err
		}
		if err := platform.Sleep(ctx, o.opts.ClickSettle); err != nil {
			return Result{}, err
		}
		data["requested"] = pt
		data["resolved"] = res.Point
		data["regenerated"] = res.Regenerated
	}
	if hold > 0 {
		data["pressLength"] = hold
	}

	if err := o.input.Click(ctx, button, hold, double); err != nil {
		return Result{}, fmt.Errorf("click %s: %w", button, err)
	}
	return Result{Success: true, Data: data}, nil
}

func (o *Orchestrator) mouseMove(ctx context.Context, p Params) (Result, error) {
	windowID, ok, err := optIntParam(p, "windowId")
	if err != nil {
		return Result{}, err
	}
	if !ok || windowID <= 0 {
		return Result{}, invalid("windowId is required; capture the window first and move within it")
	}
	pt, hasPoint, err := pointParams(p)
	if err != nil {
		return Result{}, err
	}
	if !hasPoint {
		return Result{}, invalid("x and y are required")
	}

	if _, err := o.focusWindow(ctx, windowID); err != nil {
		return Result{}, err
	}
	subject := subjectFor(windowID)
	res, err := o.resolver.Resolve(ctx, subject, pt.X, pt.Y)
	if err != nil {
		return Result{}, err
	}
	if err := o.moveTo(ctx, subject, res); err != nil {
		return Result{}, err
	}

	data := map[string]any{
		"windowId":    windowID,
		"requested":   pt,
		"resolved":    res.Point,
		"regenerated": res.Regenerated,
	}
	if pos, err := o.input.PointerPosition(ctx); err == nil {
		data["pointer"] = pos
	}
	return Result{Success: true, Data: data}, nil
}

func (o *Orchestrator) pointerPosition(ctx context.Context, p Params) (Result, error) {
	pos, err := o.input.PointerPosition(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read pointer position: %w", err)
	}
	return Result{Success: true, Data: map[string]any{"x": pos.X, "y": pos.Y}}, nil
}

// moveTo warps the pointer to the resolved point. When the resolver observes
// moves it is handed the position the system reports afterwards.
func (o *Orchestrator) moveTo(ctx context.Context, subject model.Subject, res coords.Resolution) error {
	if err := o.input.MovePointer(ctx, res.Point.X, res.Point.Y); err != nil {
		return fmt.Errorf("move pointer: %w", err)
	}
	obs, ok := o.resolver.(MoveObserver)
	if !ok {
		return nil
	}
	pos, err := o.input.PointerPosition(ctx)
	if err != nil {
		logger.FromContext(ctx).Debug("pointer position unavailable after move", zap.Error(err))
		return nil
	}
	obs.PointerMoved(ctx, subject, res, pos)
	return nil
}
