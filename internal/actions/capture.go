package actions

import (
	"context"
	"fmt"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

func (o *Orchestrator) screenCapture(ctx context.Context, p Params) (Result, error) {
	region, err := regionParam(p, "region")
	if err != nil {
		return Result{}, err
	}
	img, err := o.capturer.CaptureScreen(ctx, region)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Image: img, Data: captureData(img.Metadata)}, nil
}

func (o *Orchestrator) windowCapture(ctx context.Context, p Params) (Result, error) {
	id, _, err := optIntParam(p, "windowId")
	if err != nil {
		return Result{}, err
	}
	title := stringParam(p, "windowTitle", stringParam(p, "title", ""))
	if id <= 0 && title == "" {
		return Result{}, invalid("windowId or windowTitle is required")
	}
	img, err := o.capturer.CaptureWindow(ctx, platform.WindowQuery{ID: id, Title: title})
	if err != nil {
		return Result{}, err
	}
	data := captureData(img.Metadata)
	if img.Window != nil {
		data["windowId"] = img.Window.ID
		data["title"] = img.Window.Title
	}
	return Result{Success: true, Image: img, Data: data}, nil
}

func (o *Orchestrator) listWindows(ctx context.Context, p Params) (Result, error) {
	windows, err := o.windows.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list windows: %w", err)
	}
	screen, err := o.windows.ScreenSize(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read screen size: %w", err)
	}
	windows = platform.FilterWindows(windows, stringParam(p, "title", ""))
	for i := range windows {
		windows[i] = windows[i].WithPrimaryFlag(screen)
	}
	if windows == nil {
		windows = []model.WindowRecord{}
	}
	return Result{Success: true, Data: map[string]any{
		"screen":  screen,
		"windows": windows,
		"count":   len(windows),
	}}, nil
}

func captureData(md model.CaptureMetadata) map[string]any {
	return map[string]any{
		"captureId":   md.ID,
		"logicalSize": md.SourceLogicalSize,
		"imageSize":   md.AIImageSize,
	}
}
