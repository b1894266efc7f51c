package actions

import (
	"context"
	"fmt"
	"strings"
)

func (o *Orchestrator) keyboardPress(ctx context.Context, p Params) (Result, error) {
	key := strings.TrimSpace(stringParam(p, "key", ""))
	if key == "" {
		return Result{}, invalid("key is required")
	}
	modifiers := stringSliceParam(p, "modifiers")
	hold, err := rangeParam(p, "pressLength", 0, 0, MaxPressLengthMs)
	if err != nil {
		return Result{}, err
	}
	windowID, err := o.optionalFocus(ctx, p)
	if err != nil {
		return Result{}, err
	}

	if hold > 0 {
		err = o.input.KeyHold(ctx, key, modifiers, hold)
	} else {
		err = o.input.KeyTap(ctx, key, modifiers)
	}
	if err != nil {
		return Result{}, fmt.Errorf("press %s: %w", key, err)
	}

	data := map[string]any{"key": key}
	if len(modifiers) > 0 {
		data["modifiers"] = modifiers
	}
	if hold > 0 {
		data["pressLength"] = hold
	}
	if windowID > 0 {
		data["windowId"] = windowID
	}
	return Result{Success: true, Data: data}, nil
}

func (o *Orchestrator) keyboardType(ctx context.Context, p Params) (Result, error) {
	text := stringParam(p, "text", "")
	if text == "" {
		return Result{}, invalid("text is required")
	}
	delay, err := rangeParam(p, "delayMs", 0, 0, MaxTypeDelayMs)
	if err != nil {
		return Result{}, err
	}
	windowID, err := o.optionalFocus(ctx, p)
	if err != nil {
		return Result{}, err
	}
	if err := o.input.TypeText(ctx, text, delay); err != nil {
		return Result{}, fmt.Errorf("type text: %w", err)
	}

	data := map[string]any{"characters": len([]rune(text))}
	if windowID > 0 {
		data["windowId"] = windowID
	}
	return Result{Success: true, Data: data}, nil
}
