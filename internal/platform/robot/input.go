//go:build darwin && cgo

package robot

import (
	"context"
	"fmt"
	"time"

	"github.com/go-vgo/robotgo"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// Input is a robotgo-backed input driver. Coordinates are logical points.
type Input struct{}

// NewInput returns a robotgo input driver.
func NewInput() *Input {
	return &Input{}
}

var _ platform.InputDriver = (*Input)(nil)

func (in *Input) MovePointer(ctx context.Context, x, y int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	robotgo.Move(x, y)
	return nil
}

func (in *Input) Click(ctx context.Context, button platform.MouseButton, holdMs int, double bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name := buttonName(button)
	if holdMs <= 0 {
		robotgo.Click(name, double)
		return nil
	}

	clicks := 1
	if double {
		clicks = 2
	}
	for i := 0; i < clicks; i++ {
		if err := robotgo.Toggle(name); err != nil {
			return fmt.Errorf("failed to press %s button: %w", button, err)
		}
		sleepErr := platform.Sleep(ctx, time.Duration(holdMs)*time.Millisecond)
		if err := robotgo.Toggle(name, "up"); err != nil {
			return fmt.Errorf("failed to release %s button: %w", button, err)
		}
		if sleepErr != nil {
			return sleepErr
		}
	}
	return nil
}

func (in *Input) KeyTap(ctx context.Context, key string, modifiers []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := robotgo.KeyTap(KeyName(key), modifierArgs(modifiers)...); err != nil {
		return model.Errorf(model.KindInvalidParams, "key %q: %w", key, err)
	}
	return nil
}

func (in *Input) KeyHold(ctx context.Context, key string, modifiers []string, holdMs int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	k := KeyName(key)
	mods := modifierArgs(modifiers)
	if err := robotgo.KeyDown(k, mods...); err != nil {
		return model.Errorf(model.KindInvalidParams, "key %q: %w", key, err)
	}
	sleepErr := platform.Sleep(ctx, time.Duration(holdMs)*time.Millisecond)
	if err := robotgo.KeyUp(k, mods...); err != nil {
		return fmt.Errorf("failed to release %q: %w", key, err)
	}
	return sleepErr
}

func (in *Input) TypeText(ctx context.Context, text string, delayMs int) error {
	if delayMs <= 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		robotgo.TypeStr(text)
		return nil
	}
	for _, r := range text {
		robotgo.TypeStr(string(r))
		if err := platform.Sleep(ctx, time.Duration(delayMs)*time.Millisecond); err != nil {
			return err
		}
	}
	return nil
}

func (in *Input) PointerPosition(ctx context.Context) (model.Point, error) {
	if err := ctx.Err(); err != nil {
		return model.Point{}, err
	}
	x, y := robotgo.Location()
	return model.Point{X: x, Y: y}, nil
}

func buttonName(b platform.MouseButton) string {
	switch b {
	case platform.MouseRight:
		return "right"
	case platform.MouseMiddle:
		return "center"
	default:
		return "left"
	}
}
