package x11

import (
	"context"
	"fmt"
	"time"

	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	keybind "github.com/BurntSushi/xgbutil/keybind"

	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

const (
	clickHold      = 50 * time.Millisecond
	doubleClickGap = 100 * time.Millisecond
	keyGap         = 10 * time.Millisecond
)

// Input synthesizes pointer and keyboard events through XTEST.
type Input struct {
	c *Conn
}

// NewInput returns an input driver on c.
func NewInput(c *Conn) *Input {
	return &Input{c: c}
}

var _ platform.InputDriver = (*Input)(nil)

// MovePointer warps the pointer to the root-relative point.
func (in *Input) MovePointer(ctx context.Context, x, y int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p := toRoot(model.Point{X: x, Y: y}, in.c.primary)
	err := xproto.WarpPointerChecked(in.c.conn, xproto.WindowNone, in.c.root(),
		0, 0, 0, 0, int16(p.X), int16(p.Y)).Check()
	if err != nil {
		return fmt.Errorf("failed to move pointer: %w", err)
	}
	in.c.conn.Sync()
	return nil
}

// Click presses and releases button at the current pointer position.
func (in *Input) Click(ctx context.Context, button platform.MouseButton, holdMs int, double bool) error {
	detail := buttonCode(button)
	hold := clickHold
	if holdMs > 0 {
		hold = time.Duration(holdMs) * time.Millisecond
	}

	clicks := 1
	if double {
		clicks = 2
	}
	for i := 0; i < clicks; i++ {
		if i > 0 {
			if err := platform.Sleep(ctx, doubleClickGap); err != nil {
				return err
			}
		}
		if err := in.fake(xproto.ButtonPress, detail); err != nil {
			return fmt.Errorf("failed to press %s button: %w", button, err)
		}
		sleepErr := platform.Sleep(ctx, hold)
		// Release even when cancelled so the button is not left down.
		if err := in.fake(xproto.ButtonRelease, detail); err != nil {
			return fmt.Errorf("failed to release %s button: %w", button, err)
		}
		if sleepErr != nil {
			return sleepErr
		}
	}
	in.c.conn.Sync()
	return nil
}

// KeyTap presses key with modifiers held.
func (in *Input) KeyTap(ctx context.Context, key string, modifiers []string) error {
	return in.KeyHold(ctx, key, modifiers, 0)
}

// KeyHold presses key with modifiers held for holdMs before releasing.
func (in *Input) KeyHold(ctx context.Context, key string, modifiers []string, holdMs int) error {
	keysym, shift := keysymFor(key)
	code, err := in.keycode(keysym)
	if err != nil {
		return err
	}

	var mods []byte
	for _, m := range modifiers {
		mc, err := in.keycode(modifierKeysym(m))
		if err != nil {
			return err
		}
		mods = append(mods, mc)
	}
	if shift {
		sc, err := in.keycode("Shift_L")
		if err != nil {
			return err
		}
		mods = append(mods, sc)
	}

	pressed := make([]byte, 0, len(mods)+1)
	defer func() {
		for i := len(pressed) - 1; i >= 0; i-- {
			_ = in.fake(xproto.KeyRelease, pressed[i])
		}
		in.c.conn.Sync()
	}()

	for _, mc := range mods {
		if err := in.fake(xproto.KeyPress, mc); err != nil {
			return fmt.Errorf("failed to press modifier: %w", err)
		}
		pressed = append(pressed, mc)
	}
	if err := in.fake(xproto.KeyPress, code); err != nil {
		return fmt.Errorf("failed to press %s: %w", key, err)
	}
	pressed = append(pressed, code)

	hold := keyGap
	if holdMs > 0 {
		hold = time.Duration(holdMs) * time.Millisecond
	}
	return platform.Sleep(ctx, hold)
}

// TypeText types text one character at a time.
func (in *Input) TypeText(ctx context.Context, text string, delayMs int) error {
	delay := keyGap
	if delayMs > 0 {
		delay = time.Duration(delayMs) * time.Millisecond
	}
	for _, char := range text {
		ks := charToKey(char)
		var mods []string
		if ks.needsShift {
			mods = []string{"shift"}
		}
		code, err := in.keycode(ks.keysym)
		if err != nil {
			return fmt.Errorf("cannot type %q: %w", char, err)
		}
		if err := in.pressWithModifiers(code, mods); err != nil {
			return err
		}
		if err := platform.Sleep(ctx, delay); err != nil {
			return err
		}
	}
	return nil
}

// PointerPosition returns the pointer position relative to the root window.
func (in *Input) PointerPosition(ctx context.Context) (model.Point, error) {
	if err := ctx.Err(); err != nil {
		return model.Point{}, err
	}
	reply, err := xproto.QueryPointer(in.c.conn, in.c.root()).Reply()
	if err != nil {
		return model.Point{}, fmt.Errorf("failed to query pointer: %w", err)
	}
	p := model.Point{X: int(reply.RootX) - in.c.primary.X, Y: int(reply.RootY) - in.c.primary.Y}
	return p, nil
}

func (in *Input) pressWithModifiers(code byte, modifiers []string) error {
	var mods []byte
	for _, m := range modifiers {
		mc, err := in.keycode(modifierKeysym(m))
		if err != nil {
			return err
		}
		mods = append(mods, mc)
	}
	for _, mc := range mods {
		if err := in.fake(xproto.KeyPress, mc); err != nil {
			return err
		}
	}
	if err := in.fake(xproto.KeyPress, code); err != nil {
		return err
	}
	if err := in.fake(xproto.KeyRelease, code); err != nil {
		return err
	}
	for i := len(mods) - 1; i >= 0; i-- {
		if err := in.fake(xproto.KeyRelease, mods[i]); err != nil {
			return err
		}
	}
	in.c.conn.Sync()
	return nil
}

func (in *Input) keycode(keysym string) (byte, error) {
	codes := keybind.StrToKeycodes(in.c.xu, keysym)
	if len(codes) == 0 {
		return 0, model.Errorf(model.KindInvalidParams, "unknown key %q", keysym)
	}
	return byte(codes[0]), nil
}

func (in *Input) fake(eventType byte, detail byte) error {
	return xtest.FakeInputChecked(in.c.conn, eventType, detail, 0, in.c.root(), 0, 0, 0).Check()
}

func buttonCode(b platform.MouseButton) byte {
	switch b {
	case platform.MouseRight:
		return 3
	case platform.MouseMiddle:
		return 2
	default:
		return 1
	}
}
