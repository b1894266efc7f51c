package x11

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	xproto "github.com/BurntSushi/xgb/xproto"
	ewmh "github.com/BurntSushi/xgbutil/ewmh"
	icccm "github.com/BurntSushi/xgbutil/icccm"
	xwindow "github.com/BurntSushi/xgbutil/xwindow"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

const activationPoll = 20 * time.Millisecond

// Directory lists and focuses managed top-level windows via EWMH.
type Directory struct {
	c          *Conn
	strategies []platform.FocusStrategy
	// ActivationTimeout bounds how long an EWMH activation request is
	// polled before the next strategy is tried.
	ActivationTimeout time.Duration
}

// NewDirectory returns a window directory on c.
func NewDirectory(c *Conn) *Directory {
	d := &Directory{c: c, ActivationTimeout: 300 * time.Millisecond}
	d.strategies = []platform.FocusStrategy{
		{Name: "ewmh-activate", Focus: d.ewmhActivate},
		{Name: "set-input-focus", Focus: d.setInputFocus},
		{Name: "wmctrl", Focus: commandStrategy("wmctrl", "-ia", "%#08x")},
		{Name: "xdotool", Focus: commandStrategy("xdotool", "windowactivate", "--sync", "%d")},
	}
	return d
}

var _ platform.WindowDirectory = (*Directory)(nil)

// List returns the window manager's client list in stacking order.
func (d *Directory) List(ctx context.Context) ([]model.WindowRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clients, err := ewmh.ClientListGet(d.c.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to read _NET_CLIENT_LIST: %w", err)
	}
	screen, err := d.ScreenSize(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	windows := make([]model.WindowRecord, 0, len(clients))
	for _, win := range clients {
		rec, err := d.record(win)
		if err != nil {
			log.Debug("skipping window", zap.Uint32("xid", uint32(win)), zap.Error(err))
			continue
		}
		windows = append(windows, rec.WithPrimaryFlag(screen))
	}
	return windows, nil
}

// Focus raises and activates the window with the given id.
func (d *Directory) Focus(ctx context.Context, id int) error {
	windows, err := d.List(ctx)
	if err != nil {
		return err
	}
	for _, w := range windows {
		if w.ID == id {
			return platform.RunFocusStrategies(ctx, w, d.strategies)
		}
	}
	return model.WindowNotFound(fmt.Sprintf("id %d", id))
}

// ScreenSize returns the primary head's size, not the root's, which spans
// every monitor. X11 has no logical scaling, so logical and physical sizes
// coincide.
func (d *Directory) ScreenSize(ctx context.Context) (model.Size, error) {
	if err := ctx.Err(); err != nil {
		return model.Size{}, err
	}
	return d.c.primary.Size(), nil
}

func (d *Directory) record(win xproto.Window) (model.WindowRecord, error) {
	geom, err := xwindow.New(d.c.xu, win).DecorGeometry()
	if err != nil {
		return model.WindowRecord{}, fmt.Errorf("geometry: %w", err)
	}

	title, err := ewmh.WmNameGet(d.c.xu, win)
	if err != nil || title == "" {
		title, _ = icccm.WmNameGet(d.c.xu, win)
	}

	rec := model.WindowRecord{
		ID:    int(win),
		Title: title,
		Bounds: toPrimary(model.Rect{
			X:      geom.X(),
			Y:      geom.Y(),
			Width:  geom.Width(),
			Height: geom.Height(),
		}, d.c.primary),
	}
	if class, err := icccm.WmClassGet(d.c.xu, win); err == nil && class != nil {
		rec.OwnerName = class.Class
	}
	if pid, err := ewmh.WmPidGet(d.c.xu, win); err == nil {
		rec.PID = int(pid)
	}
	return rec, nil
}

func (d *Directory) ewmhActivate(ctx context.Context, w model.WindowRecord) error {
	win := xproto.Window(w.ID)
	if desk, err := ewmh.WmDesktopGet(d.c.xu, win); err == nil {
		if cur, err := ewmh.CurrentDesktopGet(d.c.xu); err == nil && cur != desk && desk != 0xFFFFFFFF {
			if err := ewmh.CurrentDesktopReq(d.c.xu, int(desk)); err != nil {
				return fmt.Errorf("switch to desktop %d: %w", desk, err)
			}
		}
	}
	if err := ewmh.ActiveWindowReq(d.c.xu, win); err != nil {
		return err
	}
	return d.waitActive(ctx, win)
}

func (d *Directory) setInputFocus(ctx context.Context, w model.WindowRecord) error {
	win := xproto.Window(w.ID)
	err := xproto.ConfigureWindowChecked(d.c.conn, win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove}).Check()
	if err != nil {
		return fmt.Errorf("raise: %w", err)
	}
	err = xproto.SetInputFocusChecked(d.c.conn, xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime).Check()
	if err != nil {
		return fmt.Errorf("set input focus: %w", err)
	}
	return d.waitActive(ctx, win)
}

func (d *Directory) waitActive(ctx context.Context, win xproto.Window) error {
	deadline := time.Now().Add(d.ActivationTimeout)
	for {
		active, err := ewmh.ActiveWindowGet(d.c.xu)
		if err == nil && active == win {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("window %#x did not become active", uint32(win))
		}
		if err := platform.Sleep(ctx, activationPoll); err != nil {
			return err
		}
	}
}

// commandStrategy focuses a window by running an external tool. The last
// argument is a format for the window id.
func commandStrategy(name string, args ...string) func(context.Context, model.WindowRecord) error {
	return func(ctx context.Context, w model.WindowRecord) error {
		path, err := exec.LookPath(name)
		if err != nil {
			return fmt.Errorf("%s not installed", name)
		}
		argv := append([]string(nil), args...)
		argv[len(argv)-1] = fmt.Sprintf(argv[len(argv)-1], w.ID)
		out, err := exec.CommandContext(ctx, path, argv...).CombinedOutput()
		if err != nil {
			return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
		}
		return nil
	}
}
