// Package x11 implements the window directory and input driver for Linux
// desktops running an EWMH-compliant X11 window manager.
package x11

import (
	"fmt"
	"image"
	"os"

	xgb "github.com/BurntSushi/xgb"
	xproto "github.com/BurntSushi/xgb/xproto"
	xtest "github.com/BurntSushi/xgb/xtest"
	xgbutil "github.com/BurntSushi/xgbutil"
	keybind "github.com/BurntSushi/xgbutil/keybind"

	"github.com/mj1618/desktop-pilot/internal/model"
)

// Conn is a shared X11 connection.
type Conn struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	screen  *xproto.ScreenInfo
	display string
	// primary is the primary head in root coordinates. Window bounds and
	// pointer positions are reported relative to its origin.
	primary model.Rect
}

// Open connects to display, or $DISPLAY when empty.
func Open(display string) (*Conn, error) {
	// xgb prints connection chatter to stderr; keep it off the tool stream.
	oldStderr := os.Stderr
	devNull, devErr := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if devErr == nil {
		os.Stderr = devNull
	}

	xu, err := xgbutil.NewConnDisplay(display)

	if devErr == nil {
		os.Stderr = oldStderr
		_ = devNull.Close()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11 display %q: %w", display, err)
	}

	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("failed to initialize XTEST extension: %w", err)
	}
	keybind.Initialize(xu)

	screen := xproto.Setup(xu.Conn()).DefaultScreen(xu.Conn())
	return &Conn{
		xu:      xu,
		conn:    xu.Conn(),
		screen:  screen,
		display: display,
		primary: model.Rect{Width: int(screen.WidthInPixels), Height: int(screen.HeightInPixels)},
	}, nil
}

// UsePrimaryHead restricts the connection to head, the rect the screen
// grabber captures. The root spans every monitor.
func (c *Conn) UsePrimaryHead(head image.Rectangle) {
	c.primary = primaryRect(head, c.rootSize())
}

func (c *Conn) rootSize() model.Size {
	return model.Size{Width: int(c.screen.WidthInPixels), Height: int(c.screen.HeightInPixels)}
}

// Close closes the connection.
func (c *Conn) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

func (c *Conn) root() xproto.Window {
	return c.screen.Root
}
