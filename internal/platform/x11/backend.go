package x11

import (
	"os"
	"runtime"

	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/screen"
)

func init() {
	platform.Register(platform.Backend{
		Name:      "x11",
		Available: available,
		New:       newProvider,
	})
}

func available() bool {
	return runtime.GOOS != "darwin" && runtime.GOOS != "windows" && os.Getenv("DISPLAY") != ""
}

func newProvider() (*platform.Provider, error) {
	c, err := Open(os.Getenv("DISPLAY"))
	if err != nil {
		return nil, err
	}
	grabber := screen.NewGrabber(0)
	c.UsePrimaryHead(grabber.Bounds())
	return &platform.Provider{
		Name:    "x11",
		Input:   NewInput(c),
		Grabber: grabber,
		Windows: NewDirectory(c),
		Close:   c.Close,
	}, nil
}
