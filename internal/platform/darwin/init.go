//go:build darwin && cgo

package darwin

import (
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/platform/robot"
	"github.com/mj1618/desktop-pilot/internal/platform/screen"
)

func init() {
	platform.Register(platform.Backend{
		Name: "darwin",
		New: func() (*platform.Provider, error) {
			return &platform.Provider{
				Name:    "darwin",
				Input:   robot.NewInput(),
				Grabber: screen.NewGrabber(0),
				Windows: NewDirectory(),
				Close:   func() error { return nil },
			}, nil
		},
	})
}
