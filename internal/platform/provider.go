package platform

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/mj1618/desktop-pilot/internal/model"
)

// Provider bundles the platform capabilities for the current desktop session.
type Provider struct {
	Name    string
	Input   InputDriver
	Grabber ScreenGrabber
	Windows WindowDirectory
	// Close releases backend resources such as display connections.
	Close func() error
}

// Backend is a platform implementation registered by a platform package.
type Backend struct {
	Name string
	// Available reports whether the backend can run in this session.
	Available func() bool
	New       func() (*Provider, error)
}

// ErrUnsupported is returned when no registered backend is available.
var ErrUnsupported = &model.Error{
	Kind: model.KindUnsupported,
	Msg: fmt.Sprintf("desktop-pilot is not supported on %s/%s; supported: darwin (cgo), linux with X11",
		runtime.GOOS, runtime.GOARCH),
}

var (
	backendsMu sync.Mutex
	backends   []Backend
)

// Register adds a backend. Platform packages call it from init().
func Register(b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends = append(backends, b)
}

// Backends returns the registered backends in registration order.
func Backends() []Backend {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	return append([]Backend(nil), backends...)
}

// NewProvider returns a Provider from the first available backend.
func NewProvider() (*Provider, error) {
	for _, b := range Backends() {
		if b.Available != nil && !b.Available() {
			continue
		}
		p, err := b.New()
		if err != nil {
			return nil, fmt.Errorf("init %s backend: %w", b.Name, err)
		}
		if p.Name == "" {
			p.Name = b.Name
		}
		return p, nil
	}
	return nil, ErrUnsupported
}
