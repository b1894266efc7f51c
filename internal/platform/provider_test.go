package platform

import (
	"errors"
	"testing"

	"github.com/mj1618/desktop-pilot/internal/model"
)

func withBackends(t *testing.T, bs ...Backend) {
	t.Helper()
	backendsMu.Lock()
	orig := backends
	backends = bs
	backendsMu.Unlock()
	t.Cleanup(func() {
		backendsMu.Lock()
		backends = orig
		backendsMu.Unlock()
	})
}

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	withBackends(t)

	_, err := NewProvider()
	if err == nil {
		t.Fatal("expected error with no backends registered")
	}
	if !errors.Is(err, model.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewProvider_SkipsUnavailableBackends(t *testing.T) {
	withBackends(t,
		Backend{Name: "x11", Available: func() bool { return false }, New: func() (*Provider, error) {
			t.Fatal("unavailable backend should not be constructed")
			return nil, nil
		}},
		Backend{Name: "darwin", Available: func() bool { return true }, New: func() (*Provider, error) {
			return &Provider{}, nil
		}},
	)

	p, err := NewProvider()
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "darwin" {
		t.Errorf("Name = %q, want darwin", p.Name)
	}
}

func TestNewProvider_WrapsBackendError(t *testing.T) {
	boom := errors.New("cannot open display")
	withBackends(t, Backend{Name: "x11", New: func() (*Provider, error) { return nil, boom }})

	_, err := NewProvider()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got: %v", err)
	}
}
