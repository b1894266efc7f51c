package cmd

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-pilot/internal/actions"
	"github.com/mj1618/desktop-pilot/internal/capture"
	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/coords"
	"github.com/mj1618/desktop-pilot/internal/diag"
	"github.com/mj1618/desktop-pilot/internal/imaging"
	"github.com/mj1618/desktop-pilot/internal/logger"
	"github.com/mj1618/desktop-pilot/internal/metadata"
	"github.com/mj1618/desktop-pilot/internal/model"
	"github.com/mj1618/desktop-pilot/internal/platform"
)

// app is the wired set of components behind every command.
type app struct {
	provider *platform.Provider
	orch     *actions.Orchestrator
	capture  *capture.Service
	store    *metadata.Store
	log      *zap.Logger
}

// newProvider selects the platform backend. It is a variable so tests can
// substitute fakes.
var newProvider = func(cfg *config.Config) (*platform.Provider, error) {
	if cfg.Input.Display != "" {
		if err := os.Setenv("DISPLAY", cfg.Input.Display); err != nil {
			return nil, err
		}
	}
	return platform.NewProvider()
}

func newApp(cfg *config.Config) (*app, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}
	a, err := buildApp(cfg, provider, zap.L())
	if err != nil {
		if provider.Close != nil {
			_ = provider.Close()
		}
		return nil, err
	}
	return a, nil
}

func buildApp(cfg *config.Config, provider *platform.Provider, log *zap.Logger) (*app, error) {
	if log == nil {
		log = zap.NewNop()
	}
	codec, err := imaging.NewCodec(cfg.Capture.Format)
	if err != nil {
		return nil, err
	}
	store := metadata.NewStore(cfg.Metadata.TTL)
	svc := capture.NewService(provider.Grabber, codec, provider.Windows, store, capture.Options{
		Quality:     cfg.Capture.Quality,
		MaxBytes:    cfg.Capture.MaxBytes,
		SettleDelay: cfg.Capture.SettleDelay,
		Fraction:    cfg.Capture.Fraction,
		Cap:         model.Size{Width: cfg.Capture.MaxWidth, Height: cfg.Capture.MaxHeight},
	})

	base := coords.NewResolver(store, provider.Windows)
	var resolver actions.PointResolver = base
	if cfg.Debug.Enabled {
		marker, err := diag.NewMarker(base, cfg.Debug.MarkerDir)
		if err != nil {
			return nil, fmt.Errorf("debug markers: %w", err)
		}
		svc.SetObserver(marker)
		resolver = marker
		log.Info("debug markers enabled", zap.String("dir", marker.Dir()))
	}

	orch := actions.New(provider.Input, provider.Windows, svc, resolver, actions.Options{
		FocusSettle: cfg.Input.FocusSettle,
		ClickSettle: cfg.Input.ClickSettle,
	})
	log.Debug("platform ready", zap.String("backend", provider.Name))
	return &app{provider: provider, orch: orch, capture: svc, store: store, log: log}, nil
}

func (a *app) Close() error {
	if a.provider.Close != nil {
		return a.provider.Close()
	}
	return nil
}

// context returns a background context carrying the app logger.
func (a *app) context() context.Context {
	return logger.ContextWithLogger(context.Background(), a.log)
}
