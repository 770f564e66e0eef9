package app

import (
	"context"
	"fmt"

	"tradedesk/internal/config"
	"tradedesk/internal/logger"
	"tradedesk/internal/trader"
	tradehttp "tradedesk/internal/transport/http/trade"

	"golang.org/x/sync/errgroup"
)

// App owns the wired order-entry service: HTTP surface plus config hot reload.
type App struct {
	cfg        *config.Config
	configPath string
	server     *tradehttp.Server
	resolver   *trader.Resolver
	Summary    *StartupSummary
}

// NewApp builds the service without starting it.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(context.Background(), cfg)
}

// WithConfigPath enables hot reload of path while the app runs.
func (a *App) WithConfigPath(path string) *App {
	if a != nil {
		a.configPath = path
	}
	return a
}

// Run serves until ctx is cancelled or a component fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	if a.server == nil {
		return fmt.Errorf("http server not initialized")
	}
	if a.Summary != nil {
		a.Summary.Print()
	}
	if a.configPath != "" {
		if err := config.Watch(a.configPath, applyReload); err != nil {
			logger.Warnf("[config] hot reload disabled: %v", err)
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.server.Start(ctx); err != nil {
			return fmt.Errorf("trade http server error: %w", err)
		}
		return nil
	})
	return group.Wait()
}

// Server exposes the HTTP server (for tests and embedding).
func (a *App) Server() *tradehttp.Server {
	if a == nil {
		return nil
	}
	return a.server
}

// applyReload applies the settings that may change without a restart.
func applyReload(cfg *config.Config) {
	if cfg == nil {
		return
	}
	prev := logger.Level()
	logger.SetLevel(cfg.App.LogLevel)
	if next := logger.Level(); next != prev {
		logger.Infof("[config] log level %s -> %s", prev, next)
	}
}
