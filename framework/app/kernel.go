package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/logging"
	"github.com/km-arc/go-autowire/framework/modules"
	"github.com/km-arc/go-autowire/framework/routing"
)

// shutdownTimeout bounds graceful HTTP shutdown.
const shutdownTimeout = 10 * time.Second

// Application is the composition root: configuration, the logger and the
// built container, created once at startup.
type Application struct {
	Config    *config.Config
	Logger    *zap.Logger
	Container *container.Container
}

// New builds the logger from cfg, then builds a container from the
// framework modules followed by appModules.
//
//	application, err := app.New(config.Load(), &manners.Module{}, greeting.Module{})
func New(cfg *config.Config, appModules ...container.Module) (*Application, error) {
	logger, err := logging.New(&cfg.Log)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(cfg, logger, appModules...)
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *zap.Logger, appModules ...container.Module) (*Application, error) {
	b := container.NewBuilder(container.WithLogger(logger.Named("container")))
	for _, m := range append(modules.Framework(cfg, logger), appModules...) {
		if err := b.AddModule(m); err != nil {
			return nil, err
		}
	}
	c, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Application{Config: cfg, Logger: logger, Container: c}, nil
}

// Router resolves the framework router.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, modules.RouterKey)
}

// Serve listens on APP_PORT until ctx is cancelled, then shuts the server
// down gracefully.
func (a *Application) Serve(ctx context.Context) error {
	router, err := a.Router()
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + a.Config.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			zap.String("app", a.Config.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", a.Config.App.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.Logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Shutdown disposes the container, releasing every instance it constructed
// in reverse order, and flushes the logger.
func (a *Application) Shutdown() error {
	err := a.Container.Dispose()
	if err != nil {
		a.Logger.Error("container dispose failed", zap.Error(err))
	}
	_ = a.Logger.Sync()
	return err
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
