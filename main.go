package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/app/compute"
	"github.com/km-arc/go-autowire/app/console"
	"github.com/km-arc/go-autowire/app/greeting"
	"github.com/km-arc/go-autowire/app/manners"
	"github.com/km-arc/go-autowire/app/web"
	"github.com/km-arc/go-autowire/framework/app"
	"github.com/km-arc/go-autowire/framework/config"
)

func main() {
	cfg := config.Load() // loads .env automatically

	application, err := app.New(cfg,
		&manners.Module{Preferred: cfg.Services.MannersLocale},
		greeting.Module{},
		&compute.Module{},
		web.Module{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}

	if err := run(application); err != nil {
		application.Logger.Error("run failed", zap.Error(err))
		_ = application.Shutdown()
		os.Exit(1)
	}
	if err := application.Shutdown(); err != nil {
		os.Exit(1)
	}
}

func run(application *app.Application) error {
	if !application.Config.IsWeb() {
		return console.Run(application.Container, os.Stdout)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return application.Serve(ctx)
}
