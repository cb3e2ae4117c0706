package modules

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/logging"
	"github.com/km-arc/go-autowire/framework/routing"
)

// Keys bound by the framework modules.
var (
	ConfigKey = container.KeyOf[*config.Config]()
	LoggerKey = container.KeyOf[*zap.Logger]()
	RouterKey = container.KeyOf[*routing.Router]()
)

// ── ConfigModule ──────────────────────────────────────────────────────────────

// ConfigModule binds the application configuration.
//
// Bound keys:
//   - ConfigKey → *config.Config
//
// When Config is set it is registered as an instance; otherwise the
// configuration is loaded from EnvFiles on first resolution.
type ConfigModule struct {
	Config   *config.Config
	EnvFiles []string
}

func (m *ConfigModule) Name() string { return "framework.config" }

func (m *ConfigModule) Load(r container.Registrar) error {
	if m.Config != nil {
		return r.Instance(ConfigKey, m.Config)
	}
	envFiles := m.EnvFiles
	return r.Register(ConfigKey, func([]any) (any, error) {
		return config.Load(envFiles...), nil
	}, nil, container.Singleton)
}

// ── LoggingModule ─────────────────────────────────────────────────────────────

// LoggingModule binds the structured logger.
//
// Bound keys:
//   - LoggerKey → *zap.Logger
//
// A preset Logger is registered as an instance and left for the caller to
// sync. Otherwise the logger is built from ConfigKey's log settings.
type LoggingModule struct {
	Logger *zap.Logger
}

func (m *LoggingModule) Name() string { return "framework.logging" }

func (m *LoggingModule) Load(r container.Registrar) error {
	if m.Logger != nil {
		return r.Instance(LoggerKey, m.Logger)
	}
	return r.Register(LoggerKey, func(args []any) (any, error) {
		cfg, err := container.Arg[*config.Config](args, 0)
		if err != nil {
			return nil, err
		}
		return logging.New(&cfg.Log)
	}, container.Deps(ConfigKey), container.Singleton)
}

// ── RoutingModule ─────────────────────────────────────────────────────────────

// RoutingModule binds the HTTP router.
//
// Bound keys:
//   - RouterKey → *routing.Router
type RoutingModule struct{}

func (RoutingModule) Name() string { return "framework.routing" }

func (RoutingModule) Load(r container.Registrar) error {
	return r.Register(RouterKey, func(args []any) (any, error) {
		logger, err := container.Arg[*zap.Logger](args, 0)
		if err != nil {
			return nil, err
		}
		return routing.New(logger), nil
	}, container.Deps(LoggerKey), container.Singleton)
}

// Framework returns the framework modules in load order.
func Framework(cfg *config.Config, logger *zap.Logger) []container.Module {
	return []container.Module{
		&ConfigModule{Config: cfg},
		&LoggingModule{Logger: logger},
		RoutingModule{},
	}
}
