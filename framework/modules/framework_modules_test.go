package modules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
	"github.com/km-arc/go-autowire/framework/modules"
	"github.com/km-arc/go-autowire/framework/routing"
)

func TestFramework_PresetInstances(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Name: "Test"}}
	logger := zap.NewNop()

	c, err := container.Build(modules.Framework(cfg, logger)...)
	require.NoError(t, err)

	gotCfg, err := container.Resolve[*config.Config](c, modules.ConfigKey)
	require.NoError(t, err)
	assert.Same(t, cfg, gotCfg)

	gotLogger, err := container.Resolve[*zap.Logger](c, modules.LoggerKey)
	require.NoError(t, err)
	assert.Same(t, logger, gotLogger)

	r1, err := container.Resolve[*routing.Router](c, modules.RouterKey)
	require.NoError(t, err)
	r2, err := container.Resolve[*routing.Router](c, modules.RouterKey)
	require.NoError(t, err)
	assert.Same(t, r1, r2)

	require.NoError(t, c.Dispose())
}

func TestConfigModule_LoadsFromEnvFiles(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("LOG_FORMAT", "json")

	c, err := container.Build(
		&modules.ConfigModule{EnvFiles: []string{"../config/testdata/empty.env"}},
		&modules.LoggingModule{},
	)
	require.NoError(t, err)

	cfg, err := container.Resolve[*config.Config](c, modules.ConfigKey)
	require.NoError(t, err)
	assert.Equal(t, "Autowire", cfg.App.Name)
	assert.Equal(t, "json", cfg.Log.Format)

	logger, err := container.Resolve[*zap.Logger](c, modules.LoggerKey)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestRoutingModule_RequiresLogger(t *testing.T) {
	_, err := container.Build(modules.RoutingModule{})

	var unresolved *container.UnresolvedDependencyError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, modules.LoggerKey, unresolved.Key)
	assert.Equal(t, modules.RouterKey, unresolved.Requester)
}

func TestModuleNames(t *testing.T) {
	assert.Equal(t, "framework.config", container.ModuleName(&modules.ConfigModule{}))
	assert.Equal(t, "framework.logging", container.ModuleName(&modules.LoggingModule{}))
	assert.Equal(t, "framework.routing", container.ModuleName(modules.RoutingModule{}))
}
