package app_test

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/km-arc/go-autowire/framework/app"
	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
)

type closable struct{ closed bool }

func (c *closable) Close() error {
	c.closed = true
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Test", Env: "testing", Port: "0"},
		Log: config.LogConfig{Level: "info", Format: "console"},
	}
}

func TestNew_BuildsFrameworkAndAppModules(t *testing.T) {
	key := container.Key("closable")
	application, err := app.New(testConfig(), container.NewModule("extra", func(r container.Registrar) error {
		return r.Register(key, func([]any) (any, error) { return &closable{}, nil }, nil, container.Singleton)
	}))
	require.NoError(t, err)

	router, err := application.Router()
	require.NoError(t, err)
	assert.NotNil(t, router)

	res, err := container.Resolve[*closable](application.Container, key)
	require.NoError(t, err)

	require.NoError(t, application.Shutdown())
	assert.True(t, res.closed)
}

func TestNew_ReportsBuildErrors(t *testing.T) {
	_, err := app.New(testConfig(), container.NewModule("broken", func(r container.Registrar) error {
		return r.Register(container.Key("needy"), func([]any) (any, error) { return 1, nil },
			container.Deps(container.Key("missing")), container.Transient)
	}))

	var unresolved *container.UnresolvedDependencyError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, container.Key("missing"), unresolved.Key)
}

func TestNewWithLogger_LogsBuild(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	application, err := app.NewWithLogger(testConfig(), zap.New(core))
	require.NoError(t, err)
	defer application.Shutdown()

	assert.Equal(t, 1, logs.FilterMessage("container built").Len())
}

func TestEnvironment(t *testing.T) {
	application, err := app.NewWithLogger(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer application.Shutdown()

	assert.Equal(t, "testing", application.Environment())
	assert.True(t, application.IsTesting())
	assert.False(t, application.IsLocal())
	assert.False(t, application.IsProduction())
}

func freePort(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return strconv.Itoa(port)
}

func TestServe_StopsOnCancel(t *testing.T) {
	cfg := testConfig()
	cfg.App.Port = freePort(t)
	application, err := app.NewWithLogger(cfg, zap.NewNop())
	require.NoError(t, err)
	defer application.Shutdown()

	router, err := application.Router()
	require.NoError(t, err)
	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Serve(ctx) }()

	url := "http://127.0.0.1:" + cfg.App.Port + "/ping"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
