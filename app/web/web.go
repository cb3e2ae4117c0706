// Package web serves the hello-world endpoints. Each request gets its own
// container scope; SayHelloWorld is Scoped so one instance serves a request.
package web

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/km-arc/go-autowire/app/manners"
	"github.com/km-arc/go-autowire/framework/container"
	gohttp "github.com/km-arc/go-autowire/framework/http"
	"github.com/km-arc/go-autowire/framework/modules"
	"github.com/km-arc/go-autowire/framework/routing"
)

// HelloSayer produces the hello-world message.
type HelloSayer interface {
	SayHello() string
	SayHelloTo(name string) string
}

// SayHelloWorld is the request-scoped hello-world service.
type SayHelloWorld struct {
	disposed atomic.Bool
}

func (s *SayHelloWorld) SayHello() string { return "Hello World!" }

func (s *SayHelloWorld) SayHelloTo(name string) string { return "Hello " + name + "!" }

// Dispose marks the instance released at the end of its request.
func (s *SayHelloWorld) Dispose() error {
	s.disposed.Store(true)
	return nil
}

// Disposed reports whether the owning scope has been disposed.
func (s *SayHelloWorld) Disposed() bool { return s.disposed.Load() }

// HelloWorld is a pass-through middleware that tags responses.
func HelloWorld(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Hello", "World")
		next.ServeHTTP(w, r)
	})
}

// ── Handlers ──────────────────────────────────────────────────────────────────

// Index writes the hello-world message as plain text.
func Index(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	sayer, err := container.Resolve[HelloSayer](routing.RequestScope(req), HelloKey)
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Text(http.StatusOK, sayer.SayHello())
}

// Hello writes the hello-world message as JSON.
func Hello(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	sayer, err := container.Resolve[HelloSayer](routing.RequestScope(req), HelloKey)
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(map[string]any{"message": sayer.SayHello()})
}

// HelloName greets the {name} path parameter as JSON.
func HelloName(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	sayer, err := container.Resolve[HelloSayer](routing.RequestScope(req), HelloKey)
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	res.Success(map[string]any{"message": sayer.SayHelloTo(routing.Param(req, "name"))})
}

// Greetings lists the greeting of every registered manners provider, in
// registration order. No providers yields an empty list.
func Greetings(w http.ResponseWriter, req *http.Request) {
	res := gohttp.NewResponse(w)
	welcomers, err := container.ResolveAll[manners.Welcomer](routing.RequestScope(req), manners.WelcomerKey)
	var unresolved *container.UnresolvedDependencyError
	if errors.As(err, &unresolved) {
		res.Success([]string{})
		return
	}
	if err != nil {
		res.ServerError(err.Error())
		return
	}
	out := make([]string, 0, len(welcomers))
	for _, welcomer := range welcomers {
		var buf bytes.Buffer
		if err := welcomer.Greet(&buf); err != nil {
			res.ServerError(err.Error())
			return
		}
		out = append(out, strings.TrimSpace(buf.String()))
	}
	res.Success(out)
}

// ── Module ────────────────────────────────────────────────────────────────────

var HelloKey = container.KeyOf[HelloSayer]()

// Module registers SayHelloWorld and, at boot, mounts the routes on the
// framework router.
type Module struct{}

func (Module) Name() string { return "web" }

func (Module) Load(r container.Registrar) error {
	return r.Register(HelloKey, func([]any) (any, error) {
		return &SayHelloWorld{}, nil
	}, nil, container.Scoped)
}

func (Module) Boot(c *container.Container) error {
	router, err := container.Resolve[*routing.Router](c, modules.RouterKey)
	if err != nil {
		return err
	}
	logger, err := container.Resolve[*zap.Logger](c, modules.LoggerKey)
	if err != nil {
		return err
	}
	Routes(router, c, logger)
	return nil
}

// Routes mounts the hello-world endpoints on router. Requests run inside a
// scope begun from factory.
func Routes(router *routing.Router, factory routing.ScopeFactory, logger *zap.Logger) {
	router.Group(func(g *routing.Router) {
		g.Middleware(routing.ScopePerRequest(factory, logger), HelloWorld)
		g.Get("/", Index)
		g.Prefix("/api", func(api *routing.Router) {
			api.Get("/hello", Hello)
			api.Get("/hello/{name}", HelloName)
			api.Get("/greetings", Greetings)
		})
	})
}
