package container_test

import (
	"errors"
	"sync"

	"github.com/km-arc/go-autowire/framework/container"
)

// ── shared fixtures ───────────────────────────────────────────────────────────

var (
	keyA = container.Key("A")
	keyB = container.Key("B")
	keyC = container.Key("C")
)

// teardownLog records release order across resources.
type teardownLog struct {
	mu    sync.Mutex
	names []string
}

func (l *teardownLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *teardownLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}

type resource struct {
	name     string
	log      *teardownLog
	disposed bool
	fail     bool
}

func (r *resource) Dispose() error {
	r.disposed = true
	if r.log != nil {
		r.log.add(r.name)
	}
	if r.fail {
		return errors.New("release failed: " + r.name)
	}
	return nil
}

// resourceRecipe builds a fresh *resource named name on every call.
func resourceRecipe(name string, log *teardownLog) container.Recipe {
	return func([]any) (any, error) {
		return &resource{name: name, log: log}, nil
	}
}

// value returns a recipe producing a fresh pointer to a copy of s.
func value(s string) container.Recipe {
	return func([]any) (any, error) {
		v := s
		return &v, nil
	}
}

// build loads fn as a single module and builds the container.
func build(fn func(r container.Registrar) error) (*container.Container, error) {
	return container.Build(container.NewModule("test", fn))
}
