package container

import (
	"fmt"
	"io"
)

// ── Recipes & dependencies ────────────────────────────────────────────────────

// Recipe builds an instance from its resolved dependencies. args has one
// entry per declared Dependency, in declaration order. A Dependency declared
// with All arrives as []any.
type Recipe func(args []any) (any, error)

// Dependency is one constructor argument of a registration.
type Dependency struct {
	Key ServiceKey
	// All requests every registration for Key, in registration order,
	// instead of the last-registered one.
	All bool
}

// Dep declares a single-instance dependency on key.
func Dep(key ServiceKey) Dependency { return Dependency{Key: key} }

// All declares a dependency on every registration for key.
func All(key ServiceKey) Dependency { return Dependency{Key: key, All: true} }

// Deps declares single-instance dependencies on each key, in order.
func Deps(keys ...ServiceKey) []Dependency {
	out := make([]Dependency, len(keys))
	for i, k := range keys {
		out[i] = Dep(k)
	}
	return out
}

// Arg returns args[i] as T. It is meant for use inside recipes:
//
//	func(args []any) (any, error) {
//	    w, err := container.Arg[manners.Welcomer](args, 0)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return greeting.New(w), nil
//	}
func Arg[T any](args []any, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(args) {
		return zero, fmt.Errorf("container: argument %d out of range (%d arguments)", i, len(args))
	}
	typed, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("container: argument %d is %T, not %s", i, args[i], TypeKey((*T)(nil)))
	}
	return typed, nil
}

// ArgAll returns args[i], a Dependency declared with All, as []T.
func ArgAll[T any](args []any, i int) ([]T, error) {
	raw, err := Arg[[]any](args, i)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raw))
	for j, v := range raw {
		typed, ok := v.(T)
		if !ok {
			return nil, fmt.Errorf("container: argument %d[%d] is %T, not %s", i, j, v, TypeKey((*T)(nil)))
		}
		out = append(out, typed)
	}
	return out, nil
}

// ── Teardown ──────────────────────────────────────────────────────────────────

// Disposable is implemented by instances that release resources when their
// owning scope is disposed. Instances implementing io.Closer are disposed
// through Close.
type Disposable interface {
	Dispose() error
}

// teardown returns the release function for v, or nil when v holds nothing.
func teardown(v any) func() error {
	switch d := v.(type) {
	case Disposable:
		return d.Dispose
	case io.Closer:
		return d.Close
	default:
		return nil
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Registration is one recipe bound to one or more ServiceKeys. It is
// immutable once the catalog is built.
type Registration struct {
	id       int
	keys     []ServiceKey
	recipe   Recipe
	deps     []Dependency
	lifetime Lifetime
	module   string

	externallyOwned bool
	onActivated     []func(any) error
}

// Keys returns the keys this registration satisfies, primary key first.
func (r *Registration) Keys() []ServiceKey { return append([]ServiceKey(nil), r.keys...) }

// Dependencies returns the declared dependencies in argument order.
func (r *Registration) Dependencies() []Dependency { return append([]Dependency(nil), r.deps...) }

// Lifetime returns the registration's lifetime.
func (r *Registration) Lifetime() Lifetime { return r.lifetime }

// Module returns the name of the module that contributed the registration.
func (r *Registration) Module() string { return r.module }

// primary is the key reported in errors and diagnostics.
func (r *Registration) primary() ServiceKey { return r.keys[0] }

// Option customises a registration.
type Option func(*Registration)

// As adds further keys the registration satisfies. One instance then serves
// every key; cached lifetimes share it across keys.
//
//	r.Register(container.KeyOf[manners.Welcomer](), newEnglish, nil, container.Singleton,
//	    container.As(container.KeyOf[manners.Farewell]()))
func As(keys ...ServiceKey) Option {
	return func(r *Registration) {
		for _, k := range keys {
			if !containsKey(r.keys, k) {
				r.keys = append(r.keys, k)
			}
		}
	}
}

// ExternallyOwned stops the container from disposing instances of the
// registration.
func ExternallyOwned() Option {
	return func(r *Registration) { r.externallyOwned = true }
}

// OnActivated runs fn on each newly constructed instance before it is cached
// or returned. An error fails the activation.
func OnActivated(fn func(instance any) error) Option {
	return func(r *Registration) {
		if fn != nil {
			r.onActivated = append(r.onActivated, fn)
		}
	}
}

func containsKey(keys []ServiceKey, k ServiceKey) bool {
	for _, existing := range keys {
		if existing == k {
			return true
		}
	}
	return false
}

// activate runs the recipe and activation hooks.
func (r *Registration) activate(args []any) (any, error) {
	instance, err := r.recipe(args)
	if err != nil {
		return nil, &ActivationError{Key: r.primary(), Err: err}
	}
	for _, hook := range r.onActivated {
		if err := hook(instance); err != nil {
			if release := teardown(instance); release != nil && !r.externallyOwned {
				_ = release()
			}
			return nil, &ActivationError{Key: r.primary(), Err: err}
		}
	}
	return instance, nil
}
