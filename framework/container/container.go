package container

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ── Builder ───────────────────────────────────────────────────────────────────

// Builder is the composition root's view of the container before it exists:
// modules are added in order, then Build loads them into one catalog.
// A Builder is single-writer and must finish Build before any resolution.
type Builder struct {
	catalog *catalogBuilder
	modules moduleSet
	logger  *zap.Logger
	built   bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the logger used for build and scope diagnostics.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		catalog: newCatalogBuilder(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddModule queues m to be loaded by Build.
func (b *Builder) AddModule(m Module) error {
	if b.built {
		return ErrCatalogFrozen
	}
	b.modules.add(m, false)
	return nil
}

// AddOverride queues m as an override module: each key it registers drops
// every registration made for that key by earlier modules.
func (b *Builder) AddOverride(m Module) error {
	if b.built {
		return ErrCatalogFrozen
	}
	b.modules.add(m, true)
	return nil
}

// Build loads every module in order, freezes and validates the catalog,
// creates the root scope, then boots modules implementing Booter.
// Build fails with UnresolvedDependencyError or CyclicDependencyError for a
// malformed graph; nothing is constructed in that case.
func (b *Builder) Build() (*Container, error) {
	if b.built {
		return nil, ErrCatalogFrozen
	}
	b.built = true

	loadErr := b.modules.load(b.catalog)
	catalog, err := b.catalog.freeze()
	if loadErr != nil {
		return nil, loadErr
	}
	if err != nil {
		b.logger.Error("container build failed", zap.Error(err))
		return nil, err
	}

	c := newContainer(catalog, b.logger)
	if err := b.modules.boot(c); err != nil {
		return nil, multierr.Append(err, c.Dispose())
	}

	b.logger.Info("container built",
		zap.Int("modules", b.modules.len()),
		zap.Int("registrations", catalog.Len()),
		zap.Int("keys", len(catalog.entries)),
	)
	return c, nil
}

// Build is shorthand for adding modules to a new Builder and building it.
//
//	c, err := container.Build(&manners.Module{}, &greeting.Module{})
func Build(modules ...Module) (*Container, error) {
	b := NewBuilder()
	for _, m := range modules {
		if err := b.AddModule(m); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the built, immutable catalog plus its root scope. It is the
// only object consumers see; it is safe for concurrent use.
type Container struct {
	catalog *Catalog
	root    *Scope
	logger  *zap.Logger
}

func newContainer(catalog *Catalog, logger *zap.Logger) *Container {
	cr := &core{catalog: catalog, logger: logger}
	cr.root = newScope(cr, nil)
	return &Container{catalog: catalog, root: cr.root, logger: logger}
}

// Resolve returns the instance of the last registration for key, resolved
// against the root scope.
func (c *Container) Resolve(key ServiceKey) (any, error) {
	return c.root.Resolve(key)
}

// ResolveAll returns one instance per registration for key, in registration
// order, resolved against the root scope.
func (c *Container) ResolveAll(key ServiceKey) ([]any, error) {
	return c.root.ResolveAll(key)
}

// BeginScope creates a scope for one unit of work. Dispose it when the work
// is done.
func (c *Container) BeginScope() *Scope {
	return c.root.BeginScope()
}

// Root returns the root scope.
func (c *Container) Root() *Scope {
	return c.root
}

// IsRegistered reports whether key has at least one registration.
func (c *Container) IsRegistered(key ServiceKey) bool {
	return c.catalog.Has(key)
}

// Keys returns every registered key, sorted.
func (c *Container) Keys() []ServiceKey {
	return c.catalog.Keys()
}

// Dispose tears down the container: open scopes first, then every instance
// the root scope owns, Singletons included, in reverse construction order.
// Any later resolution fails with ErrScopeDisposed.
func (c *Container) Dispose() error {
	err := c.root.Dispose()
	if err != nil {
		c.logger.Warn("container disposed with errors", zap.Error(err))
	}
	return err
}
