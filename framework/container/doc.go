// Package container provides a dependency-injection container with explicit
// construction recipes, ordered multi-binding, lifetime scopes and
// composable modules.
//
// # Overview
//
// Services are registered against a ServiceKey together with a Recipe, the
// ordered list of keys the recipe needs, and a Lifetime. Nothing is scanned
// at runtime: a recipe receives its resolved dependencies as an argument
// slice matching the declared order.
//
// # Container Lifecycle
//
//  1. Create: b := container.NewBuilder(container.WithLogger(log))
//  2. Add modules: b.AddModule(&MannersModule{})
//  3. Build: c, err := b.Build()   (catalog frozen and validated here)
//  4. Resolve, begin scopes, serve work
//  5. Teardown: c.Dispose()
//
// # Registrations
//
//	func (m *Module) Load(r container.Registrar) error {
//	    return multierr.Combine(
//	        // Transient: a new instance on every resolution
//	        r.Register(sequenceKey, newSequence, container.Deps(numberKey), container.Transient),
//
//	        // Singleton: one per container, shared by every scope
//	        r.Register(numberKey, newNumber, nil, container.Singleton),
//
//	        // Scoped: one per scope
//	        r.Register(unitOfWorkKey, newUnitOfWork, nil, container.Scoped),
//
//	        // Pre-built value, never disposed by the container
//	        r.Instance(configKey, cfg),
//	    )
//	}
//
// One registration can satisfy several contracts with container.As; cached
// lifetimes then share a single instance across those keys.
//
// # Resolving
//
// Several registrations may exist for one key. Resolve returns the
// last-registered one; ResolveAll returns all of them in registration order.
// A recipe asks for the same behaviour with container.Dep and container.All.
//
//	w, err := container.Resolve[manners.Welcomer](c, welcomeKey)
//	all, err := container.ResolveAll[manners.Welcomer](c, welcomeKey)
//
// # Scopes
//
//	scope := c.BeginScope()
//	defer scope.Dispose()
//	uow, err := container.Resolve[*UnitOfWork](scope, unitOfWorkKey)
//
// Disposing a scope releases the Transient and Scoped instances it built,
// in reverse construction order, through Disposable or io.Closer. Singletons
// are released only by Container.Dispose.
//
// # Errors
//
// Build rejects unregistered dependency keys (UnresolvedDependencyError) and
// dependency cycles (CyclicDependencyError) before anything is constructed.
// Registering after Build fails with ErrCatalogFrozen; resolving against a
// disposed scope fails with ErrScopeDisposed. Inspect them with errors.As and
// errors.Is.
package container
