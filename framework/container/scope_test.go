package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/km-arc/go-autowire/framework/container"
)

// closer exercises the io.Closer teardown path.
type closer struct {
	log    *teardownLog
	name   string
	closed bool
}

func (c *closer) Close() error {
	c.closed = true
	c.log.add(c.name)
	return nil
}

func TestScope_DisposeReverseConstructionOrder(t *testing.T) {
	log := &teardownLog{}
	c, err := build(func(r container.Registrar) error {
		return multierr.Combine(
			r.Register(keyA, resourceRecipe("a", log), nil, container.Scoped),
			r.Register(keyB, resourceRecipe("b", log), container.Deps(keyA), container.Transient),
			r.Register(keyC, func([]any) (any, error) {
				return &closer{log: log, name: "c"}, nil
			}, container.Deps(keyB), container.Scoped),
		)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	_, err = scope.Resolve(keyC)
	require.NoError(t, err)
	_, err = scope.Resolve(keyB)
	require.NoError(t, err)

	require.NoError(t, scope.Dispose())
	// Construction order: a, b (for c), c, b (direct). Release is the reverse.
	assert.Equal(t, []string{"b", "c", "b", "a"}, log.all())
}

func TestScope_DisposeReverseOrderWithTransientBeforeScoped(t *testing.T) {
	log := &teardownLog{}
	c, err := build(func(r container.Registrar) error {
		return multierr.Combine(
			r.Register(keyA, resourceRecipe("t", log), nil, container.Transient),
			r.Register(keyB, resourceRecipe("s", log), nil, container.Scoped),
			r.Register(keyC, resourceRecipe("x", log), container.Deps(keyA, keyB), container.Transient),
		)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	_, err = scope.Resolve(keyC)
	require.NoError(t, err)

	require.NoError(t, scope.Dispose())
	assert.Equal(t, []string{"x", "s", "t"}, log.all())
}

func TestScope_DisposeReverseOrderNestedScoped(t *testing.T) {
	keyD := container.Key("D")
	log := &teardownLog{}
	c, err := build(func(r container.Registrar) error {
		return multierr.Combine(
			r.Register(keyA, resourceRecipe("t", log), nil, container.Transient),
			r.Register(keyB, resourceRecipe("inner", log), nil, container.Scoped),
			r.Register(keyC, resourceRecipe("outer", log), container.Deps(keyA, keyB), container.Scoped),
			r.Register(keyD, resourceRecipe("last", log), container.Deps(keyC), container.Transient),
		)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	_, err = scope.Resolve(keyD)
	require.NoError(t, err)

	require.NoError(t, scope.Dispose())
	assert.Equal(t, []string{"last", "outer", "inner", "t"}, log.all())
}

func TestScope_DisposeLeavesSingletons(t *testing.T) {
	log := &teardownLog{}
	c, err := build(func(r container.Registrar) error {
		return multierr.Combine(
			r.Register(keyA, resourceRecipe("singleton", log), nil, container.Singleton),
			r.Register(keyB, resourceRecipe("scoped", log), container.Deps(keyA), container.Scoped),
		)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	_, err = scope.Resolve(keyB)
	require.NoError(t, err)
	require.NoError(t, scope.Dispose())
	assert.Equal(t, []string{"scoped"}, log.all())

	s, err := container.Resolve[*resource](c, keyA)
	require.NoError(t, err)
	assert.False(t, s.disposed)

	require.NoError(t, c.Dispose())
	assert.True(t, s.disposed)
	assert.Equal(t, []string{"scoped", "singleton"}, log.all())
}

func TestScope_ResolveAfterDispose(t *testing.T) {
	built := 0
	c, err := build(func(r container.Registrar) error {
		return r.Register(keyA, func([]any) (any, error) {
			built++
			return "a", nil
		}, nil, container.Transient)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	require.NoError(t, scope.Dispose())
	assert.True(t, scope.Disposed())

	_, err = scope.Resolve(keyA)
	assert.ErrorIs(t, err, container.ErrScopeDisposed)
	_, err = scope.ResolveAll(keyA)
	assert.ErrorIs(t, err, container.ErrScopeDisposed)
	assert.Zero(t, built)

	// Dispose is idempotent.
	assert.NoError(t, scope.Dispose())
}

func TestScope_ChildDisposedWithParent(t *testing.T) {
	log := &teardownLog{}
	c, err := build(func(r container.Registrar) error {
		return r.Register(keyA, resourceRecipe("scoped", log), nil, container.Scoped)
	})
	require.NoError(t, err)

	parent := c.BeginScope()
	child := parent.BeginScope()
	grandchild := child.BeginScope()

	_, err = child.Resolve(keyA)
	require.NoError(t, err)
	_, err = grandchild.Resolve(keyA)
	require.NoError(t, err)

	require.NoError(t, parent.Dispose())
	assert.True(t, child.Disposed())
	assert.True(t, grandchild.Disposed())
	assert.Equal(t, []string{"scoped", "scoped"}, log.all())

	late := parent.BeginScope()
	assert.True(t, late.Disposed())
}

func TestScope_ContainerDisposeClosesOpenScopes(t *testing.T) {
	c, err := build(func(r container.Registrar) error {
		return r.Register(keyA, resourceRecipe("scoped", nil), nil, container.Scoped)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	res, err := container.Resolve[*resource](scope, keyA)
	require.NoError(t, err)

	require.NoError(t, c.Dispose())
	assert.True(t, scope.Disposed())
	assert.True(t, res.disposed)

	_, err = c.Resolve(keyA)
	assert.ErrorIs(t, err, container.ErrScopeDisposed)
}

func TestScope_SingletonDependenciesComeFromRoot(t *testing.T) {
	c, err := build(func(r container.Registrar) error {
		return multierr.Combine(
			r.Register(keyA, resourceRecipe("scoped", nil), nil, container.Scoped),
			r.Register(keyB, func(args []any) (any, error) {
				return args[0], nil
			}, container.Deps(keyA), container.Singleton),
		)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	captured, err := container.Resolve[*resource](scope, keyB)
	require.NoError(t, err)
	own, err := container.Resolve[*resource](scope, keyA)
	require.NoError(t, err)
	rootOwn, err := container.Resolve[*resource](c, keyA)
	require.NoError(t, err)

	assert.NotSame(t, own, captured)
	assert.Same(t, rootOwn, captured)

	require.NoError(t, scope.Dispose())
	assert.False(t, captured.disposed)
	assert.True(t, own.disposed)
}

func TestScope_ExternallyOwnedNotDisposed(t *testing.T) {
	c, err := build(func(r container.Registrar) error {
		return r.Register(keyA, resourceRecipe("ext", nil), nil, container.Transient, container.ExternallyOwned())
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	res, err := container.Resolve[*resource](scope, keyA)
	require.NoError(t, err)
	require.NoError(t, scope.Dispose())
	assert.False(t, res.disposed)
}

func TestScope_DisposeCollectsErrors(t *testing.T) {
	log := &teardownLog{}
	c, err := build(func(r container.Registrar) error {
		return multierr.Combine(
			r.Register(keyA, func([]any) (any, error) {
				return &resource{name: "a", log: log, fail: true}, nil
			}, nil, container.Transient),
			r.Register(keyB, func([]any) (any, error) {
				return &resource{name: "b", log: log, fail: true}, nil
			}, nil, container.Transient),
		)
	})
	require.NoError(t, err)

	scope := c.BeginScope()
	_, err = scope.Resolve(keyA)
	require.NoError(t, err)
	_, err = scope.Resolve(keyB)
	require.NoError(t, err)

	err = scope.Dispose()
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 2)

	var first *container.DisposeError
	require.ErrorAs(t, errs[0], &first)
	assert.Equal(t, keyB, first.Key)
	assert.Equal(t, []string{"b", "a"}, log.all())
}
