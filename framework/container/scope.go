package container

import (
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ── Instance cache ────────────────────────────────────────────────────────────

// instanceCache holds Singleton or Scoped instances keyed by registration.
// First creation of an entry is single-flighted: concurrent callers wait for
// and share the winner's result.
type instanceCache struct {
	mu        sync.Mutex
	instances map[int]any
	flights   singleflight.Group
}

func (c *instanceCache) load(id int) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.instances[id]
	return v, ok
}

func (c *instanceCache) getOrCreate(id int, create func() (any, error)) (any, error) {
	if v, ok := c.load(id); ok {
		return v, nil
	}
	v, err, _ := c.flights.Do(strconv.Itoa(id), func() (any, error) {
		// A flight that finished between load and Do has already stored it.
		if v, ok := c.load(id); ok {
			return v, nil
		}
		v, err := create()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.instances == nil {
			c.instances = make(map[int]any)
		}
		c.instances[id] = v
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// ── Scope ─────────────────────────────────────────────────────────────────────

// owned is one instance a scope must release on disposal. seq is the
// instance's position in the container-wide construction order.
type owned struct {
	key     ServiceKey
	seq     uint64
	release func() error
}

// core is the state shared by every scope of one container.
type core struct {
	catalog *Catalog
	root    *Scope
	logger  *zap.Logger

	mu     sync.Mutex
	nextID uint64

	constructed atomic.Uint64
}

func (c *core) newScopeID() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	return c.nextID
}

// Scope is a resolution context. Scoped instances are shared within one
// scope; Singletons always live in the container's root scope. Instances a
// scope constructs are released in reverse construction order when it is
// disposed. A Scope is safe for concurrent use, though one scope per unit of
// work avoids contention.
type Scope struct {
	core   *core
	parent *Scope
	id     uint64
	cache  instanceCache

	mu       sync.Mutex
	disposed bool
	owned    []owned
	children []*Scope
}

func newScope(c *core, parent *Scope) *Scope {
	return &Scope{core: c, parent: parent, id: c.newScopeID()}
}

// Resolve returns the instance of the last registration for key.
func (s *Scope) Resolve(key ServiceKey) (any, error) {
	if s.Disposed() {
		return nil, ErrScopeDisposed
	}
	act := newActivation(s)
	v, err := act.resolveOne(key, ServiceKey{})
	if err := act.finish(err); err != nil {
		return nil, err
	}
	return v, nil
}

// ResolveAll returns one instance per registration for key, in registration
// order.
func (s *Scope) ResolveAll(key ServiceKey) ([]any, error) {
	if s.Disposed() {
		return nil, ErrScopeDisposed
	}
	act := newActivation(s)
	vs, err := act.resolveAll(key, ServiceKey{})
	if err := act.finish(err); err != nil {
		return nil, err
	}
	return vs, nil
}

// BeginScope creates a child scope. The child is disposed no later than s;
// a child begun on a disposed scope is itself disposed.
func (s *Scope) BeginScope() *Scope {
	child := newScope(s.core, s)

	s.mu.Lock()
	if s.disposed {
		child.disposed = true
	} else {
		s.children = append(s.children, child)
	}
	s.mu.Unlock()

	s.core.logger.Debug("scope started",
		zap.Uint64("scope", child.id),
		zap.Uint64("parent", s.id),
	)
	return child
}

// Disposed reports whether Dispose has been called.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose releases live child scopes, then every instance this scope
// constructed, in reverse construction order. Singletons are released only
// by the root scope. Dispose is idempotent; all release failures are
// returned together.
func (s *Scope) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	children := s.children
	list := s.owned
	s.children = nil
	s.owned = nil
	s.mu.Unlock()

	var errs error
	for i := len(children) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, children[i].Dispose())
	}
	errs = multierr.Append(errs, s.release(list))

	if s.parent != nil {
		s.parent.forget(s)
	}
	s.core.logger.Debug("scope disposed",
		zap.Uint64("scope", s.id),
		zap.Int("released", len(list)),
	)
	return errs
}

// release tears down list in reverse order.
func (s *Scope) release(list []owned) error {
	var errs error
	for i := len(list) - 1; i >= 0; i-- {
		if err := list[i].release(); err != nil {
			s.core.logger.Warn("dispose failed",
				zap.Stringer("key", list[i].key),
				zap.Uint64("scope", s.id),
				zap.Error(err),
			)
			errs = multierr.Append(errs, &DisposeError{Key: list[i].key, Err: err})
		}
	}
	return errs
}

// adopt merges freshly constructed instances into the disposal list, kept in
// construction order. If the scope was disposed meanwhile they are released
// at once.
func (s *Scope) adopt(list []owned) error {
	if len(list) == 0 {
		return nil
	}
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return multierr.Append(ErrScopeDisposed, s.release(list))
	}
	n := len(s.owned)
	s.owned = append(s.owned, list...)
	if n > 0 && s.owned[n].seq < s.owned[n-1].seq {
		sort.SliceStable(s.owned, func(i, j int) bool { return s.owned[i].seq < s.owned[j].seq })
	}
	s.mu.Unlock()
	return nil
}

func (s *Scope) forget(child *Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.children {
		if c == child {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return
		}
	}
}
