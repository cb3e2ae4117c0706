package container

import (
	"sync"

	"go.uber.org/multierr"
)

// Registrar is the registration surface handed to modules.
type Registrar interface {
	// Register appends a registration for key. Registering the same key
	// again adds a further implementation; nothing is replaced.
	Register(key ServiceKey, recipe Recipe, deps []Dependency, lifetime Lifetime, opts ...Option) error

	// Instance registers a pre-built value as an externally owned Singleton.
	Instance(key ServiceKey, value any, opts ...Option) error
}

// ── Builder side ──────────────────────────────────────────────────────────────

// catalogBuilder accumulates registrations until freeze.
type catalogBuilder struct {
	mu      sync.Mutex
	frozen  bool
	entries map[ServiceKey][]*Registration
	order   []*Registration
	nextID  int

	// module currently loading; overridden is non-nil while an override
	// module loads and records the keys it has already claimed.
	module     string
	overridden map[ServiceKey]bool
}

func newCatalogBuilder() *catalogBuilder {
	return &catalogBuilder{entries: make(map[ServiceKey][]*Registration)}
}

// Register implements Registrar.
func (b *catalogBuilder) Register(key ServiceKey, recipe Recipe, deps []Dependency, lifetime Lifetime, opts ...Option) error {
	if recipe == nil {
		return &RegistrationError{Key: key, Err: ErrNilRecipe}
	}
	reg := &Registration{
		keys:     []ServiceKey{key},
		recipe:   recipe,
		deps:     append([]Dependency(nil), deps...),
		lifetime: lifetime,
	}
	for _, opt := range opts {
		opt(reg)
	}
	if key == (ServiceKey{}) {
		return &RegistrationError{Key: key, Err: ErrNoKeys}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return &RegistrationError{Key: key, Err: ErrCatalogFrozen}
	}
	b.add(reg)
	return nil
}

// Instance implements Registrar.
func (b *catalogBuilder) Instance(key ServiceKey, value any, opts ...Option) error {
	recipe := func([]any) (any, error) { return value, nil }
	return b.Register(key, recipe, nil, Singleton, append(opts, ExternallyOwned())...)
}

// add must hold mu.
func (b *catalogBuilder) add(reg *Registration) {
	reg.id = b.nextID
	reg.module = b.module
	b.nextID++

	for _, k := range reg.keys {
		if b.overridden != nil && !b.overridden[k] {
			b.overridden[k] = true
			b.evict(k)
		}
		b.entries[k] = append(b.entries[k], reg)
	}
	b.order = append(b.order, reg)
}

// evict drops every earlier registration for k. A registration left with no
// keys is removed from the catalog entirely.
func (b *catalogBuilder) evict(k ServiceKey) {
	for _, reg := range b.entries[k] {
		kept := reg.keys[:0]
		for _, rk := range reg.keys {
			if rk != k {
				kept = append(kept, rk)
			}
		}
		reg.keys = kept
	}
	delete(b.entries, k)

	live := b.order[:0]
	for _, reg := range b.order {
		if len(reg.keys) > 0 {
			live = append(live, reg)
		}
	}
	b.order = live
}

// beginModule marks the start of a module's Load.
func (b *catalogBuilder) beginModule(name string, override bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.module = name
	if override {
		b.overridden = make(map[ServiceKey]bool)
	}
}

func (b *catalogBuilder) endModule() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.module = ""
	b.overridden = nil
}

// freeze stops further registration and validates the dependency graph.
func (b *catalogBuilder) freeze() (*Catalog, error) {
	b.mu.Lock()
	if b.frozen {
		b.mu.Unlock()
		return nil, ErrCatalogFrozen
	}
	b.frozen = true
	cat := &Catalog{
		entries:       b.entries,
		registrations: b.order,
	}
	b.mu.Unlock()

	if err := cat.validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// ── Frozen catalog ────────────────────────────────────────────────────────────

// Catalog is the read-only mapping from ServiceKey to registrations, shared by
// every scope of a container. It requires no locking.
type Catalog struct {
	entries       map[ServiceKey][]*Registration
	registrations []*Registration
}

// Lookup returns every registration for key in registration order.
func (c *Catalog) Lookup(key ServiceKey) []*Registration {
	return c.entries[key]
}

// last returns the registration used for single-instance resolution.
func (c *Catalog) last(key ServiceKey) (*Registration, bool) {
	regs := c.entries[key]
	if len(regs) == 0 {
		return nil, false
	}
	return regs[len(regs)-1], true
}

// Has reports whether key has at least one registration.
func (c *Catalog) Has(key ServiceKey) bool {
	return len(c.entries[key]) > 0
}

// Keys returns every registered key, sorted.
func (c *Catalog) Keys() []ServiceKey {
	out := make([]ServiceKey, 0, len(c.entries))
	for k := range c.entries {
		out = append(out, k)
	}
	sortKeys(out)
	return out
}

// Len returns the number of registrations.
func (c *Catalog) Len() int { return len(c.registrations) }

// validate runs the static checks: every dependency key is registered and
// the registration graph is acyclic.
func (c *Catalog) validate() error {
	var errs error
	for _, reg := range c.registrations {
		for _, d := range reg.deps {
			if !c.Has(d.Key) {
				errs = multierr.Append(errs, &UnresolvedDependencyError{Key: d.Key, Requester: reg.primary()})
			}
		}
	}
	if errs != nil {
		return errs
	}
	if cycle := findCycle(c); cycle != nil {
		return &CyclicDependencyError{Cycle: cycle}
	}
	return nil
}
