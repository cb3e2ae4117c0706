package container

import "fmt"

// ── Module interface ──────────────────────────────────────────────────────────

// Module bundles related registrations. Load is called once during Build, in
// the order modules were added. A module depends only on the Registrar it is
// handed, never on other modules, so each one can be loaded and tested alone.
//
//	type MannersModule struct{ Locale string }
//
//	func (m *MannersModule) Load(r container.Registrar) error {
//	    return r.Register(container.KeyOf[manners.Welcomer](), newProvider, nil,
//	        container.Singleton, container.As(container.KeyOf[manners.Farewell]()))
//	}
//
// Two modules may register the same key; both registrations are kept.
type Module interface {
	Load(r Registrar) error
}

// Booter is implemented by modules that need the built container, for
// example to resolve and start a service eagerly. Boot runs after every
// module has loaded and the catalog has been validated.
type Booter interface {
	Boot(c *Container) error
}

// NamedModule is implemented by modules that report a stable name for logs
// and diagnostics. Other modules are named after their Go type.
type NamedModule interface {
	Name() string
}

// ModuleName returns m's name.
func ModuleName(m Module) string {
	if n, ok := m.(NamedModule); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", m)
}

// ── Function modules ──────────────────────────────────────────────────────────

type funcModule struct {
	name string
	load func(r Registrar) error
}

func (m funcModule) Name() string           { return m.name }
func (m funcModule) Load(r Registrar) error { return m.load(r) }

// NewModule adapts a load function into a named Module.
//
//	container.NewModule("cache", func(r container.Registrar) error {
//	    return r.Register(cacheKey, newCache, nil, container.Singleton)
//	})
func NewModule(name string, load func(r Registrar) error) Module {
	return funcModule{name: name, load: load}
}

// ── Module set ────────────────────────────────────────────────────────────────

type moduleEntry struct {
	module   Module
	name     string
	override bool
}

// moduleSet keeps modules in the order they were added and drives their
// Load and Boot phases.
type moduleSet struct {
	entries []moduleEntry
}

func (s *moduleSet) add(m Module, override bool) {
	s.entries = append(s.entries, moduleEntry{module: m, name: ModuleName(m), override: override})
}

// load runs every module's Load against b.
func (s *moduleSet) load(b *catalogBuilder) error {
	for _, e := range s.entries {
		b.beginModule(e.name, e.override)
		err := e.module.Load(b)
		b.endModule()
		if err != nil {
			return &ModuleError{Module: e.name, Err: err}
		}
	}
	return nil
}

// boot runs Boot on every module implementing Booter.
func (s *moduleSet) boot(c *Container) error {
	for _, e := range s.entries {
		booter, ok := e.module.(Booter)
		if !ok {
			continue
		}
		if err := booter.Boot(c); err != nil {
			return &ModuleError{Module: e.name, Err: err}
		}
	}
	return nil
}

func (s *moduleSet) len() int { return len(s.entries) }
