package container

// activation threads the state of one resolution call: the scope it runs in,
// the chain of registrations being constructed (for cycle detection) and the
// disposable instances built so far that are not yet owned by any scope.
type activation struct {
	scope   *Scope
	chain   []ServiceKey
	active  []int
	pending []owned
}

func newActivation(s *Scope) *activation {
	return &activation{scope: s}
}

// resolveOne resolves the last-registered registration for key.
func (a *activation) resolveOne(key, requester ServiceKey) (any, error) {
	reg, ok := a.scope.core.catalog.last(key)
	if !ok {
		return nil, &UnresolvedDependencyError{Key: key, Requester: requester}
	}
	return a.instance(key, reg)
}

// resolveAll resolves every registration for key in registration order.
func (a *activation) resolveAll(key, requester ServiceKey) ([]any, error) {
	regs := a.scope.core.catalog.Lookup(key)
	if len(regs) == 0 {
		return nil, &UnresolvedDependencyError{Key: key, Requester: requester}
	}
	out := make([]any, 0, len(regs))
	for _, reg := range regs {
		v, err := a.instance(key, reg)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// instance returns an instance of reg honouring its lifetime.
func (a *activation) instance(key ServiceKey, reg *Registration) (any, error) {
	for i, id := range a.active {
		if id == reg.id {
			cycle := append([]ServiceKey(nil), a.chain[i:]...)
			return nil, &CyclicDependencyError{Cycle: cycle}
		}
	}

	a.chain = append(a.chain, key)
	a.active = append(a.active, reg.id)
	defer func() {
		a.chain = a.chain[:len(a.chain)-1]
		a.active = a.active[:len(a.active)-1]
	}()

	switch reg.lifetime {
	case Singleton:
		return a.cached(a.scope.core.root, key, reg)
	case Scoped:
		return a.cached(a.scope, key, reg)
	default:
		v, err := a.construct(reg)
		if err != nil {
			return nil, err
		}
		a.track(reg, v)
		return v, nil
	}
}

// cached returns reg's instance from owner's cache, constructing it on a
// miss. Construction runs in owner, so a Singleton's dependencies come from
// the root scope. The instance and the transients built for it are handed to
// owner only when construction succeeds.
func (a *activation) cached(owner *Scope, key ServiceKey, reg *Registration) (any, error) {
	if owner.Disposed() {
		return nil, ErrScopeDisposed
	}
	return owner.cache.getOrCreate(reg.id, func() (any, error) {
		sub := &activation{
			scope:  owner,
			chain:  append([]ServiceKey(nil), a.chain...),
			active: append([]int(nil), a.active...),
		}
		v, err := sub.construct(reg)
		if err != nil {
			_ = sub.finish(err)
			return nil, err
		}
		sub.track(reg, v)
		if err := owner.adopt(sub.pending); err != nil {
			return nil, err
		}
		return v, nil
	})
}

// construct resolves reg's dependencies depth-first in declaration order,
// then runs its recipe.
func (a *activation) construct(reg *Registration) (any, error) {
	args := make([]any, len(reg.deps))
	for i, d := range reg.deps {
		var (
			v   any
			err error
		)
		if d.All {
			v, err = a.resolveAll(d.Key, reg.primary())
		} else {
			v, err = a.resolveOne(d.Key, reg.primary())
		}
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return reg.activate(args)
}

// track records v for disposal if it needs releasing, stamped with its
// construction sequence.
func (a *activation) track(reg *Registration, v any) {
	if reg.externallyOwned {
		return
	}
	if release := teardown(v); release != nil {
		a.pending = append(a.pending, owned{
			key:     reg.primary(),
			seq:     a.scope.core.constructed.Add(1),
			release: release,
		})
	}
}

// finish hands pending instances to the scope on success, or releases them
// on failure so a failed graph leaks nothing.
func (a *activation) finish(err error) error {
	list := a.pending
	a.pending = nil
	if err != nil {
		_ = a.scope.release(list)
		return err
	}
	return a.scope.adopt(list)
}
