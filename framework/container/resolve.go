package container

import "fmt"

// Resolver is satisfied by *Container and *Scope.
type Resolver interface {
	Resolve(key ServiceKey) (any, error)
	ResolveAll(key ServiceKey) ([]any, error)
}

// Resolve resolves key and type-asserts the result.
//
//	// Instead of: v, err := c.Resolve(key); w := v.(manners.Welcomer)
//	// Write:      w, err := container.Resolve[manners.Welcomer](c, key)
func Resolve[T any](r Resolver, key ServiceKey) (T, error) {
	var zero T
	v, err := r.Resolve(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &TypeMismatchError{Key: key, Expected: TypeKey((*T)(nil)), Got: fmt.Sprintf("%T", v)}
	}
	return typed, nil
}

// ResolveType resolves the unnamed key of T.
func ResolveType[T any](r Resolver) (T, error) {
	return Resolve[T](r, KeyOf[T]())
}

// ResolveAll resolves every registration for key as T.
func ResolveAll[T any](r Resolver, key ServiceKey) ([]T, error) {
	vs, err := r.ResolveAll(key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(vs))
	for _, v := range vs {
		typed, ok := v.(T)
		if !ok {
			return nil, &TypeMismatchError{Key: key, Expected: TypeKey((*T)(nil)), Got: fmt.Sprintf("%T", v)}
		}
		out = append(out, typed)
	}
	return out, nil
}

// MustResolve is like Resolve but panics on error. Use it in composition
// roots where a missing service is a programming error.
func MustResolve[T any](r Resolver, key ServiceKey) T {
	v, err := Resolve[T](r, key)
	if err != nil {
		panic(err)
	}
	return v
}
