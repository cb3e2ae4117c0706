package container

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCatalogFrozen is returned when a registration or module is added
	// after Build.
	ErrCatalogFrozen = errors.New("container: catalog is frozen")

	// ErrScopeDisposed is returned when resolving against a disposed scope.
	ErrScopeDisposed = errors.New("container: scope is disposed")

	// ErrNilRecipe is returned when a registration has no recipe.
	ErrNilRecipe = errors.New("container: nil recipe")

	// ErrNoKeys is returned when a registration satisfies no ServiceKey.
	ErrNoKeys = errors.New("container: registration has no service key")
)

// UnresolvedDependencyError reports a ServiceKey with zero registrations.
// Requester is the key that declared the dependency; it is empty when the
// key was requested directly.
type UnresolvedDependencyError struct {
	Key       ServiceKey
	Requester ServiceKey
}

func (e *UnresolvedDependencyError) Error() string {
	if e.Requester == (ServiceKey{}) {
		return fmt.Sprintf("container: no registration for %s", e.Key)
	}
	return fmt.Sprintf("container: no registration for %s (required by %s)", e.Key, e.Requester)
}

// CyclicDependencyError reports a dependency cycle. Cycle lists the keys in
// resolution order starting at the entry point; the edge from the last key
// back to the first closes the cycle.
type CyclicDependencyError struct {
	Cycle []ServiceKey
}

func (e *CyclicDependencyError) Error() string {
	parts := make([]string, 0, len(e.Cycle)+1)
	for _, k := range e.Cycle {
		parts = append(parts, k.String())
	}
	if len(e.Cycle) > 0 {
		parts = append(parts, e.Cycle[0].String())
	}
	return "container: circular dependency: " + strings.Join(parts, " -> ")
}

// ActivationError reports a recipe or activation hook failure.
type ActivationError struct {
	Key ServiceKey
	Err error
}

func (e *ActivationError) Error() string {
	return fmt.Sprintf("container: activating %s: %v", e.Key, e.Err)
}

func (e *ActivationError) Unwrap() error {
	return e.Err
}

// DisposeError reports a failed teardown of one instance.
type DisposeError struct {
	Key ServiceKey
	Err error
}

func (e *DisposeError) Error() string {
	return fmt.Sprintf("container: disposing %s: %v", e.Key, e.Err)
}

func (e *DisposeError) Unwrap() error {
	return e.Err
}

// RegistrationError reports a malformed registration call.
type RegistrationError struct {
	Key ServiceKey
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("container: registering %s: %v", e.Key, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// TypeMismatchError reports a resolved instance of an unexpected type.
type TypeMismatchError struct {
	Key      ServiceKey
	Expected string
	Got      string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("container: %s resolved to %s, expected %s", e.Key, e.Got, e.Expected)
}

// ModuleError reports a module whose Load or Boot failed.
type ModuleError struct {
	Module string
	Err    error
}

func (e *ModuleError) Error() string {
	return fmt.Sprintf("container: module %s: %v", e.Module, e.Err)
}

func (e *ModuleError) Unwrap() error {
	return e.Err
}
