package container

import (
	"reflect"
	"sort"
)

// ServiceKey identifies a capability requested from the container: a contract
// name optionally narrowed by a discriminating name. Keys compare
// structurally, so two keys built from the same contract and name are equal.
//
//	welcome := container.KeyOf[manners.Welcomer]()
//	primary := container.Named[*sql.DB]("primary")
type ServiceKey struct {
	Contract string
	Name     string
}

// Key builds a ServiceKey from a plain contract string.
func Key(contract string) ServiceKey {
	return ServiceKey{Contract: contract}
}

// KeyOf returns the ServiceKey for the type parameter T. Interfaces and
// pointer types are both accepted; the contract is the package-qualified
// type name, e.g. "github.com/acme/app/manners.Welcomer".
func KeyOf[T any]() ServiceKey {
	return ServiceKey{Contract: TypeKey((*T)(nil))}
}

// Named returns the ServiceKey for T narrowed by name.
func Named[T any](name string) ServiceKey {
	return ServiceKey{Contract: TypeKey((*T)(nil)), Name: name}
}

// WithName returns a copy of k narrowed by name.
func (k ServiceKey) WithName(name string) ServiceKey {
	k.Name = name
	return k
}

// String renders the key as "contract" or "contract[name]".
func (k ServiceKey) String() string {
	if k.Name == "" {
		return k.Contract
	}
	return k.Contract + "[" + k.Name + "]"
}

// TypeKey returns the package-qualified type name of the value v points to.
// Pass a typed nil pointer to name an interface:
//
//	container.TypeKey((*manners.Welcomer)(nil)) // ".../manners.Welcomer"
//	container.TypeKey((**Greeter)(nil))         // "*.../greeting.Greeter"
func TypeKey(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return typeName(t)
}

func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		return "*" + typeName(t.Elem())
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

// sortKeys orders keys by contract, then name.
func sortKeys(keys []ServiceKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Contract != keys[j].Contract {
			return keys[i].Contract < keys[j].Contract
		}
		return keys[i].Name < keys[j].Name
	})
}
