package manners

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/km-arc/go-autowire/framework/container"
)

var (
	WelcomerKey = container.KeyOf[Welcomer]()
	FarewellKey = container.KeyOf[Farewell]()
)

// Module registers one provider per locale under WelcomerKey and FarewellKey,
// plus under the locale-named keys. The preferred locale is registered last
// so single resolution picks it; ResolveAll still returns every provider.
type Module struct {
	Preferred string
}

func (m *Module) Name() string { return "manners" }

func (m *Module) Load(r container.Registrar) error {
	preferred := m.Preferred
	if preferred == "" {
		preferred = "english"
	}
	if _, ok := ForLocale(preferred); !ok {
		return fmt.Errorf("manners: unknown locale %q", preferred)
	}

	var err error
	for _, name := range append(without(Locales(), preferred), preferred) {
		err = multierr.Append(err, register(r, name))
	}
	return err
}

func without(names []string, drop string) []string {
	out := names[:0]
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}

func register(r container.Registrar, locale string) error {
	return r.Register(WelcomerKey, func([]any) (any, error) {
		p, _ := ForLocale(locale)
		return p, nil
	}, nil, container.Singleton, container.As(
		FarewellKey,
		WelcomerKey.WithName(locale),
		FarewellKey.WithName(locale),
	))
}
