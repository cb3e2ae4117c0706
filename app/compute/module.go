package compute

import (
	"go.uber.org/multierr"

	"github.com/km-arc/go-autowire/framework/config"
	"github.com/km-arc/go-autowire/framework/container"
)

var (
	NumberKey   = container.KeyOf[NumberComputer]()
	ComputerKey = container.KeyOf[Computer]()
)

// Module registers the Fibonacci and square computers. Both satisfy
// ComputerKey, so ResolveAll(ComputerKey) runs every report. The count comes
// from the config registered under configKey.
type Module struct {
	ConfigKey container.ServiceKey
}

func (m *Module) Name() string { return "compute" }

func (m *Module) Load(r container.Registrar) error {
	cfgKey := m.ConfigKey
	if cfgKey == (container.ServiceKey{}) {
		cfgKey = container.KeyOf[*config.Config]()
	}
	return multierr.Combine(
		r.Register(NumberKey, func([]any) (any, error) {
			return FibonacciNumber{}, nil
		}, nil, container.Singleton),
		r.Register(ComputerKey, func(args []any) (any, error) {
			numbers, err := container.Arg[NumberComputer](args, 0)
			if err != nil {
				return nil, err
			}
			cfg, err := container.Arg[*config.Config](args, 1)
			if err != nil {
				return nil, err
			}
			return NewFibonacciSequence(numbers, cfg.Services.SequenceCount), nil
		}, container.Deps(NumberKey, cfgKey), container.Transient),
		r.Register(ComputerKey, func(args []any) (any, error) {
			cfg, err := container.Arg[*config.Config](args, 0)
			if err != nil {
				return nil, err
			}
			return NewSquareComputer(cfg.Services.SequenceCount), nil
		}, container.Deps(cfgKey), container.Transient),
	)
}
