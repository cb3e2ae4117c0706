// Package greeting is the console application: it greets, then says
// goodbye, through whichever manners providers the container hands it.
package greeting

import (
	"io"

	"github.com/km-arc/go-autowire/app/manners"
	"github.com/km-arc/go-autowire/framework/container"
)

var Key = container.KeyOf[*Application]()

// Application greets and bids farewell.
type Application struct {
	welcome  manners.Welcomer
	farewell manners.Farewell
}

// New returns an Application using welcome and farewell.
func New(welcome manners.Welcomer, farewell manners.Farewell) *Application {
	return &Application{welcome: welcome, farewell: farewell}
}

// Run writes the greeting then the farewell to w.
func (a *Application) Run(w io.Writer) error {
	if err := a.welcome.Greet(w); err != nil {
		return err
	}
	return a.farewell.Farewell(w)
}

// Module registers the Application as a Transient depending on the
// unnamed Welcomer and Farewell keys.
type Module struct{}

func (Module) Name() string { return "greeting" }

func (Module) Load(r container.Registrar) error {
	return r.Register(Key, func(args []any) (any, error) {
		w, err := container.Arg[manners.Welcomer](args, 0)
		if err != nil {
			return nil, err
		}
		f, err := container.Arg[manners.Farewell](args, 1)
		if err != nil {
			return nil, err
		}
		return New(w, f), nil
	}, container.Deps(manners.WelcomerKey, manners.FarewellKey), container.Transient)
}
