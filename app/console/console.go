// Package console runs the example services once and writes their output.
package console

import (
	"io"

	"github.com/km-arc/go-autowire/app/compute"
	"github.com/km-arc/go-autowire/app/greeting"
	"github.com/km-arc/go-autowire/framework/container"
)

// Run resolves the greeting application inside a fresh scope, runs it, then
// runs every registered computer. The scope is disposed before Run returns.
func Run(c *container.Container, w io.Writer) (err error) {
	scope := c.BeginScope()
	defer func() {
		if derr := scope.Dispose(); err == nil {
			err = derr
		}
	}()

	app, err := container.Resolve[*greeting.Application](scope, greeting.Key)
	if err != nil {
		return err
	}
	if err := app.Run(w); err != nil {
		return err
	}

	computers, err := container.ResolveAll[compute.Computer](scope, compute.ComputerKey)
	if err != nil {
		return err
	}
	for _, comp := range computers {
		if err := comp.Compute(w); err != nil {
			return err
		}
	}
	return nil
}
