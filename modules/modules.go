// Package modules wires the built-in modules into an application.
package modules

import (
	"github.com/helios-hq/helios/modules/dataquality"
	"github.com/helios-hq/helios/modules/directory"
	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/session"
)

func BuiltIn(sessions session.Store) []application.Module {
	return []application.Module{
		directory.NewModule(sessions),
		dataquality.NewModule(sessions),
	}
}

func Load(app application.Application, mods ...application.Module) error {
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			return err
		}
	}
	return nil
}
