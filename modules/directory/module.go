package directory

import (
	"github.com/helios-hq/helios/modules/directory/infrastructure/persistence"
	"github.com/helios-hq/helios/modules/directory/presentation/controllers"
	"github.com/helios-hq/helios/modules/directory/services"
	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/session"
)

func NewModule(sessions session.Store) application.Module {
	return &Module{sessions: sessions}
}

type Module struct {
	sessions session.Store
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewCatalogService(persistence.NewCatalogRepository()),
		services.NewMemberService(persistence.NewMemberRepository()),
	)

	app.RegisterControllers(
		controllers.NewDirectoryAPIController(app, m.sessions),
	)

	return nil
}

func (m *Module) Name() string {
	return "directory"
}
