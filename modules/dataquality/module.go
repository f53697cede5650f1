package dataquality

import (
	"github.com/helios-hq/helios/modules/dataquality/infrastructure/persistence"
	"github.com/helios-hq/helios/modules/dataquality/presentation/controllers"
	"github.com/helios-hq/helios/modules/dataquality/services"
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
		services.NewDataQualityService(
			persistence.NewDataQualityRepository(),
			app.EventPublisher(),
		),
	)

	app.RegisterControllers(
		controllers.NewDataQualityAPIController(app, m.sessions),
	)

	registerEventSubscribers(app)

	return nil
}

func (m *Module) Name() string {
	return "dataquality"
}
