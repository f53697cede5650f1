package dataquality

import (
	"github.com/sirupsen/logrus"

	"github.com/helios-hq/helios/modules/dataquality/domain/events"
	"github.com/helios-hq/helios/pkg/application"
)

// registerEventSubscribers installs the logging consumers for the
// reconciliation events, so every resolve and auto-import leaves an audit
// trail in the application log.
func registerEventSubscribers(app application.Application) {
	logger := app.Logger()
	bus := app.EventPublisher()

	bus.Subscribe(func(event events.OrphanResolvedEvent) {
		entry := logger.WithFields(logrus.Fields{
			"organization-id": event.OrganizationID,
			"domain":          event.Domain,
			"value":           event.Value,
			"resolution":      event.Resolution,
			"affected":        event.Affected,
		})
		if event.TargetID != nil {
			entry = entry.WithField("target-id", *event.TargetID)
		}
		entry.Info("orphan resolved")
	})

	bus.Subscribe(func(event events.AutoImportCompletedEvent) {
		logger.WithFields(logrus.Fields{
			"organization-id": event.OrganizationID,
			"domain":          event.Domain,
			"imported":        event.Imported,
		}).Info("auto-import completed")
	})
}
