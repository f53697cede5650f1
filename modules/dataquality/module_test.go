package dataquality

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/helios-hq/helios/modules/dataquality/domain/events"
	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/eventbus"
	"github.com/helios-hq/helios/pkg/session"
)

func registeredApp(t *testing.T) (application.Application, eventbus.EventBus, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	bus := eventbus.NewEventPublisher(logger)
	app := application.New(&application.ApplicationOptions{
		EventBus: bus,
		Logger:   logger,
	})
	require.NoError(t, NewModule(session.NewMemoryStore()).Register(app))
	return app, bus, hook
}

func TestRegister_InstallsEventSubscribers(t *testing.T) {
	_, bus, _ := registeredApp(t)
	require.Equal(t, 2, bus.SubscribersCount())
}

func TestRegister_OrphanResolvedEventIsLogged(t *testing.T) {
	_, bus, hook := registeredApp(t)

	targetID := uuid.New()
	bus.Publish(events.OrphanResolvedEvent{
		OrganizationID: uuid.New(),
		Domain:         "department",
		Value:          "Engeneering",
		Resolution:     "map",
		TargetID:       &targetID,
		Affected:       3,
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "orphan resolved", entry.Message)
	require.Equal(t, "department", entry.Data["domain"])
	require.Equal(t, int64(3), entry.Data["affected"])
	require.Equal(t, targetID, entry.Data["target-id"])
	for _, e := range hook.AllEntries() {
		require.NotEqual(t, logrus.WarnLevel, e.Level)
	}
}

func TestRegister_AutoImportCompletedEventIsLogged(t *testing.T) {
	_, bus, hook := registeredApp(t)

	bus.Publish(events.AutoImportCompletedEvent{
		OrganizationID: uuid.New(),
		Domain:         "locations",
		Imported:       7,
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.InfoLevel, entry.Level)
	require.Equal(t, "auto-import completed", entry.Message)
	require.Equal(t, int64(7), entry.Data["imported"])
}
