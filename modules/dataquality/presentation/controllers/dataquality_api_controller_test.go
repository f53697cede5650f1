package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/helios-hq/helios/modules/dataquality/services"
	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/composables"
	"github.com/helios-hq/helios/pkg/eventbus"
	"github.com/helios-hq/helios/pkg/session"
)

type stubTx struct{ pgx.Tx }

// stubRepo overrides only what a test exercises; anything else panics.
type stubRepo struct {
	services.Repository
	links []services.ManagerLink
}

func (s *stubRepo) ListManagerLinks(_ context.Context) ([]services.ManagerLink, error) {
	return s.links, nil
}

func setupRouter(t *testing.T, repo services.Repository) (*mux.Router, string) {
	t.Helper()

	logger := logrus.New()
	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})
	app.RegisterServices(services.NewDataQualityService(repo, nil))

	sessions := session.NewMemoryStore()
	token := "test-token"
	require.NoError(t, sessions.Put(context.Background(), &session.Session{
		Token:          token,
		OrganizationID: uuid.New(),
		UserEmail:      "admin@x.io",
		ExpiresAt:      time.Now().Add(time.Hour),
	}))

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(composables.WithTx(req.Context(), stubTx{})))
		})
	})
	NewDataQualityAPIController(app, sessions).Register(r)
	return r, token
}

func doRequest(r *mux.Router, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDataQualityAPI_RequiresSession(t *testing.T) {
	r, _ := setupRouter(t, &stubRepo{})

	rec := doRequest(r, http.MethodGet, "/data-quality/api/managers", "", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"UNAUTHORIZED","message":"missing session token"}`, rec.Body.String())
}

func TestDataQualityAPI_GetManagers(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{links: []services.ManagerLink{{ID: id, ManagerID: &id, IsActive: true}}}
	r, token := setupRouter(t, repo)

	rec := doRequest(r, http.MethodGet, "/data-quality/api/managers", token, "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"data":{"valid":1,"orphaned":0,"circular":1}}`, rec.Body.String())
}

func TestDataQualityAPI_ResolveOrphan_InvalidBody(t *testing.T) {
	r, token := setupRouter(t, &stubRepo{})

	rec := doRequest(r, http.MethodPost, "/data-quality/api/resolve-orphan", token, `{"entityType":"department"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"DQ_INVALID_BODY"`)
}

func TestDataQualityAPI_ResolveOrphan_UnknownField(t *testing.T) {
	r, token := setupRouter(t, &stubRepo{})

	rec := doRequest(r, http.MethodPost, "/data-quality/api/resolve-orphan", token, `{"entityType":"department","orphanedValue":"x","resolution":"ignore","bogus":true}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"DQ_INVALID_BODY"`)
}

func TestDataQualityAPI_ResolveOrphan_MapWithoutTarget(t *testing.T) {
	r, token := setupRouter(t, &stubRepo{})

	rec := doRequest(r, http.MethodPost, "/data-quality/api/resolve-orphan", token, `{"entityType":"department","orphanedValue":"Marketing","resolution":"map"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"DQ_TARGET_REQUIRED"`)
}

func TestDataQualityAPI_ResolveOrphan_Ignore(t *testing.T) {
	r, token := setupRouter(t, &stubRepo{})

	rec := doRequest(r, http.MethodPost, "/data-quality/api/resolve-orphan", token, `{"entityType":"department","orphanedValue":"Marketing","resolution":"ignore"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"data":{"affected":0}}`, rec.Body.String())
}

func TestDataQualityAPI_ResolveOrphan_CostCenterNotImplemented(t *testing.T) {
	r, token := setupRouter(t, &stubRepo{})
	targetID := uuid.New()

	body := `{"entityType":"cost_center","orphanedValue":"CC-100","resolution":"map","targetId":"` + targetID.String() + `"}`
	rec := doRequest(r, http.MethodPost, "/data-quality/api/resolve-orphan", token, body)

	require.Equal(t, http.StatusNotImplemented, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"DQ_NOT_IMPLEMENTED"`)
}

func TestDataQualityAPI_AutoImport_InvalidEntityType(t *testing.T) {
	r, token := setupRouter(t, &stubRepo{})

	rec := doRequest(r, http.MethodPost, "/data-quality/api/auto-import", token, `{"entityType":"department"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), `"error":"DQ_INVALID_BODY"`)
}
