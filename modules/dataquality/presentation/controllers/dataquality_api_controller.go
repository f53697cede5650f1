package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/helios-hq/helios/modules/dataquality/presentation/controllers/dtos"
	"github.com/helios-hq/helios/modules/dataquality/services"
	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/composables"
	"github.com/helios-hq/helios/pkg/httpapi"
	"github.com/helios-hq/helios/pkg/middleware"
	"github.com/helios-hq/helios/pkg/session"
)

type DataQualityAPIController struct {
	app       application.Application
	quality   *services.DataQualityService
	sessions  session.Store
	apiPrefix string
}

func NewDataQualityAPIController(app application.Application, sessions session.Store) application.Controller {
	return &DataQualityAPIController{
		app:       app,
		quality:   app.Service(services.DataQualityService{}).(*services.DataQualityService),
		sessions:  sessions,
		apiPrefix: "/data-quality/api",
	}
}

func (c *DataQualityAPIController) Key() string {
	return c.apiPrefix
}

func (c *DataQualityAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.Use(middleware.RequireOrganization(c.sessions))

	api.HandleFunc("/orphans", c.GetOrphans).Methods(http.MethodGet)
	api.HandleFunc("/report", c.GetReport).Methods(http.MethodGet)
	api.HandleFunc("/departments", c.entityQuality(catalog.DomainDepartment)).Methods(http.MethodGet)
	api.HandleFunc("/locations", c.entityQuality(catalog.DomainLocation)).Methods(http.MethodGet)
	api.HandleFunc("/cost-centers", c.entityQuality(catalog.DomainCostCenter)).Methods(http.MethodGet)
	api.HandleFunc("/managers", c.GetManagers).Methods(http.MethodGet)

	api.HandleFunc("/resolve-orphan", c.ResolveOrphan).Methods(http.MethodPost)
	api.HandleFunc("/auto-import", c.AutoImport).Methods(http.MethodPost)
}

func (c *DataQualityAPIController) GetOrphans(w http.ResponseWriter, r *http.Request) {
	orphans, err := c.quality.Orphans(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, orphans)
}

func (c *DataQualityAPIController) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := c.quality.Report(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, report)
}

func (c *DataQualityAPIController) entityQuality(domain catalog.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		quality, err := c.quality.EntityQuality(r.Context(), domain)
		if err != nil {
			writeServiceError(r.Context(), w, err)
			return
		}
		_ = httpapi.WriteSuccess(w, http.StatusOK, quality)
	}
}

func (c *DataQualityAPIController) GetManagers(w http.ResponseWriter, r *http.Request) {
	quality, err := c.quality.ManagerQuality(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, quality)
}

func (c *DataQualityAPIController) ResolveOrphan(w http.ResponseWriter, r *http.Request) {
	var req dtos.ResolveOrphanRequest
	if err := httpapi.DecodeJSON(r.Body, &req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", "invalid json body")
		return
	}
	if errs, ok := req.Ok(r.Context()); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", errs.First("EntityType", "OrphanedValue", "Resolution"))
		return
	}

	domain, err := catalog.ParseDomain(req.EntityType)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", err.Error())
		return
	}
	resolution, ok := services.ParseResolution(req.Resolution)
	if !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", "resolution must be map, create or ignore")
		return
	}

	result, err := c.quality.Resolve(r.Context(), domain, req.OrphanedValue, resolution, req.TargetID)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, result)
}

func (c *DataQualityAPIController) AutoImport(w http.ResponseWriter, r *http.Request) {
	var req dtos.AutoImportRequest
	if err := httpapi.DecodeJSON(r.Body, &req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", "invalid json body")
		return
	}
	if errs, ok := req.Ok(r.Context()); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", errs.First("EntityType"))
		return
	}

	domain, err := catalog.ParseDomain(req.EntityType)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DQ_INVALID_BODY", err.Error())
		return
	}

	result, err := c.quality.AutoImport(r.Context(), domain)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, result)
}

func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		_ = httpapi.WriteError(w, svcErr.Status, svcErr.Code, svcErr.Message)
		return
	}
	// Unclassified failures stay out of the response body.
	if logger, ok := composables.TryUseLogger(ctx); ok {
		logger.WithError(err).Error("data quality request failed")
	}
	_ = httpapi.WriteError(w, http.StatusInternalServerError, "DQ_INTERNAL", "internal error")
}
