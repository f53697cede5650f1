package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/modules/directory/domain/member"
	"github.com/helios-hq/helios/modules/directory/presentation/controllers/dtos"
	"github.com/helios-hq/helios/modules/directory/services"
	"github.com/helios-hq/helios/pkg/application"
	"github.com/helios-hq/helios/pkg/httpapi"
	"github.com/helios-hq/helios/pkg/middleware"
	"github.com/helios-hq/helios/pkg/session"
)

type DirectoryAPIController struct {
	app       application.Application
	catalogs  *services.CatalogService
	members   *services.MemberService
	sessions  session.Store
	apiPrefix string
}

func NewDirectoryAPIController(app application.Application, sessions session.Store) application.Controller {
	return &DirectoryAPIController{
		app:       app,
		catalogs:  app.Service(services.CatalogService{}).(*services.CatalogService),
		members:   app.Service(services.MemberService{}).(*services.MemberService),
		sessions:  sessions,
		apiPrefix: "/directory/api",
	}
}

func (c *DirectoryAPIController) Key() string {
	return c.apiPrefix
}

func (c *DirectoryAPIController) Register(r *mux.Router) {
	api := r.PathPrefix(c.apiPrefix).Subrouter()
	api.Use(middleware.RequireOrganization(c.sessions))

	api.HandleFunc("/members", c.ListMembers).Methods(http.MethodGet)
	api.HandleFunc("/members/{id}", c.GetMember).Methods(http.MethodGet)

	api.HandleFunc("/{domain}", c.ListCatalog).Methods(http.MethodGet)
	api.HandleFunc("/{domain}", c.CreateCatalogEntry).Methods(http.MethodPost)
	api.HandleFunc("/{domain}/search", c.SearchCatalog).Methods(http.MethodGet)
}

func (c *DirectoryAPIController) domain(w http.ResponseWriter, r *http.Request) (catalog.Domain, bool) {
	raw := mux.Vars(r)["domain"]
	domain, err := catalog.ParseDomain(raw)
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusNotFound, "DIR_NOT_FOUND", err.Error())
		return "", false
	}
	return domain, true
}

func (c *DirectoryAPIController) ListCatalog(w http.ResponseWriter, r *http.Request) {
	domain, ok := c.domain(w, r)
	if !ok {
		return
	}

	entries, err := c.catalogs.List(r.Context(), domain)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, dtos.CatalogEntriesFromDomain(domain, entries))
}

func (c *DirectoryAPIController) CreateCatalogEntry(w http.ResponseWriter, r *http.Request) {
	domain, ok := c.domain(w, r)
	if !ok {
		return
	}

	var req dtos.CreateCatalogEntryRequest
	if err := httpapi.DecodeJSON(r.Body, &req); err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DIR_INVALID_BODY", "invalid json body")
		return
	}
	if errs, ok := req.Ok(r.Context()); !ok {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DIR_INVALID_BODY", errs.First("Name"))
		return
	}

	entry, err := c.catalogs.Create(r.Context(), domain, catalog.CreateEntry{
		Code: req.Code,
		Name: req.Name,
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusCreated, dtos.CatalogEntryFromDomain(domain, entry))
}

func (c *DirectoryAPIController) SearchCatalog(w http.ResponseWriter, r *http.Request) {
	domain, ok := c.domain(w, r)
	if !ok {
		return
	}

	matches, err := c.catalogs.Search(r.Context(), domain, r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, dtos.SearchMatchesFromDomain(domain, matches))
}

func (c *DirectoryAPIController) ListMembers(w http.ResponseWriter, r *http.Request) {
	records, err := c.members.List(r.Context(), member.FindParams{
		Q:      r.URL.Query().Get("q"),
		Limit:  httpapi.QueryInt(r, "limit", 100),
		Offset: httpapi.QueryInt(r, "offset", 0),
	})
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, dtos.MembersFromDomain(records))
}

func (c *DirectoryAPIController) GetMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		_ = httpapi.WriteError(w, http.StatusBadRequest, "DIR_INVALID_BODY", "invalid member id")
		return
	}

	rec, err := c.members.Get(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	_ = httpapi.WriteSuccess(w, http.StatusOK, dtos.MemberFromDomain(rec))
}
