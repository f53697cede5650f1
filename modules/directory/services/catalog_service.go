package services

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
)

type CatalogRepository interface {
	ListActive(ctx context.Context, domain catalog.Domain) ([]catalog.Entry, error)
	GetByID(ctx context.Context, domain catalog.Domain, id uuid.UUID) (catalog.Entry, error)
	Create(ctx context.Context, domain catalog.Domain, data catalog.CreateEntry) (catalog.Entry, error)
}

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) List(ctx context.Context, domain catalog.Domain) ([]catalog.Entry, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) ([]catalog.Entry, error) {
		return s.repo.ListActive(txCtx, domain)
	})
}

func (s *CatalogService) Get(ctx context.Context, domain catalog.Domain, id uuid.UUID) (catalog.Entry, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (catalog.Entry, error) {
		return s.repo.GetByID(txCtx, domain, id)
	})
}

func (s *CatalogService) Create(ctx context.Context, domain catalog.Domain, data catalog.CreateEntry) (catalog.Entry, error) {
	data.Name = strings.TrimSpace(data.Name)
	data.Code = strings.TrimSpace(data.Code)
	if data.Name == "" {
		return catalog.Entry{}, newServiceError(http.StatusBadRequest, "DIR_INVALID_BODY", "name is required", nil)
	}

	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (catalog.Entry, error) {
		entry, err := s.repo.Create(txCtx, domain, data)
		if err != nil {
			return catalog.Entry{}, mapPgError(err)
		}
		return entry, nil
	})
}

// SearchMatch is one fuzzy hit, best matches first.
type SearchMatch struct {
	Entry catalog.Entry `json:"entry"`
	Rank  int           `json:"rank"`
}

// Search runs a normalized case-folded fuzzy match over the active entries of
// a catalog. An empty query returns the full active list ranked zero.
func (s *CatalogService) Search(ctx context.Context, domain catalog.Domain, query string) ([]SearchMatch, error) {
	entries, err := s.List(ctx, domain)
	if err != nil {
		return nil, err
	}
	return rankEntries(query, entries), nil
}

func rankEntries(query string, entries []catalog.Entry) []SearchMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]SearchMatch, 0, len(entries))
		for _, e := range entries {
			out = append(out, SearchMatch{Entry: e})
		}
		return out
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	out := make([]SearchMatch, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, SearchMatch{Entry: entries[r.OriginalIndex], Rank: r.Distance})
	}
	return out
}
