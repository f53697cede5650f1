package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
	"github.com/helios-hq/helios/pkg/eventbus"
)

// suggestionThreshold is the minimum trigram similarity for a catalog name to
// be offered as a resolution hint. Strictly greater-than.
const suggestionThreshold = 0.3

type Repository interface {
	// ListOrphanedValues groups the unresolved free-text values of active
	// members by exact raw text, most used first, with up to five sample
	// emails per group in alphabetical order.
	ListOrphanedValues(ctx context.Context, domain catalog.Domain) ([]OrphanedValue, error)
	CountUnmapped(ctx context.Context, domain catalog.Domain) (int64, error)
	CountManaged(ctx context.Context, domain catalog.Domain) (int64, error)
	ListActiveCatalogNames(ctx context.Context, domain catalog.Domain) ([]string, error)
	ListManagerLinks(ctx context.Context) ([]ManagerLink, error)

	CatalogEntryExists(ctx context.Context, domain catalog.Domain, id uuid.UUID) (bool, error)
	CreateCatalogEntry(ctx context.Context, domain catalog.Domain, value string) (uuid.UUID, error)
	// LinkMembers points every still-unresolved member whose free-text value
	// case-insensitively equals value at the given catalog entry. Members
	// with a non-null reference are never touched.
	LinkMembers(ctx context.Context, domain catalog.Domain, value string, targetID uuid.UUID) (int64, error)
	// ImportMissingCatalogEntries creates one catalog entry per distinct
	// orphaned value that has no case-insensitive match yet and reports how
	// many rows it inserted.
	ImportMissingCatalogEntries(ctx context.Context, domain catalog.Domain) (int64, error)
	// LinkAllMatchingMembers backfills references for every unresolved
	// member whose free-text value now matches a catalog entry.
	LinkAllMatchingMembers(ctx context.Context, domain catalog.Domain) (int64, error)
}

// OrphanedValue is one distinct unresolved free-text value. The grouping key
// is the raw text, so differently-cased spellings form separate groups even
// though catalog matching is case-insensitive.
type OrphanedValue struct {
	Value          string   `json:"value"`
	UserCount      int64    `json:"userCount"`
	Users          []string `json:"users"`
	SuggestedMatch *string  `json:"suggestedMatch,omitempty"`
}

// FieldOrphan tags an orphan group with the domain it was found in, for the
// cross-domain aggregate listing.
type FieldOrphan struct {
	Field string `json:"field"`
	OrphanedValue
}

type EntityQuality struct {
	Managed  int64           `json:"managed"`
	Orphaned []OrphanedValue `json:"orphaned"`
	Unmapped int64           `json:"unmapped"`
}

type ManagerQuality struct {
	Valid    int64 `json:"valid"`
	Orphaned int64 `json:"orphaned"`
	Circular int64 `json:"circular"`
}

// ManagerLink is one member's reporting edge, nil ManagerID for roots.
type ManagerLink struct {
	ID        uuid.UUID
	ManagerID *uuid.UUID
	IsActive  bool
}

type Report struct {
	Departments EntityQuality  `json:"departments"`
	Locations   EntityQuality  `json:"locations"`
	CostCenters EntityQuality  `json:"costCenters"`
	Managers    ManagerQuality `json:"managers"`
	Timestamp   time.Time      `json:"timestamp"`
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

type DataQualityService struct {
	repo      Repository
	publisher eventbus.EventBus
}

func NewDataQualityService(repo Repository, publisher eventbus.EventBus) *DataQualityService {
	return &DataQualityService{repo: repo, publisher: publisher}
}

// EntityQuality analyzes one master-data domain: active catalog entries,
// orphan groups sorted by usage, and members with no classification at all.
func (s *DataQualityService) EntityQuality(ctx context.Context, domain catalog.Domain) (EntityQuality, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (EntityQuality, error) {
		return s.entityQualityTx(txCtx, domain)
	})
}

func (s *DataQualityService) entityQualityTx(ctx context.Context, domain catalog.Domain) (EntityQuality, error) {
	orphans, err := s.repo.ListOrphanedValues(ctx, domain)
	if err != nil {
		return EntityQuality{}, err
	}

	managed, err := s.repo.CountManaged(ctx, domain)
	if err != nil {
		return EntityQuality{}, err
	}

	unmapped, err := s.repo.CountUnmapped(ctx, domain)
	if err != nil {
		return EntityQuality{}, err
	}

	// Cost-center orphans carry no suggestion, resolution hints are only
	// offered where names are the sole matching key.
	if domain != catalog.DomainCostCenter && len(orphans) > 0 {
		s.attachSuggestions(ctx, domain, orphans)
	}

	if orphans == nil {
		orphans = []OrphanedValue{}
	}
	return EntityQuality{Managed: managed, Orphaned: orphans, Unmapped: unmapped}, nil
}

// attachSuggestions is advisory. A failed catalog read degrades hints, never
// the analysis, so the error is logged and dropped.
func (s *DataQualityService) attachSuggestions(ctx context.Context, domain catalog.Domain, orphans []OrphanedValue) {
	names, err := s.repo.ListActiveCatalogNames(ctx, domain)
	if err != nil {
		if logger, ok := composables.TryUseLogger(ctx); ok {
			logger.WithError(err).WithField("domain", domain).Warn("suggestion lookup failed")
		}
		return
	}
	for i := range orphans {
		if match, ok := suggestMatch(orphans[i].Value, names); ok {
			orphans[i].SuggestedMatch = &match
		}
	}
}

// ManagerQuality validates the reporting graph: valid links, links pointing
// at missing or inactive managers, and members caught in cycles.
func (s *DataQualityService) ManagerQuality(ctx context.Context) (ManagerQuality, error) {
	return composables.InTenantTxResult(ctx, func(txCtx context.Context) (ManagerQuality, error) {
		links, err := s.repo.ListManagerLinks(txCtx)
		if err != nil {
			return ManagerQuality{}, err
		}
		return analyzeManagerLinks(links), nil
	})
}

// Orphans aggregates the orphan groups of all three domains, each tagged
// with its source field.
func (s *DataQualityService) Orphans(ctx context.Context) ([]FieldOrphan, error) {
	out := make([]FieldOrphan, 0, 16)
	for _, domain := range catalog.Domains() {
		quality, err := s.EntityQuality(ctx, domain)
		if err != nil {
			return nil, err
		}
		for _, o := range quality.Orphaned {
			out = append(out, FieldOrphan{Field: string(domain), OrphanedValue: o})
		}
	}
	return out, nil
}

// Report runs the three domain analyses and the manager analysis
// concurrently and merges them. Any failure aborts the whole report.
func (s *DataQualityService) Report(ctx context.Context) (Report, error) {
	var report Report

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		report.Departments, err = s.EntityQuality(gCtx, catalog.DomainDepartment)
		return err
	})
	g.Go(func() error {
		var err error
		report.Locations, err = s.EntityQuality(gCtx, catalog.DomainLocation)
		return err
	})
	g.Go(func() error {
		var err error
		report.CostCenters, err = s.EntityQuality(gCtx, catalog.DomainCostCenter)
		return err
	})
	g.Go(func() error {
		var err error
		report.Managers, err = s.ManagerQuality(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	report.Timestamp = time.Now().UTC()
	recordReportGenerated()
	return report, nil
}
