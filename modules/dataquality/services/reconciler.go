package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/helios-hq/helios/modules/dataquality/domain/events"
	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
)

type Resolution string

const (
	ResolutionMap    Resolution = "map"
	ResolutionCreate Resolution = "create"
	ResolutionIgnore Resolution = "ignore"
)

func ParseResolution(raw string) (Resolution, bool) {
	switch Resolution(raw) {
	case ResolutionMap, ResolutionCreate, ResolutionIgnore:
		return Resolution(raw), true
	default:
		return "", false
	}
}

type ResolveResult struct {
	Affected int64 `json:"affected"`
}

type AutoImportResult struct {
	Imported int64 `json:"imported"`
}

// Resolve applies an administrator decision to every unresolved member
// sharing one orphaned value. Catalog insert and member backfill run in one
// transaction, a failed backfill leaves no stray catalog row behind.
func (s *DataQualityService) Resolve(ctx context.Context, domain catalog.Domain, orphanedValue string, resolution Resolution, targetID *uuid.UUID) (ResolveResult, error) {
	orphanedValue = strings.TrimSpace(orphanedValue)
	if orphanedValue == "" {
		return ResolveResult{}, newServiceError(http.StatusBadRequest, "DQ_INVALID_BODY", "orphanedValue is required", nil)
	}

	if resolution == ResolutionIgnore {
		return ResolveResult{Affected: 0}, nil
	}

	// Cost-center resolution stays unimplemented: cost centers match on
	// code as well as name and a one-sided link would corrupt reporting.
	if domain == catalog.DomainCostCenter {
		return ResolveResult{}, newServiceError(http.StatusNotImplemented, "DQ_NOT_IMPLEMENTED", "cost center resolution is not implemented", nil)
	}

	switch resolution {
	case ResolutionMap:
		if targetID == nil || *targetID == uuid.Nil {
			return ResolveResult{}, newServiceError(http.StatusBadRequest, "DQ_TARGET_REQUIRED", "targetId is required when resolution is map", nil)
		}
	case ResolutionCreate:
	default:
		return ResolveResult{}, newServiceError(http.StatusBadRequest, "DQ_INVALID_BODY", "resolution must be map, create or ignore", nil)
	}

	affected, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (int64, error) {
		entryID, err := s.resolveTarget(txCtx, domain, orphanedValue, resolution, targetID)
		if err != nil {
			return 0, err
		}
		affected, err := s.repo.LinkMembers(txCtx, domain, orphanedValue, entryID)
		if err != nil {
			return 0, mapPgError(err)
		}
		return affected, nil
	})
	if err != nil {
		return ResolveResult{}, err
	}

	recordResolution(domain, resolution)
	s.publishResolved(ctx, domain, orphanedValue, resolution, targetID, affected)
	return ResolveResult{Affected: affected}, nil
}

func (s *DataQualityService) resolveTarget(ctx context.Context, domain catalog.Domain, orphanedValue string, resolution Resolution, targetID *uuid.UUID) (uuid.UUID, error) {
	if resolution == ResolutionMap {
		exists, err := s.repo.CatalogEntryExists(ctx, domain, *targetID)
		if err != nil {
			return uuid.Nil, mapPgError(err)
		}
		if !exists {
			return uuid.Nil, newServiceError(http.StatusNotFound, "DQ_TARGET_NOT_FOUND", "target catalog entry not found", nil)
		}
		return *targetID, nil
	}

	entryID, err := s.repo.CreateCatalogEntry(ctx, domain, orphanedValue)
	if err != nil {
		return uuid.Nil, mapPgError(err)
	}
	return entryID, nil
}

// AutoImport creates one catalog entry per distinct orphaned value in the
// domain, then backfills references for every member that now matches.
// Running it again with no intervening writes imports nothing.
func (s *DataQualityService) AutoImport(ctx context.Context, domain catalog.Domain) (AutoImportResult, error) {
	imported, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (int64, error) {
		imported, err := s.repo.ImportMissingCatalogEntries(txCtx, domain)
		if err != nil {
			return 0, mapPgError(err)
		}
		if _, err := s.repo.LinkAllMatchingMembers(txCtx, domain); err != nil {
			return 0, mapPgError(err)
		}
		return imported, nil
	})
	if err != nil {
		return AutoImportResult{}, err
	}

	recordAutoImport(domain, imported)
	s.publishImported(ctx, domain, imported)
	return AutoImportResult{Imported: imported}, nil
}

func (s *DataQualityService) publishResolved(ctx context.Context, domain catalog.Domain, value string, resolution Resolution, targetID *uuid.UUID, affected int64) {
	if s.publisher == nil {
		return
	}
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return
	}
	s.publisher.Publish(events.OrphanResolvedEvent{
		OrganizationID: orgID,
		Domain:         string(domain),
		Value:          value,
		Resolution:     string(resolution),
		TargetID:       targetID,
		Affected:       affected,
		OccurredAt:     time.Now().UTC(),
	})
}

func (s *DataQualityService) publishImported(ctx context.Context, domain catalog.Domain, imported int64) {
	if s.publisher == nil {
		return
	}
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return
	}
	s.publisher.Publish(events.AutoImportCompletedEvent{
		OrganizationID: orgID,
		Domain:         string(domain),
		Imported:       imported,
		OccurredAt:     time.Now().UTC(),
	})
}
