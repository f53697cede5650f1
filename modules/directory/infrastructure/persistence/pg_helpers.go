package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
)

func organizationID(ctx context.Context) (uuid.UUID, error) {
	id, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get organization from context: %w", err)
	}
	return id, nil
}

// catalogTable maps a domain onto its backing table. Identifiers are
// constants, never user input.
func catalogTable(domain catalog.Domain) string {
	switch domain {
	case catalog.DomainDepartment:
		return "departments"
	case catalog.DomainLocation:
		return "locations"
	case catalog.DomainCostCenter:
		return "cost_centers"
	default:
		panic(fmt.Sprintf("unknown catalog domain: %q", domain))
	}
}
