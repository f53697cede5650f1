// Package catalog defines the master-data catalogs (departments, locations,
// cost centers) that member records are reconciled against.
package catalog

import (
	"fmt"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = gerrors.New("catalog entry not found")

// Domain identifies one of the three master-data catalogs.
type Domain string

const (
	DomainDepartment Domain = "department"
	DomainLocation   Domain = "location"
	DomainCostCenter Domain = "cost_center"
)

func Domains() []Domain {
	return []Domain{DomainDepartment, DomainLocation, DomainCostCenter}
}

// ParseDomain accepts both singular wire values (resolve-orphan) and the
// plural ones used by auto-import.
func ParseDomain(raw string) (Domain, error) {
	switch raw {
	case "department", "departments":
		return DomainDepartment, nil
	case "location", "locations":
		return DomainLocation, nil
	case "cost_center", "cost_centers":
		return DomainCostCenter, nil
	default:
		return "", fmt.Errorf("unknown entity type: %q", raw)
	}
}

// HasCode reports whether entries in this domain carry a short code in
// addition to a name. Cost centers match free text against both.
func (d Domain) HasCode() bool {
	return d == DomainCostCenter
}

type Entry struct {
	ID             uuid.UUID
	OrganizationID uuid.UUID
	// Code is only set for cost centers.
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateEntry struct {
	Code string
	Name string
}
