package persistence

import (
	"context"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/helios-hq/helios/modules/dataquality/services"
	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
)

// DataQualityRepository runs all analysis and reconciliation SQL. Every
// method expects an open transaction and the organization id in the context.
type DataQualityRepository struct{}

func NewDataQualityRepository() *DataQualityRepository {
	return &DataQualityRepository{}
}

// domainColumns maps a catalog domain onto the members table columns and the
// catalog table that back it. All identifiers are constants.
type domainColumns struct {
	table string
	text  string
	ref   string
	// withCode catalogs match free text against both name and code.
	withCode bool
}

func columnsFor(domain catalog.Domain) domainColumns {
	switch domain {
	case catalog.DomainDepartment:
		return domainColumns{table: "departments", text: "department", ref: "department_id"}
	case catalog.DomainLocation:
		return domainColumns{table: "locations", text: "location", ref: "location_id"}
	case catalog.DomainCostCenter:
		return domainColumns{table: "cost_centers", text: "cost_center", ref: "cost_center_id", withCode: true}
	default:
		panic(fmt.Sprintf("unknown catalog domain: %q", domain))
	}
}

// catalogMatch is the shared NOT EXISTS / join predicate: an active catalog
// row whose folded name (and code, where present) equals the folded free
// text.
func (c domainColumns) catalogMatch(catalogAlias, memberAlias string) string {
	match := fmt.Sprintf("lower(%s.name) = lower(%s.%s)", catalogAlias, memberAlias, c.text)
	if c.withCode {
		match = fmt.Sprintf("(%s OR lower(%s.code) = lower(%s.%s))", match, catalogAlias, memberAlias, c.text)
	}
	return match
}

func (r *DataQualityRepository) ListOrphanedValues(ctx context.Context, domain catalog.Domain) ([]services.OrphanedValue, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	c := columnsFor(domain)
	query := fmt.Sprintf(`
SELECT m.%[1]s,
       COUNT(*),
       (ARRAY_AGG(m.email ORDER BY m.email))[1:5]
FROM members m
WHERE m.organization_id = $1
  AND m.is_active
  AND m.%[2]s IS NULL
  AND m.%[1]s IS NOT NULL
  AND btrim(m.%[1]s) <> ''
  AND NOT EXISTS (
        SELECT 1 FROM %[3]s c
        WHERE c.organization_id = m.organization_id
          AND c.is_active
          AND %[4]s
  )
GROUP BY m.%[1]s
ORDER BY COUNT(*) DESC
`, c.text, c.ref, c.table, c.catalogMatch("c", "m"))

	rows, err := tx.Query(ctx, query, orgID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list orphaned values")
	}
	defer rows.Close()

	out := make([]services.OrphanedValue, 0, 16)
	for rows.Next() {
		var o services.OrphanedValue
		if err := rows.Scan(&o.Value, &o.UserCount, &o.Users); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *DataQualityRepository) CountUnmapped(ctx context.Context, domain catalog.Domain) (int64, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	c := columnsFor(domain)
	query := fmt.Sprintf(`
SELECT COUNT(*)
FROM members
WHERE organization_id = $1
  AND is_active
  AND %s IS NULL
  AND (%s IS NULL OR btrim(%s) = '')
`, c.ref, c.text, c.text)

	var count int64
	if err := tx.QueryRow(ctx, query, orgID).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "failed to count unmapped members")
	}
	return count, nil
}

func (r *DataQualityRepository) CountManaged(ctx context.Context, domain catalog.Domain) (int64, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE organization_id = $1 AND is_active`, columnsFor(domain).table)

	var count int64
	if err := tx.QueryRow(ctx, query, orgID).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "failed to count catalog entries")
	}
	return count, nil
}

func (r *DataQualityRepository) ListActiveCatalogNames(ctx context.Context, domain catalog.Domain) ([]string, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT name FROM %s WHERE organization_id = $1 AND is_active ORDER BY name ASC`, columnsFor(domain).table)

	rows, err := tx.Query(ctx, query, orgID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list catalog names")
	}
	defer rows.Close()

	out := make([]string, 0, 32)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *DataQualityRepository) ListManagerLinks(ctx context.Context) ([]services.ManagerLink, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, reporting_manager_id, is_active
FROM members
WHERE organization_id = $1
`, orgID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list manager links")
	}
	defer rows.Close()

	out := make([]services.ManagerLink, 0, 64)
	for rows.Next() {
		var l services.ManagerLink
		if err := rows.Scan(&l.ID, &l.ManagerID, &l.IsActive); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *DataQualityRepository) CatalogEntryExists(ctx context.Context, domain catalog.Domain, id uuid.UUID) (bool, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return false, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE organization_id = $1 AND id = $2 AND is_active)`, columnsFor(domain).table)

	var exists bool
	if err := tx.QueryRow(ctx, query, orgID, id).Scan(&exists); err != nil {
		return false, gerrors.Wrap(err, "failed to check catalog entry")
	}
	return exists, nil
}

func (r *DataQualityRepository) CreateCatalogEntry(ctx context.Context, domain catalog.Domain, value string) (uuid.UUID, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	c := columnsFor(domain)
	var id uuid.UUID
	if c.withCode {
		err = tx.QueryRow(ctx, `
INSERT INTO cost_centers (organization_id, code, name)
VALUES ($1, $2, $2)
RETURNING id
`, orgID, value).Scan(&id)
	} else {
		query := fmt.Sprintf(`
INSERT INTO %s (organization_id, name)
VALUES ($1, $2)
RETURNING id
`, c.table)
		err = tx.QueryRow(ctx, query, orgID, value).Scan(&id)
	}
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (r *DataQualityRepository) LinkMembers(ctx context.Context, domain catalog.Domain, value string, targetID uuid.UUID) (int64, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	c := columnsFor(domain)
	query := fmt.Sprintf(`
UPDATE members
SET %s = $3, updated_at = now()
WHERE organization_id = $1
  AND %s IS NULL
  AND %s IS NOT NULL
  AND lower(%s) = lower($2)
`, c.ref, c.ref, c.text, c.text)

	ct, err := tx.Exec(ctx, query, orgID, value, targetID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *DataQualityRepository) ImportMissingCatalogEntries(ctx context.Context, domain catalog.Domain) (int64, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	c := columnsFor(domain)
	columns := "organization_id, name"
	values := "m.organization_id, m." + c.text
	if c.withCode {
		columns = "organization_id, code, name"
		values = fmt.Sprintf("m.organization_id, m.%s, m.%s", c.text, c.text)
	}

	// DISTINCT ON the folded value collapses case variants to one row per
	// insert pass; ON CONFLICT absorbs a concurrent import of the same
	// value racing past the NOT EXISTS check.
	query := fmt.Sprintf(`
INSERT INTO %[1]s (%[2]s)
SELECT DISTINCT ON (lower(m.%[3]s)) %[4]s
FROM members m
WHERE m.organization_id = $1
  AND m.%[5]s IS NULL
  AND m.%[3]s IS NOT NULL
  AND btrim(m.%[3]s) <> ''
  AND NOT EXISTS (
        SELECT 1 FROM %[1]s c
        WHERE c.organization_id = m.organization_id
          AND c.is_active
          AND %[6]s
  )
ON CONFLICT DO NOTHING
`, c.table, columns, c.text, values, c.ref, c.catalogMatch("c", "m"))

	ct, err := tx.Exec(ctx, query, orgID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (r *DataQualityRepository) LinkAllMatchingMembers(ctx context.Context, domain catalog.Domain) (int64, error) {
	orgID, err := composables.UseOrganizationID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	c := columnsFor(domain)
	query := fmt.Sprintf(`
UPDATE members m
SET %[1]s = c.id, updated_at = now()
FROM %[2]s c
WHERE m.organization_id = $1
  AND c.organization_id = m.organization_id
  AND c.is_active
  AND m.%[1]s IS NULL
  AND m.%[3]s IS NOT NULL
  AND %[4]s
`, c.ref, c.table, c.text, c.catalogMatch("c", "m"))

	ct, err := tx.Exec(ctx, query, orgID)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
