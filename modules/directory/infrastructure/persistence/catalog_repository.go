package persistence

import (
	"context"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helios-hq/helios/modules/directory/domain/catalog"
	"github.com/helios-hq/helios/pkg/composables"
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) ListActive(ctx context.Context, domain catalog.Domain) ([]catalog.Entry, error) {
	orgID, err := organizationID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	table := catalogTable(domain)
	query := fmt.Sprintf(`
SELECT id, organization_id, %s, name, is_active, created_at, updated_at
FROM %s
WHERE organization_id = $1 AND is_active
ORDER BY name ASC
`, codeColumn(domain), table)

	rows, err := tx.Query(ctx, query, orgID)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list catalog entries")
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *CatalogRepository) GetByID(ctx context.Context, domain catalog.Domain, id uuid.UUID) (catalog.Entry, error) {
	orgID, err := organizationID(ctx)
	if err != nil {
		return catalog.Entry{}, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return catalog.Entry{}, err
	}

	query := fmt.Sprintf(`
SELECT id, organization_id, %s, name, is_active, created_at, updated_at
FROM %s
WHERE organization_id = $1 AND id = $2
`, codeColumn(domain), catalogTable(domain))

	var e catalog.Entry
	err = tx.QueryRow(ctx, query, orgID, id).Scan(
		&e.ID, &e.OrganizationID, &e.Code, &e.Name, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Entry{}, catalog.ErrNotFound
		}
		return catalog.Entry{}, err
	}
	return e, nil
}

func (r *CatalogRepository) Create(ctx context.Context, domain catalog.Domain, data catalog.CreateEntry) (catalog.Entry, error) {
	orgID, err := organizationID(ctx)
	if err != nil {
		return catalog.Entry{}, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return catalog.Entry{}, err
	}

	var id uuid.UUID
	if domain.HasCode() {
		code := data.Code
		if code == "" {
			code = data.Name
		}
		err = tx.QueryRow(ctx, `
INSERT INTO cost_centers (organization_id, code, name)
VALUES ($1, $2, $3)
RETURNING id
`, orgID, code, data.Name).Scan(&id)
	} else {
		query := fmt.Sprintf(`
INSERT INTO %s (organization_id, name)
VALUES ($1, $2)
RETURNING id
`, catalogTable(domain))
		err = tx.QueryRow(ctx, query, orgID, data.Name).Scan(&id)
	}
	if err != nil {
		return catalog.Entry{}, gerrors.Wrap(err, "failed to create catalog entry")
	}

	return r.GetByID(ctx, domain, id)
}

func codeColumn(domain catalog.Domain) string {
	if domain.HasCode() {
		return "code"
	}
	return "''"
}

func scanEntries(rows pgx.Rows) ([]catalog.Entry, error) {
	out := make([]catalog.Entry, 0, 16)
	for rows.Next() {
		var e catalog.Entry
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.Code, &e.Name, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
