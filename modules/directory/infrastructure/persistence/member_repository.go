package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helios-hq/helios/modules/directory/domain/member"
	"github.com/helios-hq/helios/pkg/composables"
)

const memberSelect = `
SELECT id, organization_id, email,
       department, location, cost_center,
       department_id, location_id, cost_center_id,
       reporting_manager_id, is_active, created_at, updated_at
FROM members
`

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

func (r *MemberRepository) List(ctx context.Context, params member.FindParams) ([]member.Record, error) {
	orgID, err := organizationID(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	query := memberSelect + `
WHERE organization_id = $1 AND ($2 = '' OR email ILIKE '%' || $2 || '%')
ORDER BY email ASC
LIMIT $3 OFFSET $4
`
	rows, err := tx.Query(ctx, query, orgID, params.Q, limit, params.Offset)
	if err != nil {
		return nil, gerrors.Wrap(err, "failed to list members")
	}
	defer rows.Close()

	return scanMembers(rows)
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Record, error) {
	orgID, err := organizationID(ctx)
	if err != nil {
		return member.Record{}, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return member.Record{}, err
	}

	var m member.Record
	err = tx.QueryRow(ctx, memberSelect+`WHERE organization_id = $1 AND id = $2`, orgID, id).Scan(
		&m.ID, &m.OrganizationID, &m.Email,
		&m.Department, &m.Location, &m.CostCenter,
		&m.DepartmentID, &m.LocationID, &m.CostCenterID,
		&m.ReportingManagerID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Record{}, member.ErrNotFound
		}
		return member.Record{}, err
	}
	return m, nil
}

func (r *MemberRepository) Count(ctx context.Context) (int64, error) {
	orgID, err := organizationID(ctx)
	if err != nil {
		return 0, err
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE organization_id = $1`, orgID).Scan(&count); err != nil {
		return 0, gerrors.Wrap(err, "failed to count members")
	}
	return count, nil
}

func scanMembers(rows pgx.Rows) ([]member.Record, error) {
	out := make([]member.Record, 0, 32)
	for rows.Next() {
		var m member.Record
		if err := rows.Scan(
			&m.ID, &m.OrganizationID, &m.Email,
			&m.Department, &m.Location, &m.CostCenter,
			&m.DepartmentID, &m.LocationID, &m.CostCenterID,
			&m.ReportingManagerID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}
