package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helios-hq/helios/pkg/composables"
	"github.com/helios-hq/helios/pkg/configuration"
)

func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	conf := configuration.Use()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

func ensureOrganizationExists(ctx context.Context, pool *pgxpool.Pool, orgID uuid.UUID) error {
	var dummy int
	if err := pool.QueryRow(ctx, `SELECT 1 FROM organizations WHERE id=$1`, orgID).Scan(&dummy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return withCode(exitValidation, fmt.Errorf("unknown organization: %s", orgID))
		}
		return withCode(exitDB, fmt.Errorf("check organization existence: %w", err))
	}
	return nil
}

// orgContext scopes ctx to an organization with the pool attached. Callers
// open their own transactions through the composables, keeping concurrent
// analyses off a shared connection.
func orgContext(ctx context.Context, pool *pgxpool.Pool, orgID uuid.UUID) context.Context {
	return composables.WithPool(composables.WithOrganizationID(ctx, orgID), pool)
}

func parseOrgFlag(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, withCode(exitUsage, fmt.Errorf("invalid --org: %w", err))
	}
	return id, nil
}
