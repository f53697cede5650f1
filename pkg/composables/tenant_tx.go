package composables

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/helios-hq/helios/pkg/constants"
)

// InTenantTx runs fn inside a transaction scoped to the organization in the
// context. Reuses an existing transaction when one is already open so nested
// service calls share the same unit of work.
func InTenantTx(ctx context.Context, fn func(context.Context) error) error {
	if _, err := UseOrganizationID(ctx); err != nil {
		return err
	}

	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		return fn(ctx)
	}

	pool, err := UsePool(ctx)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	txCtx := WithTx(ctx, tx)
	if err := fn(txCtx); err != nil {
		if rErr := tx.Rollback(ctx); rErr != nil {
			return errors.Join(err, rErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func InTenantTxResult[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := InTenantTx(ctx, func(txCtx context.Context) error {
		var innerErr error
		out, innerErr = fn(txCtx)
		return innerErr
	})
	return out, err
}
