package composables

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/helios-hq/helios/pkg/repo"
)

type stubTx struct{ pgx.Tx }

func TestInTenantTx_RequiresOrganization(t *testing.T) {
	err := InTenantTx(context.Background(), func(context.Context) error {
		t.Fatal("fn must not run without an organization")
		return nil
	})

	require.ErrorIs(t, err, ErrNoOrganization)
}

func TestInTenantTx_ReusesOpenTransaction(t *testing.T) {
	ctx := WithOrganizationID(context.Background(), uuid.New())
	outer := stubTx{}
	ctx = WithTx(ctx, outer)

	var seen repo.Tx
	err := InTenantTx(ctx, func(txCtx context.Context) error {
		var err error
		seen, err = UseTx(txCtx)
		return err
	})

	require.NoError(t, err)
	require.Equal(t, outer, seen)
}

func TestInTenantTx_PropagatesError(t *testing.T) {
	ctx := WithTx(WithOrganizationID(context.Background(), uuid.New()), stubTx{})
	boom := errors.New("boom")

	err := InTenantTx(ctx, func(context.Context) error { return boom })

	require.ErrorIs(t, err, boom)
}

func TestInTenantTxResult(t *testing.T) {
	ctx := WithTx(WithOrganizationID(context.Background(), uuid.New()), stubTx{})

	out, err := InTenantTxResult(ctx, func(context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	require.Equal(t, 42, out)
}

func TestUseTx_FallsBackToPool(t *testing.T) {
	_, err := UseTx(context.Background())

	require.ErrorIs(t, err, ErrNoPool)
}

func TestUseOrganizationID_RoundTrip(t *testing.T) {
	orgID := uuid.New()
	ctx := WithOrganizationID(context.Background(), orgID)

	got, err := UseOrganizationID(ctx)

	require.NoError(t, err)
	require.Equal(t, orgID, got)
}
