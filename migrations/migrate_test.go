package migrations_test

import (
	"context"
	"testing"

	"github.com/nekogravitycat/party-booking-backend/internal/testutil"
	"github.com/nekogravitycat/party-booking-backend/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames_Sorted(t *testing.T) {
	names, err := migrations.Names()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, "0001_init.sql", names[0])
	assert.IsIncreasing(t, names)
}

func TestApply_Idempotent(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM public.schema_migrations`).Scan(&count))

	names, err := migrations.Names()
	require.NoError(t, err)
	assert.Equal(t, len(names), count)

	require.NoError(t, migrations.Apply(ctx, pool))

	var again int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM public.schema_migrations`).Scan(&again))
	assert.Equal(t, count, again)
}
