package migration

import (
	"context"
	"testing"
	"time"

	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/migration/migrations"
	"git.handmade.network/hmn/ltree/src/migration/types"
	"git.handmade.network/hmn/ltree/src/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func version(day int) types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC))
}

func TestPlanMigration(t *testing.T) {
	all := []types.MigrationVersion{version(1), version(2), version(3)}

	t.Run("fresh database to latest", func(t *testing.T) {
		versions, up, err := planMigration(all, types.MigrationVersion{}, types.MigrationVersion{})
		require.NoError(t, err)
		assert.True(t, up)
		assert.Equal(t, all, versions)
	})
	t.Run("partway forward", func(t *testing.T) {
		versions, up, err := planMigration(all, version(1), version(2))
		require.NoError(t, err)
		assert.True(t, up)
		assert.Equal(t, []types.MigrationVersion{version(2)}, versions)
	})
	t.Run("roll back", func(t *testing.T) {
		versions, up, err := planMigration(all, version(3), version(1))
		require.NoError(t, err)
		assert.False(t, up)
		assert.Equal(t, []types.MigrationVersion{version(3), version(2)}, versions)
	})
	t.Run("already there", func(t *testing.T) {
		versions, _, err := planMigration(all, version(3), types.MigrationVersion{})
		require.NoError(t, err)
		assert.Empty(t, versions)
	})
	t.Run("unknown target", func(t *testing.T) {
		_, _, err := planMigration(all, version(1), version(9))
		assert.Error(t, err)
	})
	t.Run("unknown current", func(t *testing.T) {
		_, _, err := planMigration(all, version(9), version(1))
		assert.Error(t, err)
	})
}

func TestRegisteredMigrations(t *testing.T) {
	versions := getSortedMigrationVersions()
	require.NotEmpty(t, versions)
	for i := 1; i < len(versions); i++ {
		assert.True(t, versions[i-1].Before(versions[i]))
	}
	assert.Equal(t, "AddLtreeExtension", migrations.All[versions[0]].Name())
	assert.Equal(t, versions[len(versions)-1], LatestVersion())
}

func TestMigrate(t *testing.T) {
	conn := testutil.Conn(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, conn, types.MigrationVersion{}))

	current, err := getCurrentVersion(ctx, conn)
	require.NoError(t, err)
	assert.True(t, current.Equal(LatestVersion()))

	exists, err := db.QueryOneScalar[bool](ctx, conn, `SELECT to_regclass('tree_node') IS NOT NULL`)
	require.NoError(t, err)
	assert.True(t, exists)

	// Running again is a no-op.
	require.NoError(t, Migrate(ctx, conn, types.MigrationVersion{}))
}
