package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wellingtonshopee/analitics/internal/models/orm"
)

func newTestDB(t *testing.T, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models...))
	return db
}

func TestOverrideSetUpsertsSingleRow(t *testing.T) {
	db := newTestDB(t, &orm.ManualOverride{})
	repo := NewOverrideRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "BR001", "ADD", "maria"))
	require.NoError(t, repo.Set(ctx, "BR001", "REMOVE", "joao"))

	var count int64
	require.NoError(t, db.Model(&orm.ManualOverride{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "repeated writes for one tracking number keep one row")

	actions, err := repo.LookupMany(ctx, []string{"BR001"})
	require.NoError(t, err)
	assert.Equal(t, "REMOVE", actions["BR001"], "last write wins")

	var stored orm.ManualOverride
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, "joao", stored.User)
}

func TestOverrideClear(t *testing.T) {
	db := newTestDB(t, &orm.ManualOverride{})
	repo := NewOverrideRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "BR001", "ADD", "maria"))

	deleted, err := repo.Clear(ctx, "BR001")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Clearing an absent override is not an error.
	deleted, err = repo.Clear(ctx, "BR001")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestOverrideLookupMany(t *testing.T) {
	db := newTestDB(t, &orm.ManualOverride{})
	repo := NewOverrideRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "BR001", "ADD", "maria"))
	require.NoError(t, repo.Set(ctx, "BR002", "REMOVE", "maria"))

	actions, err := repo.LookupMany(ctx, []string{"BR001", "BR002", "BR003"})
	require.NoError(t, err)
	assert.Len(t, actions, 2)
	assert.Equal(t, "ADD", actions["BR001"])
	assert.Equal(t, "REMOVE", actions["BR002"])
	_, present := actions["BR003"]
	assert.False(t, present, "absent tracking numbers do not appear")

	actions, err = repo.LookupMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, actions)
}

func TestOverrideNilDB(t *testing.T) {
	repo := NewOverrideRepository(nil)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Set(ctx, "BR001", "ADD", "maria"), ErrStoreUnavailable)

	_, err := repo.Clear(ctx, "BR001")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = repo.LookupMany(ctx, []string{"BR001"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
