package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormFilterTabRepository(t *testing.T) {
	repo := NewGormFilterTabRepository(newSQLiteDB(t))
	ctx := context.Background()
	tenantID, userID := uuid.New(), uuid.New()

	for _, name := range []string{"VIP", "New this month", "No phone"} {
		tab, err := partner.NewFilterTab(tenantID, userID, partner.CustomerFiltersKey, name, "numberOfOrdersFrom=5")
		require.NoError(t, err)
		require.NoError(t, repo.Append(ctx, tab))
	}

	other, err := partner.NewFilterTab(tenantID, uuid.New(), partner.CustomerFiltersKey, "Someone else", "")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, other))
	assert.Equal(t, 1, other.Position)

	names := func() []string {
		tabs, err := repo.FindByOwner(ctx, tenantID, userID, partner.CustomerFiltersKey)
		require.NoError(t, err)
		out := make([]string, len(tabs))
		for i, tab := range tabs {
			out[i] = tab.Name
			assert.Equal(t, i+1, tab.Position)
		}
		return out
	}

	assert.Equal(t, []string{"VIP", "New this month", "No phone"}, names())

	require.NoError(t, repo.DeleteAt(ctx, tenantID, userID, partner.CustomerFiltersKey, 1))
	assert.Equal(t, []string{"New this month", "No phone"}, names())

	err = repo.DeleteAt(ctx, tenantID, userID, partner.CustomerFiltersKey, 3)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

// takePositionBeforeCreate registers a callback that, before each of the
// first n filter tab inserts, stores a competing tab at the position the
// insert is about to use.
func takePositionBeforeCreate(t *testing.T, db *gorm.DB, n int) *int {
	t.Helper()
	fired := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:take_position", func(tx *gorm.DB) {
		model, ok := tx.Statement.Dest.(*models.FilterTabModel)
		if !ok || fired >= n {
			return
		}
		fired++
		now := time.Now().UTC()
		err := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO filter_tabs (id, created_at, updated_at, tenant_id, user_id, storage_key, position, name, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
			uuid.New(), now, now, model.TenantID, model.UserID, model.StorageKey, model.Position, "Concurrent save", "",
		).Error
		require.NoError(t, err)
	})
	require.NoError(t, err)
	return &fired
}

func TestGormFilterTabRepository_AppendRace(t *testing.T) {
	ctx := context.Background()

	t.Run("retries after a concurrent first save", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormFilterTabRepository(db)
		fired := takePositionBeforeCreate(t, db, 1)

		tenantID, userID := uuid.New(), uuid.New()
		tab, err := partner.NewFilterTab(tenantID, userID, partner.CustomerFiltersKey, "VIP", "numberOfOrdersFrom=5")
		require.NoError(t, err)

		require.NoError(t, repo.Append(ctx, tab))
		assert.Equal(t, 1, *fired)
		assert.Equal(t, 1, tab.Position)

		tabs, err := repo.FindByOwner(ctx, tenantID, userID, partner.CustomerFiltersKey)
		require.NoError(t, err)
		require.Len(t, tabs, 1)
		assert.Equal(t, "VIP", tabs[0].Name)
	})

	t.Run("gives up with a conflict", func(t *testing.T) {
		db := newSQLiteDB(t)
		repo := NewGormFilterTabRepository(db)
		fired := takePositionBeforeCreate(t, db, appendAttempts)

		tab, err := partner.NewFilterTab(uuid.New(), uuid.New(), partner.CustomerFiltersKey, "VIP", "")
		require.NoError(t, err)

		err = repo.Append(ctx, tab)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.Equal(t, appendAttempts, *fired)
	})
}
