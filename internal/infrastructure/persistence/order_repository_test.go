package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopdash/backend/internal/domain/shared"
	"github.com/shopdash/backend/internal/domain/shared/valueobject"
	"github.com/shopdash/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, tenantID uuid.UUID, number int, email string, created time.Time) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder(tenantID, number, email,
		valueobject.MustNewMoney(decimal.RequireFromString("100.00"), valueobject.EUR),
		valueobject.MustNewMoney(decimal.RequireFromString("123.00"), valueobject.EUR))
	require.NoError(t, err)
	o.CreatedAt = created
	o.UpdatedAt = created
	return o
}

func TestGormOrderRepository(t *testing.T) {
	f := newCustomerFixture(t)
	ctx := context.Background()
	repo := f.orderRepo

	ada := f.addCustomer(t, "ada@example.com", "Ada", "Lovelace", "", time.Now(), 0)
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 1; i <= 7; i++ {
		o := newTestOrder(t, f.tenantID, i, "ada@example.com", base.Add(time.Duration(i)*time.Hour))
		o.AssignCustomer(ada.ID, "")
		require.NoError(t, repo.Save(ctx, o))
	}
	guest := newTestOrder(t, f.tenantID, 8, "guest@shop.test", base)
	guest.SetChargeStatus(trade.ChargeStatusFullyCharged)
	require.NoError(t, repo.Save(ctx, guest))

	t.Run("find by id keeps money and statuses", func(t *testing.T) {
		o, err := repo.FindByIDForTenant(ctx, f.tenantID, guest.ID)
		require.NoError(t, err)
		assert.Equal(t, 8, o.Number)
		assert.Equal(t, trade.ChargeStatusFullyCharged, o.ChargeStatus)
		assert.Equal(t, valueobject.EUR, o.TotalGross.Currency())
		assert.True(t, o.TotalGross.Amount().Equal(decimal.RequireFromString("123")))
		assert.Nil(t, o.CustomerID)

		_, err = repo.FindByIDForTenant(ctx, uuid.New(), guest.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("recent customer orders are newest first and limited", func(t *testing.T) {
		orders, err := repo.FindByCustomer(ctx, f.tenantID, ada.ID, 5)
		require.NoError(t, err)
		require.Len(t, orders, 5)
		assert.Equal(t, 7, orders[0].Number)
		assert.Equal(t, 3, orders[4].Number)

		count, err := repo.CountByCustomer(ctx, f.tenantID, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("customer search matches email or name", func(t *testing.T) {
		count, err := repo.CountForTenant(ctx, f.tenantID, trade.OrderFilter{Customer: "GUEST@"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		orders, err := repo.FindAllForTenant(ctx, f.tenantID, trade.OrderFilter{Customer: "ada lovelace", Page: 2, PageSize: 5})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, 2, orders[0].Number)
	})
}
