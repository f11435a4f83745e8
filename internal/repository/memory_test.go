package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lickees/internal/domain"
)

func input(total int) domain.SaleInput {
	return domain.SaleInput{
		Date:          "2026-10-16",
		Month:         "2026-10",
		Time:          "14:05",
		Items:         []domain.LineItem{{Name: "Mango", Price: total, Quantity: 1}},
		Total:         total,
		PaymentMethod: domain.PaymentCash,
	}
}

func TestMemoryStoreListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	tick := 0
	store := NewMemoryStore(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	first, err := store.InsertSale(ctx, input(10))
	require.NoError(t, err)
	second, err := store.InsertSale(ctx, input(20))
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, second.ID, sales[0].ID)
	assert.Equal(t, first.ID, sales[1].ID)
}

func TestMemoryStoreSameInstantUsesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore(func() time.Time { return fixed })

	ids := make([]string, 0, 3)
	for i := 1; i <= 3; i++ {
		sale, err := store.InsertSale(ctx, input(i))
		require.NoError(t, err)
		ids = append(ids, sale.ID)
	}

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{sales[0].ID, sales[1].ID, sales[2].ID})
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)
	sale, err := store.InsertSale(ctx, input(30))
	require.NoError(t, err)

	require.NoError(t, store.DeleteSale(ctx, sale.ID))
	assert.ErrorIs(t, store.DeleteSale(ctx, sale.ID), ErrNotFound)
	assert.ErrorIs(t, store.DeleteSale(ctx, "  "), ErrEmptyID)

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(nil)
	_, err := store.InsertSale(ctx, input(30))
	require.NoError(t, err)

	sales, err := store.ListSales(ctx)
	require.NoError(t, err)
	sales[0].Items[0].Quantity = 99

	again, err := store.ListSales(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Items[0].Quantity)
}
