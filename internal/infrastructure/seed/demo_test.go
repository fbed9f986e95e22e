package seed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-reportes/internal/domain"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/seed"
)

func TestDemo_CargaEnMemoria(t *testing.T) {
	now := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, seed.Load(ctx, store, seed.Demo(now)))

	overdue, err := store.OverdueInvoices(ctx, now)
	require.NoError(t, err)
	require.Len(t, overdue, 3, "INV-0002, INV-0003 (sent) e INV-0005 (draft)")
	for _, inv := range overdue {
		assert.NotEqual(t, "INV-0001", inv.InvoiceNumber)
	}

	unsold, err := store.ProductsWithoutSales(ctx)
	require.NoError(t, err)
	require.Len(t, unsold, 1)
	assert.Equal(t, "CAM-005", unsold[0].SKU)

	vendors, err := store.VendorPurchases(ctx, 0)
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "Acme Corp", vendors[0].VendorName)
	assert.Equal(t, 2, vendors[0].OrderCount)
}

func TestLoad_DosVecesFallaPorDuplicado(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	catalog := seed.Demo(time.Now())

	require.NoError(t, seed.Load(ctx, store, catalog))
	err := seed.Load(ctx, store, catalog)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}
