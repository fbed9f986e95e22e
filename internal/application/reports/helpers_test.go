package reports_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-reportes/internal/application/reports"
	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/cache"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// countingRepo cuenta las llamadas a cada consulta del repositorio envuelto.
type countingRepo struct {
	repository.ReportRepository
	mu    sync.Mutex
	calls map[string]int
	fail  error
}

func newCountingRepo(inner repository.ReportRepository) *countingRepo {
	return &countingRepo{ReportRepository: inner, calls: map[string]int{}}
}

func (r *countingRepo) hit(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[name]++
	return r.fail
}

func (r *countingRepo) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[name]
}

func (r *countingRepo) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

func (r *countingRepo) ProductSales(ctx context.Context, limit int) ([]repository.ProductSalesResult, error) {
	if err := r.hit("ProductSales"); err != nil {
		return nil, err
	}
	return r.ReportRepository.ProductSales(ctx, limit)
}

func (r *countingRepo) VendorPurchases(ctx context.Context, limit int) ([]repository.VendorPurchaseResult, error) {
	if err := r.hit("VendorPurchases"); err != nil {
		return nil, err
	}
	return r.ReportRepository.VendorPurchases(ctx, limit)
}

func (r *countingRepo) CustomersByRevenue(ctx context.Context, limit int) ([]repository.CustomerRevenueResult, error) {
	if err := r.hit("CustomersByRevenue"); err != nil {
		return nil, err
	}
	return r.ReportRepository.CustomersByRevenue(ctx, limit)
}

func (r *countingRepo) ProductPriceAverages(ctx context.Context) ([]repository.ProductPriceAveragesResult, error) {
	if err := r.hit("ProductPriceAverages"); err != nil {
		return nil, err
	}
	return r.ReportRepository.ProductPriceAverages(ctx)
}

func (r *countingRepo) InvoiceStatusCounts(ctx context.Context, today time.Time) ([]repository.StatusCountResult, error) {
	if err := r.hit("InvoiceStatusCounts"); err != nil {
		return nil, err
	}
	return r.ReportRepository.InvoiceStatusCounts(ctx, today)
}

// brokenCache falla en todas las operaciones.
type brokenCache struct{}

var errCacheDown = errors.New("cache caída")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errCacheDown
}

func (brokenCache) Delete(context.Context, string) error {
	return errCacheDown
}

type env struct {
	store     *memory.Store
	repo      *countingRepo
	clock     *fakeClock
	cache     *cache.MemoryCache
	reports   *reports.UseCase
	dashboard *reports.DashboardUseCase
	ids       map[string]string
}

// newEnv arma el motor de reportes sobre un store en memoria con un catálogo pequeño:
//
//	A1 costo prom. 10, venta 15 (margen 50)  B2 costo 4, venta 5 (margen 25)  C3 sin ventas
//	INV-1 sent vencida (25.00)  INV-2 paid vencida (12.50)  INV-3 draft sin líneas
func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	e := &env{
		store: memory.NewStore(),
		clock: &fakeClock{now: time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)},
		ids:   map[string]string{},
	}
	for _, p := range []*entity.Product{
		{SKU: "A1", Name: "Alfa", UnitPrice: dec("10.00"), StockQuantity: 3},
		{SKU: "B2", Name: "Beta", UnitPrice: dec("5.00"), StockQuantity: 20},
		{SKU: "C3", Name: "Gamma", UnitPrice: dec("7.00"), StockQuantity: 0},
	} {
		require.NoError(t, e.store.CreateProduct(ctx, p))
		e.ids[p.SKU] = p.ID
	}

	now := e.clock.Now()
	yesterday := now.AddDate(0, 0, -1)
	require.NoError(t, e.store.CreatePurchaseOrder(ctx, &entity.PurchaseOrder{
		OrderNumber: "PO-1", VendorName: "Acme", Status: entity.PurchaseOrderReceived, OrderDate: now,
		LineItems: []entity.PurchaseOrderLineItem{
			{ProductID: e.ids["A1"], Quantity: 5, CostPerUnit: dec("8.00")},
			{ProductID: e.ids["B2"], Quantity: 10, CostPerUnit: dec("4.00")},
		},
	}))
	require.NoError(t, e.store.CreatePurchaseOrder(ctx, &entity.PurchaseOrder{
		OrderNumber: "PO-2", VendorName: "Acme", Status: entity.PurchaseOrderOrdered, OrderDate: now,
		LineItems: []entity.PurchaseOrderLineItem{
			{ProductID: e.ids["A1"], Quantity: 1, CostPerUnit: dec("12.00")},
		},
	}))
	require.NoError(t, e.store.CreateInvoice(ctx, &entity.Invoice{
		InvoiceNumber: "INV-1", CustomerName: "Ana", CustomerEmail: "ana@example.com",
		InvoiceDate: now.AddDate(0, 0, -30), DueDate: yesterday, Status: entity.InvoiceSent,
		LineItems: []entity.InvoiceLineItem{
			{ProductID: e.ids["A1"], Quantity: 1, PriceEach: dec("15.00")},
			{ProductID: e.ids["B2"], Quantity: 2, PriceEach: dec("5.00")},
		},
	}))
	require.NoError(t, e.store.CreateInvoice(ctx, &entity.Invoice{
		InvoiceNumber: "INV-2", CustomerName: "Luis", CustomerEmail: "luis@example.com",
		InvoiceDate: now.AddDate(0, 0, -30), DueDate: yesterday, Status: entity.InvoicePaid,
		LineItems: []entity.InvoiceLineItem{
			{ProductID: e.ids["B2"], Quantity: 2, PriceEach: dec("6.25")},
		},
	}))
	require.NoError(t, e.store.CreateInvoice(ctx, &entity.Invoice{
		InvoiceNumber: "INV-3", CustomerName: "Luis", CustomerEmail: "luis@example.com",
		InvoiceDate: now, DueDate: now.AddDate(0, 0, 30), Status: entity.InvoiceDraft,
	}))

	e.repo = newCountingRepo(e.store)
	e.cache = cache.NewMemoryCache(cache.WithClock(e.clock.Now))
	e.reports = reports.NewUseCase(e.repo, e.store, e.cache, logger.Nop(), reports.Options{Clock: e.clock.Now})
	e.dashboard = reports.NewDashboardUseCase(e.reports, e.cache, logger.Nop(), 0)
	return e
}
