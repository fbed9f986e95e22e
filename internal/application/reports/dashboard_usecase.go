package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-reportes/internal/application/dto"
	"github.com/jhoicas/tienda-reportes/internal/application/ports"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

const dashboardTopN = 5 // filas por widget del dashboard

// DashboardUseCase arma el dashboard del personal a partir de cinco reportes.
//
// El resultado completo se cachea bajo DashboardKey. El resumen por estado embebido pasa por
// su propia entrada (InvoiceStatusSummaryKey); las dos entradas expiran por separado.
type DashboardUseCase struct {
	reports *UseCase
	cache   ports.Cache
	log     *logger.Logger
	ttl     time.Duration
	clock   ports.Clock
}

// NewDashboardUseCase construye el caso de uso. ttl <= 0 usa DefaultDashboardTTL.
func NewDashboardUseCase(reports *UseCase, cache ports.Cache, log *logger.Logger, ttl time.Duration) *DashboardUseCase {
	if ttl <= 0 {
		ttl = DefaultDashboardTTL
	}
	return &DashboardUseCase{
		reports: reports,
		cache:   cache,
		log:     log.Component("dashboard"),
		ttl:     ttl,
		clock:   reports.clock,
	}
}

// GetDashboard devuelve el dashboard cacheado o lo recalcula.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	return cacheThrough(ctx, uc.cache, uc.log, DashboardKey, uc.ttl, uc.build)
}

// build ejecuta los cinco reportes en paralelo. El primer error cancela el resto
// y el dashboard no se cachea.
func (uc *DashboardUseCase) build(ctx context.Context) (*dto.DashboardDTO, error) {
	top := dto.TopNRequest{Limit: dashboardTopN}
	out := &dto.DashboardDTO{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.TopProducts, err = uc.reports.ProductSales(gctx, top)
		return wrapWidget("top productos", err)
	})
	g.Go(func() (err error) {
		out.TopVendors, err = uc.reports.VendorPurchases(gctx, top)
		return wrapWidget("top proveedores", err)
	})
	g.Go(func() (err error) {
		out.InvoiceStatusSummary, err = uc.reports.InvoiceStatusSummary(gctx)
		return wrapWidget("resumen por estado", err)
	})
	g.Go(func() (err error) {
		out.TopCustomers, err = uc.reports.CustomersByRevenue(gctx, top)
		return wrapWidget("top clientes", err)
	})
	g.Go(func() (err error) {
		out.TopMargins, err = uc.reports.ProfitMargins(gctx, top)
		return wrapWidget("top márgenes", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.GeneratedAt = uc.clock().UTC()
	uc.log.Debug().Msg("dashboard recalculado")
	return out, nil
}

func wrapWidget(name string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", name, err)
	}
	return nil
}
