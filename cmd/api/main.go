package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-reportes/internal/application/catalog"
	"github.com/jhoicas/tienda-reportes/internal/application/ports"
	"github.com/jhoicas/tienda-reportes/internal/application/reports"
	"github.com/jhoicas/tienda-reportes/internal/domain/repository"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/cache"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/tienda-reportes/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/seed"
	httpRouter "github.com/jhoicas/tienda-reportes/internal/interfaces/http"
	"github.com/jhoicas/tienda-reportes/pkg/config"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

// stores puertos del catálogo según STORE_DRIVER.
type stores struct {
	reports  repository.ReportRepository
	invoices repository.InvoiceRepository
	products repository.ProductRepository
	orders   repository.PurchaseOrderRepository
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Str("cache", cfg.Cache.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	st := openStores(ctx, cfg, log)
	defer st.close()

	reportCache := metrics.InstrumentCache(openCache(ctx, cfg, log))

	highValueMin, err := decimal.NewFromString(cfg.Reports.HighValueMin)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Reports.HighValueMin).Msg("REPORT_HIGH_VALUE_MIN inválido")
	}

	reportsUC := reports.NewUseCase(st.reports, st.invoices, reportCache, log, reports.Options{
		SummaryTTL:        cfg.Reports.SummaryTTL,
		HighValueMin:      highValueMin,
		LowStockThreshold: cfg.Reports.LowStockThreshold,
		Observer:          metrics.ObserveReport,
	})
	dashboardUC := reports.NewDashboardUseCase(reportsUC, reportCache, log, cfg.Reports.DashboardTTL)
	catalogUC := catalog.NewUseCase(st.products, st.orders, st.invoices, infrapdf.NewMarotoPDFGenerator(cfg.App.Name), nil)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda Reportes API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		ReportsUC:   reportsUC,
		DashboardUC: dashboardUC,
		CatalogUC:   catalogUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStores conecta PostgreSQL (aplicando migraciones si DB_MIGRATE) o arma el store
// en memoria con el catálogo de demostración.
func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) stores {
	if cfg.App.StoreDriver == "memory" {
		store := memory.NewStore()
		if err := seed.Load(ctx, store, seed.Demo(time.Now())); err != nil {
			log.Fatal().Err(err).Msg("cargar catálogo de demostración")
		}
		log.Warn().Msg("usando almacén en memoria con datos de demostración")
		return stores{
			reports:  store,
			invoices: store,
			products: store,
			orders:   store.PurchaseOrders(),
			close:    func() {},
		}
	}

	if cfg.DB.Migrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return stores{
		reports:  postgres.NewReportRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		products: postgres.NewProductRepository(pool),
		orders:   postgres.NewPurchaseOrderRepository(pool),
		close:    pool.Close,
	}
}

func openCache(ctx context.Context, cfg *config.Config, log *logger.Logger) ports.Cache {
	if cfg.Cache.Driver == "redis" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("conexión a Redis")
		}
		return cache.NewRedisCache(rdb, cfg.Cache.Prefix)
	}
	return cache.NewMemoryCache()
}
