// seed aplica las migraciones y carga el catálogo de demostración en PostgreSQL
// (productos, órdenes de compra y facturas) en una sola transacción.
//
// Uso: go run ./cmd/seed
// Lee la conexión de DATABASE_URL o DB_* igual que la API.
package main

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-reportes/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-reportes/internal/infrastructure/seed"
	"github.com/jhoicas/tienda-reportes/pkg/config"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	demo := seed.Demo(time.Now())
	err = postgres.NewTxRunner(pool).Run(ctx, func(tx *postgres.CatalogTx) error {
		return seed.Load(ctx, tx, demo)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar catálogo de demostración")
	}

	log.Info().
		Int("products", len(demo.Products)).
		Int("purchase_orders", len(demo.PurchaseOrders)).
		Int("invoices", len(demo.Invoices)).
		Msg("catálogo de demostración cargado")
}
