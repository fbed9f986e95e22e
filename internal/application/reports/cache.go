package reports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/tienda-reportes/internal/application/ports"
	"github.com/jhoicas/tienda-reportes/pkg/logger"
)

// Claves de caché compartidas por todos los procesos que usen el mismo backend.
const (
	InvoiceStatusSummaryKey = "invoice_status_summary"
	DashboardKey            = "dashboard_data"
)

// cacheThrough devuelve el valor cacheado bajo key o lo calcula y lo guarda con ttl.
// Un error del backend (lectura, escritura o JSON corrupto) se registra y cuenta como miss;
// nunca hace fallar al reporte. Si compute falla no se guarda nada.
func cacheThrough[T any](
	ctx context.Context,
	cache ports.Cache,
	log *logger.Logger,
	key string,
	ttl time.Duration,
	compute func(context.Context) (T, error),
) (T, error) {
	raw, ok, err := cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("key", key).Msg("caché no disponible, se recalcula")
	case ok:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			log.Debug().Str("key", key).Msg("hit de caché")
			return v, nil
		}
		log.Warn().Str("key", key).Msg("valor de caché ilegible, se recalcula")
	}

	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	raw, err = json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo serializar el reporte")
		return v, nil
	}
	if err := cache.Set(ctx, key, raw, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar en caché")
	}
	return v, nil
}
