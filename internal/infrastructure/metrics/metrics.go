// Package metrics expone los colectores Prometheus de la aplicación.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/tienda-reportes/internal/application/ports"
)

var (
	// Registry contiene los colectores propios de la aplicación.
	Registry = prometheus.NewRegistry()

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tienda",
			Subsystem: "report_cache",
			Name:      "lookups_total",
			Help:      "Lecturas de la caché de reportes por clave y resultado (hit, miss, error).",
		},
		[]string{"key", "result"},
	)

	cacheWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tienda",
			Subsystem: "report_cache",
			Name:      "writes_total",
			Help:      "Escrituras en la caché de reportes por clave y resultado.",
		},
		[]string{"key", "result"},
	)

	reportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tienda",
			Subsystem: "reports",
			Name:      "compute_duration_seconds",
			Help:      "Duración del cálculo de cada reporte (sin hits de caché).",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms a ~4s
		},
		[]string{"report", "status"},
	)
)

func init() {
	Registry.MustRegister(
		cacheLookups,
		cacheWrites,
		reportDuration,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler devuelve el handler HTTP con la exposición de métricas.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveReport registra la duración del cálculo de un reporte.
func ObserveReport(report string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	reportDuration.WithLabelValues(report, status).Observe(time.Since(started).Seconds())
}

// instrumentedCache decora un ports.Cache contando hits, misses y errores por clave.
type instrumentedCache struct {
	next ports.Cache
}

// InstrumentCache envuelve la caché con métricas.
func InstrumentCache(next ports.Cache) ports.Cache {
	return &instrumentedCache{next: next}
}

func (c *instrumentedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok, err := c.next.Get(ctx, key)
	switch {
	case err != nil:
		cacheLookups.WithLabelValues(key, "error").Inc()
	case ok:
		cacheLookups.WithLabelValues(key, "hit").Inc()
	default:
		cacheLookups.WithLabelValues(key, "miss").Inc()
	}
	return val, ok, err
}

func (c *instrumentedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := c.next.Set(ctx, key, value, ttl)
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheWrites.WithLabelValues(key, result).Inc()
	return err
}

func (c *instrumentedCache) Delete(ctx context.Context, key string) error {
	return c.next.Delete(ctx, key)
}
