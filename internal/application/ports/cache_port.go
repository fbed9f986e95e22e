package ports

import (
	"context"
	"time"
)

// Cache define el puerto de salida para la caché de reportes (clave → valor con TTL).
// Cualquier adaptador (memoria del proceso, Redis, doble de test) debe implementar esta interfaz.
//
// No hay coordinación entre llamadores: dos misses concurrentes pueden recalcular y escribir
// la misma clave; gana la última escritura. Los reportes son funciones puras del estado del
// almacén, así que ambos valores son equivalentes.
type Cache interface {
	// Get devuelve el valor y true si existe y no expiró. Un miss no es un error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set guarda (o sobrescribe) el valor con el TTL indicado.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete invalida la clave. No falla si la clave no existe.
	Delete(ctx context.Context, key string) error
}

// Clock permite inyectar la hora actual (tests deterministas de vencimientos y TTL).
type Clock func() time.Time

// ReportObserver recibe la duración y el resultado de cada cálculo de reporte (métricas).
type ReportObserver func(report string, started time.Time, err error)
