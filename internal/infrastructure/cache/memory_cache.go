// Package cache implementa los adaptadores de ports.Cache: memoria del proceso y Redis.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/tienda-reportes/internal/application/ports"
)

var _ ports.Cache = (*MemoryCache)(nil)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache caché clave → valor en memoria del proceso con expiración por entrada.
// El mutex protege solo el mapa; no serializa el recálculo de los llamadores.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     ports.Clock
}

// MemoryOption configura MemoryCache.
type MemoryOption func(*MemoryCache)

// WithClock inyecta el reloj (tests de expiración deterministas).
func WithClock(clock ports.Clock) MemoryOption {
	return func(c *MemoryCache) { c.now = clock }
}

// NewMemoryCache construye la caché en memoria.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get devuelve el valor si existe y no expiró. Las entradas vencidas se descartan al leerlas.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, still := c.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set guarda el valor sin condiciones. ttl <= 0 equivale a no guardar.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return c.Delete(context.Background(), key)
	}
	buf := make([]byte, len(value))
	copy(buf, value)

	c.mu.Lock()
	c.entries[key] = memoryEntry{value: buf, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Delete invalida la clave.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
