//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/tienda-reportes/pkg/config"
)

func setupRedisContainer(t *testing.T) (*RedisCache, func()) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)

	addr, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	rdb, err := NewRedisClient(ctx, config.CacheConfig{Driver: "redis", RedisAddr: addr, Prefix: "test:"})
	require.NoError(t, err)

	cleanup := func() {
		_ = rdb.Close()
		_ = container.Terminate(ctx)
	}
	return NewRedisCache(rdb, "test:"), cleanup
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c, cleanup := setupRedisContainer(t)
	defer cleanup()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "invoice_status_summary")
	require.NoError(t, err)
	assert.False(t, ok, "un miss no es error")

	require.NoError(t, c.Set(ctx, "invoice_status_summary", []byte(`[{"status":"paid"}]`), time.Minute))
	val, ok, err := c.Get(ctx, "invoice_status_summary")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"status":"paid"}]`, string(val))

	raw, err := c.rdb.Get(ctx, "test:invoice_status_summary").Bytes()
	require.NoError(t, err, "la clave se guarda con el prefijo")
	assert.Equal(t, val, raw)

	require.NoError(t, c.Delete(ctx, "invoice_status_summary"))
	require.NoError(t, c.Delete(ctx, "invoice_status_summary"), "borrar una clave ausente no falla")
	_, ok, err = c.Get(ctx, "invoice_status_summary")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_Expira(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	c, cleanup := setupRedisContainer(t)
	defer cleanup()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "dashboard_data", []byte(`{}`), time.Second))
	assert.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "dashboard_data")
		return err == nil && !ok
	}, 5*time.Second, 100*time.Millisecond)
}
