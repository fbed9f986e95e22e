package repository

import (
	"context"

	"github.com/jhoicas/tienda-reportes/internal/domain/entity"
)

// ProductRepository define el puerto de lectura para Product.
type ProductRepository interface {
	// GetBySKU devuelve el producto o domain.ErrNotFound.
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// List lista productos por nombre con paginación.
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
