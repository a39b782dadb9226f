package repository

import (
	"context"

	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// Update cambia nombre, descripción, precio e IVA. Las líneas de facturas ya emitidas no se tocan.
	Update(ctx context.Context, product *entity.Product) error
	// List devuelve todos los productos ordenados por nombre.
	List(ctx context.Context) ([]*entity.Product, error)
}
