package repository

import (
	"context"

	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// Create inserta el cliente y asigna customer.ID. Teléfono repetido -> domain.ErrDuplicate.
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	// List devuelve todos los clientes ordenados por nombre.
	List(ctx context.Context) ([]*entity.Customer, error)
}
