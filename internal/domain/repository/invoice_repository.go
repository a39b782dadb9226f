package repository

import (
	"context"

	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Create y CreateItem solo tienen sentido dentro de una transacción (ver InvoiceTxRunner).
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id int64) (*entity.InvoiceSummary, error)
	// List devuelve las facturas con el nombre del cliente, más recientes primero.
	List(ctx context.Context) ([]*entity.InvoiceSummary, error)
	// ListItems devuelve las líneas con nombre/descripción de producto y los precios congelados.
	ListItems(ctx context.Context, invoiceID int64) ([]*entity.InvoiceItemView, error)
}
