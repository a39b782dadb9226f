package billing

import (
	"context"

	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
	"github.com/jhoicas/facturacion-lite/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con repos de facturación y catálogo.
// Si fn retorna error se hace rollback: ni la cabecera ni ninguna línea quedan visibles.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.InvoiceSummary,
		customer *entity.Customer,
		items []*entity.InvoiceItemView,
	) ([]byte, error)
}
