package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura. Los totales se calculan una sola vez al crearla
// y se guardan; nunca se recalculan al leer.
type Invoice struct {
	ID          int64
	CustomerID  int64
	CreatedAt   time.Time
	Subtotal    decimal.Decimal
	TaxTotal    decimal.Decimal
	TotalAmount decimal.Decimal
}

// InvoiceSummary factura con el nombre del cliente (listado).
type InvoiceSummary struct {
	Invoice
	CustomerName string
}
