package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de factura.
// Price y TaxRate son copias congeladas al momento de la venta, no referencias al producto.
type InvoiceItem struct {
	ID        int64
	InvoiceID int64
	ProductID int64
	Quantity  int
	Price     decimal.Decimal
	TaxRate   decimal.Decimal
}

// InvoiceItemView línea con nombre y descripción del producto (consulta de detalle).
type InvoiceItemView struct {
	InvoiceItem
	ProductName        string
	ProductDescription string
}
