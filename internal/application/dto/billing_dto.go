package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// InvoiceDraft factura en curso (cliente + líneas) antes de enviarla.
// Es un valor propiedad del cliente: viaja completo en cada petición y el servidor no guarda borradores.
type InvoiceDraft struct {
	CustomerID int64              `json:"customer_id"`
	Items      []InvoiceDraftItem `json:"items"`
}

// InvoiceDraftItem línea del borrador. Price y Tax son la foto del producto al momento de armar el borrador;
// nil significa que no vinieron en la petición.
type InvoiceDraftItem struct {
	ProductID int64            `json:"product_id"`
	Price     *decimal.Decimal `json:"price"`
	Tax       *decimal.Decimal `json:"tax"`
	Quantity  int              `json:"quantity"`
}

// InvoicePreviewResponse totales calculados del borrador (POST /api/invoices/preview).
type InvoicePreviewResponse struct {
	Lines      []InvoiceLineTotals `json:"lines"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	TaxTotal   decimal.Decimal     `json:"tax_total"`
	GrandTotal decimal.Decimal     `json:"grand_total"`
}

// InvoiceLineTotals totales de una línea.
type InvoiceLineTotals struct {
	ProductID int64           `json:"product_id"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// CreateInvoiceResponse resultado de POST /api/invoices.
type CreateInvoiceResponse struct {
	Success   bool             `json:"success"`
	InvoiceID int64            `json:"invoice_id"`
	Invoice   *InvoiceResponse `json:"invoice"`
}

// InvoiceSummaryResponse fila del listado de facturas.
type InvoiceSummaryResponse struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	CreatedAt    time.Time       `json:"created_at"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// InvoiceResponse factura con detalle para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID           int64                 `json:"id"`
	CustomerID   int64                 `json:"customer_id"`
	CustomerName string                `json:"customer_name,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	TaxTotal     decimal.Decimal       `json:"tax_total"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	Items        []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea con precio e IVA congelados al momento de la venta.
type InvoiceItemResponse struct {
	ID                 int64           `json:"id"`
	ProductID          int64           `json:"product_id"`
	ProductName        string          `json:"product_name,omitempty"`
	ProductDescription string          `json:"product_description,omitempty"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
	Tax                decimal.Decimal `json:"tax"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	Total              decimal.Decimal `json:"total"`
}
