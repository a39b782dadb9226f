package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0,00",
		"999.5":    "999,50",
		"25000":    "25.000,00",
		"1000000":  "1.000.000,00",
		"-1234.5":  "-1.234,50",
		"270.0049": "270,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestQRPayload(t *testing.T) {
	inv := &entity.InvoiceSummary{Invoice: entity.Invoice{
		ID:          7,
		CreatedAt:   time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		TotalAmount: decimal.RequireFromString("270"),
	}}
	assert.Equal(t, "7|2026-03-01T10:30:00Z|270", qrPayload(inv))
}

func TestGenerateInvoicePDF(t *testing.T) {
	inv := &entity.InvoiceSummary{
		Invoice: entity.Invoice{
			ID:          1,
			CustomerID:  1,
			CreatedAt:   time.Now().UTC(),
			Subtotal:    decimal.RequireFromString("250"),
			TaxTotal:    decimal.RequireFromString("20"),
			TotalAmount: decimal.RequireFromString("270"),
		},
		CustomerName: "Ana",
	}
	customer := &entity.Customer{ID: 1, Name: "Ana", Phone: "555-0101"}
	items := []*entity.InvoiceItemView{
		{InvoiceItem: entity.InvoiceItem{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("100"), TaxRate: decimal.RequireFromString("10")}, ProductName: "Widget"},
		{InvoiceItem: entity.InvoiceItem{ProductID: 2, Quantity: 1, Price: decimal.RequireFromString("50"), TaxRate: decimal.Zero}, ProductName: "Gadget"},
	}

	out, err := NewMarotoPDFGenerator("Tienda").GenerateInvoicePDF(context.Background(), inv, customer, items)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
