package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/domain"
	"github.com/jhoicas/facturacion-lite/internal/domain/invoicing"
)

// ValidateDraft revisa la forma del borrador: cliente, al menos una línea, producto, cantidad > 0,
// precio e IVA presentes y no negativos. Las claves de campo siguen el JSON (items[1].quantity).
func ValidateDraft(in dto.InvoiceDraft) error {
	var verr domain.ValidationError
	if in.CustomerID <= 0 {
		verr.Add("customer_id", domain.CodeRequired)
	}
	if len(in.Items) == 0 {
		verr.Add("items", domain.CodeRequired)
	}
	for i, it := range in.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }
		if it.ProductID <= 0 {
			verr.Add(field("product_id"), domain.CodeRequired)
		}
		if it.Quantity <= 0 {
			verr.Add(field("quantity"), domain.CodeMustBePositive)
		}
		checkDraftAmount(&verr, field("price"), it.Price)
		checkDraftAmount(&verr, field("tax"), it.Tax)
	}
	return verr.OrNil()
}

func checkDraftAmount(verr *domain.ValidationError, field string, v *decimal.Decimal) {
	switch {
	case v == nil:
		verr.Add(field, domain.CodeRequired)
	case v.IsNegative():
		verr.Add(field, domain.CodeNegative)
	}
}

// draftLines convierte las líneas del borrador al formato del calculador. Solo se llama con un borrador validado.
func draftLines(items []dto.InvoiceDraftItem) []invoicing.Line {
	lines := make([]invoicing.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, invoicing.Line{Price: *it.Price, Quantity: it.Quantity, TaxRate: *it.Tax})
	}
	return lines
}

// Preview calcula los totales del borrador con el mismo cálculo que usa CreateInvoice. No escribe nada.
func Preview(in dto.InvoiceDraft) (*dto.InvoicePreviewResponse, error) {
	if err := ValidateDraft(in); err != nil {
		return nil, err
	}
	totals := invoicing.Compute(draftLines(in.Items))
	out := &dto.InvoicePreviewResponse{
		Lines:      make([]dto.InvoiceLineTotals, 0, len(totals.Lines)),
		Subtotal:   totals.Subtotal,
		TaxTotal:   totals.TaxTotal,
		GrandTotal: totals.GrandTotal,
	}
	for i, lt := range totals.Lines {
		out.Lines = append(out.Lines, dto.InvoiceLineTotals{
			ProductID: in.Items[i].ProductID,
			Subtotal:  lt.Subtotal,
			Tax:       lt.Tax,
			Total:     lt.Total,
		})
	}
	return out, nil
}
