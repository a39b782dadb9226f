// Package invoicing contiene el cálculo puro de totales de factura (servicio de dominio).
// El mismo cálculo alimenta la vista previa del borrador y la factura persistida,
// de modo que lo mostrado y lo guardado nunca difieren.
package invoicing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line es una línea a totalizar: precio unitario, cantidad e IVA en porcentaje.
type Line struct {
	Price    decimal.Decimal
	Quantity int
	TaxRate  decimal.Decimal
}

// LineTotals resultado por línea.
type LineTotals struct {
	Subtotal decimal.Decimal // price * quantity
	Tax      decimal.Decimal // subtotal * tax / 100
	Total    decimal.Decimal // subtotal + tax
}

// Totals resultado agregado.
type Totals struct {
	Lines      []LineTotals
	Subtotal   decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeLine calcula subtotal e impuesto de una línea.
func ComputeLine(l Line) LineTotals {
	subtotal := l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
	tax := subtotal.Mul(l.TaxRate).Div(hundred)
	return LineTotals{Subtotal: subtotal, Tax: tax, Total: subtotal.Add(tax)}
}

// Compute totaliza las líneas:
//
//	subtotal   = Σ price*quantity
//	taxTotal   = Σ price*quantity*tax/100
//	grandTotal = subtotal + taxTotal
//
// Sin redondeo: los montos se guardan exactos y solo se formatean al mostrar.
func Compute(lines []Line) Totals {
	out := Totals{
		Lines:    make([]LineTotals, 0, len(lines)),
		Subtotal: decimal.Zero,
		TaxTotal: decimal.Zero,
	}
	for _, l := range lines {
		lt := ComputeLine(l)
		out.Lines = append(out.Lines, lt)
		out.Subtotal = out.Subtotal.Add(lt.Subtotal)
		out.TaxTotal = out.TaxTotal.Add(lt.Tax)
	}
	out.GrandTotal = out.Subtotal.Add(out.TaxTotal)
	return out
}
