package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// TaxRate es un porcentaje (19 = 19%), no una fracción.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	TaxRate     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
