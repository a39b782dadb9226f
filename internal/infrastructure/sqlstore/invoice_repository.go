package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/facturacion-lite/internal/domain"
	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
	"github.com/jhoicas/facturacion-lite/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceSummaryQuery = `
	SELECT i.id, i.customer_id, i.created_at, i.subtotal, i.tax_total, i.total_amount, c.name
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id`

// InvoiceRepo implementación de InvoiceRepository (usable con DB o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar DB o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura y asigna su ID.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (customer_id, created_at, subtotal, tax_total, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		invoice.CustomerID, invoice.CreatedAt, invoice.Subtotal, invoice.TaxTotal, invoice.TotalAmount,
	).Scan(&invoice.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente %d no existe", domain.ErrConstraint, invoice.CustomerID)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea con su precio e IVA congelados.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (invoice_id, product_id, quantity, price, tax_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		item.InvoiceID, item.ProductID, item.Quantity, item.Price, item.TaxRate,
	).Scan(&item.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto %d o factura %d no existe", domain.ErrConstraint, item.ProductID, item.InvoiceID)
		}
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID obtiene una factura con el nombre del cliente; nil si no existe.
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*entity.InvoiceSummary, error) {
	var s entity.InvoiceSummary
	err := r.q.QueryRowContext(ctx, invoiceSummaryQuery+` WHERE i.id = $1`, id).Scan(
		&s.ID, &s.CustomerID, &s.CreatedAt, &s.Subtotal, &s.TaxTotal, &s.TotalAmount, &s.CustomerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &s, nil
}

// List lista las facturas, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context) ([]*entity.InvoiceSummary, error) {
	rows, err := r.q.QueryContext(ctx, invoiceSummaryQuery+` ORDER BY i.created_at DESC, i.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InvoiceSummary, 0)
	for rows.Next() {
		var s entity.InvoiceSummary
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.CreatedAt, &s.Subtotal, &s.TaxTotal, &s.TotalAmount, &s.CustomerName); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListItems obtiene las líneas de una factura con los datos descriptivos del producto.
// Precio e IVA salen de invoice_items (congelados), nunca de products.
func (r *InvoiceRepo) ListItems(ctx context.Context, invoiceID int64) ([]*entity.InvoiceItemView, error) {
	query := `
		SELECT it.id, it.invoice_id, it.product_id, it.quantity, it.price, it.tax_rate, p.name, p.description
		FROM invoice_items it
		JOIN products p ON p.id = it.product_id
		WHERE it.invoice_id = $1
		ORDER BY it.id`
	rows, err := r.q.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InvoiceItemView, 0)
	for rows.Next() {
		var v entity.InvoiceItemView
		if err := rows.Scan(&v.ID, &v.InvoiceID, &v.ProductID, &v.Quantity, &v.Price, &v.TaxRate,
			&v.ProductName, &v.ProductDescription); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Count devuelve el número de facturas. Count y CountItems no forman parte de repository.InvoiceRepository.
func (r *InvoiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

// CountItems devuelve el número total de líneas de factura.
func (r *InvoiceRepo) CountItems(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoice_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoice items: %w", err)
	}
	return n, nil
}
