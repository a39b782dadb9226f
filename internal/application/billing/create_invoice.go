package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/domain"
	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
	"github.com/jhoicas/facturacion-lite/internal/domain/invoicing"
	"github.com/jhoicas/facturacion-lite/internal/domain/repository"
)

// PriceSource define de dónde sale el precio/IVA congelado en cada línea.
type PriceSource string

const (
	// PriceFromDraft usa el precio e IVA enviados en el borrador (foto tomada por el cliente).
	PriceFromDraft PriceSource = "client"
	// PriceFromCatalog relee precio e IVA del catálogo dentro de la transacción e ignora los enviados.
	PriceFromCatalog PriceSource = "catalog"
)

// CreateInvoiceUseCase crea una factura (cabecera + líneas) en una sola transacción y expone las consultas de facturas.
type CreateInvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.InvoiceRepository
	priceSource PriceSource
	now         func() time.Time
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	priceSource PriceSource,
) *CreateInvoiceUseCase {
	if priceSource == "" {
		priceSource = PriceFromDraft
	}
	return &CreateInvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		priceSource: priceSource,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *CreateInvoiceUseCase) WithClock(now func() time.Time) *CreateInvoiceUseCase {
	uc.now = now
	return uc
}

// CreateInvoice valida el borrador, calcula totales y guarda cabecera y líneas de forma atómica.
//
// Retorna:
//   - *domain.ValidationError (ErrInvalidInput) si el borrador está mal formado; no se toca la base.
//   - error que envuelve domain.ErrInvoiceNotCreated (y domain.ErrConstraint si un cliente o
//     producto no existe) si algo falla dentro de la transacción; la base queda como estaba.
func (uc *CreateInvoiceUseCase) CreateInvoice(ctx context.Context, in dto.InvoiceDraft) (*dto.CreateInvoiceResponse, error) {
	if err := ValidateDraft(in); err != nil {
		return nil, err
	}

	// Precisión de microsegundos: la misma que guarda PostgreSQL.
	now := uc.now().UTC().Truncate(time.Microsecond)
	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err := uc.txRunner.RunInvoice(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		productRepo repository.ProductRepository,
	) error {
		// 1) Líneas con su foto de precio/IVA
		lines, err := uc.resolveLines(ctx, productRepo, in.Items)
		if err != nil {
			return err
		}

		// 2) Totales con el mismo cálculo de la vista previa
		totals := invoicing.Compute(lines)

		// 3) Cabecera
		inv = &entity.Invoice{
			CustomerID:  in.CustomerID,
			CreatedAt:   now,
			Subtotal:    totals.Subtotal,
			TaxTotal:    totals.TaxTotal,
			TotalAmount: totals.GrandTotal,
		}
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}

		// 4) Líneas; la primera que falle revierte todo
		items = make([]*entity.InvoiceItem, 0, len(lines))
		for i, l := range lines {
			item := &entity.InvoiceItem{
				InvoiceID: inv.ID,
				ProductID: in.Items[i].ProductID,
				Quantity:  l.Quantity,
				Price:     l.Price,
				TaxRate:   l.TaxRate,
			}
			if err := invoiceRepo.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("línea %d: %w", i, err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvoiceNotCreated, err)
	}

	// Releer para devolver nombres de cliente y productos; si falla la factura ya está guardada.
	resp, readErr := uc.GetInvoice(ctx, inv.ID)
	if readErr != nil {
		resp = toInvoiceResponse(&entity.InvoiceSummary{Invoice: *inv}, itemViews(items))
	}
	return &dto.CreateInvoiceResponse{Success: true, InvoiceID: inv.ID, Invoice: resp}, nil
}

// resolveLines arma las líneas a totalizar según la política de precios.
func (uc *CreateInvoiceUseCase) resolveLines(
	ctx context.Context,
	productRepo repository.ProductRepository,
	items []dto.InvoiceDraftItem,
) ([]invoicing.Line, error) {
	if uc.priceSource != PriceFromCatalog {
		return draftLines(items), nil
	}
	lines := make([]invoicing.Line, 0, len(items))
	for i, it := range items {
		p, err := productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: línea %d: producto %d no existe", domain.ErrConstraint, i, it.ProductID)
		}
		lines = append(lines, invoicing.Line{Price: p.Price, Quantity: it.Quantity, TaxRate: p.TaxRate})
	}
	return lines, nil
}

// GetInvoice obtiene una factura con sus líneas; domain.ErrNotFound si no existe.
func (uc *CreateInvoiceUseCase) GetInvoice(ctx context.Context, id int64) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// ListInvoices lista las facturas con el nombre del cliente, más recientes primero.
func (uc *CreateInvoiceUseCase) ListInvoices(ctx context.Context) ([]*dto.InvoiceSummaryResponse, error) {
	list, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, &dto.InvoiceSummaryResponse{
			ID:           s.ID,
			CustomerID:   s.CustomerID,
			CustomerName: s.CustomerName,
			CreatedAt:    s.CreatedAt,
			TotalAmount:  s.TotalAmount,
		})
	}
	return out, nil
}

// ListInvoiceItems lista las líneas de una factura con precio/IVA congelados; domain.ErrNotFound si la factura no existe.
func (uc *CreateInvoiceUseCase) ListInvoiceItems(ctx context.Context, invoiceID int64) ([]dto.InvoiceItemResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

func itemViews(items []*entity.InvoiceItem) []*entity.InvoiceItemView {
	out := make([]*entity.InvoiceItemView, 0, len(items))
	for _, it := range items {
		out = append(out, &entity.InvoiceItemView{InvoiceItem: *it})
	}
	return out
}

func toInvoiceResponse(inv *entity.InvoiceSummary, items []*entity.InvoiceItemView) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:           inv.ID,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		CreatedAt:    inv.CreatedAt,
		Subtotal:     inv.Subtotal,
		TaxTotal:     inv.TaxTotal,
		TotalAmount:  inv.TotalAmount,
		Items:        toItemResponses(items),
	}
}

func toItemResponses(items []*entity.InvoiceItemView) []dto.InvoiceItemResponse {
	out := make([]dto.InvoiceItemResponse, 0, len(items))
	for _, it := range items {
		lt := invoicing.ComputeLine(invoicing.Line{Price: it.Price, Quantity: it.Quantity, TaxRate: it.TaxRate})
		out = append(out, dto.InvoiceItemResponse{
			ID:                 it.ID,
			ProductID:          it.ProductID,
			ProductName:        it.ProductName,
			ProductDescription: it.ProductDescription,
			Quantity:           it.Quantity,
			Price:              it.Price,
			Tax:                it.TaxRate,
			Subtotal:           lt.Subtotal,
			Total:              lt.Total,
		})
	}
	return out
}
