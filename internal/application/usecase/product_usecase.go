package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/domain"
	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
	"github.com/jhoicas/facturacion-lite/internal/domain/repository"
)

// ProductUseCase casos de uso para productos. Editar un producto nunca altera facturas ya emitidas.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo producto. El nombre no es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)

	var verr domain.ValidationError
	if in.Name == "" {
		verr.Add("name", domain.CodeRequired)
	}
	checkAmount(&verr, "price", in.Price, true)
	checkAmount(&verr, "tax", in.Tax, true)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	product := &entity.Product{
		Name:        in.Name,
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		TaxRate:     *in.Tax,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID; domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos presentes. Las líneas de facturas existentes conservan su precio congelado.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var verr domain.ValidationError
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		verr.Add("name", domain.CodeRequired)
	}
	checkAmount(&verr, "price", in.Price, false)
	checkAmount(&verr, "tax", in.Tax, false)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Tax != nil {
		product.TaxRate = *in.Tax
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista los productos ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// checkAmount exige un decimal no negativo; required indica si la ausencia es un error.
func checkAmount(verr *domain.ValidationError, field string, v *decimal.Decimal, required bool) {
	if v == nil {
		if required {
			verr.Add(field, domain.CodeRequired)
		}
		return
	}
	if v.IsNegative() {
		verr.Add(field, domain.CodeNegative)
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Tax:         p.TaxRate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
