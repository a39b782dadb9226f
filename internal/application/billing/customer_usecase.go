package billing

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/domain"
	"github.com/jhoicas/facturacion-lite/internal/domain/entity"
	"github.com/jhoicas/facturacion-lite/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	now  func() time.Time
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, now: time.Now}
}

// Create valida y crea un nuevo cliente.
// Errores: *domain.ValidationError (ErrInvalidInput) antes de tocar la base; domain.ErrDuplicate si el teléfono ya existe.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Address = strings.TrimSpace(in.Address)

	var verr domain.ValidationError
	if in.Name == "" {
		verr.Add("name", domain.CodeRequired)
	}
	if in.Phone == "" {
		verr.Add("phone", domain.CodeRequired)
	}
	if in.Email != "" && !govalidator.IsEmail(in.Email) {
		verr.Add("email", domain.CodeInvalidEmail)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	customer := &entity.Customer{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: uc.now().UTC(),
	}
	// La restricción UNIQUE sigue siendo la última palabra si otro alta se coló entre medio.
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente; domain.ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista los clientes ordenados por nombre.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
	}
}
