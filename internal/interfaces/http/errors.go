package http

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/domain"
)

// localsError guarda la causa de un 5xx para el access log.
const localsError = "error"

// writeError traduce un error de dominio a su respuesta HTTP. Ningún error sale del handler sin cuerpo.
func writeError(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Fields: verr.Fields})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConstraint):
		// Cliente o producto inexistente; la factura no se guardó.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CONSTRAINT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvoiceNotCreated):
		c.Locals(localsError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INVOICE_FAILED", Message: err.Error()})
	default:
		c.Locals(localsError, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// addInvalidAmounts marca como invalid_number los campos price/tax presentes que no son un decimal.
// prefix es la ruta del objeto dentro del cuerpo ("" o "items[2].").
func addInvalidAmounts(verr *domain.ValidationError, obj map[string]json.RawMessage, prefix string) {
	for _, field := range []string{"price", "tax"} {
		v, ok := obj[field]
		if !ok {
			continue
		}
		var d decimal.Decimal
		if err := d.UnmarshalJSON(v); err != nil {
			verr.Add(prefix+field, domain.CodeInvalidNumber)
		}
	}
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		verr := &domain.ValidationError{}
		verr.Add("id", domain.CodeInvalidNumber)
		return 0, verr
	}
	return id, nil
}
