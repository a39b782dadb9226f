package http

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-lite/internal/application/billing"
	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/domain"
)

// InvoiceHandler maneja las peticiones HTTP de facturación.
type InvoiceHandler struct {
	uc  *billing.CreateInvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.CreateInvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// Preview calcula los totales del borrador sin guardar nada.
// POST /api/invoices/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.InvoiceDraft
	if err := c.BodyParser(&in); err != nil {
		return draftBodyError(c)
	}
	preview, err := billing.Preview(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(preview)
}

// Create guarda el borrador como factura (cabecera + líneas, todo o nada).
// POST /api/invoices
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceDraft
	if err := c.BodyParser(&in); err != nil {
		return draftBodyError(c)
	}
	resp, err := h.uc.CreateInvoice(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List GET /api/invoices (más recientes primero)
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListInvoices(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	invoice, err := h.uc.GetInvoice(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(invoice)
}

// Items GET /api/invoices/:id/items
func (h *InvoiceHandler) Items(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	items, err := h.uc.ListInvoiceItems(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(items)
}

// DownloadPDF GET /api/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// draftBodyError reporta por línea (items[i].price) un precio/IVA no numérico; cualquier otro fallo es INVALID_BODY.
func draftBodyError(c *fiber.Ctx) error {
	var raw struct {
		Items []map[string]json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return invalidBody(c)
	}
	verr := &domain.ValidationError{}
	for i, item := range raw.Items {
		addInvalidAmounts(verr, item, fmt.Sprintf("items[%d].", i))
	}
	if err := verr.OrNil(); err != nil {
		return writeError(c, err)
	}
	return invalidBody(c)
}
