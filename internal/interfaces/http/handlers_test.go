package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-lite/internal/application/billing"
	"github.com/jhoicas/facturacion-lite/internal/application/dto"
	"github.com/jhoicas/facturacion-lite/internal/application/usecase"
	infrapdf "github.com/jhoicas/facturacion-lite/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-lite/internal/infrastructure/sqlstore"
	apphttp "github.com/jhoicas/facturacion-lite/internal/interfaces/http"
	"github.com/jhoicas/facturacion-lite/pkg/config"
	"github.com/jhoicas/facturacion-lite/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre un SQLite temporal.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := sqlstore.Open(context.Background(), config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "api.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	customerRepo := sqlstore.NewCustomerRepository(db)
	invoiceRepo := sqlstore.NewInvoiceRepository(db)

	app := fiber.New()
	app.Use(recover.New())
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC: billing.NewCustomerUseCase(customerRepo),
		ProductUC:  usecase.NewProductUseCase(sqlstore.NewProductRepository(db)),
		Invoices:   billing.NewCreateInvoiceUseCase(sqlstore.NewTxRunner(db), invoiceRepo, billing.PriceFromDraft),
		InvoicePDF: billing.NewPDFUseCase(invoiceRepo, customerRepo, infrapdf.NewMarotoPDFGenerator("Tienda")),
		Log:        logger.Nop(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seed(t *testing.T, app *fiber.App) (customerID, widgetID, gadgetID int64) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Ana", "phone": "555-0101"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	customerID = decode[dto.CustomerResponse](t, resp).ID

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Widget", "price": "100", "tax": "10"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	widgetID = decode[dto.ProductResponse](t, resp).ID

	resp = doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Gadget", "price": 50, "tax": 0})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	gadgetID = decode[dto.ProductResponse](t, resp).ID
	return customerID, widgetID, gadgetID
}

func draftBody(customerID, widgetID, gadgetID int64) map[string]any {
	return map[string]any{
		"customer_id": customerID,
		"items": []map[string]any{
			{"product_id": widgetID, "price": "100", "tax": "10", "quantity": 2},
			{"product_id": gadgetID, "price": "50", "tax": "0", "quantity": 1},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCustomers_CrearListarYDuplicado(t *testing.T) {
	app := buildTestApp(t)
	seed(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "Otra", "phone": "555-0101"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE", errBody.Code)
	assert.False(t, errBody.Success)

	resp = doJSON(t, app, http.MethodGet, "/api/customers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.CustomerResponse](t, resp)
	assert.Len(t, list, 1)
}

func TestCustomers_ValidacionDevuelveCampos(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/customers", map[string]any{"name": "", "email": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "required", errBody.Fields["name"])
	assert.Equal(t, "required", errBody.Fields["phone"])
	assert.Equal(t, "invalid_email", errBody.Fields["email"])
}

func TestCustomers_GetByID(t *testing.T) {
	app := buildTestApp(t)
	customerID, _, _ := seed(t, app)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/customers/%d", customerID), nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/customers/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid_number", decode[dto.ErrorResponse](t, resp).Fields["id"])
}

func TestProducts_PrecioNoNumerico(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": "Widget", "price": "abc", "tax": "10"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Equal(t, "invalid_number", errBody.Fields["price"])
	assert.NotContains(t, errBody.Fields, "tax")
}

func TestProducts_Update(t *testing.T) {
	app := buildTestApp(t)
	_, widgetID, _ := seed(t, app)

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d", widgetID), map[string]any{"price": "150"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "Widget", p.Name)

	resp = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/products/%d", widgetID), map[string]any{"tax": "-1"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInvoices_PreviewCrearYConsultar(t *testing.T) {
	app := buildTestApp(t)
	customerID, widgetID, gadgetID := seed(t, app)
	body := draftBody(customerID, widgetID, gadgetID)

	resp := doJSON(t, app, http.MethodPost, "/api/invoices/preview", body)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	preview := decode[dto.InvoicePreviewResponse](t, resp)
	assert.True(t, preview.GrandTotal.Equal(decimal.NewFromInt(270)))

	resp = doJSON(t, app, http.MethodPost, "/api/invoices", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateInvoiceResponse](t, resp)
	assert.True(t, created.Success)
	require.NotNil(t, created.Invoice)
	assert.True(t, created.Invoice.TotalAmount.Equal(decimal.NewFromInt(270)))

	resp = doJSON(t, app, http.MethodGet, "/api/invoices", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.InvoiceSummaryResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].CustomerName)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/invoices/%d/items", created.InvoiceID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items := decode[[]dto.InvoiceItemResponse](t, resp)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].ProductName)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/invoices/%d", created.InvoiceID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInvoices_ErroresDeCreacion(t *testing.T) {
	app := buildTestApp(t)
	customerID, widgetID, _ := seed(t, app)

	// Borrador vacío: validación
	resp := doJSON(t, app, http.MethodPost, "/api/invoices", map[string]any{"customer_id": customerID, "items": []any{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "required", decode[dto.ErrorResponse](t, resp).Fields["items"])

	// Producto inexistente en la segunda línea: nada se guarda
	resp = doJSON(t, app, http.MethodPost, "/api/invoices", draftBody(customerID, widgetID, 999))
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "CONSTRAINT", decode[dto.ErrorResponse](t, resp).Code)

	resp = doJSON(t, app, http.MethodGet, "/api/invoices", nil)
	assert.Empty(t, decode[[]dto.InvoiceSummaryResponse](t, resp))

	// Cuerpo que no es JSON válido
	req := httptest.NewRequest(http.MethodPost, "/api/invoices", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	raw, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, raw.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)
}

func TestInvoices_LineaSinPrecioNiIVA(t *testing.T) {
	app := buildTestApp(t)
	customerID, widgetID, _ := seed(t, app)
	body := map[string]any{
		"customer_id": customerID,
		"items":       []map[string]any{{"product_id": widgetID, "quantity": 2}},
	}

	for _, path := range []string{"/api/invoices", "/api/invoices/preview"} {
		resp := doJSON(t, app, http.MethodPost, path, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
		errBody := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION", errBody.Code, path)
		assert.Equal(t, "required", errBody.Fields["items[0].price"], path)
		assert.Equal(t, "required", errBody.Fields["items[0].tax"], path)
	}

	resp := doJSON(t, app, http.MethodGet, "/api/invoices", nil)
	assert.Empty(t, decode[[]dto.InvoiceSummaryResponse](t, resp))
}

func TestInvoices_PrecioNoNumericoEnLinea(t *testing.T) {
	app := buildTestApp(t)
	customerID, widgetID, gadgetID := seed(t, app)
	body := draftBody(customerID, widgetID, gadgetID)
	body["items"] = []map[string]any{
		{"product_id": widgetID, "price": "100", "tax": "10", "quantity": 2},
		{"product_id": gadgetID, "price": "abc", "tax": true, "quantity": 1},
	}

	for _, path := range []string{"/api/invoices", "/api/invoices/preview"} {
		resp := doJSON(t, app, http.MethodPost, path, body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
		errBody := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, "VALIDATION", errBody.Code, path)
		assert.Equal(t, map[string]string{
			"items[1].price": "invalid_number",
			"items[1].tax":   "invalid_number",
		}, errBody.Fields, path)
	}
}

func TestInvoices_DescargarPDF(t *testing.T) {
	app := buildTestApp(t)
	customerID, widgetID, gadgetID := seed(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/invoices", draftBody(customerID, widgetID, gadgetID))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.CreateInvoiceResponse](t, resp)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/invoices/%d/pdf", created.InvoiceID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body[:4]))
}

func TestRequestLogger_PropagaRequestID(t *testing.T) {
	app := buildTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp = doJSON(t, app, http.MethodGet, "/api/customers", nil)
	assert.Len(t, resp.Header.Get(apphttp.HeaderRequestID), 36)
}

func TestRequestLogger_EscribeAccessLog(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/falla", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusInternalServerError) })

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "/ok", line["path"])
	assert.EqualValues(t, 200, line["status"])
	assert.NotEmpty(t, line["request_id"])

	buf.Reset()
	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/falla", nil), -1)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "error", line["level"])
}
