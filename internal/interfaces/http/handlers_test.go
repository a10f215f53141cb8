package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/ledger"
	"github.com/jhoicas/stock-ledger/internal/domain/entity"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/stock-ledger/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

type apiFixture struct {
	app   *fiber.App
	token string
}

// newAPI arma la API completa sobre el store en memoria con una empresa,
// dos bodegas, un proveedor y un producto (compra 10, venta 15).
func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()

	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: testCompanyID, Name: "Acme", INN: "900123"}))
	require.NoError(t, repos.Storages.Create(ctx, &entity.Storage{ID: "store-a", CompanyID: testCompanyID, Name: "Principal"}))
	require.NoError(t, repos.Storages.Create(ctx, &entity.Storage{ID: "store-b", CompanyID: testCompanyID, Name: "Secundaria"}))
	require.NoError(t, repos.Suppliers.Create(ctx, &entity.Supplier{ID: "supplier-1", CompanyID: testCompanyID, Name: "Proveedor", INN: "800"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "prod-1", CompanyID: testCompanyID, Name: "Tornillo",
		PurchasePrice: decimal.NewFromInt(10), SalePrice: decimal.NewFromInt(15),
	}))

	svc := ledger.NewService(store, repos, logger.Nop(), ledger.Options{})
	receipts := ledger.NewReceiptUseCase(repos, pdf.NewMarotoReceiptGenerator())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{Ledger: svc, Receipts: receipts, JWTSecret: testJWTSecret})
	return &apiFixture{app: app, token: bearer(t, testCompanyID, testExpMin)}
}

func (f *apiFixture) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", f.token)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
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

func supplyBody(storageID string, qty int) string {
	b, _ := json.Marshal(map[string]any{
		"supplier_id":   "supplier-1",
		"delivery_date": "2025-01-10T10:00:00Z",
		"lines":         []map[string]any{{"product_id": "prod-1", "storage_id": storageID, "quantity": qty}},
	})
	return string(b)
}

// stockAB compra 5 unidades en store-a y 3 en store-b.
func (f *apiFixture) stockAB(t *testing.T) {
	t.Helper()
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/supplies", supplyBody("store-a", 5)).StatusCode)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/supplies", supplyBody("store-b", 3)).StatusCode)
}

func saleBody(qty int) string {
	b, _ := json.Marshal(map[string]any{
		"buyer_name": "Cliente",
		"sale_date":  "2025-01-11T10:00:00Z",
		"lines":      []map[string]any{{"product_id": "prod-1", "quantity": qty}},
	})
	return string(b)
}

func TestHealth_Publico(t *testing.T) {
	f := newAPI(t)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_SinToken401(t *testing.T) {
	f := newAPI(t)
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/api/sales", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_CompraVentaYStock(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/supplies", supplyBody("store-a", 5))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sup := decode[dto.SupplyResponse](t, resp)
	assert.True(t, sup.TotalAmount.Equal(decimal.NewFromInt(50)), sup.TotalAmount.String())
	assert.Len(t, sup.Lines, 1)
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/supplies", supplyBody("store-b", 3)).StatusCode)

	resp = f.do(t, http.MethodPost, "/api/sales", saleBody(6))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(90)), sale.TotalAmount.String())
	assert.Equal(t, []dto.SaleAllocationResponse{
		{ProductID: "prod-1", StorageID: "store-a", Quantity: 5},
		{ProductID: "prod-1", StorageID: "store-b", Quantity: 1},
	}, sale.Allocations)

	resp = f.do(t, http.MethodGet, "/api/products/prod-1/stock", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock := decode[dto.StockResponse](t, resp)
	assert.Equal(t, int64(2), stock.TotalAvailable)
}

func TestAPI_StockInsuficiente409(t *testing.T) {
	f := newAPI(t)
	f.stockAB(t)

	resp := f.do(t, http.MethodPost, "/api/sales", saleBody(9))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	stock := decode[dto.StockResponse](t, f.do(t, http.MethodGet, "/api/products/prod-1/stock", ""))
	assert.Equal(t, int64(8), stock.TotalAvailable)
}

func TestAPI_Validacion400(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/sales", saleBody(0))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, "/api/sales", `{"buyer_name":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, "/api/supplies", `{"supplier_id":"supplier-1","delivery_date":"2025-01-10T10:00:00Z","lines":[]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// Cantidades sobre el máximo por línea: 400 y el stock queda igual.
func TestAPI_CantidadMaxima400(t *testing.T) {
	f := newAPI(t)
	f.stockAB(t)

	bodies := map[string]string{
		"/api/supplies": supplyBody("store-a", 1_000_000_001),
		"/api/sales":    saleBody(1_000_000_001),
	}
	for path, body := range bodies {
		resp := f.do(t, http.MethodPost, path, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
		assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code, path)
	}

	stock := decode[dto.StockResponse](t, f.do(t, http.MethodGet, "/api/products/prod-1/stock", ""))
	assert.Equal(t, int64(8), stock.TotalAvailable)
}

func TestAPI_ProductoRepetido409(t *testing.T) {
	f := newAPI(t)
	body := `{"supplier_id":"supplier-1","delivery_date":"2025-01-10T10:00:00Z","lines":[
		{"product_id":"prod-1","storage_id":"store-a","quantity":1},
		{"product_id":"prod-1","storage_id":"store-b","quantity":1}]}`

	resp := f.do(t, http.MethodPost, "/api/supplies", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, resp).Code)
}

func TestAPI_RecursoInexistente404(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodGet, "/api/sales/no-existe", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodGet, "/api/products/prod-404/stock", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_EditarYEliminarVenta(t *testing.T) {
	f := newAPI(t)
	f.stockAB(t)
	sale := decode[dto.SaleResponse](t, f.do(t, http.MethodPost, "/api/sales", saleBody(4)))

	resp := f.do(t, http.MethodPatch, "/api/sales/"+sale.ID, `{"buyer_name":"Otro cliente"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "Otro cliente", updated.BuyerName)
	assert.True(t, updated.TotalAmount.Equal(sale.TotalAmount))

	resp = f.do(t, http.MethodDelete, "/api/sales/"+sale.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	stock := decode[dto.StockResponse](t, f.do(t, http.MethodGet, "/api/products/prod-1/stock", ""))
	assert.Equal(t, int64(8), stock.TotalAvailable)

	resp = f.do(t, http.MethodGet, "/api/sales/"+sale.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ListadoPaginado(t *testing.T) {
	f := newAPI(t)
	for i := 0; i < 3; i++ {
		f.stockAB(t)
	}

	list := decode[dto.SupplyListResponse](t, f.do(t, http.MethodGet, "/api/supplies?limit=2&offset=0", ""))
	assert.Len(t, list.Items, 2)
	assert.Equal(t, 2, list.Page.Limit)
}

func TestAPI_ComprobantesPDF(t *testing.T) {
	f := newAPI(t)
	sup := decode[dto.SupplyResponse](t, f.do(t, http.MethodPost, "/api/supplies", supplyBody("store-a", 5)))
	sale := decode[dto.SaleResponse](t, f.do(t, http.MethodPost, "/api/sales", saleBody(2)))

	for _, path := range []string{"/api/sales/" + sale.ID + "/pdf", "/api/supplies/" + sup.ID + "/pdf"} {
		resp := f.do(t, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()
		assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	}
}
