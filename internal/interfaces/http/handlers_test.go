package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/relief-inventory-api/internal/application/analytics"
	"github.com/jhoicas/relief-inventory-api/internal/application/dto"
	"github.com/jhoicas/relief-inventory-api/internal/application/inventory"
	"github.com/jhoicas/relief-inventory-api/internal/application/usecase"
	"github.com/jhoicas/relief-inventory-api/internal/domain/entity"
	"github.com/jhoicas/relief-inventory-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/relief-inventory-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/relief-inventory-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/relief-inventory-api/pkg/jwt"
)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	auth  string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	store.AddUser(entity.User{ID: testUserID, Name: "Ana Voluntaria", Email: "ana@example.org"})

	dashboardUC := analytics.NewDashboardUseCase(store.Reports(), infrapdf.NewMarotoPDFGenerator("Inventario de donaciones"))
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:       usecase.NewCategoryUseCase(store.Categories()),
		ItemUC:           usecase.NewItemUseCase(store, store.Items(), store.Categories()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store),
		Reconcile:        inventory.NewReconcileUseCase(store, zerolog.Nop(), 50),
		DashboardUC:      dashboardUC,
		Users:            store.Users(),
		Import:           apphttp.ImportConfig{MaxRows: 50, MaxUploadBytes: 1 << 20, DefaultCharset: "utf-8"},
		JWTSecret:        testJWTSecret,
	})
	return &apiFixture{app: app, store: store, auth: bearer(t, "")}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", f.auth)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *apiFixture) upload(t *testing.T, csvData string, fields map[string]string, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "donaciones.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvData))
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/import", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", f.auth)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *apiFixture) createItem(t *testing.T, in dto.CreateItemRequest) dto.ItemDTO {
	t.Helper()
	var item dto.ItemDTO
	require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/donations/items", in, &item))
	return item
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCategorias_CrearListarYDuplicado(t *testing.T) {
	api := newAPI(t)

	var created dto.CategoryDTO
	assert.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/donations/categories",
		dto.CreateCategoryRequest{Name: "  Water "}, &created))
	assert.Equal(t, "Water", created.Name)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, api.do(t, http.MethodPost, "/api/donations/categories",
		dto.CreateCategoryRequest{Name: "Water"}, &errResp))
	assert.Equal(t, "DUPLICATE", errResp.Code)

	assert.Equal(t, http.StatusBadRequest, api.do(t, http.MethodPost, "/api/donations/categories",
		dto.CreateCategoryRequest{Name: "   "}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	var list []dto.CategoryDTO
	assert.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/categories", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCategorias_SinTokenRetorna401(t *testing.T) {
	api := newAPI(t)
	api.auth = ""

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/donations/categories", nil, &errResp))
	assert.Equal(t, "MISSING_TOKEN", errResp.Code)
}

func TestAuth_UsuarioDesconocidoRetorna401(t *testing.T) {
	api := newAPI(t)
	tok, err := pkgjwt.Generate(testJWTSecret, "00000000-0000-0000-0000-0000000000ee", "", testIssuer, testExpMin)
	require.NoError(t, err)
	api.auth = "Bearer " + tok

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, api.do(t, http.MethodGet, "/api/donations/items", nil, &errResp))
	assert.Equal(t, "UNKNOWN_USER", errResp.Code)
}

func TestItems_CrearConStockInicialYAgruparPorCategoria(t *testing.T) {
	api := newAPI(t)

	var cat dto.CategoryDTO
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/donations/categories",
		dto.CreateCategoryRequest{Name: "Dry Rations"}, &cat))

	item := api.createItem(t, dto.CreateItemRequest{
		Name: "Rice", VariantLabel: "5kg", CategoryID: cat.ID, InitialQuantity: 4,
	})
	assert.Equal(t, 4, item.CurrentQuantity)
	assert.Equal(t, entity.DefaultUnitType, item.UnitType)
	api.createItem(t, dto.CreateItemRequest{Name: "Sin categoría"})

	var items []dto.ItemDTO
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/items", nil, &items))
	assert.Len(t, items, 2)

	var grouped []dto.CategoryWithItemsDTO
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/items/by-category", nil, &grouped))
	require.Len(t, grouped, 1)
	require.Len(t, grouped[0].Items, 1)
	assert.Equal(t, item.ID, grouped[0].Items[0].ID)

	var history dto.ItemHistoryDTO
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/stock/history/"+item.ID, nil, &history))
	require.Len(t, history.Movements, 1)
	require.NotNil(t, history.Movements[0].Reason)
	assert.Equal(t, entity.ReasonInitialStock, *history.Movements[0].Reason)
}

func TestItems_CategoriaInexistenteRetorna404(t *testing.T) {
	api := newAPI(t)

	var errResp dto.ErrorResponse
	status := api.do(t, http.MethodPost, "/api/donations/items",
		dto.CreateItemRequest{Name: "Soap", CategoryID: "00000000-0000-0000-0000-0000000000aa"}, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestStock_EntradaSalidaEHistorial(t *testing.T) {
	api := newAPI(t)
	item := api.createItem(t, dto.CreateItemRequest{Name: "Biscuits"})

	var in dto.StockResponse
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/donations/stock/in",
		dto.StockRequest{ItemID: item.ID, Quantity: 10, Reason: "Donación escuela"}, &in))
	assert.Equal(t, 10, in.Item.CurrentQuantity)
	assert.Equal(t, entity.MovementTypeIN, in.Movement.Type)
	assert.Equal(t, entity.MovementSourceManual, in.Movement.Source)

	var out dto.StockResponse
	require.Equal(t, http.StatusCreated, api.do(t, http.MethodPost, "/api/donations/stock/out",
		dto.StockRequest{ItemID: item.ID, Quantity: 4}, &out))
	assert.Equal(t, 6, out.Item.CurrentQuantity)
	assert.Nil(t, out.Movement.Reason)

	var errResp dto.ErrorResponse
	require.Equal(t, http.StatusConflict, api.do(t, http.MethodPost, "/api/donations/stock/out",
		dto.StockRequest{ItemID: item.ID, Quantity: 7}, &errResp))
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	var history dto.ItemHistoryDTO
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/stock/history/"+item.ID+"?limit=1", nil, &history))
	assert.Equal(t, 6, history.Item.CurrentQuantity)
	require.Len(t, history.Movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, history.Movements[0].Type)
	require.NotNil(t, history.Movements[0].CreatedByUser)
	assert.Equal(t, "Ana Voluntaria", history.Movements[0].CreatedByUser.FullName)
}

func TestStock_ErroresDeValidacion(t *testing.T) {
	api := newAPI(t)
	item := api.createItem(t, dto.CreateItemRequest{Name: "Soap"})

	cases := []struct {
		name   string
		req    dto.StockRequest
		status int
		code   string
	}{
		{"cantidad cero", dto.StockRequest{ItemID: item.ID, Quantity: 0}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad negativa", dto.StockRequest{ItemID: item.ID, Quantity: -3}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad sobre el máximo", dto.StockRequest{ItemID: item.ID, Quantity: 1 << 31}, http.StatusBadRequest, "VALIDATION"},
		{"ítem vacío", dto.StockRequest{Quantity: 1}, http.StatusBadRequest, "VALIDATION"},
		{"ítem no uuid", dto.StockRequest{ItemID: "abc", Quantity: 1}, http.StatusNotFound, "NOT_FOUND"},
		{"ítem inexistente", dto.StockRequest{ItemID: "00000000-0000-0000-0000-0000000000ff", Quantity: 1}, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			assert.Equal(t, tc.status, api.do(t, http.MethodPost, "/api/donations/stock/in", tc.req, &errResp))
			assert.Equal(t, tc.code, errResp.Code)
		})
	}
}

func TestStock_CuerpoInvalidoRetorna400(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/donations/stock/in", strings.NewReader("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", api.auth)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHistorial_ItemInexistenteRetorna404(t *testing.T) {
	api := newAPI(t)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, api.do(t, http.MethodGet, "/api/donations/stock/history/no-es-uuid", nil, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Importación CSV y tablero
// ──────────────────────────────────────────────────────────────────────────────

const riceAndWaterCSV = "category_name,item_name,unit_type,quantity,variant_label,movement_type\n" +
	"Dry Rations,Rice,pcs,10,5kg,IN\n" +
	"Dry Rations,Rice,pcs,3,5kg,out\n" +
	"Water,Bottle 1L,bottles,12,,\n" +
	"water,Bottle 1L,bottles,2,,OUT\n" +
	",Sin categoría,pcs,1,,\n"

func TestImport_EscenarioArrozYAguaActualizaTablero(t *testing.T) {
	api := newAPI(t)

	var result dto.ImportResultDTO
	require.Equal(t, http.StatusOK, api.upload(t, riceAndWaterCSV, nil, &result))
	assert.Equal(t, 5, result.TotalRows)
	assert.Equal(t, 4, result.ProcessedRows)
	assert.Equal(t, 1, result.SkippedRows)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, 5, result.Skipped[0].Row)
	assert.Equal(t, 2, result.CreatedCategories, "Water/water se resuelven a una sola categoría")
	assert.Equal(t, 2, result.CreatedItems)
	assert.Equal(t, 2, result.MovementsIn)
	assert.Equal(t, 2, result.MovementsOut)

	// El tablero es público: sin Authorization.
	api.auth = ""
	var summary dto.DashboardSummaryDTO
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/dashboard", nil, &summary))
	assert.Equal(t, 2, summary.Totals.TotalItems)
	assert.Equal(t, 17, summary.Totals.TotalQuantityCurrent)
	assert.Equal(t, 22, summary.Totals.TotalQuantityReceived)
	assert.Equal(t, 5, summary.Totals.TotalQuantitySent)
	assert.Equal(t, 15, summary.SentBreakdown.RiceKgSent)
	assert.Equal(t, 2, summary.SentBreakdown.WaterBottlesSent)
	assert.Zero(t, summary.Drift.ItemsWithDrift)
	require.Len(t, summary.Categories, 2)
	assert.Equal(t, "Dry Rations", summary.Categories[0].Name)
	assert.Equal(t, "Water", summary.Categories[1].Name)
}

func TestImport_StockInsuficienteRevierteYRetorna409(t *testing.T) {
	api := newAPI(t)
	csvData := "category_name,item_name,unit_type,quantity,movement_type\n" +
		"Dry Rations,Rice,pcs,2,IN\n" +
		"Dry Rations,Rice,pcs,5,OUT\n"

	var result dto.ImportResultDTO
	require.Equal(t, http.StatusConflict, api.upload(t, csvData, nil, &result))
	require.NotNil(t, result.Failure)
	assert.Equal(t, 2, result.Failure.Row)
	assert.Equal(t, "Rice", result.Failure.ItemName)
	assert.Equal(t, 5, result.Failure.Requested)
	assert.Equal(t, 2, result.Failure.Available)

	var items []dto.ItemDTO
	api.auth = bearer(t, "")
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/items", nil, &items))
	assert.Empty(t, items, "una importación fallida no deja efectos")
}

// La fila del fallo es la del archivo: las líneas vacías también cuentan.
func TestImport_FilaDelFalloCuentaLineasVacias(t *testing.T) {
	api := newAPI(t)
	csvData := "category_name,item_name,unit_type,quantity,movement_type\n" +
		"Dry Rations,Rice,pcs,2,IN\n" +
		",,,,\n" +
		"Dry Rations,Rice,pcs,5,OUT\n"

	var result dto.ImportResultDTO
	require.Equal(t, http.StatusConflict, api.upload(t, csvData, nil, &result))
	require.NotNil(t, result.Failure)
	assert.Equal(t, 3, result.Failure.Row)
}

func TestImport_DryRunNoPersiste(t *testing.T) {
	api := newAPI(t)

	var result dto.ImportResultDTO
	require.Equal(t, http.StatusOK, api.upload(t, riceAndWaterCSV, map[string]string{"dry_run": "true"}, &result))
	assert.True(t, result.DryRun)
	assert.Equal(t, 4, result.ProcessedRows)

	var categories []dto.CategoryDTO
	require.Equal(t, http.StatusOK, api.do(t, http.MethodGet, "/api/donations/categories", nil, &categories))
	assert.Empty(t, categories)
}

func TestImport_ErroresDeEntrada(t *testing.T) {
	api := newAPI(t)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.upload(t, "", nil, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	assert.Equal(t, http.StatusBadRequest, api.upload(t, riceAndWaterCSV, map[string]string{"charset": "ebcdic"}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	assert.Equal(t, http.StatusBadRequest, api.upload(t, riceAndWaterCSV, map[string]string{"dry_run": "quizás"}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)
}

func TestImport_SinArchivoRetorna400(t *testing.T) {
	api := newAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/uploads/import", nil)
	req.Header.Set("Authorization", api.auth)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_FILE")
}

func TestDashboard_PDF(t *testing.T) {
	api := newAPI(t)
	api.createItem(t, dto.CreateItemRequest{Name: "Biscuits", InitialQuantity: 3})

	req := httptest.NewRequest(http.MethodGet, "/api/donations/dashboard/pdf", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "resumen-inventario-")
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}
