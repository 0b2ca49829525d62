package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/repository"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/request"
	"github.com/sangkips/inventra-api/internal/testutil"
	"github.com/sangkips/inventra-api/pkg/apperror"
)

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

type catalogEnv struct {
	router     *gin.Engine
	products   domainRepo.ProductRepository
	warehouses domainRepo.WarehouseRepository
	stock      domainRepo.StockRepository
}

func newCatalogEnv(t *testing.T) *catalogEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	request.RegisterValidators()

	db := testutil.NewDB(t)
	env := &catalogEnv{
		products:   repository.NewProductRepository(db),
		warehouses: repository.NewWarehouseRepository(db),
		stock:      repository.NewStockRepository(db),
	}
	categories := repository.NewCategoryRepository(db)
	brands := repository.NewBrandRepository(db)

	products := NewProductHandler(service.NewProductService(env.products, categories, brands, env.stock))
	cats := NewCategoryHandler(service.NewCategoryService(categories))

	r := gin.New()
	r.GET("/products/:id", products.Get)
	r.POST("/products", products.Create)
	r.DELETE("/products/:id", products.Delete)
	r.GET("/categories/:id", cats.Get)
	r.POST("/categories", cats.Create)
	env.router = r
	return env
}

func (e *catalogEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	e.router.ServeHTTP(w, req)

	var out envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestCreateCategoryValidation(t *testing.T) {
	env := newCatalogEnv(t)

	w, out := env.do(t, http.MethodPost, "/categories", `{"name":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "name", out.Errors[0].Field)
	assert.Equal(t, "is required", out.Errors[0].Message)

	w, _ = env.do(t, http.MethodPost, "/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodPost, "/categories", `{"name":"Fasteners"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = env.do(t, http.MethodPost, "/categories", `{"name":"Fasteners"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetCategoryErrors(t *testing.T) {
	env := newCatalogEnv(t)

	w, _ := env.do(t, http.MethodGet, "/categories/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, out := env.do(t, http.MethodGet, "/categories/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, out.Success)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	env := newCatalogEnv(t)

	w, out := env.do(t, http.MethodPost, "/products", `{"sku":"BOLT","name":"Bolt","price":"-1","cost":"0.5"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "price", out.Errors[0].Field)
	assert.Equal(t, "must not be negative", out.Errors[0].Message)

	w, out = env.do(t, http.MethodPost, "/products", `{"sku":"BOLT","name":"Bolt","price":"2.50","cost":"0.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created entity.Product
	require.NoError(t, json.Unmarshal(out.Data, &created))
	assert.Equal(t, "BOLT", created.SKU)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("2.5")))
	assert.Equal(t, "pcs", created.Unit)
}

func TestDeleteProductWithStockConflicts(t *testing.T) {
	env := newCatalogEnv(t)
	ctx := context.Background()

	p := &entity.Product{SKU: "NUT", Name: "Nut", Unit: "pcs", Status: enum.RecordStatusActive}
	require.NoError(t, env.products.Create(ctx, p))
	w := &entity.Warehouse{Code: "MAIN", Name: "Main", Status: enum.RecordStatusActive}
	require.NoError(t, env.warehouses.Create(ctx, w))

	item := &entity.StockItem{ProductID: p.ID, WarehouseID: w.ID}
	item.SetQuantity(4, time.Now().UTC())
	require.NoError(t, env.stock.Create(ctx, item))

	rec, _ := env.do(t, http.MethodDelete, "/products/"+p.ID.String(), "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	item.SetQuantity(0, time.Now().UTC())
	require.NoError(t, env.stock.Update(ctx, item))

	rec, _ = env.do(t, http.MethodDelete, "/products/"+p.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/products/"+p.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
