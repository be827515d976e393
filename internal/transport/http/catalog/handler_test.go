package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

type fakeProductRepo struct {
	createReq  *contracts.CreateProduct
	updateID   int64
	updateReq  *contracts.UpdateProduct
	listFilter *contracts.ListFilter
	deleteID   int64

	product *domain.ProductWithCategories
	list    *contracts.ProductList
	err     error
}

func (f *fakeProductRepo) Create(_ context.Context, req contracts.CreateProduct) (*domain.ProductWithCategories, error) {
	f.createReq = &req
	return f.product, f.err
}

func (f *fakeProductRepo) Get(_ context.Context, id int64) (*domain.ProductWithCategories, error) {
	return f.product, f.err
}

func (f *fakeProductRepo) List(_ context.Context, filter contracts.ListFilter) (*contracts.ProductList, error) {
	f.listFilter = &filter
	return f.list, f.err
}

func (f *fakeProductRepo) Update(_ context.Context, id int64, req contracts.UpdateProduct) (*domain.ProductWithCategories, error) {
	f.updateID = id
	f.updateReq = &req
	return f.product, f.err
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	f.deleteID = id
	return f.err
}

type fakeCategoryRepo struct {
	createReq *contracts.CreateCategory
	updateReq *contracts.UpdateCategory

	category   *domain.Category
	categories []*domain.CategoryWithProductCount
	list       *contracts.ProductList
	err        error
}

func (f *fakeCategoryRepo) Create(_ context.Context, req contracts.CreateCategory) (*domain.Category, error) {
	f.createReq = &req
	return f.category, f.err
}

func (f *fakeCategoryRepo) Get(_ context.Context, id int64) (*domain.Category, error) {
	return f.category, f.err
}

func (f *fakeCategoryRepo) List(_ context.Context, includeProductCount bool) ([]*domain.CategoryWithProductCount, error) {
	return f.categories, f.err
}

func (f *fakeCategoryRepo) Update(_ context.Context, id int64, req contracts.UpdateCategory) (*domain.Category, error) {
	f.updateReq = &req
	return f.category, f.err
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	return f.err
}

func (f *fakeCategoryRepo) ListProducts(_ context.Context, categoryID int64, page pagination.Page) (*contracts.ProductList, error) {
	return f.list, f.err
}

func newTestRouter(products contracts.ProductRepository, categories contracts.CategoryRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	NewHandler(products, categories).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleProduct(t *testing.T) *domain.ProductWithCategories {
	t.Helper()
	price, err := domain.ParseMoney("19.99")
	require.NoError(t, err)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	desc := "a widget"
	return &domain.ProductWithCategories{
		Product: domain.Product{
			ID:          7,
			Name:        "Widget",
			Description: &desc,
			Price:       price,
			InStock:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Categories: []domain.CategorySummary{{ID: 1, Name: "tools"}, {ID: 3, Name: "widgets"}},
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("creates and returns 201", func(t *testing.T) {
		products := &fakeProductRepo{product: sampleProduct(t)}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/products",
			`{"name":"  Widget  ","price":19.99,"category_ids":[3,1,3]}`)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, products.createReq)
		assert.Equal(t, "Widget", products.createReq.Name)
		assert.Equal(t, []int64{1, 3}, products.createReq.CategoryIDs)

		var resp productResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "19.99", resp.Price)
		assert.Len(t, resp.Categories, 2)
	})

	t.Run("price as string is accepted", func(t *testing.T) {
		products := &fakeProductRepo{product: sampleProduct(t)}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/products",
			`{"name":"Widget","price":"10.50","category_ids":[1]}`)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, products.createReq)
		require.NotNil(t, products.createReq.Price)
		assert.Equal(t, "10.50", products.createReq.Price.String())
	})

	t.Run("validation failure returns 400 with violations", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/products", `{"name":""}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body errorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		fields := make([]string, 0, len(body.Violations))
		for _, v := range body.Violations {
			fields = append(fields, v.Field)
		}
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "price")
		assert.Contains(t, fields, "category_ids")
	})

	t.Run("missing category returns 404", func(t *testing.T) {
		products := &fakeProductRepo{err: domain.NotFound("category", 99)}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/products",
			`{"name":"Widget","price":"1.00","category_ids":[99]}`)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("duplicate sku returns 409", func(t *testing.T) {
		products := &fakeProductRepo{err: domain.Conflict("a product with this sku already exists")}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/products",
			`{"name":"Widget","price":"1.00","sku":"W-1","category_ids":[1]}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPost, "/api/v1/products", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("returns the product", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{product: sampleProduct(t)}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products/7", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp productResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Widget", resp.Name)
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{err: domain.NotFound("product", 8)}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products/8", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-integer id returns 404", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products/abc", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListProducts(t *testing.T) {
	t.Run("parses filter and pagination", func(t *testing.T) {
		products := &fakeProductRepo{list: &contracts.ProductList{Items: []*domain.ProductWithCategories{sampleProduct(t)}, Total: 21}}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products?page=2&page_size=10&category_id=3&in_stock=true", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, products.listFilter)
		require.NotNil(t, products.listFilter.CategoryID)
		assert.Equal(t, int64(3), *products.listFilter.CategoryID)
		require.NotNil(t, products.listFilter.InStock)
		assert.True(t, *products.listFilter.InStock)
		assert.Equal(t, int64(2), products.listFilter.Page.Number)

		var resp productListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(21), resp.Total)
		assert.Equal(t, int64(3), resp.TotalPages)
	})

	t.Run("defaults apply when params are omitted", func(t *testing.T) {
		products := &fakeProductRepo{list: &contracts.ProductList{Items: nil, Total: 0}}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products", "")

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, products.listFilter)
		assert.Equal(t, int64(1), products.listFilter.Page.Number)
		assert.Equal(t, int64(10), products.listFilter.Page.Size)
		assert.Nil(t, products.listFilter.CategoryID)
		assert.Nil(t, products.listFilter.InStock)
	})

	t.Run("bad in_stock returns 400", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products?in_stock=maybe", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative page returns 400", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodGet, "/api/v1/products?page=-1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("null sku clears, omitted fields stay absent", func(t *testing.T) {
		products := &fakeProductRepo{product: sampleProduct(t)}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPut, "/api/v1/products/7", `{"sku":null}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, products.updateReq)
		assert.Equal(t, int64(7), products.updateID)
		assert.True(t, products.updateReq.SKU.Present())
		assert.True(t, products.updateReq.SKU.Null())
		assert.Nil(t, products.updateReq.Name)
		assert.Nil(t, products.updateReq.Price)
		assert.Nil(t, products.updateReq.CategoryIDs)
	})

	t.Run("empty category_ids clears associations", func(t *testing.T) {
		products := &fakeProductRepo{product: sampleProduct(t)}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPut, "/api/v1/products/7", `{"category_ids":[]}`)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, products.updateReq)
		require.NotNil(t, products.updateReq.CategoryIDs)
		assert.Empty(t, *products.updateReq.CategoryIDs)
	})

	t.Run("null category_ids returns 400", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPut, "/api/v1/products/7", `{"category_ids":null}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("null price returns 400", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPut, "/api/v1/products/7", `{"price":null}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		products := &fakeProductRepo{}
		r := newTestRouter(products, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodDelete, "/api/v1/products/7", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, int64(7), products.deleteID)
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{err: domain.NotFound("product", 7)}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodDelete, "/api/v1/products/7", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCategories(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sample := &domain.Category{ID: 2, Name: "tools", CreatedAt: now, UpdatedAt: now}

	t.Run("create returns 201", func(t *testing.T) {
		categories := &fakeCategoryRepo{category: sample}
		r := newTestRouter(&fakeProductRepo{}, categories)

		w := doJSON(t, r, http.MethodPost, "/api/v1/categories", `{"name":"tools"}`)

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, categories.createReq)
		assert.Equal(t, "tools", categories.createReq.Name)
	})

	t.Run("duplicate name returns 409", func(t *testing.T) {
		categories := &fakeCategoryRepo{err: domain.Conflict("a category with this name already exists")}
		r := newTestRouter(&fakeProductRepo{}, categories)

		w := doJSON(t, r, http.MethodPost, "/api/v1/categories", `{"name":"tools"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("list includes counts only when asked", func(t *testing.T) {
		categories := &fakeCategoryRepo{categories: []*domain.CategoryWithProductCount{
			{Category: *sample, ProductCount: 4},
		}}
		r := newTestRouter(&fakeProductRepo{}, categories)

		w := doJSON(t, r, http.MethodGet, "/api/v1/categories?include_product_count=true", "")
		require.Equal(t, http.StatusOK, w.Code)
		var withCounts categoryListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withCounts))
		require.Len(t, withCounts.Items, 1)
		require.NotNil(t, withCounts.Items[0].ProductCount)
		assert.Equal(t, int64(4), *withCounts.Items[0].ProductCount)

		w = doJSON(t, r, http.MethodGet, "/api/v1/categories", "")
		require.Equal(t, http.StatusOK, w.Code)
		var plain categoryListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plain))
		require.Len(t, plain.Items, 1)
		assert.Nil(t, plain.Items[0].ProductCount)
	})

	t.Run("update with null name returns 400", func(t *testing.T) {
		r := newTestRouter(&fakeProductRepo{}, &fakeCategoryRepo{})

		w := doJSON(t, r, http.MethodPut, "/api/v1/categories/2", `{"name":null}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("category products paginate", func(t *testing.T) {
		categories := &fakeCategoryRepo{list: &contracts.ProductList{Items: []*domain.ProductWithCategories{sampleProduct(t)}, Total: 1}}
		r := newTestRouter(&fakeProductRepo{}, categories)

		w := doJSON(t, r, http.MethodGet, "/api/v1/categories/2/products?page=1&page_size=5", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp productListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Total)
		assert.Equal(t, int64(5), resp.PageSize)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newTestRouter(&fakeProductRepo{list: &contracts.ProductList{}}, &fakeCategoryRepo{})

	t.Run("assigns an id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/v1/products", "")
		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	})

	t.Run("honors a caller-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}
