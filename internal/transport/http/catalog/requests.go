package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/validation"
	"github.com/light-bringer/catalog-service/internal/pkg/optional"
	"github.com/light-bringer/catalog-service/internal/pkg/pagination"
)

// priceLiteral accepts a JSON number or string and keeps the decimal literal
// intact, so precision never passes through float64 on the way to validation.
type priceLiteral string

func (p *priceLiteral) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = priceLiteral(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = priceLiteral(n)
	return nil
}

// createProductRequest is the wire shape of POST /products.
type createProductRequest struct {
	Name        string       `json:"name"`
	Description *string      `json:"description"`
	Price       priceLiteral `json:"price"`
	SKU         *string      `json:"sku"`
	InStock     *bool        `json:"in_stock"`
	CategoryIDs []int64      `json:"category_ids"`
}

func (r createProductRequest) toInput() validation.ProductCreateInput {
	return validation.ProductCreateInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       string(r.Price),
		SKU:         r.SKU,
		InStock:     r.InStock,
		CategoryIDs: r.CategoryIDs,
	}
}

// updateProductRequest is the wire shape of PUT /products/:id. Every field is
// tri-state: absent, null, or a value.
type updateProductRequest struct {
	Name        optional.Field[string]       `json:"name"`
	Description optional.Field[string]       `json:"description"`
	Price       optional.Field[priceLiteral] `json:"price"`
	SKU         optional.Field[string]       `json:"sku"`
	InStock     optional.Field[bool]         `json:"in_stock"`
	CategoryIDs optional.Field[[]int64]      `json:"category_ids"`
}

func (r updateProductRequest) toInput() validation.ProductUpdateInput {
	return validation.ProductUpdateInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       priceField(r.Price),
		SKU:         r.SKU,
		InStock:     r.InStock,
		CategoryIDs: r.CategoryIDs,
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (r createCategoryRequest) toInput() validation.CategoryCreateInput {
	return validation.CategoryCreateInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

type updateCategoryRequest struct {
	Name        optional.Field[string] `json:"name"`
	Description optional.Field[string] `json:"description"`
}

func (r updateCategoryRequest) toInput() validation.CategoryUpdateInput {
	return validation.CategoryUpdateInput{
		Name:        r.Name,
		Description: r.Description,
	}
}

// priceField rewraps an optional price literal as an optional string.
func priceField(f optional.Field[priceLiteral]) optional.Field[string] {
	if !f.Present() {
		return optional.Field[string]{}
	}
	if f.Null() {
		return optional.Null[string]()
	}
	p, _ := f.Value()
	return optional.Some(string(p))
}

// pathID parses the :id path segment. A non-integer id can never match a row,
// so it reads as not found rather than invalid.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, errorBody{Error: "resource not found"})
		return 0, false
	}
	return id, true
}

// pageQuery parses page and page_size query params, falling back to defaults.
func pageQuery(c *gin.Context) (pagination.Page, bool) {
	page, ok := intQuery(c, "page")
	if !ok {
		return pagination.Page{}, false
	}
	size, ok := intQuery(c, "page_size")
	if !ok {
		return pagination.Page{}, false
	}

	p, err := pagination.New(page, size)
	if err != nil {
		writeInvalidParam(c, "pagination", err.Error())
		return pagination.Page{}, false
	}
	return p, true
}

// listFilter parses the product list query params.
func listFilter(c *gin.Context) (contracts.ListFilter, bool) {
	page, ok := pageQuery(c)
	if !ok {
		return contracts.ListFilter{}, false
	}
	filter := contracts.ListFilter{Page: page}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			writeInvalidParam(c, "category_id", "must be a positive integer")
			return contracts.ListFilter{}, false
		}
		filter.CategoryID = &id
	}

	if raw := c.Query("in_stock"); raw != "" {
		inStock, err := strconv.ParseBool(raw)
		if err != nil {
			writeInvalidParam(c, "in_stock", "must be true or false")
			return contracts.ListFilter{}, false
		}
		filter.InStock = &inStock
	}

	return filter, true
}

// intQuery parses an integer query param, 0 meaning absent.
func intQuery(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeInvalidParam(c, name, "must be an integer")
		return 0, false
	}
	return n, true
}
