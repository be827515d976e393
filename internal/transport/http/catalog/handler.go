// Package catalog exposes the catalog repositories over HTTP. The handlers
// are thin: decode, validate, delegate to a repository, encode. All domain
// rules live below this layer.
package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/validation"
)

// Handler routes catalog requests to the product and category repositories.
type Handler struct {
	products   contracts.ProductRepository
	categories contracts.CategoryRepository
}

// NewHandler creates an HTTP handler over the given repositories.
func NewHandler(products contracts.ProductRepository, categories contracts.CategoryRepository) *Handler {
	return &Handler{
		products:   products,
		categories: categories,
	}
}

// RegisterRoutes mounts the catalog API under /api/v1.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	v1 := r.Group("/api/v1")

	v1.POST("/products", h.createProduct)
	v1.GET("/products", h.listProducts)
	v1.GET("/products/:id", h.getProduct)
	v1.PUT("/products/:id", h.updateProduct)
	v1.DELETE("/products/:id", h.deleteProduct)

	v1.POST("/categories", h.createCategory)
	v1.GET("/categories", h.listCategories)
	v1.GET("/categories/:id", h.getCategory)
	v1.PUT("/categories/:id", h.updateCategory)
	v1.DELETE("/categories/:id", h.deleteCategory)
	v1.GET("/categories/:id/products", h.listCategoryProducts)
}

func (h *Handler) createProduct(c *gin.Context) {
	var body createProductRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	req, err := validation.ProductCreate(body.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h *Handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) listProducts(c *gin.Context) {
	filter, ok := listFilter(c)
	if !ok {
		return
	}

	list, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductListResponse(list, filter.Page))
}

func (h *Handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body updateProductRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	req, err := validation.ProductUpdate(body.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h *Handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createCategory(c *gin.Context) {
	var body createCategoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	req, err := validation.CategoryCreate(body.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(category))
}

func (h *Handler) listCategories(c *gin.Context) {
	includeCounts := c.Query("include_product_count") == "true"

	categories, err := h.categories.List(c.Request.Context(), includeCounts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryListResponse(categories, includeCounts))
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(category))
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var body updateCategoryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindError(c, err)
		return
	}

	req, err := validation.CategoryUpdate(body.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(category))
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCategoryProducts(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	page, ok := pageQuery(c)
	if !ok {
		return
	}

	list, err := h.categories.ListProducts(c.Request.Context(), id, page)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductListResponse(list, page))
}
